package explorer

import (
	"strings"

	"github.com/turtacn/NFHS-Explorer/internal/domain/survey"
	"github.com/turtacn/NFHS-Explorer/pkg/errors"
)

// Selection is the state of the four dashboard selectors.  Indicator holds a
// full column name once resolved.
type Selection struct {
	State     string `json:"state"`
	Survey    string `json:"survey"`
	Area      string `json:"area"`
	Indicator string `json:"indicator"`
}

// cacheKey joins the fields with a separator that cannot occur in cell text
// read from a CSV line.
func (s Selection) cacheKey() string {
	return strings.Join([]string{s.State, s.Survey, s.Area, s.Indicator}, "\x1f")
}

// Options are the values offered by each selector.
type Options struct {
	States     []string    `json:"states"`
	Surveys    []string    `json:"surveys"`
	Areas      []string    `json:"areas"`
	Indicators []Indicator `json:"indicators"`
	KPIs       []KPICard   `json:"kpis"`
}

// BuildOptions collects the sorted distinct non-empty states, surveys and
// areas of ds together with the fixed indicator and KPI lists.
func BuildOptions(ds *survey.Dataset) Options {
	o := Options{Indicators: Indicators(), KPIs: KPICards()}
	if ds == nil {
		return o
	}
	o.States = ds.Distinct(survey.ColumnState)
	o.Surveys = ds.Distinct(survey.ColumnSurvey)
	o.Areas = ds.Distinct(survey.ColumnArea)
	return o
}

// Default returns the initial selection: the first value of every list.
func (o Options) Default() Selection {
	return Selection{
		State:     first(o.States),
		Survey:    first(o.Surveys),
		Area:      first(o.Areas),
		Indicator: firstIndicator(o.Indicators),
	}
}

// Resolve fills empty fields of sel from Default and maps an indicator slug
// to its column.  State, survey and area are not checked against the lists:
// a combination missing from the data is valid and yields NA.  An indicator
// that is neither a slug nor a catalog column is rejected with
// ErrCodeUnknownIndicator.
func (o Options) Resolve(sel Selection) (Selection, error) {
	def := o.Default()
	if sel.State == "" {
		sel.State = def.State
	}
	if sel.Survey == "" {
		sel.Survey = def.Survey
	}
	if sel.Area == "" {
		sel.Area = def.Area
	}
	if sel.Indicator == "" {
		sel.Indicator = def.Indicator
		return sel, nil
	}
	ind, ok := LookupIndicator(sel.Indicator)
	if !ok {
		return sel, errors.New(errors.ErrCodeUnknownIndicator, "unknown indicator").WithDetail(sel.Indicator)
	}
	sel.Indicator = ind.Column
	return sel, nil
}

func first(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

func firstIndicator(inds []Indicator) string {
	if len(inds) == 0 {
		return ""
	}
	return inds[0].Column
}

//Personal.AI order the ending
