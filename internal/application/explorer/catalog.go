package explorer

import (
	"strings"

	"github.com/turtacn/NFHS-Explorer/internal/domain/survey"
)

// ============================================================================
// Indicator columns
// ============================================================================

const (
	ColumnFemaleLiteracy     = "Population and Household Profile - Population (female) age 6 years and above who ever attended school (%)"
	ColumnSexRatio           = "Population and Household Profile - Sex ratio of the total population (females per 1000 males)"
	ColumnElectricity        = "Population and Household Profile - Households with electricity (%)"
	ColumnImprovedWater      = "Population and Household Profile - Households with an improved drinking-water source (%)"
	ColumnBirthRegistrations = "Population and Household Profile - Children under age 5 years whose birth was registered (%)"
)

// KPICard binds a display label to the indicator column it reads.
type KPICard struct {
	Label  string `json:"label"`
	Column string `json:"column"`
}

// Indicator is one entry of the state-comparison dropdown.  Slug is a short
// stable name accepted wherever the full column name is.
type Indicator struct {
	Slug   string `json:"slug"`
	Column string `json:"column"`
}

var kpiCards = []KPICard{
	{Label: "Female Literacy (%)", Column: ColumnFemaleLiteracy},
	{Label: "Sex Ratio", Column: ColumnSexRatio},
	{Label: "Electricity (%)", Column: ColumnElectricity},
	{Label: "Improved Water (%)", Column: ColumnImprovedWater},
}

var indicators = []Indicator{
	{Slug: "female-literacy", Column: ColumnFemaleLiteracy},
	{Slug: "electricity", Column: ColumnElectricity},
	{Slug: "sex-ratio", Column: ColumnSexRatio},
	{Slug: "birth-registration", Column: ColumnBirthRegistrations},
}

// KPICards returns the four KPI cards in display order.
func KPICards() []KPICard {
	return append([]KPICard(nil), kpiCards...)
}

// Indicators returns the comparison indicators in dropdown order.
func Indicators() []Indicator {
	return append([]Indicator(nil), indicators...)
}

// LookupIndicator resolves a slug or a full column name (case-insensitive for
// slugs, exact for column names) to its catalog entry.
func LookupIndicator(nameOrSlug string) (Indicator, bool) {
	for _, ind := range indicators {
		if ind.Column == nameOrSlug || strings.EqualFold(ind.Slug, strings.TrimSpace(nameOrSlug)) {
			return ind, true
		}
	}
	return Indicator{}, false
}

// RequiredColumns lists every column the dashboard reads: the three key
// columns followed by each distinct catalog column.  A dataset lacking any of
// them cannot be served.
func RequiredColumns() []string {
	cols := survey.KeyColumns()
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		seen[c] = struct{}{}
	}
	add := func(c string) {
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			cols = append(cols, c)
		}
	}
	for _, k := range kpiCards {
		add(k.Column)
	}
	for _, ind := range indicators {
		add(ind.Column)
	}
	return cols
}

//Personal.AI order the ending
