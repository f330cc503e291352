// Package explorer implements the filter and derivation engine behind the NFHS
// dashboard: given the dataset and the four selector values it derives the
// filtered row set, the KPI cards, the cross-state comparison and the raw
// table.  Every operation is a pure recomputation over the immutable dataset.
package explorer

import (
	"github.com/turtacn/NFHS-Explorer/internal/domain/survey"
)

// ============================================================================
// Views
// ============================================================================

// FilteredView holds the rows whose key columns equal the selected state,
// survey and area, in dataset order.  Columns is the full dataset header.
type FilteredView struct {
	Columns []string
	Rows    []survey.Row
}

// Len returns the number of matching rows.
func (v FilteredView) Len() int { return len(v.Rows) }

// Empty reports whether no row matched.
func (v FilteredView) Empty() bool { return len(v.Rows) == 0 }

// Table returns the view as raw text for display or export.  An empty view
// still carries the header.
func (v FilteredView) Table() Table {
	t := Table{Columns: append([]string(nil), v.Columns...), Rows: make([][]string, 0, len(v.Rows))}
	for _, r := range v.Rows {
		t.Rows = append(t.Rows, r.Values())
	}
	return t
}

// Table is a header plus rows of raw cell text.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ComparisonPoint is one bar of the state-wise comparison.
type ComparisonPoint struct {
	State string  `json:"state"`
	Value float64 `json:"value"`
}

// ComparisonView is the (state, value) series for one indicator across all
// states, for a fixed survey round and area.
type ComparisonView struct {
	Survey    string            `json:"survey"`
	Area      string            `json:"area"`
	Indicator string            `json:"indicator"`
	Points    []ComparisonPoint `json:"points"`
}

// Len returns the number of points.
func (v ComparisonView) Len() int { return len(v.Points) }

// ============================================================================
// Operations
// ============================================================================

// ComputeFilteredView returns the rows of ds whose state, survey and area
// equal the arguments exactly.  No argument is validated; a combination that
// does not occur yields an empty view.
func ComputeFilteredView(ds *survey.Dataset, state, surveyRound, area string) FilteredView {
	if ds == nil {
		return FilteredView{}
	}
	want := survey.Key{State: state, Survey: surveyRound, Area: area}
	view := FilteredView{Columns: ds.Columns()}
	for i := 0; i < ds.Len(); i++ {
		r := ds.Row(i)
		if r.Key() == want {
			view.Rows = append(view.Rows, r)
		}
	}
	return view
}

// GetKPI returns the value of column on the first row of view, rounded half
// away from zero to one decimal place.  It returns NA when the view is empty,
// the column does not exist, or the cell is null or not a number.
func GetKPI(view FilteredView, column string) KPIValue {
	if view.Empty() {
		return NA()
	}
	cell, ok := view.Rows[0].Cell(column)
	if !ok {
		return NA()
	}
	d, ok := cell.Decimal()
	if !ok {
		return NA()
	}
	return NewKPIValue(d)
}

// ComputeComparisonView projects every row matching surveyRound and area onto
// (state, indicator), dropping rows whose state is null or whose indicator
// cell is null or not a number.  Dataset order is kept.  An unknown indicator
// yields no points.
func ComputeComparisonView(ds *survey.Dataset, surveyRound, area, indicator string) ComparisonView {
	view := ComparisonView{Survey: surveyRound, Area: area, Indicator: indicator, Points: []ComparisonPoint{}}
	if ds == nil || !ds.HasColumn(indicator) {
		return view
	}
	for i := 0; i < ds.Len(); i++ {
		r := ds.Row(i)
		k := r.Key()
		if k.Survey != surveyRound || k.Area != area || survey.Cell(k.State).IsNull() {
			continue
		}
		cell, _ := r.Cell(indicator)
		d, ok := cell.Decimal()
		if !ok {
			continue
		}
		f, _ := d.Float64()
		view.Points = append(view.Points, ComparisonPoint{State: k.State, Value: f})
	}
	return view
}

//Personal.AI order the ending
