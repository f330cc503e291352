// Package survey models the NFHS indicator table: an immutable dataset keyed
// by (state/UT, survey round, area) whose remaining columns are indicator
// values kept as raw text.  It knows nothing about how the table is read or
// rendered.
package survey

import (
	"sort"
	"strings"

	"github.com/turtacn/NFHS-Explorer/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Key columns
// ─────────────────────────────────────────────────────────────────────────────

const (
	// ColumnState holds the state or union territory name, or "India".
	ColumnState = "India/States/UTs"

	// ColumnSurvey holds the survey round label, e.g. "NFHS-5".
	ColumnSurvey = "Survey"

	// ColumnArea holds the area label: "Urban", "Rural" or "Total".
	ColumnArea = "Area"
)

// KeyColumns returns the three key columns in display order.
func KeyColumns() []string {
	return []string{ColumnState, ColumnSurvey, ColumnArea}
}

// Key identifies one logical record of the dataset.
type Key struct {
	State  string `json:"state"`
	Survey string `json:"survey"`
	Area   string `json:"area"`
}

// String renders the key as "state / survey / area".
func (k Key) String() string {
	return k.State + " / " + k.Survey + " / " + k.Area
}

// ─────────────────────────────────────────────────────────────────────────────
// Dataset
// ─────────────────────────────────────────────────────────────────────────────

// Dataset is the loaded survey table.  It is built once by NewDataset and
// never mutated afterwards, so a *Dataset may be shared freely between
// goroutines.
type Dataset struct {
	columns []string
	index   map[string]int
	rows    [][]string

	stateIdx, surveyIdx, areaIdx int
}

// NewDataset validates the header and copies columns and rows into a new
// Dataset.  Header names must be unique and include the three key columns.
// Rows shorter than the header are padded with empty (null) cells; longer
// rows are truncated.
func NewDataset(columns []string, rows [][]string) (*Dataset, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := index[c]; dup {
			return nil, errors.New(errors.ErrCodeDatasetSchemaInvalid, "duplicate column name").WithDetail(c)
		}
		index[c] = i
	}

	var missing []string
	for _, k := range KeyColumns() {
		if _, ok := index[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, errors.New(errors.ErrCodeDatasetSchemaInvalid, "dataset is missing key columns").
			WithDetail(strings.Join(missing, ", "))
	}

	width := len(columns)
	copied := make([][]string, len(rows))
	for i, r := range rows {
		row := make([]string, width)
		copy(row, r)
		copied[i] = row
	}

	return &Dataset{
		columns:   append([]string(nil), columns...),
		index:     index,
		rows:      copied,
		stateIdx:  index[ColumnState],
		surveyIdx: index[ColumnSurvey],
		areaIdx:   index[ColumnArea],
	}, nil
}

// Columns returns the header in file order.
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.columns...)
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

// HasColumn reports whether name is a header of the dataset.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// MissingColumns returns the names in required that are not headers of the
// dataset, in the order given.
func (d *Dataset) MissingColumns(required []string) []string {
	var missing []string
	for _, c := range required {
		if !d.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// Row returns the i-th data row.  It panics if i is out of range.
func (d *Dataset) Row(i int) Row {
	return Row{ds: d, cells: d.rows[i]}
}

// Distinct returns the sorted distinct non-empty values of column, or nil
// when the column does not exist.
func (d *Dataset) Distinct(column string) []string {
	idx, ok := d.index[column]
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, r := range d.rows {
		v := r[idx]
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// DuplicateKeys returns every key that appears on more than one row, in the
// order of its first repeat.
func (d *Dataset) DuplicateKeys() []Key {
	counts := make(map[Key]int, len(d.rows))
	var dups []Key
	for i := range d.rows {
		k := d.Row(i).Key()
		counts[k]++
		if counts[k] == 2 {
			dups = append(dups, k)
		}
	}
	return dups
}

// ─────────────────────────────────────────────────────────────────────────────
// Row
// ─────────────────────────────────────────────────────────────────────────────

// Row is a read-only view of one dataset row.
type Row struct {
	ds    *Dataset
	cells []string
}

// Key returns the row's (state, survey, area) triple.
func (r Row) Key() Key {
	return Key{
		State:  r.cells[r.ds.stateIdx],
		Survey: r.cells[r.ds.surveyIdx],
		Area:   r.cells[r.ds.areaIdx],
	}
}

// Cell returns the raw cell for column.  The second result is false when the
// column does not exist.
func (r Row) Cell(column string) (Cell, bool) {
	idx, ok := r.ds.index[column]
	if !ok {
		return "", false
	}
	return Cell(r.cells[idx]), true
}

// Values returns a copy of the row's cells in header order.
func (r Row) Values() []string {
	return append([]string(nil), r.cells...)
}

//Personal.AI order the ending
