package explorer_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/NFHS-Explorer/internal/application/explorer"
	"github.com/turtacn/NFHS-Explorer/internal/domain/survey"
	"github.com/turtacn/NFHS-Explorer/internal/testutil"
)

// ─────────────────────────────────────────────────────────────────────────────
// Engine properties over the sample dataset
// ─────────────────────────────────────────────────────────────────────────────

type EngineSuite struct {
	suite.Suite
	ds *survey.Dataset
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupSuite() {
	s.ds = testutil.SampleDataset(s.T())
}

// triples enumerates every (state, survey, area) combination of the option
// lists plus a few that never occur.
func (s *EngineSuite) triples() []survey.Key {
	o := explorer.BuildOptions(s.ds)
	var out []survey.Key
	for _, st := range append(o.States, "Atlantis") {
		for _, sv := range append(o.Surveys, "NFHS-9") {
			for _, ar := range append(o.Areas, "rural", "") {
				out = append(out, survey.Key{State: st, Survey: sv, Area: ar})
			}
		}
	}
	return out
}

func (s *EngineSuite) TestFilteredRowsMatchExactly() {
	for _, k := range s.triples() {
		view := explorer.ComputeFilteredView(s.ds, k.State, k.Survey, k.Area)
		for _, r := range view.Rows {
			s.Equal(k, r.Key(), "triple %s", k)
		}
	}
}

func (s *EngineSuite) TestFilteredViewIsCompleteAndOrdered() {
	for _, k := range s.triples() {
		view := explorer.ComputeFilteredView(s.ds, k.State, k.Survey, k.Area)

		var want [][]string
		for i := 0; i < s.ds.Len(); i++ {
			if s.ds.Row(i).Key() == k {
				want = append(want, s.ds.Row(i).Values())
			}
		}
		s.Equal(len(want), view.Len())
		for i, r := range view.Rows {
			s.Equal(want[i], r.Values())
		}
	}
}

func (s *EngineSuite) TestEmptyViewGivesNAForEveryColumn() {
	view := explorer.ComputeFilteredView(s.ds, "Atlantis", "NFHS-5", "Total")
	s.True(view.Empty())
	for _, c := range s.ds.Columns() {
		s.False(explorer.GetKPI(view, c).Available(), c)
	}
}

func (s *EngineSuite) TestAbsentColumnGivesNA() {
	view := explorer.ComputeFilteredView(s.ds, "Kerala", "NFHS-5", "Total")
	s.Require().False(view.Empty())
	s.Equal("NA", explorer.GetKPI(view, "Not a column").String())
}

func (s *EngineSuite) TestKPIStringHasOneDecimalOrNA() {
	for _, k := range s.triples() {
		view := explorer.ComputeFilteredView(s.ds, k.State, k.Survey, k.Area)
		for _, c := range s.ds.Columns() {
			got := explorer.GetKPI(view, c).String()
			if got == explorer.NAText {
				continue
			}
			s.Regexp(`^-?\d+\.\d$`, got, "%s / %s", k, c)
		}
	}
}

func (s *EngineSuite) TestComparisonHasNoNullValues() {
	o := explorer.BuildOptions(s.ds)
	for _, sv := range o.Surveys {
		for _, ar := range o.Areas {
			for _, ind := range o.Indicators {
				view := explorer.ComputeComparisonView(s.ds, sv, ar, ind.Column)
				for _, p := range view.Points {
					s.NotEmpty(p.State)
				}
				// Every point corresponds to a non-null cell in dataset order.
				var wantStates []string
				for i := 0; i < s.ds.Len(); i++ {
					r := s.ds.Row(i)
					if r.Key().Survey != sv || r.Key().Area != ar || survey.Cell(r.Key().State).IsNull() {
						continue
					}
					c, _ := r.Cell(ind.Column)
					if _, ok := c.Decimal(); ok {
						wantStates = append(wantStates, r.Key().State)
					}
				}
				var gotStates []string
				for _, p := range view.Points {
					gotStates = append(gotStates, p.State)
				}
				s.Equal(wantStates, gotStates, "%s %s %s", sv, ar, ind.Slug)
			}
		}
	}
}

func (s *EngineSuite) TestOperationsAreIdempotent() {
	a := explorer.ComputeFilteredView(s.ds, "Kerala", "NFHS-5", "Total")
	b := explorer.ComputeFilteredView(s.ds, "Kerala", "NFHS-5", "Total")
	s.Equal(a.Table(), b.Table())
	s.Equal(explorer.GetKPI(a, explorer.ColumnSexRatio), explorer.GetKPI(b, explorer.ColumnSexRatio))

	c1 := explorer.ComputeComparisonView(s.ds, "NFHS-5", "Total", explorer.ColumnElectricity)
	c2 := explorer.ComputeComparisonView(s.ds, "NFHS-5", "Total", explorer.ColumnElectricity)
	s.Equal(c1, c2)
}

// ─────────────────────────────────────────────────────────────────────────────
// End-to-end examples
// ─────────────────────────────────────────────────────────────────────────────

func TestKeralaExample(t *testing.T) {
	t.Parallel()
	ds := testutil.SampleDataset(t)

	view := explorer.ComputeFilteredView(ds, "Kerala", "NFHS-5", "Total")
	require.Equal(t, 1, view.Len())

	assert.Equal(t, "96.2", explorer.GetKPI(view, explorer.ColumnFemaleLiteracy).String())
	assert.Equal(t, "1121.0", explorer.GetKPI(view, explorer.ColumnSexRatio).String())
	assert.Equal(t, "100.0", explorer.GetKPI(view, explorer.ColumnElectricity).String())
	assert.Equal(t, "97.8", explorer.GetKPI(view, explorer.ColumnImprovedWater).String())

	table := view.Table()
	require.Len(t, table.Rows, 1)
	assert.Equal(t, ds.Columns(), table.Columns)
	assert.Equal(t, "Kerala", table.Rows[0][0])
}

func TestAbsentTripleExample(t *testing.T) {
	t.Parallel()
	ds := testutil.SampleDataset(t)

	view := explorer.ComputeFilteredView(ds, "Kerala", "NFHS-5", "Rural")
	assert.True(t, view.Empty())
	for _, card := range explorer.KPICards() {
		assert.Equal(t, "NA", explorer.GetKPI(view, card.Column).String(), card.Label)
	}
	table := view.Table()
	assert.Empty(t, table.Rows)
	assert.Equal(t, ds.Columns(), table.Columns, "an empty table keeps its header")
}

func TestGetKPI_NullAndNonNumericCells(t *testing.T) {
	t.Parallel()
	ds := testutil.SampleDataset(t)

	view := explorer.ComputeFilteredView(ds, "Bihar", "NFHS-5", "Total")
	assert.Equal(t, "64.3", explorer.GetKPI(view, explorer.ColumnFemaleLiteracy).String())
	assert.Equal(t, "NA", explorer.GetKPI(view, explorer.ColumnSexRatio).String(), "NA token")
	assert.Equal(t, "NA", explorer.GetKPI(view, explorer.ColumnImprovedWater).String(), "unparsable text")
}

func TestGetKPI_RoundsHalfAwayFromZero(t *testing.T) {
	t.Parallel()
	ds := testutil.SampleDataset(t)

	view := explorer.ComputeFilteredView(ds, "Goa", "NFHS-5", "Total")
	assert.Equal(t, "89.6", explorer.GetKPI(view, explorer.ColumnFemaleLiteracy).String())
	assert.Equal(t, "1027.0", explorer.GetKPI(view, explorer.ColumnSexRatio).String())
	assert.Equal(t, "100.0", explorer.GetKPI(view, explorer.ColumnElectricity).String())
	assert.Equal(t, "99.4", explorer.GetKPI(view, explorer.ColumnImprovedWater).String())
}

func TestGetKPI_FirstMatchWinsOnDuplicates(t *testing.T) {
	t.Parallel()
	ds, err := survey.NewDataset(
		[]string{survey.ColumnState, survey.ColumnSurvey, survey.ColumnArea, explorer.ColumnSexRatio},
		[][]string{
			{"Goa", "NFHS-5", "Total", "1027"},
			{"Goa", "NFHS-5", "Total", "999"},
		},
	)
	require.NoError(t, err)

	view := explorer.ComputeFilteredView(ds, "Goa", "NFHS-5", "Total")
	assert.Equal(t, 2, view.Len())
	assert.Equal(t, "1027.0", explorer.GetKPI(view, explorer.ColumnSexRatio).String())
}

func TestComputeFilteredView_IsCaseSensitive(t *testing.T) {
	t.Parallel()
	ds := testutil.SampleDataset(t)
	assert.True(t, explorer.ComputeFilteredView(ds, "kerala", "NFHS-5", "Total").Empty())
	assert.True(t, explorer.ComputeFilteredView(ds, "Kerala", "NFHS-5", "total").Empty())
	assert.True(t, explorer.ComputeFilteredView(nil, "Kerala", "NFHS-5", "Total").Empty())
}

func TestComputeComparisonView(t *testing.T) {
	t.Parallel()
	ds := testutil.SampleDataset(t)

	elec := explorer.ComputeComparisonView(ds, "NFHS-5", "Total", explorer.ColumnElectricity)
	assert.Equal(t, []explorer.ComparisonPoint{
		{State: "Kerala", Value: 100},
		{State: "Bihar", Value: 96.3},
		{State: "Goa", Value: 99.95},
		{State: "India", Value: 96.8},
	}, elec.Points)

	sex := explorer.ComputeComparisonView(ds, "NFHS-5", "Total", explorer.ColumnSexRatio)
	assert.Equal(t, 3, sex.Len(), "Bihar's NA sex ratio is dropped")

	birth := explorer.ComputeComparisonView(ds, "NFHS-5", "Total", explorer.ColumnBirthRegistrations)
	var states []string
	for _, p := range birth.Points {
		states = append(states, p.State)
	}
	assert.Equal(t, []string{"Kerala", "Bihar", "India"}, states, "Goa's empty cell is dropped")

	unknown := explorer.ComputeComparisonView(ds, "NFHS-5", "Total", "Not a column")
	assert.NotNil(t, unknown.Points)
	assert.Zero(t, unknown.Len())

	none := explorer.ComputeComparisonView(ds, "NFHS-9", "Total", explorer.ColumnElectricity)
	assert.Zero(t, none.Len())
}

func TestComputeComparisonView_DropsNullStates(t *testing.T) {
	t.Parallel()
	ds, err := survey.NewDataset(
		[]string{survey.ColumnState, survey.ColumnSurvey, survey.ColumnArea, explorer.ColumnElectricity},
		[][]string{
			{"Kerala", "NFHS-5", "Total", "100"},
			{"", "NFHS-5", "Total", "1"},
			{"NA", "NFHS-5", "Total", "2"},
			{"Jammu & Kashmir", "NFHS-5", "Total", "98.1"},
		},
	)
	require.NoError(t, err)

	view := explorer.ComputeComparisonView(ds, "NFHS-5", "Total", explorer.ColumnElectricity)
	assert.Equal(t, []explorer.ComparisonPoint{
		{State: "Kerala", Value: 100},
		{State: "Jammu & Kashmir", Value: 98.1},
	}, view.Points)
}

func TestOutOfRangeNumbersAreUnavailable(t *testing.T) {
	t.Parallel()
	ds, err := survey.NewDataset(
		[]string{survey.ColumnState, survey.ColumnSurvey, survey.ColumnArea, explorer.ColumnSexRatio},
		[][]string{
			{"Goa", "NFHS-5", "Total", "1e400"},
			{"Kerala", "NFHS-5", "Total", "1121"},
		},
	)
	require.NoError(t, err)

	view := explorer.ComputeFilteredView(ds, "Goa", "NFHS-5", "Total")
	assert.Equal(t, "NA", explorer.GetKPI(view, explorer.ColumnSexRatio).String())

	cmp := explorer.ComputeComparisonView(ds, "NFHS-5", "Total", explorer.ColumnSexRatio)
	assert.Equal(t, []explorer.ComparisonPoint{{State: "Kerala", Value: 1121}}, cmp.Points)

	_, err = json.Marshal(cmp)
	assert.NoError(t, err)
}

// ─────────────────────────────────────────────────────────────────────────────
// KPIValue
// ─────────────────────────────────────────────────────────────────────────────

func TestKPIValue_Rounding(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"72.34":  "72.3",
		"72.35":  "72.4",
		"-0.25":  "-0.3",
		"0.05":   "0.1",
		"1121":   "1121.0",
		"99.949": "99.9",
		"-0.04":  "0.0",
	}
	for in, want := range cases {
		v := explorer.NewKPIValue(decimal.RequireFromString(in))
		assert.Equal(t, want, v.String(), in)
	}
}

func TestKPIValue_NA(t *testing.T) {
	t.Parallel()
	var zero explorer.KPIValue
	assert.False(t, zero.Available())
	assert.Equal(t, "NA", zero.String())

	_, ok := explorer.NA().Float64()
	assert.False(t, ok)

	f, ok := explorer.NewKPIValue(decimal.RequireFromString("96.24")).Float64()
	assert.True(t, ok)
	assert.InDelta(t, 96.2, f, 1e-9)
}

func TestKPIValue_JSON(t *testing.T) {
	t.Parallel()
	b, err := explorer.NewKPIValue(decimal.RequireFromString("1121")).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "1121.0", string(b))

	b, err = explorer.NA().MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	var v explorer.KPIValue
	require.NoError(t, v.UnmarshalJSON([]byte("97.8")))
	assert.Equal(t, "97.8", v.String())
	require.NoError(t, v.UnmarshalJSON([]byte(`"NA"`)))
	assert.False(t, v.Available())
	assert.Error(t, v.UnmarshalJSON([]byte(`"abc"`)))
}

//Personal.AI order the ending
