package explorer_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/NFHS-Explorer/internal/application/explorer"
	"github.com/turtacn/NFHS-Explorer/internal/domain/survey"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/NFHS-Explorer/internal/testutil"
	"github.com/turtacn/NFHS-Explorer/pkg/errors"
)

func newService(t *testing.T) *explorer.Service {
	t.Helper()
	return explorer.NewService(testutil.SampleDataset(t), prometheus.NewNopAppMetrics(), testutil.NewMockLogger())
}

func TestBuildOptions(t *testing.T) {
	t.Parallel()
	o := newService(t).Options()

	assert.Equal(t, []string{"Assam", "Bihar", "Goa", "India", "Jammu & Kashmir", "Kerala"}, o.States)
	assert.Equal(t, []string{"NFHS-4", "NFHS-5"}, o.Surveys)
	assert.Equal(t, []string{"Total", "Urban"}, o.Areas)
	require.Len(t, o.Indicators, 4)
	assert.Equal(t, explorer.ColumnFemaleLiteracy, o.Indicators[0].Column)
	assert.Equal(t, explorer.ColumnBirthRegistrations, o.Indicators[3].Column)
	require.Len(t, o.KPIs, 4)
	assert.Equal(t, "Improved Water (%)", o.KPIs[3].Label)

	assert.Equal(t, explorer.Selection{
		State:     "Assam",
		Survey:    "NFHS-4",
		Area:      "Total",
		Indicator: explorer.ColumnFemaleLiteracy,
	}, o.Default())
}

func TestBuildOptions_NilDataset(t *testing.T) {
	t.Parallel()
	o := explorer.BuildOptions(nil)
	assert.Empty(t, o.States)
	assert.Equal(t, explorer.Selection{Indicator: explorer.ColumnFemaleLiteracy}, o.Default())
}

func TestResolve(t *testing.T) {
	t.Parallel()
	svc := newService(t)

	sel, err := svc.Resolve(explorer.Selection{State: "Kerala", Indicator: "sex-ratio"})
	require.NoError(t, err)
	assert.Equal(t, "Kerala", sel.State)
	assert.Equal(t, "NFHS-4", sel.Survey)
	assert.Equal(t, "Total", sel.Area)
	assert.Equal(t, explorer.ColumnSexRatio, sel.Indicator)

	sel, err = svc.Resolve(explorer.Selection{Indicator: explorer.ColumnElectricity})
	require.NoError(t, err)
	assert.Equal(t, explorer.ColumnElectricity, sel.Indicator)

	sel, err = svc.Resolve(explorer.Selection{State: "Atlantis"})
	require.NoError(t, err, "unknown states are not an error")
	assert.Equal(t, "Atlantis", sel.State)

	_, err = svc.Resolve(explorer.Selection{Indicator: explorer.ColumnImprovedWater})
	require.Error(t, err, "KPI-only columns are not comparison indicators")
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownIndicator))
}

func TestLookupIndicator(t *testing.T) {
	t.Parallel()
	ind, ok := explorer.LookupIndicator(" Electricity ")
	require.True(t, ok)
	assert.Equal(t, explorer.ColumnElectricity, ind.Column)

	_, ok = explorer.LookupIndicator("water")
	assert.False(t, ok)
}

func TestRequiredColumns(t *testing.T) {
	t.Parallel()
	cols := explorer.RequiredColumns()
	assert.Len(t, cols, 8)
	assert.Equal(t, "India/States/UTs", cols[0])
	assert.Contains(t, cols, explorer.ColumnBirthRegistrations)
	assert.Contains(t, cols, explorer.ColumnImprovedWater)
}

func TestService_Dashboard(t *testing.T) {
	t.Parallel()
	svc := newService(t)

	d, err := svc.Dashboard(context.Background(), explorer.Selection{
		State: "Kerala", Survey: "NFHS-5", Area: "Total", Indicator: "electricity",
	})
	require.NoError(t, err)

	require.Len(t, d.KPIs, 4)
	var displays []string
	for _, k := range d.KPIs {
		displays = append(displays, k.Display)
	}
	assert.Equal(t, []string{"96.2", "1121.0", "100.0", "97.8"}, displays)
	assert.Equal(t, "Female Literacy (%)", d.KPIs[0].Label)

	assert.Equal(t, explorer.ColumnElectricity+" (NFHS-5 – Total)", d.ChartTitle)
	assert.Equal(t, 4, d.Comparison.Len())
	assert.Len(t, d.Table.Rows, 1)
}

func TestService_Dashboard_Errors(t *testing.T) {
	t.Parallel()
	svc := newService(t)

	_, err := svc.Dashboard(context.Background(), explorer.Selection{Indicator: "bogus"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownIndicator))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Dashboard(ctx, explorer.Selection{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_Dashboard_LogsDuplicateMatches(t *testing.T) {
	t.Parallel()
	const msg = "selection matches more than one row; first row feeds the KPIs"
	ds, err := survey.NewDataset(
		[]string{survey.ColumnState, survey.ColumnSurvey, survey.ColumnArea, explorer.ColumnSexRatio},
		[][]string{
			{"Goa", "NFHS-5", "Total", "1027"},
			{"Goa", "NFHS-5", "Total", "999"},
			{"Kerala", "NFHS-5", "Total", "1121"},
		},
	)
	require.NoError(t, err)
	logger := testutil.NewMockLogger()
	svc := explorer.NewService(ds, nil, logger)

	d, err := svc.Dashboard(context.Background(), explorer.Selection{State: "Goa", Survey: "NFHS-5", Area: "Total"})
	require.NoError(t, err)
	assert.Equal(t, "1027.0", d.KPIs[1].Display)
	assert.Len(t, d.Table.Rows, 2)
	entry, ok := logger.Find("debug", msg)
	require.True(t, ok)
	assert.Equal(t, "explorer", entry.Logger)

	logger.Clear()
	_, err = svc.Dashboard(context.Background(), explorer.Selection{State: "Kerala", Survey: "NFHS-5", Area: "Total"})
	require.NoError(t, err)
	assert.False(t, logger.HasMessage("debug", msg))
}

func TestCachedService_HitsAfterFirstCall(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	cached := explorer.NewCachedService(svc, explorer.CacheOptions{TTL: time.Minute}, nil, nil)

	sel := explorer.Selection{State: "Goa", Survey: "NFHS-5", Area: "Total"}
	a, err := cached.Dashboard(context.Background(), sel)
	require.NoError(t, err)
	assert.Equal(t, 1, cached.Len())

	b, err := cached.Dashboard(context.Background(), sel)
	require.NoError(t, err)
	assert.Same(t, a, b)

	// The unresolved and resolved forms share one entry.
	c, err := cached.Dashboard(context.Background(), explorer.Selection{
		State: "Goa", Survey: "NFHS-5", Area: "Total", Indicator: "female-literacy",
	})
	require.NoError(t, err)
	assert.Same(t, a, c)

	cached.Flush()
	assert.Zero(t, cached.Len())
}

func TestCachedService_ConcurrentCallers(t *testing.T) {
	t.Parallel()
	cached := explorer.NewCachedService(newService(t), explorer.CacheOptions{}, nil, nil)

	sel := explorer.Selection{State: "Kerala", Survey: "NFHS-4", Area: "Total", Indicator: "electricity"}
	var wg sync.WaitGroup
	results := make([]*explorer.Dashboard, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := cached.Dashboard(context.Background(), sel)
			assert.NoError(t, err)
			results[i] = d
		}(i)
	}
	wg.Wait()

	for _, d := range results {
		require.NotNil(t, d)
		assert.Equal(t, results[0].KPIs, d.KPIs)
	}
	assert.Equal(t, 1, cached.Len())
}

func TestCachedService_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()
	cached := explorer.NewCachedService(newService(t), explorer.CacheOptions{TTL: time.Minute}, nil, nil)

	_, err := cached.Dashboard(context.Background(), explorer.Selection{Indicator: "bogus"})
	assert.Error(t, err)
	assert.Zero(t, cached.Len())
	assert.Equal(t, newService(t).Options().States, cached.Options().States)
}

//Personal.AI order the ending
