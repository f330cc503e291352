package explorer

import (
	"context"
	"fmt"

	"github.com/turtacn/NFHS-Explorer/internal/domain/survey"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/NFHS-Explorer/pkg/errors"
)

// ============================================================================
// DTOs
// ============================================================================

// KPIResult is one rendered KPI card.
type KPIResult struct {
	Label   string   `json:"label"`
	Column  string   `json:"column"`
	Value   KPIValue `json:"value"`
	Display string   `json:"display"`
}

// Dashboard bundles the four views derived from one selection.
type Dashboard struct {
	Selection  Selection      `json:"selection"`
	KPIs       []KPIResult    `json:"kpis"`
	ChartTitle string         `json:"chart_title"`
	Comparison ComparisonView `json:"comparison"`
	Table      Table          `json:"table"`
}

// ChartTitle formats the comparison chart title for sel.
func ChartTitle(sel Selection) string {
	return fmt.Sprintf("%s (%s – %s)", sel.Indicator, sel.Survey, sel.Area)
}

// ============================================================================
// Service Interface & Implementation
// ============================================================================

// DashboardService is what the HTTP and CLI surfaces consume.
type DashboardService interface {
	Options() Options
	Resolve(sel Selection) (Selection, error)
	Dashboard(ctx context.Context, sel Selection) (*Dashboard, error)
}

// Service computes dashboards directly from the dataset.
type Service struct {
	ds      *survey.Dataset
	options Options
	metrics *prometheus.AppMetrics
	logger  logging.Logger
}

// NewService builds a Service over ds.  Selector options are computed once.
// metrics and logger may be nil.
func NewService(ds *survey.Dataset, metrics *prometheus.AppMetrics, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{
		ds:      ds,
		options: BuildOptions(ds),
		metrics: metrics,
		logger:  logger.Named("explorer"),
	}
}

// Dataset returns the underlying dataset.
func (s *Service) Dataset() *survey.Dataset { return s.ds }

// Options returns the selector options.  The slices are shared and must not
// be modified.
func (s *Service) Options() Options { return s.options }

// Resolve fills defaults and validates the indicator.  See Options.Resolve.
func (s *Service) Resolve(sel Selection) (Selection, error) {
	return s.options.Resolve(sel)
}

// KPIs evaluates every KPI card against view.
func (s *Service) KPIs(view FilteredView) []KPIResult {
	out := make([]KPIResult, 0, len(kpiCards))
	for _, card := range kpiCards {
		v := GetKPI(view, card.Column)
		prometheus.RecordKPILookup(s.metrics, card.Label, v.Available())
		out = append(out, KPIResult{Label: card.Label, Column: card.Column, Value: v, Display: v.String()})
	}
	return out
}

// Dashboard resolves sel and derives all four views.
func (s *Service) Dashboard(ctx context.Context, sel Selection) (*Dashboard, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeServiceUnavailable, "dashboard request cancelled")
	}
	sel, err := s.Resolve(sel)
	if err != nil {
		return nil, err
	}

	view := ComputeFilteredView(s.ds, sel.State, sel.Survey, sel.Area)
	comparison := ComputeComparisonView(s.ds, sel.Survey, sel.Area, sel.Indicator)

	if ind, ok := LookupIndicator(sel.Indicator); ok {
		prometheus.RecordComparison(s.metrics, ind.Slug, comparison.Len())
	}
	if view.Len() > 1 {
		s.logger.Debug("selection matches more than one row; first row feeds the KPIs",
			logging.String("key", survey.Key{State: sel.State, Survey: sel.Survey, Area: sel.Area}.String()),
			logging.Int("rows", view.Len()))
	}

	return &Dashboard{
		Selection:  sel,
		KPIs:       s.KPIs(view),
		ChartTitle: ChartTitle(sel),
		Comparison: comparison,
		Table:      view.Table(),
	}, nil
}

var _ DashboardService = (*Service)(nil)

//Personal.AI order the ending
