package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/turtacn/NFHS-Explorer/internal/application/explorer"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/export"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/render"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// DashboardHandler serves the JSON API, the chart image and table exports.
type DashboardHandler struct {
	svc    explorer.DashboardService
	logger logging.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc explorer.DashboardService, logger logging.Logger) *DashboardHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &DashboardHandler{svc: svc, logger: logger.Named("handlers")}
}

// OptionsResponse lists every selector value and the default selection.
type OptionsResponse struct {
	explorer.Options
	Default explorer.Selection `json:"default"`
}

// KPIsResponse is returned by GET /api/v1/kpis.
type KPIsResponse struct {
	Selection explorer.Selection   `json:"selection"`
	KPIs      []explorer.KPIResult `json:"kpis"`
}

// ComparisonResponse is returned by GET /api/v1/comparison.
type ComparisonResponse struct {
	Selection  explorer.Selection      `json:"selection"`
	Title      string                  `json:"title"`
	Comparison explorer.ComparisonView `json:"comparison"`
}

// RowsResponse is returned by GET /api/v1/rows.
type RowsResponse struct {
	Selection explorer.Selection `json:"selection"`
	Count     int                `json:"count"`
	Table     explorer.Table     `json:"table"`
}

// Options handles GET /api/v1/options.
func (h *DashboardHandler) Options(w http.ResponseWriter, r *http.Request) {
	opts := h.svc.Options()
	writeJSON(w, http.StatusOK, OptionsResponse{Options: opts, Default: opts.Default()})
}

// Dashboard handles GET /api/v1/dashboard.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// KPIs handles GET /api/v1/kpis.
func (h *DashboardHandler) KPIs(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, KPIsResponse{Selection: d.Selection, KPIs: d.KPIs})
}

// Comparison handles GET /api/v1/comparison.
func (h *DashboardHandler) Comparison(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ComparisonResponse{Selection: d.Selection, Title: d.ChartTitle, Comparison: d.Comparison})
}

// Rows handles GET /api/v1/rows.
func (h *DashboardHandler) Rows(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, RowsResponse{Selection: d.Selection, Count: len(d.Table.Rows), Table: d.Table})
}

// ChartSVG handles GET /api/v1/chart.svg.
func (h *DashboardHandler) ChartSVG(w http.ResponseWriter, r *http.Request) {
	h.chart(w, r, render.FormatSVG)
}

// ChartPNG handles GET /api/v1/chart.png.
func (h *DashboardHandler) ChartPNG(w http.ResponseWriter, r *http.Request) {
	h.chart(w, r, render.FormatPNG)
}

func (h *DashboardHandler) chart(w http.ResponseWriter, r *http.Request, format render.Format) {
	d, ok := h.dashboard(w, r)
	if !ok {
		return
	}
	img, err := render.BarChart(d.ChartTitle, comparisonBars(d.Comparison), format)
	if err != nil {
		h.logger.Error("chart rendering failed", logging.Err(err), logging.String("title", d.ChartTitle))
		writeAppError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write(img)
}

// ExportCSV handles GET /api/v1/export.csv.
func (h *DashboardHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, d.Table.Columns, d.Table.Rows); err != nil {
		writeAppError(w, r, err)
		return
	}
	h.attach(w, contentTypeCSV, attachmentName(d.Selection, "csv"), buf.Bytes())
}

// ExportXLSX handles GET /api/v1/export.xlsx.
func (h *DashboardHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, export.DefaultSheet, d.Table.Columns, d.Table.Rows); err != nil {
		h.logger.Error("xlsx export failed", logging.Err(err))
		writeAppError(w, r, err)
		return
	}
	h.attach(w, contentTypeXLSX, attachmentName(d.Selection, "xlsx"), buf.Bytes())
}

func (h *DashboardHandler) attach(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(body)
}

func (h *DashboardHandler) dashboard(w http.ResponseWriter, r *http.Request) (*explorer.Dashboard, bool) {
	d, err := h.svc.Dashboard(r.Context(), selectionFromQuery(r))
	if err != nil {
		writeAppError(w, r, err)
		return nil, false
	}
	return d, true
}

// comparisonBars converts a comparison view into chart bars.
func comparisonBars(v explorer.ComparisonView) []render.Bar {
	bars := make([]render.Bar, 0, len(v.Points))
	for _, p := range v.Points {
		bars = append(bars, render.Bar{Label: p.State, Value: p.Value})
	}
	return bars
}

//Personal.AI order the ending
