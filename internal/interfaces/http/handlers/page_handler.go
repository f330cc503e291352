package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/turtacn/NFHS-Explorer/internal/application/explorer"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NFHS-Explorer/pkg/errors"
)

// Page copy.
const (
	PageTitle   = "National Family Health Survey (NFHS) Dashboard"
	PageCaption = "Source: Ministry of Health & Family Welfare, Government of India"
	PageFooter  = "Designed for policy analysis, UPSC preparation & public health review"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

type pageData struct {
	Title     string
	Caption   string
	Footer    string
	Options   explorer.Options
	Selection explorer.Selection
	Dashboard *explorer.Dashboard
	Error     string
	ChartURL  string
	CSVURL    string
	XLSXURL   string
}

// PageHandler renders the HTML dashboard.
type PageHandler struct {
	svc    explorer.DashboardService
	logger logging.Logger
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(svc explorer.DashboardService, logger logging.Logger) *PageHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &PageHandler{svc: svc, logger: logger.Named("handlers")}
}

// Index handles GET /.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Title:     PageTitle,
		Caption:   PageCaption,
		Footer:    PageFooter,
		Options:   h.svc.Options(),
		Selection: selectionFromQuery(r),
	}
	status := http.StatusOK

	d, err := h.svc.Dashboard(r.Context(), data.Selection)
	if err != nil {
		status = errors.HTTPStatus(err)
		data.Error = "Unable to build the dashboard for this selection."
		var ae *errors.AppError
		if status < http.StatusInternalServerError && errors.As(err, &ae) {
			data.Error = ae.Message
			if ae.Detail != "" {
				data.Error += ": " + ae.Detail
			}
		}
	} else {
		data.Dashboard = d
		data.Selection = d.Selection
		q := selectionQuery(d.Selection)
		data.ChartURL = "/api/v1/chart.svg?" + q
		data.CSVURL = "/api/v1/export.csv?" + q
		data.XLSXURL = "/api/v1/export.xlsx?" + q
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error("page rendering failed", logging.Err(err))
		writeAppError(w, r, errors.Wrap(err, errors.ErrCodeRenderFailed, "page rendering failed"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func selectionQuery(sel explorer.Selection) string {
	v := url.Values{}
	v.Set(ParamState, sel.State)
	v.Set(ParamSurvey, sel.Survey)
	v.Set(ParamArea, sel.Area)
	v.Set(ParamIndicator, sel.Indicator)
	return v.Encode()
}

//Personal.AI order the ending
