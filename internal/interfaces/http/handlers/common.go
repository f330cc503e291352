// Package handlers implements the HTTP endpoints of the dashboard.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/turtacn/NFHS-Explorer/internal/application/explorer"
	"github.com/turtacn/NFHS-Explorer/internal/interfaces/http/middleware"
	"github.com/turtacn/NFHS-Explorer/pkg/errors"
)

// Query parameter names for the four selectors.
const (
	ParamState     = "state"
	ParamSurvey    = "survey"
	ParamArea      = "area"
	ParamIndicator = "indicator"
)

// selectionFromQuery reads the selectors from the query string. Missing
// values stay empty and are defaulted by the service.
func selectionFromQuery(r *http.Request) explorer.Selection {
	q := r.URL.Query()
	return explorer.Selection{
		State:     q.Get(ParamState),
		Survey:    q.Get(ParamSurvey),
		Area:      q.Get(ParamArea),
		Indicator: q.Get(ParamIndicator),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// writeAppError maps application errors to HTTP status codes. Server-side
// failures are masked.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	resp := ErrorResponse{
		Code:      string(errors.GetCode(err)),
		RequestID: middleware.ContextGetRequestID(r.Context()),
	}

	var ae *errors.AppError
	switch {
	case status >= http.StatusInternalServerError:
		resp.Code = string(errors.ErrCodeInternal)
		resp.Message = "internal server error"
	case errors.As(err, &ae):
		resp.Message = ae.Message
		resp.Detail = ae.Detail
	default:
		resp.Message = err.Error()
	}
	writeJSON(w, status, resp)
}

// attachmentName builds a download file name from the selection.
func attachmentName(sel explorer.Selection, ext string) string {
	parts := []string{"nfhs"}
	for _, p := range []string{sel.State, sel.Survey, sel.Area} {
		if s := slug(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "-") + "." + ext
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

//Personal.AI order the ending
