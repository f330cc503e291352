package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/turtacn/NFHS-Explorer/pkg/errors"
)

// Selection identifies one slice of the survey table.  Empty fields are
// replaced by the server's defaults.
type Selection struct {
	State     string `json:"state"`
	Survey    string `json:"survey"`
	Area      string `json:"area"`
	Indicator string `json:"indicator"`
}

func (s Selection) query() url.Values {
	q := url.Values{}
	for k, v := range map[string]string{
		"state":     s.State,
		"survey":    s.Survey,
		"area":      s.Area,
		"indicator": s.Indicator,
	} {
		if v != "" {
			q.Set(k, v)
		}
	}
	return q
}

// Indicator is one comparison indicator.
type Indicator struct {
	Slug   string `json:"slug"`
	Column string `json:"column"`
}

// KPICard binds a label to the column it reads.
type KPICard struct {
	Label  string `json:"label"`
	Column string `json:"column"`
}

// Options lists the selector values offered by the server.
type Options struct {
	States     []string    `json:"states"`
	Surveys    []string    `json:"surveys"`
	Areas      []string    `json:"areas"`
	Indicators []Indicator `json:"indicators"`
	KPIs       []KPICard   `json:"kpis"`
	Default    Selection   `json:"default"`
}

// KPI is one headline value.  Value is nil when the indicator is NA.
type KPI struct {
	Label   string   `json:"label"`
	Column  string   `json:"column"`
	Value   *float64 `json:"value"`
	Display string   `json:"display"`
}

// Available reports whether the KPI has a value.
func (k KPI) Available() bool { return k.Value != nil }

// ComparisonPoint is one state's value for the compared indicator.
type ComparisonPoint struct {
	State string  `json:"state"`
	Value float64 `json:"value"`
}

// Comparison is the state-wise view of one indicator.
type Comparison struct {
	Survey    string            `json:"survey"`
	Area      string            `json:"area"`
	Indicator string            `json:"indicator"`
	Points    []ComparisonPoint `json:"points"`
}

// Table holds the filtered rows as strings.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Dashboard bundles every view of one selection.
type Dashboard struct {
	Selection  Selection  `json:"selection"`
	KPIs       []KPI      `json:"kpis"`
	ChartTitle string     `json:"chart_title"`
	Comparison Comparison `json:"comparison"`
	Table      Table      `json:"table"`
}

// KPIsResult is returned by KPIs.
type KPIsResult struct {
	Selection Selection `json:"selection"`
	KPIs      []KPI     `json:"kpis"`
}

// ComparisonResult is returned by Compare.
type ComparisonResult struct {
	Selection  Selection  `json:"selection"`
	Title      string     `json:"title"`
	Comparison Comparison `json:"comparison"`
}

// RowsResult is returned by Rows.
type RowsResult struct {
	Selection Selection `json:"selection"`
	Count     int       `json:"count"`
	Table     Table     `json:"table"`
}

// Options fetches the selector values.
func (c *Client) Options(ctx context.Context) (*Options, error) {
	var out Options
	if err := c.getJSON(ctx, "/api/v1/options", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dashboard fetches every view of sel in one call.
func (c *Client) Dashboard(ctx context.Context, sel Selection) (*Dashboard, error) {
	var out Dashboard
	if err := c.getJSON(ctx, "/api/v1/dashboard", sel.query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// KPIs fetches the headline KPIs of sel.
func (c *Client) KPIs(ctx context.Context, sel Selection) (*KPIsResult, error) {
	var out KPIsResult
	if err := c.getJSON(ctx, "/api/v1/kpis", sel.query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Compare fetches the state-wise comparison of sel.Indicator.
func (c *Client) Compare(ctx context.Context, sel Selection) (*ComparisonResult, error) {
	var out ComparisonResult
	if err := c.getJSON(ctx, "/api/v1/comparison", sel.query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Rows fetches the rows matching sel.
func (c *Client) Rows(ctx context.Context, sel Selection) (*RowsResult, error) {
	var out RowsResult
	if err := c.getJSON(ctx, "/api/v1/rows", sel.query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Export downloads the rows matching sel as "csv" or "xlsx".
func (c *Client) Export(ctx context.Context, sel Selection, format string) ([]byte, error) {
	return c.get(ctx, "/api/v1/export."+format, sel.query())
}

// Chart downloads the comparison bar chart as "svg" or "png".
func (c *Client) Chart(ctx context.Context, sel Selection, format string) ([]byte, error) {
	return c.get(ctx, "/api/v1/chart."+format, sel.query())
}

// Ready reports whether the server passes its readiness checks.
func (c *Client) Ready(ctx context.Context) (bool, error) {
	_, err := c.get(ctx, "/readyz", nil)
	if err == nil {
		return true, nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusServiceUnavailable {
		return false, nil
	}
	return false, err
}

//Personal.AI order the ending
