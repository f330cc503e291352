package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/turtacn/NFHS-Explorer/internal/application/explorer"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/render"
	"github.com/turtacn/NFHS-Explorer/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Shared flag helpers
// ─────────────────────────────────────────────────────────────────────────────

func addSelectionFlags(cmd *cobra.Command, sel *explorer.Selection) {
	cmd.Flags().StringVar(&sel.State, "state", "", "state or UT (default: first in the dataset)")
	cmd.Flags().StringVar(&sel.Survey, "survey", "", "survey round, e.g. NFHS-5 (default: first in the dataset)")
	cmd.Flags().StringVar(&sel.Area, "area", "", "area: Total, Urban or Rural (default: first in the dataset)")
}

func addIndicatorFlag(cmd *cobra.Command, sel *explorer.Selection) {
	cmd.Flags().StringVar(&sel.Indicator, "indicator", "", "comparison indicator slug or column name (default: female-literacy)")
}

// runDashboard resolves sel against the dataset and derives every view.
func runDashboard(cmd *cobra.Command, sel explorer.Selection) (*CLIContext, *explorer.Dashboard, error) {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return nil, nil, err
	}
	svc, err := cliCtx.Explorer(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	d, err := svc.Dashboard(cmd.Context(), sel)
	if err != nil {
		return nil, nil, err
	}
	return cliCtx, d, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// options
// ─────────────────────────────────────────────────────────────────────────────

// NewOptionsCmd lists the values accepted by the selection flags.
func NewOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List states, survey rounds, areas and indicators in the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			svc, err := cliCtx.Explorer(cmd.Context())
			if err != nil {
				return err
			}
			return PrintResult(cmd, optionsReport{svc.Options()})
		},
	}
}

type optionsReport struct {
	explorer.Options
}

func (o optionsReport) indicatorSlugs() []string {
	slugs := make([]string, 0, len(o.Indicators))
	for _, ind := range o.Indicators {
		slugs = append(slugs, ind.Slug)
	}
	return slugs
}

func (o optionsReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", color.New(color.Bold).Sprint("States:"), strings.Join(o.States, ", "))
	fmt.Fprintf(&b, "%s %s\n", color.New(color.Bold).Sprint("Surveys:"), strings.Join(o.Surveys, ", "))
	fmt.Fprintf(&b, "%s %s\n", color.New(color.Bold).Sprint("Areas:"), strings.Join(o.Areas, ", "))
	fmt.Fprintf(&b, "%s %s", color.New(color.Bold).Sprint("Indicators:"), strings.Join(o.indicatorSlugs(), ", "))
	return b.String()
}

func (o optionsReport) TableHeaders() []string { return []string{"Field", "Count", "Values"} }

func (o optionsReport) TableRows() [][]string {
	row := func(name string, vals []string) []string {
		return []string{name, strconv.Itoa(len(vals)), truncateString(strings.Join(vals, ", "), 80)}
	}
	return [][]string{
		row("states", o.States),
		row("surveys", o.Surveys),
		row("areas", o.Areas),
		row("indicators", o.indicatorSlugs()),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// kpi
// ─────────────────────────────────────────────────────────────────────────────

// NewKPICmd prints the four headline KPIs for one selection.
func NewKPICmd() *cobra.Command {
	var sel explorer.Selection
	cmd := &cobra.Command{
		Use:   "kpi",
		Short: "Show the headline KPIs for a state, survey round and area",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, d, err := runDashboard(cmd, sel)
			if err != nil {
				return err
			}
			return PrintResult(cmd, kpiReport{Selection: d.Selection, KPIs: d.KPIs})
		},
	}
	addSelectionFlags(cmd, &sel)
	return cmd
}

type kpiReport struct {
	Selection explorer.Selection  `json:"selection"`
	KPIs      []explorer.KPIResult `json:"kpis"`
}

func (k kpiReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s / %s / %s\n", k.Selection.State, k.Selection.Survey, k.Selection.Area)
	for i, kpi := range k.KPIs {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "  %-20s %s", kpi.Label, colorizeKPI(kpi.Display))
	}
	return b.String()
}

func (k kpiReport) TableHeaders() []string { return []string{"KPI", "Value"} }

func (k kpiReport) TableRows() [][]string {
	rows := make([][]string, 0, len(k.KPIs))
	for _, kpi := range k.KPIs {
		rows = append(rows, []string{kpi.Label, kpi.Display})
	}
	return rows
}

// ─────────────────────────────────────────────────────────────────────────────
// compare
// ─────────────────────────────────────────────────────────────────────────────

// NewCompareCmd prints the state-wise comparison for one indicator and can
// render it as a bar chart.
func NewCompareCmd() *cobra.Command {
	var (
		sel       explorer.Selection
		chartPath string
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare one indicator across states for a survey round and area",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, d, err := runDashboard(cmd, sel)
			if err != nil {
				return err
			}
			if chartPath != "" {
				if err := writeChart(chartPath, d); err != nil {
					return err
				}
				cliCtx.Logger.Info("Chart written", logging.String("path", chartPath))
			}
			return PrintResult(cmd, comparisonReport{Title: d.ChartTitle, Comparison: d.Comparison})
		},
	}
	addSelectionFlags(cmd, &sel)
	addIndicatorFlag(cmd, &sel)
	cmd.Flags().StringVar(&chartPath, "chart", "", "write a bar chart to this file (.svg or .png)")
	return cmd
}

func writeChart(path string, d *explorer.Dashboard) error {
	format, err := render.ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return err
	}
	bars := make([]render.Bar, 0, d.Comparison.Len())
	for _, p := range d.Comparison.Points {
		bars = append(bars, render.Bar{Label: p.State, Value: p.Value})
	}
	img, err := render.BarChart(d.ChartTitle, bars, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, img, 0o644); err != nil {
		return errors.Wrap(err, errors.ErrCodeRenderFailed, "failed to write chart")
	}
	return nil
}

type comparisonReport struct {
	Title      string                  `json:"title"`
	Comparison explorer.ComparisonView `json:"comparison"`
}

func (c comparisonReport) String() string {
	var b strings.Builder
	b.WriteString(color.New(color.Bold).Sprint(c.Title))
	if c.Comparison.Len() == 0 {
		b.WriteString("\n  no states report this indicator")
		return b.String()
	}
	for _, p := range c.Comparison.Points {
		fmt.Fprintf(&b, "\n  %-40s %s", p.State, formatValue(p.Value))
	}
	return b.String()
}

func (c comparisonReport) TableHeaders() []string { return []string{"State", "Value"} }

func (c comparisonReport) TableRows() [][]string {
	rows := make([][]string, 0, c.Comparison.Len())
	for _, p := range c.Comparison.Points {
		rows = append(rows, []string{p.State, formatValue(p.Value)})
	}
	return rows
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ─────────────────────────────────────────────────────────────────────────────
// rows
// ─────────────────────────────────────────────────────────────────────────────

// NewRowsCmd prints the filtered rows for one selection.
func NewRowsCmd() *cobra.Command {
	var (
		sel     explorer.Selection
		columns []string
	)
	cmd := &cobra.Command{
		Use:   "rows",
		Short: "Print the dataset rows matching a state, survey round and area",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, d, err := runDashboard(cmd, sel)
			if err != nil {
				return err
			}
			table, err := projectColumns(d.Table, columns)
			if err != nil {
				return err
			}
			return PrintResult(cmd, rowsReport{Selection: d.Selection, Count: len(table.Rows), Table: table})
		},
	}
	addSelectionFlags(cmd, &sel)
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "restrict output to these columns (comma-separated)")
	return cmd
}

// projectColumns keeps only the named columns, in the order given.
func projectColumns(t explorer.Table, names []string) (explorer.Table, error) {
	if len(names) == 0 {
		return t, nil
	}
	index := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		index[c] = i
	}
	idx := make([]int, 0, len(names))
	for _, n := range names {
		i, ok := index[strings.TrimSpace(n)]
		if !ok {
			return explorer.Table{}, errors.InvalidParam("unknown column").WithDetail(n)
		}
		idx = append(idx, i)
	}

	out := explorer.Table{Columns: make([]string, 0, len(idx)), Rows: make([][]string, 0, len(t.Rows))}
	for _, i := range idx {
		out.Columns = append(out.Columns, t.Columns[i])
	}
	for _, r := range t.Rows {
		row := make([]string, 0, len(idx))
		for _, i := range idx {
			row = append(row, r[i])
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

type rowsReport struct {
	Selection explorer.Selection `json:"selection"`
	Count     int                `json:"count"`
	Table     explorer.Table     `json:"table"`
}

func (r rowsReport) String() string {
	if r.Count == 0 {
		return "No rows match this selection."
	}
	var b strings.Builder
	for i, row := range r.Table.Rows {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\n", color.New(color.Bold).Sprintf("Row %d", i+1))
		for j, col := range r.Table.Columns {
			fmt.Fprintf(&b, "  %s: %s\n", col, row[j])
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r rowsReport) TableHeaders() []string {
	headers := make([]string, 0, len(r.Table.Columns))
	for _, c := range r.Table.Columns {
		headers = append(headers, truncateString(c, 30))
	}
	return headers
}

func (r rowsReport) TableRows() [][]string { return r.Table.Rows }

//Personal.AI order the ending
