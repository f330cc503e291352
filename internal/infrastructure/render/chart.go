// Package render draws the state-wise comparison as a bar chart.
package render

import (
	"bytes"
	"encoding/xml"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/turtacn/NFHS-Explorer/pkg/errors"
)

// Format selects the image encoding.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat accepts "svg" or "png", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSVG, FormatPNG:
		return f, nil
	}
	return "", errors.Newf(errors.ErrCodeBadRequest, "unsupported chart format %q", s)
}

// ContentType returns the MIME type of the encoded image.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// Bar is one labelled value.
type Bar struct {
	Label string
	Value float64
}

const (
	chartHeight = 480
	barWidth    = 18
	barSpacing  = 8
	minWidth    = 640
	sideMargin  = 160

	noDataLabel = "NA"
)

// BarChart renders bars in order. An empty slice yields a chart with a single
// zero-height "NA" bar.
func BarChart(title string, bars []Bar, format Format) ([]byte, error) {
	provider := chart.SVG
	if format == FormatPNG {
		provider = chart.PNG
	}

	values := make([]chart.Value, 0, len(bars))
	for _, b := range bars {
		values = append(values, chart.Value{Label: b.Label, Value: b.Value})
	}
	if len(values) == 0 {
		values = append(values, chart.Value{Label: noDataLabel, Value: 0})
	}

	width := len(values)*(barWidth+barSpacing) + sideMargin
	if width < minWidth {
		width = minWidth
	}

	lo, hi := valueRange(values)
	c := chart.BarChart{
		Title:      title,
		Width:      width,
		Height:     chartHeight,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		TitleStyle: chart.Style{FontSize: 12},
		XAxis:      chart.Style{FontSize: 7},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Bars: values,
	}

	var buf bytes.Buffer
	if err := c.Render(provider, &buf); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRenderFailed, "failed to render bar chart").WithDetail(title)
	}
	if format == FormatPNG {
		return buf.Bytes(), nil
	}
	return escapeSVGText(buf.Bytes()), nil
}

// escapeSVGText XML-escapes the character data of every <text> element.
// go-chart writes labels and titles verbatim, so a state such as
// "Jammu & Kashmir" would otherwise leave the document malformed.
func escapeSVGText(svg []byte) []byte {
	openTag, closeTag := []byte("<text"), []byte("</text>")

	var out bytes.Buffer
	out.Grow(len(svg))
	rest := svg
	for {
		start := bytes.Index(rest, openTag)
		if start < 0 {
			break
		}
		gt := bytes.IndexByte(rest[start:], '>')
		if gt < 0 {
			break
		}
		body := start + gt + 1
		end := bytes.Index(rest[body:], closeTag)
		if end < 0 {
			break
		}
		out.Write(rest[:body])
		_ = xml.EscapeText(&out, rest[body:body+end])
		out.Write(closeTag)
		rest = rest[body+end+len(closeTag):]
	}
	out.Write(rest)
	return out.Bytes()
}

// valueRange spans zero and every value, with a little headroom.
func valueRange(values []chart.Value) (float64, float64) {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		lo = math.Min(lo, v.Value)
		hi = math.Max(hi, v.Value)
	}
	if hi == lo {
		return lo, lo + 1
	}
	pad := (hi - lo) * 0.05
	if lo < 0 {
		lo -= pad
	}
	return lo, hi + pad
}

//Personal.AI order the ending
