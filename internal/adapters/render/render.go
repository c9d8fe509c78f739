// Package render draws the per-cohort gender summary as a stacked bar chart.
package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/okian/cohortviz/internal/domain/model"
	"github.com/okian/cohortviz/internal/domain/types"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is the output image encoding.
type Format string

// Supported formats.
const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPNG, FormatSVG:
		return f, nil
	case "":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Defaults reproduce the reference figure.
const (
	DefaultMenColor   = "#1A85FF"
	DefaultWomenColor = "#D41159"
	DefaultGridColor  = "#d9d9d8"
	DefaultTextColor  = "#404040"

	DefaultDPI       = 100
	DefaultSlotWidth = 160 // 1.6in per cohort
	DefaultHeight    = 600 // 6in
	minWidth         = 640
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidColor reports whether s is a #rgb or #rrggbb color.
func ValidColor(s string) bool { return hexColor.MatchString(s) }

// Chart renders summaries to images.
type Chart struct {
	menHex, womenHex string
	gridHex, textHex string
	format           Format
	dpi              float64
	slotWidth        int
	height           int

	men, women, grid, text drawing.Color
}

// New creates a chart renderer. Colors are validated here so a bad palette fails
// before any data is loaded.
func New(opts ...Option) (*Chart, error) {
	c := &Chart{
		menHex:    DefaultMenColor,
		womenHex:  DefaultWomenColor,
		gridHex:   DefaultGridColor,
		textHex:   DefaultTextColor,
		format:    FormatPNG,
		dpi:       DefaultDPI,
		slotWidth: DefaultSlotWidth,
		height:    DefaultHeight,
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, h := range []string{c.menHex, c.womenHex, c.gridHex, c.textHex} {
		if !ValidColor(h) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColor, h)
		}
	}
	f, err := ParseFormat(string(c.format))
	if err != nil {
		return nil, err
	}
	c.format = f

	c.men = drawing.ColorFromHex(c.menHex)
	c.women = drawing.ColorFromHex(c.womenHex)
	c.grid = drawing.ColorFromHex(c.gridHex)
	c.text = drawing.ColorFromHex(c.textHex)
	return c, nil
}

// Format returns the output encoding.
func (c *Chart) Format() Format { return c.format }

// FileName is the output file name for a level, e.g. fig_24_person.png.
func (c *Chart) FileName(level types.Level) string {
	return "fig_24_" + level.String() + "." + string(c.format)
}

// Size returns the figure dimensions in pixels for n cohorts.
func (c *Chart) Size(n int) (int, int) {
	return max(n*c.slotWidth, minWidth), c.height
}

// Write renders s into dir and returns the written path and byte count. The image is
// fully encoded in memory first; dir must already exist.
func (c *Chart) Write(ctx context.Context, s model.Summary, dir string) (string, int, error) {
	if len(s.Cohorts) == 0 {
		return "", 0, ErrEmptySummary
	}
	fi, err := os.Stat(dir)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrOutputDir, err)
	}
	if !fi.IsDir() {
		return "", 0, fmt.Errorf("%w: %s is not a directory", ErrOutputDir, dir)
	}

	var buf bytes.Buffer
	if err := c.Render(ctx, s, &buf); err != nil {
		return "", 0, err
	}

	path := filepath.Join(dir, c.FileName(s.Level))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrWriteImage, err)
	}
	return path, buf.Len(), nil
}

// Render draws s and encodes it to w.
func (c *Chart) Render(ctx context.Context, s model.Summary, w io.Writer) error {
	if len(s.Cohorts) == 0 {
		return ErrEmptySummary
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}

	width, height := c.Size(len(s.Cohorts))
	var r chart.Renderer
	switch c.format {
	case FormatSVG:
		r, err = chart.SVG(width, height)
	default:
		r, err = chart.PNG(width, height)
	}
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	r.SetDPI(c.dpi)

	p := &painter{r: r, font: font, text: c.text}
	l := newLayout(p, s, width, height)

	chart.Draw.Box(r, chart.Box{Top: 0, Left: 0, Right: width, Bottom: height},
		chart.Style{FillColor: chart.ColorWhite, StrokeColor: chart.ColorWhite})

	c.drawTitle(p, l, s)
	c.drawGrid(p, l)
	c.drawBars(p, l, s)
	c.drawXTicks(p, l, s)
	c.drawLegend(p, l)

	if err := r.Save(w); err != nil {
		return fmt.Errorf("encode %s: %w", c.format, err)
	}
	return nil
}

func (c *Chart) drawTitle(p *painter, l layout, s model.Summary) {
	y := l.titleTop
	for _, line := range strings.Split(s.Title(), "\n") {
		y += l.titleLineHeight
		p.textAt(line, l.width/2, y, l.titleSize)
		y += titleLineGap
	}
}

func (c *Chart) drawGrid(p *painter, l layout) {
	for v := 0; v <= 100; v += 20 {
		if float64(v) > l.yMax {
			break
		}
		y := l.y(float64(v))
		p.line(l.plot.Left, y, l.plot.Right, y, c.grid, gridWidth)
		p.textRight(fmt.Sprintf("%d%%", v), l.plot.Left-tickGap, y, yTickSize)
	}
	p.line(l.plot.Left, l.y(0), l.plot.Right, l.y(0), c.grid, spineWidth)
}

// drawBars stacks women on top of men. Both labels carry raw counts and sit at the
// middle of their segment, so empty cohorts show two zeros on the baseline.
func (c *Chart) drawBars(p *painter, l layout, s model.Summary) {
	for i, cc := range s.Cohorts {
		pos := float64(i + 1)
		men, women := float64(cc.MenPercent), float64(cc.WomenPercent)

		p.box(l.bar(pos, 0, men), c.men)
		p.box(l.bar(pos, men, women), c.women)

		cx := l.x(pos)
		p.textMiddle(fmt.Sprint(cc.Men), cx, l.y(men/2), barLabelSize)
		p.textMiddle(fmt.Sprint(cc.Women), cx, l.y(men+women/2), barLabelSize)
	}
}

func (c *Chart) drawXTicks(p *painter, l layout, s model.Summary) {
	for i, cc := range s.Cohorts {
		p.textAt(fmt.Sprint(cc.Cohort), l.x(float64(i+1)), l.xTickBaseline, xTickSize)
	}
}

func (c *Chart) drawLegend(p *painter, l layout) {
	items := []struct {
		label string
		color drawing.Color
	}{{"men", c.men}, {"women", c.women}}

	total := 0
	widths := make([]int, len(items))
	for i, it := range items {
		widths[i] = legendSwatch + legendLabelGap + p.measure(it.label, legendSize).Width()
		total += widths[i]
	}
	total += legendItemGap * (len(items) - 1)

	x := (l.width - total) / 2
	for i, it := range items {
		top := l.legendMiddle - legendSwatch/2
		p.box(chart.Box{Top: top, Left: x, Right: x + legendSwatch, Bottom: top + legendSwatch}, it.color)
		p.textLeft(it.label, x+legendSwatch+legendLabelGap, l.legendMiddle, legendSize)
		x += widths[i] + legendItemGap
	}
}
