package render

import (
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/okian/cohortviz/internal/domain/model"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Font sizes in points.
const (
	titleSize    = 26.0
	minTitleSize = 10.0
	xTickSize    = 18.0
	yTickSize    = 16.0
	barLabelSize = 16.0
	legendSize   = 18.0
)

// Spacing in pixels.
const (
	outerPad       = 20
	titleLineGap   = 6
	titlePad       = 21
	tickGap        = 8
	legendGap      = 14
	legendSwatch   = 14
	legendLabelGap = 8
	legendItemGap  = 28
	gridWidth      = 2.0
	spineWidth     = 1.0

	barWidth = 0.35 // fraction of one cohort slot
	xMargin  = 0.05 // fraction of the bar span added on each side
	yMargin  = 0.05
)

// layout holds the pixel geometry of one figure.
type layout struct {
	width, height int
	plot          chart.Box

	titleTop        int
	titleSize       float64
	titleLineHeight int
	xTickBaseline   int
	legendMiddle    int

	xMin, xMax float64
	yMax       float64
}

func newLayout(p *painter, s model.Summary, width, height int) layout {
	l := layout{width: width, height: height, titleTop: outerPad}

	// Shrink the title until its longest line fits.
	l.titleSize = titleSize
	for l.titleSize > minTitleSize && p.widest(s.Title(), l.titleSize) > width-2*outerPad {
		l.titleSize--
	}
	l.titleLineHeight = p.measure("Ag", l.titleSize).Height()
	lines := strings.Count(s.Title(), "\n") + 1
	titleBlock := lines*l.titleLineHeight + (lines-1)*titleLineGap

	xTickH := p.measure("0", xTickSize).Height()
	legendH := max(p.measure("women", legendSize).Height(), legendSwatch)

	l.legendMiddle = height - outerPad - legendH/2
	l.xTickBaseline = l.legendMiddle - legendH/2 - legendGap
	l.plot = chart.Box{
		Top:    l.titleTop + titleBlock + titlePad,
		Left:   outerPad + p.measure("100%", yTickSize).Width() + tickGap,
		Right:  width - outerPad,
		Bottom: l.xTickBaseline - xTickH - tickGap,
	}

	n := float64(len(s.Cohorts))
	margin := xMargin * ((n - 1) + barWidth)
	l.xMin = 1 - barWidth/2 - margin
	l.xMax = n + barWidth/2 + margin

	top := 0.0
	for _, c := range s.Cohorts {
		top = max(top, float64(c.MenPercent+c.WomenPercent))
	}
	l.yMax = max(top, 100) * (1 + yMargin)
	return l
}

// x maps a cohort position (1-based) to a pixel column.
func (l layout) x(v float64) int {
	return l.plot.Left + int((v-l.xMin)/(l.xMax-l.xMin)*float64(l.plot.Width())+0.5)
}

// y maps a percentage to a pixel row.
func (l layout) y(v float64) int {
	return l.plot.Bottom - int(v/l.yMax*float64(l.plot.Height())+0.5)
}

// bar is the pixel box of a segment at pos spanning [bottom, bottom+height].
func (l layout) bar(pos, bottom, height float64) chart.Box {
	return chart.Box{
		Top:    l.y(bottom + height),
		Left:   l.x(pos - barWidth/2),
		Right:  l.x(pos + barWidth/2),
		Bottom: l.y(bottom),
	}
}

// painter wraps the renderer with the figure's font and text color.
type painter struct {
	r    chart.Renderer
	font *truetype.Font
	text drawing.Color
}

func (p *painter) style(size float64) chart.Style {
	return chart.Style{Font: p.font, FontSize: size, FontColor: p.text}
}

func (p *painter) measure(s string, size float64) chart.Box {
	return chart.Draw.MeasureText(p.r, s, p.style(size))
}

func (p *painter) widest(s string, size float64) int {
	w := 0
	for _, line := range strings.Split(s, "\n") {
		w = max(w, p.measure(line, size).Width())
	}
	return w
}

// textAt draws s horizontally centered on x with its baseline at y.
func (p *painter) textAt(s string, x, y int, size float64) {
	tb := p.measure(s, size)
	chart.Draw.Text(p.r, s, x-tb.Width()/2, y, p.style(size))
}

// textMiddle centers s on (x, y).
func (p *painter) textMiddle(s string, x, y int, size float64) {
	tb := p.measure(s, size)
	chart.Draw.Text(p.r, s, x-tb.Width()/2, y+tb.Height()/2, p.style(size))
}

// textRight right-aligns s at x, vertically centered on y.
func (p *painter) textRight(s string, x, y int, size float64) {
	tb := p.measure(s, size)
	chart.Draw.Text(p.r, s, x-tb.Width(), y+tb.Height()/2, p.style(size))
}

// textLeft left-aligns s at x, vertically centered on y.
func (p *painter) textLeft(s string, x, y int, size float64) {
	tb := p.measure(s, size)
	chart.Draw.Text(p.r, s, x, y+tb.Height()/2, p.style(size))
}

func (p *painter) line(x0, y0, x1, y1 int, c drawing.Color, width float64) {
	p.r.SetStrokeColor(c)
	p.r.SetStrokeWidth(width)
	p.r.MoveTo(x0, y0)
	p.r.LineTo(x1, y1)
	p.r.Stroke()
	p.r.ResetStyle()
}

// box fills b; zero-height boxes are skipped.
func (p *painter) box(b chart.Box, c drawing.Color) {
	if b.Height() <= 0 || b.Width() <= 0 {
		return
	}
	chart.Draw.Box(p.r, b, chart.Style{FillColor: c, StrokeColor: c})
}
