package export

import (
	"fmt"
	"html"
	"math"
	"os"
	"strings"

	"github.com/san-kum/bethesim/internal/sweep"
)

// SVG renders the same log-log plot as PNG as a hand-written polyline.
type SVG struct {
	Width  int
	Height int
	Axes   Axes
	Stroke string
}

func (r *SVG) Ext() string { return ".svg" }

func (r *SVG) Render(path string, curve sweep.Curve, caption, title string) error {
	return os.WriteFile(path, []byte(CurveToSVG(curve, r.Width, r.Height, r.Axes, r.Stroke, caption, title)), 0644)
}

// CurveToSVG maps the curve onto log10 axes bounded by axes. Samples outside
// the axes are clamped to the frame.
func CurveToSVG(curve sweep.Curve, width, height int, axes Axes, strokeColor, caption, title string) string {
	const margin = 60.0

	pts, _ := Positive(curve)

	lx0, lx1 := math.Log10(axes.XMin), math.Log10(axes.XMax)
	ly0, ly1 := math.Log10(axes.YMin), math.Log10(axes.YMax)
	w := float64(width) - 2*margin
	h := float64(height) - 2*margin

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<text x="%d" y="%.0f" text-anchor="middle" font-family="sans-serif" font-size="16">%s</text>
<rect x="%.0f" y="%.0f" width="%.0f" height="%.0f" fill="none" stroke="#000000"/>
`, width, height, width, height, width/2, margin/2, html.EscapeString(title), margin, margin, w, h))

	// decade ticks
	for d := math.Ceil(lx0); d <= lx1; d++ {
		x := margin + (d-lx0)/(lx1-lx0)*w
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.0f" text-anchor="middle" font-family="sans-serif" font-size="11">1e%.0f</text>
`, x, margin+h+16, d))
	}
	for d := math.Ceil(ly0); d <= ly1; d++ {
		y := margin + h - (d-ly0)/(ly1-ly0)*h
		sb.WriteString(fmt.Sprintf(`<text x="%.0f" y="%.1f" text-anchor="end" font-family="sans-serif" font-size="11">1e%.0f</text>
`, margin-4, y, d))
	}

	if len(pts) >= 2 {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))
		for i, p := range pts {
			x := margin + clamp((math.Log10(p.EnergyMeV)-lx0)/(lx1-lx0))*w
			y := margin + h - clamp((math.Log10(p.StoppingPower)-ly0)/(ly1-ly0))*h

			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString(fmt.Sprintf(`<text x="%.0f" y="%.0f" text-anchor="end" font-family="sans-serif" font-size="12" fill="%s">%s</text>
`, margin+w-8, margin+16, strokeColor, html.EscapeString(caption)))
	sb.WriteString("</svg>")
	return sb.String()
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
