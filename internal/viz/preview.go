package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/bethesim/internal/physics"
	"github.com/san-kum/bethesim/internal/sweep"
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Blue,
	asciigraph.Green,
	asciigraph.Yellow,
	asciigraph.Red,
}

// logValues returns log10 of each stopping power, carrying the previous
// value over samples a log axis cannot show.
func logValues(curve sweep.Curve) []float64 {
	out := make([]float64, 0, len(curve))
	last := math.NaN()
	for _, p := range curve {
		v := p.StoppingPower
		if v > 0 && !math.IsInf(v, 0) {
			last = math.Log10(v)
		}
		if math.IsNaN(last) {
			continue
		}
		out = append(out, last)
	}
	return out
}

// Preview plots log10(dE/dx) of one curve against sample index.
func Preview(curve sweep.Curve, caption string, width, height int) string {
	data := logValues(curve)
	if len(data) == 0 {
		return Subtle.Render("no plottable samples")
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(asciigraph.Blue),
		asciigraph.Caption(caption+axisNote(curve)),
	)
}

// PreviewMany overlays several curves sharing one energy grid.
func PreviewMany(results []sweep.Result, width, height int) string {
	var (
		data    [][]float64
		colors  []asciigraph.AnsiColor
		legends []string
	)
	for i, r := range results {
		vals := logValues(r.Curve)
		if len(vals) == 0 {
			continue
		}
		c := seriesColors[i%len(seriesColors)]
		data = append(data, vals)
		colors = append(colors, c)
		legends = append(legends, c.String()+"━━"+asciigraph.Default.String()+" "+r.Variant.String())
	}
	if len(data) == 0 {
		return Subtle.Render("no plottable samples")
	}

	graph := asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption("log10 dE/dx (MeV/cm)"+axisNote(results[0].Curve)),
	)
	return graph + "\n" + strings.Join(legends, "   ")
}

func axisNote(curve sweep.Curve) string {
	if len(curve) == 0 {
		return ""
	}
	return fmt.Sprintf(" vs energy %.0f..%.0f MeV", curve[0].EnergyMeV, curve[len(curve)-1].EnergyMeV)
}

// Summary renders the outcome of one variant sweep.
func Summary(v physics.Variant, curve sweep.Curve, files []string, metrics map[string]float64) string {
	var sb strings.Builder

	sb.WriteString(HeaderStyle.Render(v.Title()))
	sb.WriteString("\n")

	status := StatusOK.Render("ok")
	if !curve.IsFinite() {
		status = StatusWarn.Render("non-finite samples")
	}
	sb.WriteString(fmt.Sprintf("%s %d points  %s\n", MetricLabel.Render("samples:"), len(curve), status))

	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("%s %s\n", MetricLabel.Render(name+":"), MetricValue.Render(fmt.Sprintf("%.6g", metrics[name]))))
	}

	sb.WriteString(Separator(60) + "\n")
	for _, f := range files {
		sb.WriteString(Subtle.Render("  → "+f) + "\n")
	}

	sb.WriteString(SparklineChart(logValues(curve), 60))
	return Panel.Render(sb.String())
}
