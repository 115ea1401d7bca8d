package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/bethesim/internal/sweep"
)

// Renderer writes a curve to an image file.
type Renderer interface {
	Render(path string, curve sweep.Curve, caption, title string) error
	Ext() string
}

// Axes are the fixed log-log plot ranges.
type Axes struct {
	XMin, XMax float64 // [MeV]
	YMin, YMax float64 // [MeV/cm]
}

func DefaultAxes() Axes {
	return Axes{XMin: 10, XMax: 10500, YMin: 1e-30, YMax: 1e-27}
}

// New returns the renderer for format ("png" or "svg").
func New(format string, width, height int) (Renderer, error) {
	switch format {
	case "png":
		return &PNG{Width: width, Height: height, Axes: DefaultAxes()}, nil
	case "svg":
		return &SVG{Width: width, Height: height, Axes: DefaultAxes(), Stroke: "#0000ff"}, nil
	}
	return nil, fmt.Errorf("unknown plot format: %s", format)
}

// FileName derives an image file name from a plot title.
func FileName(title, ext string) string {
	return strings.ReplaceAll(title, "/", "_") + ext
}

// Positive drops samples a log axis cannot show and reports how many.
func Positive(curve sweep.Curve) (sweep.Curve, int) {
	out := make(sweep.Curve, 0, len(curve))
	for _, p := range curve {
		if !(p.EnergyMeV > 0) || !(p.StoppingPower > 0) ||
			math.IsInf(p.EnergyMeV, 0) || math.IsInf(p.StoppingPower, 0) {
			continue
		}
		out = append(out, p)
	}
	return out, len(curve) - len(out)
}
