package export

import (
	"fmt"
	"image/color"
	"os"

	"github.com/san-kum/bethesim/internal/sweep"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const dpi = 96

// PNG renders a blue log-log line plot.
type PNG struct {
	Width  int // [px]
	Height int // [px]
	Axes   Axes
}

func (r *PNG) Ext() string { return ".png" }

func (r *PNG) Render(path string, curve sweep.Curve, caption, title string) error {
	p, err := r.build(curve, caption, title)
	if err != nil {
		return err
	}

	img := vgimg.NewWith(
		vgimg.UseWH(pixels(r.Width), pixels(r.Height)),
		vgimg.UseDPI(dpi),
	)
	p.Draw(draw.New(img))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func (r *PNG) build(curve sweep.Curve, caption, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Energy (MeV)"
	p.Y.Label.Text = "Stopping power (MeV/cm)"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	pts, _ := Positive(curve)
	if len(pts) > 0 {
		xys := make(plotter.XYs, len(pts))
		for i, pt := range pts {
			xys[i].X = pt.EnergyMeV
			xys[i].Y = pt.StoppingPower
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Color = color.RGBA{B: 255, A: 255}
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(caption, line)
		p.Legend.Top = true
	}

	// Add widens the ranges to the data, so the fixed axes go last.
	p.X.Min, p.X.Max = r.Axes.XMin, r.Axes.XMax
	p.Y.Min, p.Y.Max = r.Axes.YMin, r.Axes.YMax

	return p, nil
}

func pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / dpi
}
