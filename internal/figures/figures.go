// Package figures renders a finished cycle to PNG files with gonum/plot.
package figures

import (
	"bufio"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/circsim/internal/analysis"
	"github.com/san-kum/circsim/internal/circulation"
	"github.com/san-kum/circsim/internal/dynamo"
	"github.com/san-kum/circsim/internal/experiment"
	"github.com/san-kum/circsim/internal/sim"
)

const (
	widthIn  = 8.0
	heightIn = 6.0
	dpi      = 96

	// Upper end of the ESPVR/EDPVR reference curves, ml.
	referenceVolume = 100
)

var dashed = []vg.Length{vg.Points(5), vg.Points(3)}

func savePNG(p *plot.Plot, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	w := vg.Length(widthIn) * vg.Inch
	h := vg.Length(heightIn) * vg.Inch

	c := vgimg.NewWith(
		vgimg.UseWH(w, h),
		vgimg.UseDPI(dpi),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	pngc := vgimg.PngCanvas{Canvas: c}
	if _, err := pngc.WriteTo(bw); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return f.Close()
}

func xys(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}

// PVLoop plots a ventricle's pressure-volume loop over its ESPVR and EDPVR.
func PVLoop(title string, volumes, pressures []float64, v circulation.Ventricle) (*plot.Plot, error) {
	if len(volumes) != len(pressures) || len(volumes) == 0 {
		return nil, fmt.Errorf("plot data invalid")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Volume (ml)"
	p.Y.Label.Text = "Pressure (mmHg)"
	p.Legend.Top = true

	ref := make([]float64, referenceVolume+1)
	floats.Span(ref, 0, referenceVolume)
	esp := make([]float64, len(ref))
	edp := make([]float64, len(ref))
	for i, vol := range ref {
		esp[i] = v.ESP(vol)
		edp[i] = v.EDP(vol)
	}

	for _, c := range []struct {
		label string
		ys    []float64
	}{{"ESPVR", esp}, {"EDPVR", edp}} {
		l, err := plotter.NewLine(xys(ref, c.ys))
		if err != nil {
			return nil, err
		}
		l.LineStyle.Dashes = dashed
		l.LineStyle.Color = color.Black
		p.Add(l)
		p.Legend.Add(c.label, l)
	}

	loop, err := plotter.NewLine(xys(volumes, pressures))
	if err != nil {
		return nil, err
	}
	loop.LineStyle.Width = vg.Points(2)
	loop.LineStyle.Color = plotutil.Color(0)
	p.Add(loop)
	p.Legend.Add("PV loop", loop)

	return p, nil
}

// Trace is one labelled curve of a time-series panel.
type Trace struct {
	Label  string
	Values []float64
}

// Marker is a vertical line at a valve event.
type Marker struct {
	Label string
	Times []float64
	Open  bool
	Color color.Color
}

// TimeSeries plots traces against time with valve event markers.
func TimeSeries(title, ylabel string, times []float64, traces []Trace, markers []Marker) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = ylabel

	lo, hi := 0.0, 0.0
	for i, tr := range traces {
		if len(tr.Values) != len(times) || len(times) == 0 {
			return nil, fmt.Errorf("trace %q: plot data invalid", tr.Label)
		}
		if i == 0 {
			lo, hi = floats.Min(tr.Values), floats.Max(tr.Values)
		} else {
			lo, hi = min(lo, floats.Min(tr.Values)), max(hi, floats.Max(tr.Values))
		}

		l, err := plotter.NewLine(xys(times, tr.Values))
		if err != nil {
			return nil, err
		}
		l.LineStyle.Width = vg.Points(2)
		l.LineStyle.Color = plotutil.Color(i)
		p.Add(l)
		p.Legend.Add(tr.Label, l)
	}

	for _, m := range markers {
		for i, t := range m.Times {
			l, err := plotter.NewLine(plotter.XYs{{X: t, Y: lo}, {X: t, Y: hi}})
			if err != nil {
				return nil, err
			}
			l.LineStyle.Color = m.Color
			if m.Open {
				l.LineStyle.Dashes = dashed
			}
			p.Add(l)
			if i == 0 {
				p.Legend.Add(m.Label, l)
			}
		}
	}

	return p, nil
}

var gray = color.Gray{Y: 128}

func markers(grid sim.TimeGrid, events [circulation.NumValves]analysis.ValveEvents, outlet, inlet circulation.Valve) []Marker {
	at := func(idx []int) []float64 {
		ts := make([]float64, len(idx))
		for i, j := range idx {
			ts[i] = grid.Times[j]
		}
		return ts
	}
	return []Marker{
		{Label: outlet.String() + " opens", Times: at(events[outlet].Opens), Open: true, Color: color.Black},
		{Label: outlet.String() + " closes", Times: at(events[outlet].Closes), Color: color.Black},
		{Label: inlet.String() + " opens", Times: at(events[inlet].Opens), Open: true, Color: gray},
		{Label: inlet.String() + " closes", Times: at(events[inlet].Closes), Color: gray},
	}
}

func compartmentTraces(rows []dynamo.State, cs ...circulation.Compartment) []Trace {
	out := make([]Trace, len(cs))
	for i, c := range cs {
		out[i] = Trace{Label: c.String(), Values: sim.Column(rows, int(c))}
	}
	return out
}

func pathTraces(rows []dynamo.State, ps ...circulation.Path) []Trace {
	out := make([]Trace, len(ps))
	for i, path := range ps {
		out[i] = Trace{Label: path.String(), Values: sim.Column(rows, int(path))}
	}
	return out
}

// SaveAll writes the standard figure set for a run into dir and returns
// the file paths.
func SaveAll(dir string, out *experiment.Outcome) ([]string, error) {
	grid := out.Result.Grid
	series := out.Result.Series
	events := analysis.DetectEvents(out.Valves)
	left := markers(grid, events, circulation.Aortic, circulation.Mitral)
	right := markers(grid, events, circulation.Pulmonic, circulation.Tricuspid)

	leftSide := []circulation.Compartment{circulation.PulmonaryVeins, circulation.LeftVentricle, circulation.SystemicArteries}
	rightSide := []circulation.Compartment{circulation.SystemicVeins, circulation.RightVentricle, circulation.PulmonaryArteries}

	type figure struct {
		file  string
		build func() (*plot.Plot, error)
	}
	figs := []figure{
		{"lv_pv_loop.png", func() (*plot.Plot, error) {
			return PVLoop("Left ventricle",
				sim.Column(series.Volumes, int(circulation.LeftVentricle)),
				sim.Column(series.Pressures, int(circulation.LeftVentricle)),
				out.Params.Left)
		}},
		{"rv_pv_loop.png", func() (*plot.Plot, error) {
			return PVLoop("Right ventricle",
				sim.Column(series.Volumes, int(circulation.RightVentricle)),
				sim.Column(series.Pressures, int(circulation.RightVentricle)),
				out.Params.Right)
		}},
		{"left_pressures.png", func() (*plot.Plot, error) {
			return TimeSeries("Left heart pressures", "Pressure (mmHg)", grid.Times, compartmentTraces(series.Pressures, leftSide...), left)
		}},
		{"right_pressures.png", func() (*plot.Plot, error) {
			return TimeSeries("Right heart pressures", "Pressure (mmHg)", grid.Times, compartmentTraces(series.Pressures, rightSide...), right)
		}},
		{"left_volumes.png", func() (*plot.Plot, error) {
			return TimeSeries("Left heart volumes", "Volume (ml)", grid.Times, compartmentTraces(series.Volumes, leftSide...), left)
		}},
		{"right_volumes.png", func() (*plot.Plot, error) {
			return TimeSeries("Right heart volumes", "Volume (ml)", grid.Times, compartmentTraces(series.Volumes, rightSide...), right)
		}},
		{"left_flows.png", func() (*plot.Plot, error) {
			return TimeSeries("Left heart flows", "Flow (ml/s)", grid.Times, pathTraces(out.Flows,
				circulation.PulmonaryVeinToLeftVentricle, circulation.LeftVentricleToSystemicArtery, circulation.SystemicArteryToVein), left)
		}},
		{"right_flows.png", func() (*plot.Plot, error) {
			return TimeSeries("Right heart flows", "Flow (ml/s)", grid.Times, pathTraces(out.Flows,
				circulation.SystemicVeinToRightVentricle, circulation.RightVentricleToPulmonaryArtery, circulation.PulmonaryArteryToVein), right)
		}},
	}

	paths := make([]string, 0, len(figs))
	for _, f := range figs {
		p, err := f.build()
		if err != nil {
			return paths, fmt.Errorf("%s: %w", f.file, err)
		}
		path := filepath.Join(dir, f.file)
		if err := savePNG(p, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
