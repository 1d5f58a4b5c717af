package viz

import (
	"github.com/guptarohit/asciigraph"
)

const (
	chartWidth  = 70
	chartHeight = 12
)

// PlotSeries draws one column over the cycle.
func PlotSeries(values []float64, caption string) string {
	if len(values) == 0 {
		return Subtle.Render("(no samples)")
	}
	return asciigraph.Plot(values,
		asciigraph.Width(chartWidth),
		asciigraph.Height(chartHeight),
		asciigraph.Caption(caption),
	)
}

// PlotOverlay draws several columns on shared axes, one colour each.
func PlotOverlay(series [][]float64, caption string) string {
	data := make([][]float64, 0, len(series))
	for _, s := range series {
		if len(s) > 0 {
			data = append(data, s)
		}
	}
	if len(data) == 0 {
		return Subtle.Render("(no samples)")
	}
	return asciigraph.PlotMany(data,
		asciigraph.Width(chartWidth),
		asciigraph.Height(chartHeight),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Goldenrod, asciigraph.Red),
	)
}
