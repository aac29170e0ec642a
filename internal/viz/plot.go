package viz

import (
	"github.com/guptarohit/asciigraph"
)

// Plot renders one or more series as an ASCII line chart.
func Plot(caption string, width, height int, series ...[]float64) string {
	nonEmpty := make([][]float64, 0, len(series))
	for _, s := range series {
		if len(s) > 0 {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) == 0 {
		return ""
	}

	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	}
	if len(nonEmpty) == 1 {
		return asciigraph.Plot(nonEmpty[0], opts...)
	}

	colors := []asciigraph.AnsiColor{asciigraph.Yellow, asciigraph.Cyan, asciigraph.Red, asciigraph.Green, asciigraph.Magenta, asciigraph.Blue}
	seriesColors := make([]asciigraph.AnsiColor, len(nonEmpty))
	for i := range seriesColors {
		seriesColors[i] = colors[i%len(colors)]
	}
	opts = append(opts, asciigraph.SeriesColors(seriesColors...))
	return asciigraph.PlotMany(nonEmpty, opts...)
}
