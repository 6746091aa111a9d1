package main

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/gogpu/ggray"
)

// grayLevels extracts one level per pixel. The converter writes equal R,
// G and B, so the red channel carries the gray value.
func grayLevels(pm *ggray.Pixmap) []float64 {
	data := pm.Data()
	levels := make([]float64, 0, len(data)/4)
	for i := 0; i < len(data); i += 4 {
		levels = append(levels, float64(data[i]))
	}
	return levels
}

// printStats writes summary statistics of the result's gray levels.
func printStats(w io.Writer, pm *ggray.Pixmap) {
	levels := grayLevels(pm)
	p := message.NewPrinter(language.English)
	if len(levels) == 0 {
		p.Fprintf(w, "Gray levels: no pixels\n")
		return
	}
	p.Fprintf(w, "Gray levels over %d pixels: mean %.2f, stddev %.2f, min %.0f, max %.0f\n",
		len(levels),
		stat.Mean(levels, nil),
		stat.PopStdDev(levels, nil),
		floats.Min(levels),
		floats.Max(levels))
}
