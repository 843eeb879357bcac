// Package viz renders run summaries and terminal plots.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orrery/internal/sim"
)

// Summary renders a styled block describing a finished run.
func Summary(runID string, dt float64, result *sim.Result) string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("orrery run"))
	b.WriteString("\n")

	line := func(label, value string) {
		b.WriteString(LabelStyle.Render(label))
		b.WriteString(ValueStyle.Render(value))
		b.WriteString("\n")
	}

	if runID != "" {
		line("run id", runID)
	}
	line("steps", fmt.Sprintf("%d", result.StepsTaken))
	line("dt", fmt.Sprintf("%g", dt))
	line("bodies", strings.Join(result.Final.Names(), ", "))
	line("initial energy", fmt.Sprintf("%.9f", result.InitialEnergy))
	line("final energy", fmt.Sprintf("%.9f", result.FinalEnergy))
	line("energy drift", fmt.Sprintf("%.3e", result.EnergyDrift))

	for name, val := range result.Metrics {
		line(name, fmt.Sprintf("%.6e", val))
	}

	return b.String()
}

// PlotSeries renders one scalar series as an ascii graph.
func PlotSeries(caption string, data []float64) string {
	if len(data) < 2 {
		return ""
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	return GraphStyle.Render(graph)
}

// EnergySeries extracts the sampled energies of a result.
func EnergySeries(result *sim.Result) []float64 {
	data := make([]float64, len(result.Frames))
	for i, f := range result.Frames {
		data[i] = f.Energy
	}
	return data
}
