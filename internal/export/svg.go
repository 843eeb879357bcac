// Package export renders stored runs to SVG.
package export

import (
	"fmt"
	"strings"
)

type Point struct {
	X, Y float64
}

// Trajectory is one body's path in the ecliptic (x/y) plane.
type Trajectory struct {
	Name   string
	Points []Point
}

var palette = []string{
	"#ffcc00", // sun
	"#ff8844",
	"#66ccff",
	"#88ff88",
	"#cc88ff",
	"#ff6688",
}

// OrbitsToSVG draws all trajectories into one SVG with shared bounds,
// so relative orbit sizes are preserved. A dot marks each body's final
// position.
func OrbitsToSVG(trajs []Trajectory, width, height int) string {
	var all []Point
	for _, tr := range trajs {
		all = append(all, tr.Points...)
	}
	if len(all) < 2 {
		return ""
	}

	minX, maxX := all[0].X, all[0].X
	minY, maxY := all[0].Y, all[0].Y
	for _, p := range all {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	toCanvas := func(p Point) (float64, float64) {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		return x, y
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, tr := range trajs {
		if len(tr.Points) < 2 {
			continue
		}
		color := palette[i%len(palette)]

		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for j, p := range tr.Points {
			x, y := toCanvas(p)
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")

		fx, fy := toCanvas(tr.Points[len(tr.Points)-1])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"><title>%s</title></circle>
`, fx, fy, color, tr.Name))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
