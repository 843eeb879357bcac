package export

import (
	"strings"
	"testing"
)

func TestOrbitsToSVG(t *testing.T) {
	trajs := []Trajectory{
		{Name: "sun", Points: []Point{{0, 0}, {0.01, 0.01}, {0.02, 0}}},
		{Name: "jupiter", Points: []Point{{4.8, -1.1}, {4.7, -0.9}, {4.6, -0.7}}},
	}

	svg := OrbitsToSVG(trajs, 800, 600)

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing xml header")
	}
	if !strings.Contains(svg, `width="800" height="600"`) {
		t.Error("missing dimensions")
	}
	if got := strings.Count(svg, "<path"); got != 2 {
		t.Errorf("expected 2 paths, got %d", got)
	}
	if !strings.Contains(svg, "<title>jupiter</title>") {
		t.Error("missing body marker title")
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("unterminated svg")
	}
}

func TestOrbitsToSVGDegenerate(t *testing.T) {
	if OrbitsToSVG(nil, 800, 600) != "" {
		t.Error("expected empty output for no trajectories")
	}

	one := []Trajectory{{Name: "solo", Points: []Point{{1, 1}}}}
	if OrbitsToSVG(one, 800, 600) != "" {
		t.Error("expected empty output for a single point")
	}
}

func TestOrbitsToSVGSkipsShortTrajectories(t *testing.T) {
	trajs := []Trajectory{
		{Name: "full", Points: []Point{{0, 0}, {1, 1}, {2, 0}}},
		{Name: "stub", Points: []Point{{5, 5}}},
	}

	svg := OrbitsToSVG(trajs, 400, 400)
	if got := strings.Count(svg, "<path"); got != 1 {
		t.Errorf("expected 1 path, got %d", got)
	}
}
