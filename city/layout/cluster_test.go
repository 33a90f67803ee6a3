package layout

import (
	"math"
	"math/rand"
	"testing"
)

func TestClusterSeparationAndBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	// Property sweep over random radius/count combinations.
	for i := 0; i < 200; i++ {
		count := rng.Intn(30)
		radius := 2 + rng.Float64()*20
		minSep := 1 + rng.Float64()*6
		cx, cz := rng.Float64()*100-50, rng.Float64()*100-50

		pts := Cluster(rng, count, cx, cz, radius, minSep)

		if len(pts) > count {
			t.Fatalf("case %d: got %d points, requested %d", i, len(pts), count)
		}
		center := Pt(cx, cz)
		for a := range pts {
			if d := pts[a].Distance(center); d > radius+1e-9 {
				t.Errorf("case %d: point %d is %.3f from center, radius %.3f", i, a, d, radius)
			}
			for b := a + 1; b < len(pts); b++ {
				if d := pts[a].Distance(pts[b]); d < minSep {
					t.Errorf("case %d: points %d and %d only %.3f apart (min %.3f)", i, a, b, d, minSep)
				}
			}
		}
	}
}

func TestClusterFillsWhenRoomy(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pts := Cluster(rng, 5, 0, 0, 50, 1)
	if len(pts) != 5 {
		t.Errorf("expected all 5 points in a roomy disk, got %d", len(pts))
	}
}

func TestClusterShortfall(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	// A disk of radius 1 cannot hold two points 5 apart.
	pts := Cluster(rng, 10, 0, 0, 1, 5)
	if len(pts) != 1 {
		t.Errorf("expected exactly 1 point when separation exceeds the disk, got %d", len(pts))
	}
}

func TestClusterDegenerateInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	tests := []struct {
		name   string
		count  int
		radius float64
	}{
		{"zero count", 0, 10},
		{"negative count", -4, 10},
		{"negative radius", 3, -1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			pts := Cluster(rng, test.count, 0, 0, test.radius, 1)
			if pts == nil || len(pts) != 0 {
				t.Errorf("expected empty non-nil slice, got %v", pts)
			}
		})
	}
}

func TestClusterAreaDensity(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	// With uniform area density, half of the points fall inside r/sqrt(2).
	const radius = 10.0
	inner := 0
	total := 0
	for i := 0; i < 400; i++ {
		for _, p := range Cluster(rng, 5, 0, 0, radius, 0) {
			total++
			if p.Length() < radius/math.Sqrt2 {
				inner++
			}
		}
	}
	ratio := float64(inner) / float64(total)
	if ratio < 0.42 || ratio > 0.58 {
		t.Errorf("inner-disk ratio %.3f, expected about 0.5 for uniform area sampling", ratio)
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	n := Point2D{}.Normalize()
	if n != (Point2D{}) {
		t.Errorf("expected zero vector, got %+v", n)
	}
	if math.IsNaN(n.X) || math.IsNaN(n.Z) {
		t.Error("normalize produced NaN")
	}
}
