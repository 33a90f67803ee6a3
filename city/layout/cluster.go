package layout

import (
	"math"
	"math/rand"
)

// AttemptsPerPoint bounds rejection sampling: Cluster gives up after
// count*AttemptsPerPoint candidates.
const AttemptsPerPoint = 50

// Cluster scatters up to count points inside the disk of the given radius
// around (centerX, centerZ), keeping every pair at least minSeparation apart.
//
// Candidates are drawn with uniform area density (distance = radius*sqrt(u)).
// When the attempt budget runs out the points accepted so far are returned,
// so the result may be shorter than count.
func Cluster(rng *rand.Rand, count int, centerX, centerZ, radius, minSeparation float64) []Point2D {
	if count <= 0 || radius < 0 {
		return []Point2D{}
	}

	center := Pt(centerX, centerZ)
	points := make([]Point2D, 0, count)
	maxAttempts := count * AttemptsPerPoint

	for attempts := 0; attempts < maxAttempts && len(points) < count; attempts++ {
		angle := rng.Float64() * 2 * math.Pi
		dist := radius * math.Sqrt(rng.Float64())
		candidate := center.Polar(angle, dist)

		if separated(candidate, points, minSeparation) {
			points = append(points, candidate)
		}
	}

	return points
}

// separated reports whether p is at least minSeparation from every point.
func separated(p Point2D, points []Point2D, minSeparation float64) bool {
	for _, q := range points {
		if p.Distance(q) < minSeparation {
			return false
		}
	}
	return true
}
