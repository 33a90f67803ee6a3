// Package layout provides the planar geometry used to place a city's
// buildings.
//
// All points live in the XZ ground plane; Y is "up" in the rendered scene and
// is never touched here. Cluster is the only generator: it scatters points
// inside a disk with a minimum pairwise separation using rejection sampling
// and a bounded attempt budget, so callers must tolerate receiving fewer
// points than they asked for.
//
// Usage:
//
//	rng := rand.New(rand.NewSource(42))
//	pts := layout.Cluster(rng, 12, 40, -40, 12, 5)
//	// len(pts) <= 12, every pair at least 5 apart, all within 12 of (40,-40)
package layout
