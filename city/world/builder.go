package world

import (
	"math"
	"math/rand"

	"github.com/whatiskeptiname/portfolio/city/layout"
)

// Build derives the complete world from grouped repositories. The same rng
// drives city placement and tree scattering, in that order.
func Build(groups Groups, rng *rand.Rand, opts Options) *World {
	opts = opts.withDefaults()

	cities := BuildCities(groups, rng, opts)
	return &World{
		PlaneRadius: opts.PlaneRadius,
		Cities:      cities,
		Roads:       BuildRoads(cities, opts.RoadMargin),
		Obstacles:   DeriveObstacles(cities, rng, opts.TreeRadiusMin, opts.TreeRadiusMax),
	}
}

// BuildCities creates one city per language group. City i sits on anchor
// i mod len(anchors), jittered on each axis, with a random cluster radius.
// Repositories beyond the number of placed buildings are dropped.
func BuildCities(groups Groups, rng *rand.Rand, opts Options) []City {
	opts = opts.withDefaults()

	langs := groups.Languages()
	cities := make([]City, 0, len(langs))

	for i, lang := range langs {
		repos := groups[lang]
		anchor := opts.Anchors[i%len(opts.Anchors)]

		centerX := anchor.X + uniform(rng, -opts.Jitter, opts.Jitter)
		centerZ := anchor.Z + uniform(rng, -opts.Jitter, opts.Jitter)
		radius := uniform(rng, opts.MinClusterRadius, opts.MaxClusterRadius)

		positions := layout.Cluster(rng, len(repos), centerX, centerZ, radius, opts.MinSeparation)

		placed := make([]Repo, len(positions))
		copy(placed, repos[:len(positions)])

		cities = append(cities, City{
			Language:          lang,
			CenterX:           centerX,
			CenterZ:           centerZ,
			ClusterRadius:     radius,
			Repos:             placed,
			BuildingPositions: positions,
		})
	}

	return cities
}

// BuildRoads connects cities in a cycle, city[i] to city[(i+1) mod n]. Each
// segment starts margin units outside the current city's rim and ends margin
// units outside the next one. Fewer than two cities yield no roads.
func BuildRoads(cities []City, margin float64) []RoadSegment {
	n := len(cities)
	if n <= 1 {
		return []RoadSegment{}
	}

	roads := make([]RoadSegment, 0, n)
	for i := range cities {
		curr := cities[i]
		next := cities[(i+1)%n]

		// Coincident centers normalize to the zero vector.
		dir := next.Center().Sub(curr.Center()).Normalize()

		start := curr.Center().Add(dir.Scale(curr.ClusterRadius + margin))
		end := next.Center().Sub(dir.Scale(next.ClusterRadius + margin))

		roads = append(roads, RoadSegment{
			X1: start.X,
			Z1: start.Z,
			X2: end.X,
			Z2: end.Z,
		})
	}

	return roads
}

// DeriveObstacles lists every building as an obstacle, followed per building
// by one tree placed at a random angle near the city rim, between
// treeMin and treeMax times the cluster radius from the center.
func DeriveObstacles(cities []City, rng *rand.Rand, treeMin, treeMax float64) []Obstacle {
	var obstacles []Obstacle

	for _, c := range cities {
		for _, pos := range c.BuildingPositions {
			obstacles = append(obstacles, Obstacle{
				Position: pos,
				Kind:     KindBuilding,
				Language: c.Language,
			})
		}

		for range c.BuildingPositions {
			angle := rng.Float64() * 2 * math.Pi
			dist := uniform(rng, treeMin, treeMax) * c.ClusterRadius
			obstacles = append(obstacles, Obstacle{
				Position: c.Center().Polar(angle, dist),
				Kind:     KindTree,
				Language: c.Language,
			})
		}
	}

	if obstacles == nil {
		obstacles = []Obstacle{}
	}
	return obstacles
}

// uniform returns a value in [lo, hi)
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
