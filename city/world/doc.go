// Package world turns language-grouped repositories into the static geometry
// of the portfolio city.
//
// The package implements:
//   - City building: one cluster of buildings per language, centered on a
//     jittered anchor point
//   - Road building: a cycle of straight roads trimmed to each city's rim
//   - Obstacle derivation: building points plus one rim tree per building
//
// Core Types:
//
// Groups maps a language to its repositories. City carries the center, radius
// and the building positions paired 1:1 with its repositories. World is the
// aggregate handed to the drive controller and the transports.
//
// Usage:
//
//	rng := rand.New(rand.NewSource(seed))
//	w := world.Build(groups, rng, world.DefaultOptions())
//	obstacles := w.ObstaclePoints()
//
// Determinism:
//
// Language keys are visited in sorted order, so a seeded source always yields
// the same world for the same Groups. Geometry is built once and is never
// recomputed per frame.
package world
