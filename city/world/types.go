package world

import (
	"sort"

	"github.com/whatiskeptiname/portfolio/city/layout"
)

// OtherLanguage is the group for repositories without a detected language.
const OtherLanguage = "Other"

// ObstacleKind distinguishes what an obstacle point represents
type ObstacleKind string

const (
	KindBuilding ObstacleKind = "building"
	KindTree     ObstacleKind = "tree"
)

// Repo is a single repository shown as a building
type Repo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Stars       int    `json:"stars"`
	Language    string `json:"language,omitempty"`
}

// Groups maps a language name to its repositories
type Groups map[string][]Repo

// Languages returns the group keys in sorted order
func (g Groups) Languages() []string {
	langs := make([]string, 0, len(g))
	for lang := range g {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Count returns the total number of repositories across all groups
func (g Groups) Count() int {
	total := 0
	for _, repos := range g {
		total += len(repos)
	}
	return total
}

// GroupByLanguage buckets repositories by language, preserving input order
// inside each bucket. Repositories without a language go to OtherLanguage.
func GroupByLanguage(repos []Repo) Groups {
	groups := make(Groups)
	for _, r := range repos {
		lang := r.Language
		if lang == "" {
			lang = OtherLanguage
		}
		groups[lang] = append(groups[lang], r)
	}
	return groups
}

// City is one language cluster
type City struct {
	Language          string           `json:"language"`
	CenterX           float64          `json:"center_x"`
	CenterZ           float64          `json:"center_z"`
	ClusterRadius     float64          `json:"cluster_radius"`
	Repos             []Repo           `json:"repos"`
	BuildingPositions []layout.Point2D `json:"building_positions"`
}

// Center returns the city center as a point
func (c City) Center() layout.Point2D {
	return layout.Pt(c.CenterX, c.CenterZ)
}

// RoadSegment is a straight road between two city rims
type RoadSegment struct {
	X1 float64 `json:"x1"`
	Z1 float64 `json:"z1"`
	X2 float64 `json:"x2"`
	Z2 float64 `json:"z2"`
}

// Start returns the first endpoint
func (r RoadSegment) Start() layout.Point2D {
	return layout.Pt(r.X1, r.Z1)
}

// End returns the second endpoint
func (r RoadSegment) End() layout.Point2D {
	return layout.Pt(r.X2, r.Z2)
}

// Obstacle is a collision point. Its radius is fixed by the drive parameters.
type Obstacle struct {
	Position layout.Point2D `json:"position"`
	Kind     ObstacleKind   `json:"kind"`
	Language string         `json:"language"`
}

// World is the complete static scene derived from one Groups value
type World struct {
	PlaneRadius float64       `json:"plane_radius"`
	Seed        int64         `json:"seed"`
	Cities      []City        `json:"cities"`
	Roads       []RoadSegment `json:"roads"`
	Obstacles   []Obstacle    `json:"obstacles"`
}

// ObstaclePoints returns the obstacle positions in the order they were derived
func (w *World) ObstaclePoints() []layout.Point2D {
	points := make([]layout.Point2D, len(w.Obstacles))
	for i, o := range w.Obstacles {
		points[i] = o.Position
	}
	return points
}

// CountKind counts obstacles of a given kind
func (w *World) CountKind(kind ObstacleKind) int {
	count := 0
	for _, o := range w.Obstacles {
		if o.Kind == kind {
			count++
		}
	}
	return count
}

// BuildingCount returns the number of placed buildings across all cities
func (w *World) BuildingCount() int {
	count := 0
	for _, c := range w.Cities {
		count += len(c.BuildingPositions)
	}
	return count
}
