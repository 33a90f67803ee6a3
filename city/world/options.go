package world

import "github.com/whatiskeptiname/portfolio/city/layout"

// Default layout constants
const (
	DefaultPlaneRadius      = 100.0
	DefaultJitter           = 5.0
	DefaultMinClusterRadius = 10.0
	DefaultMaxClusterRadius = 15.0
	DefaultMinSeparation    = 5.0
	DefaultRoadMargin       = 2.0
	DefaultTreeRadiusMin    = 0.85
	DefaultTreeRadiusMax    = 1.15
	AnchorCount             = 8
)

// Options tunes world generation. DefaultOptions matches the stock city.
type Options struct {
	PlaneRadius      float64          `json:"plane_radius"`
	Anchors          []layout.Point2D `json:"anchors"`
	Jitter           float64          `json:"jitter"`
	MinClusterRadius float64          `json:"min_cluster_radius"`
	MaxClusterRadius float64          `json:"max_cluster_radius"`
	MinSeparation    float64          `json:"min_separation"`
	RoadMargin       float64          `json:"road_margin"`
	TreeRadiusMin    float64          `json:"tree_radius_min"`
	TreeRadiusMax    float64          `json:"tree_radius_max"`
}

// DefaultAnchors returns the eight stock city anchor points: four diagonal
// corners followed by the four axis points.
func DefaultAnchors() []layout.Point2D {
	return []layout.Point2D{
		{X: -45, Z: -45},
		{X: 45, Z: -45},
		{X: 45, Z: 45},
		{X: -45, Z: 45},
		{X: 0, Z: -62},
		{X: 62, Z: 0},
		{X: 0, Z: 62},
		{X: -62, Z: 0},
	}
}

// DefaultOptions returns the stock generation options
func DefaultOptions() Options {
	return Options{
		PlaneRadius:      DefaultPlaneRadius,
		Anchors:          DefaultAnchors(),
		Jitter:           DefaultJitter,
		MinClusterRadius: DefaultMinClusterRadius,
		MaxClusterRadius: DefaultMaxClusterRadius,
		MinSeparation:    DefaultMinSeparation,
		RoadMargin:       DefaultRoadMargin,
		TreeRadiusMin:    DefaultTreeRadiusMin,
		TreeRadiusMax:    DefaultTreeRadiusMax,
	}
}

// withDefaults fills fields whose zero value would be unusable. Jitter and
// RoadMargin may legitimately be zero and are left alone.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.PlaneRadius <= 0 {
		o.PlaneRadius = d.PlaneRadius
	}
	if len(o.Anchors) == 0 {
		o.Anchors = d.Anchors
	}
	if o.MinClusterRadius <= 0 && o.MaxClusterRadius <= 0 {
		o.MinClusterRadius = d.MinClusterRadius
		o.MaxClusterRadius = d.MaxClusterRadius
	}
	if o.MinSeparation <= 0 {
		o.MinSeparation = d.MinSeparation
	}
	if o.TreeRadiusMin <= 0 && o.TreeRadiusMax <= 0 {
		o.TreeRadiusMin = d.TreeRadiusMin
		o.TreeRadiusMax = d.TreeRadiusMax
	}
	return o
}
