package config

import (
	"fmt"
	"sort"

	"github.com/whatiskeptiname/portfolio/city/drive"
	"github.com/whatiskeptiname/portfolio/city/world"
)

// DefaultConfigID is the tuning loaded when a request names none
const DefaultConfigID = "default"

// Tuning is one city variant as stored on disk
type Tuning struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	World       world.Options       `json:"world"`
	Drive       drive.Params        `json:"drive"`
	Spawn       drive.Spawn         `json:"spawn"`
	Bindings    map[string][]string `json:"bindings,omitempty"`
}

// ConfigInfo summarises a tuning file for listings
type ConfigInfo struct {
	Filename    string  `json:"filename"`
	ConfigID    string  `json:"config_id"` // identifier used for session creation
	Name        string  `json:"name"`
	Description string  `json:"description"`
	PlaneRadius float64 `json:"plane_radius"`
	MaxSpeed    float64 `json:"max_speed"`
	DampingMode string  `json:"damping_mode"`
}

// DefaultBindings maps each drive key to the keyboard keys that trigger it
func DefaultBindings() map[string][]string {
	return map[string][]string{
		drive.KeyForward:      {"ArrowUp", "W"},
		drive.KeyBack:         {"ArrowDown", "S"},
		drive.KeyLeft:         {"ArrowLeft", "A"},
		drive.KeyRight:        {"ArrowRight", "D"},
		drive.KeyToggleCamera: {"C"},
		drive.KeyRaise:        {"E", "PageUp"},
		drive.KeyLower:        {"Q", "PageDown"},
	}
}

// DefaultSpawn places the car at the origin facing -Z with a high free
// camera looking down at it.
func DefaultSpawn() drive.Spawn {
	return drive.Spawn{
		Camera: drive.Camera{
			Position: drive.Vec3{X: 0, Y: 60, Z: 60},
			Target:   drive.Vec3{},
		},
	}
}

// DefaultTuning returns the built-in tuning used when no files are present
func DefaultTuning() *Tuning {
	return &Tuning{
		Name:        "Default",
		Description: "Stock city with literal per-frame damping",
		World:       world.DefaultOptions(),
		Drive:       drive.DefaultParams(),
		Spawn:       DefaultSpawn(),
		Bindings:    DefaultBindings(),
	}
}

// Info builds the listing entry for a tuning stored under id
func (t *Tuning) Info(id string) *ConfigInfo {
	return &ConfigInfo{
		Filename:    id + ".json",
		ConfigID:    id,
		Name:        t.Name,
		Description: t.Description,
		PlaneRadius: t.World.PlaneRadius,
		MaxSpeed:    t.Drive.MaxForwardSpeed,
		DampingMode: t.Drive.DampingMode,
	}
}

// ValidateTuning checks a tuning for values the world builder or the drive
// controller cannot work with
func ValidateTuning(t *Tuning) error {
	if t == nil {
		return fmt.Errorf("tuning validation: tuning is nil")
	}
	if t.Name == "" {
		return fmt.Errorf("tuning validation: name is required")
	}

	w := t.World
	if w.PlaneRadius <= 0 {
		return fmt.Errorf("tuning validation: world.plane_radius must be positive, got %v", w.PlaneRadius)
	}
	if w.MinClusterRadius <= 0 || w.MaxClusterRadius <= 0 {
		return fmt.Errorf("tuning validation: cluster radii must be positive")
	}
	if w.MinClusterRadius >= w.MaxClusterRadius {
		return fmt.Errorf("tuning validation: min_cluster_radius (%v) must be less than max_cluster_radius (%v)",
			w.MinClusterRadius, w.MaxClusterRadius)
	}
	if w.MinSeparation <= 0 {
		return fmt.Errorf("tuning validation: world.min_separation must be positive, got %v", w.MinSeparation)
	}
	if w.Jitter < 0 || w.RoadMargin < 0 {
		return fmt.Errorf("tuning validation: jitter and road_margin must not be negative")
	}
	if w.TreeRadiusMin <= 0 || w.TreeRadiusMin > w.TreeRadiusMax {
		return fmt.Errorf("tuning validation: tree radius range [%v, %v] is invalid", w.TreeRadiusMin, w.TreeRadiusMax)
	}
	if len(w.Anchors) != world.AnchorCount {
		return fmt.Errorf("tuning validation: world.anchors must have %d entries, got %d", world.AnchorCount, len(w.Anchors))
	}
	for i, a := range w.Anchors {
		if abs(a.X) > w.PlaneRadius || abs(a.Z) > w.PlaneRadius {
			return fmt.Errorf("tuning validation: anchor %d (%v, %v) lies outside the plane", i, a.X, a.Z)
		}
	}

	if err := t.Drive.Validate(); err != nil {
		return fmt.Errorf("tuning validation: drive: %v", err)
	}

	bound := w.PlaneRadius - t.Drive.CarRadius
	pos := t.Spawn.Vehicle.Position
	if abs(pos.X) > bound || abs(pos.Z) > bound {
		return fmt.Errorf("tuning validation: spawn (%v, %v) lies outside the drivable area ±%v", pos.X, pos.Z, bound)
	}

	for action := range t.Bindings {
		if !knownKey(action) {
			return fmt.Errorf("tuning validation: unknown binding %q, expected one of %v", action, sortedKeyNames())
		}
	}
	return nil
}

func knownKey(name string) bool {
	for _, k := range drive.KeyNames {
		if k == name {
			return true
		}
	}
	return false
}

func sortedKeyNames() []string {
	names := append([]string(nil), drive.KeyNames...)
	sort.Strings(names)
	return names
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
