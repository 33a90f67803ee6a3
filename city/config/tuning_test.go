package config

import (
	"strings"
	"testing"

	"github.com/whatiskeptiname/portfolio/city/drive"
	"github.com/whatiskeptiname/portfolio/city/layout"
)

func TestDefaultTuningValid(t *testing.T) {
	if err := ValidateTuning(DefaultTuning()); err != nil {
		t.Fatalf("DefaultTuning should validate: %v", err)
	}
}

func TestValidateTuning(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Tuning)
		wantErr string
	}{
		{"missing name", func(c *Tuning) { c.Name = "" }, "name is required"},
		{"zero plane radius", func(c *Tuning) { c.World.PlaneRadius = 0 }, "plane_radius"},
		{"negative cluster radius", func(c *Tuning) { c.World.MinClusterRadius = -1 }, "cluster radii"},
		{"inverted cluster radii", func(c *Tuning) {
			c.World.MinClusterRadius = 15
			c.World.MaxClusterRadius = 10
		}, "min_cluster_radius"},
		{"equal cluster radii", func(c *Tuning) {
			c.World.MinClusterRadius = 12
			c.World.MaxClusterRadius = 12
		}, "min_cluster_radius"},
		{"zero separation", func(c *Tuning) { c.World.MinSeparation = 0 }, "min_separation"},
		{"negative jitter", func(c *Tuning) { c.World.Jitter = -1 }, "jitter"},
		{"inverted tree range", func(c *Tuning) {
			c.World.TreeRadiusMin = 1.2
			c.World.TreeRadiusMax = 0.9
		}, "tree radius"},
		{"seven anchors", func(c *Tuning) { c.World.Anchors = c.World.Anchors[:7] }, "anchors"},
		{"anchor off plane", func(c *Tuning) { c.World.Anchors[3] = layout.Pt(0, 500) }, "outside the plane"},
		{"damping above one", func(c *Tuning) { c.Drive.Damping = 1.01 }, "damping"},
		{"bad damping mode", func(c *Tuning) { c.Drive.DampingMode = "linear" }, "damping_mode"},
		{"spawn outside bounds", func(c *Tuning) {
			c.Spawn.Vehicle.Position = drive.Vec3{X: 99.5}
		}, "spawn"},
		{"unknown binding", func(c *Tuning) { c.Bindings["horn"] = []string{"H"} }, "unknown binding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tuning := DefaultTuning()
			tt.mutate(tuning)
			err := ValidateTuning(tuning)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("nil tuning", func(t *testing.T) {
		if err := ValidateTuning(nil); err == nil {
			t.Error("Expected error for nil tuning")
		}
	})

	t.Run("jitter and margin may be zero", func(t *testing.T) {
		tuning := DefaultTuning()
		tuning.World.Jitter = 0
		tuning.World.RoadMargin = 0
		if err := ValidateTuning(tuning); err != nil {
			t.Errorf("Expected zero jitter and margin to be valid, got %v", err)
		}
	})
}

func TestTuningInfo(t *testing.T) {
	info := DefaultTuning().Info("arcade")
	if info.ConfigID != "arcade" || info.Filename != "arcade.json" {
		t.Errorf("Unexpected identifiers %+v", info)
	}
	if info.MaxSpeed != 20 || info.DampingMode != drive.DampingPerFrame {
		t.Errorf("Unexpected drive summary %+v", info)
	}
}
