package drive

import "fmt"

// Damping modes
const (
	DampingPerFrame       = "per_frame"
	DampingTimeNormalized = "time_normalized"
)

// ReferenceFrameRate is the rate the per-frame damping factor was tuned at
const ReferenceFrameRate = 60.0

// Params holds the vehicle and camera tuning
type Params struct {
	MaxForwardSpeed float64 `json:"max_forward_speed"`
	MaxReverseSpeed float64 `json:"max_reverse_speed"`
	Acceleration    float64 `json:"acceleration"`
	Damping         float64 `json:"damping"`
	DampingMode     string  `json:"damping_mode"`
	SteerRate       float64 `json:"steer_rate"`
	SteerMinSpeed   float64 `json:"steer_min_speed"`
	CarRadius       float64 `json:"car_radius"`
	ObstacleRadius  float64 `json:"obstacle_radius"`

	FollowOffset  Vec3    `json:"follow_offset"`
	LookAhead     float64 `json:"look_ahead"`
	LookHeight    float64 `json:"look_height"`
	VerticalSpeed float64 `json:"vertical_speed"`
}

// DefaultParams returns the stock tuning
func DefaultParams() Params {
	return Params{
		MaxForwardSpeed: 20,
		MaxReverseSpeed: 10,
		Acceleration:    10,
		Damping:         0.98,
		DampingMode:     DampingPerFrame,
		SteerRate:       1.2,
		SteerMinSpeed:   0.5,
		CarRadius:       1.0,
		ObstacleRadius:  2.0,
		FollowOffset:    Vec3{X: 0, Y: 2.5, Z: 6},
		LookAhead:       10,
		LookHeight:      1,
		VerticalSpeed:   20,
	}
}

// CollisionDistance is the center distance below which the car hits an obstacle
func (p Params) CollisionDistance() float64 {
	return p.CarRadius + p.ObstacleRadius
}

// Validate checks the tuning for values the controller cannot work with
func (p Params) Validate() error {
	if p.MaxForwardSpeed <= 0 {
		return fmt.Errorf("max_forward_speed must be positive, got %v", p.MaxForwardSpeed)
	}
	if p.MaxReverseSpeed <= 0 {
		return fmt.Errorf("max_reverse_speed must be positive, got %v", p.MaxReverseSpeed)
	}
	if p.Acceleration <= 0 {
		return fmt.Errorf("acceleration must be positive, got %v", p.Acceleration)
	}
	if p.Damping <= 0 || p.Damping > 1 {
		return fmt.Errorf("damping must be in (0, 1], got %v", p.Damping)
	}
	if p.DampingMode != DampingPerFrame && p.DampingMode != DampingTimeNormalized {
		return fmt.Errorf("damping_mode must be %q or %q, got %q", DampingPerFrame, DampingTimeNormalized, p.DampingMode)
	}
	if p.SteerRate < 0 || p.SteerMinSpeed < 0 {
		return fmt.Errorf("steer_rate and steer_min_speed must not be negative")
	}
	if p.CarRadius <= 0 || p.ObstacleRadius < 0 {
		return fmt.Errorf("car_radius must be positive and obstacle_radius non-negative")
	}
	if p.VerticalSpeed < 0 {
		return fmt.Errorf("vertical_speed must not be negative, got %v", p.VerticalSpeed)
	}
	return nil
}
