package drive

import (
	"math"

	"github.com/whatiskeptiname/portfolio/city/layout"
)

// Controller advances one vehicle and its camera. It is not safe for
// concurrent use; hosts call Update from a single frame loop.
type Controller struct {
	params      Params
	obstacles   []layout.Point2D
	planeRadius float64
	spawn       Spawn

	vehicle    Vehicle
	camera     Camera
	follow     bool
	toggleHeld bool
	frames     int
}

// Snapshot is the persisted controller state
type Snapshot struct {
	Vehicle    Vehicle `json:"vehicle"`
	Camera     Camera  `json:"camera"`
	Follow     bool    `json:"follow"`
	ToggleHeld bool    `json:"toggle_held"`
	Frames     int     `json:"frames"`
}

// NewController creates a controller at the spawn placement. The obstacle
// slice is retained, not copied.
func NewController(params Params, obstacles []layout.Point2D, planeRadius float64, spawn Spawn) *Controller {
	c := &Controller{
		params:      params,
		obstacles:   obstacles,
		planeRadius: planeRadius,
		spawn:       spawn,
	}
	c.Reset()
	return c
}

// Reset returns the vehicle and camera to the spawn placement
func (c *Controller) Reset() Frame {
	c.vehicle = c.spawn.Vehicle
	c.camera = c.spawn.Camera
	c.follow = c.spawn.Follow
	c.toggleHeld = false
	if c.follow {
		c.camera = c.followCamera()
	}
	return c.Frame()
}

// Update advances the simulation by dt seconds using the given input
func (c *Controller) Update(dt float64, in Input) Frame {
	p := c.params
	v := c.vehicle.Velocity

	// Longitudinal
	switch {
	case in.Forward:
		v = math.Min(v+p.Acceleration*dt, p.MaxForwardSpeed)
	case in.Back:
		v = math.Max(v-p.Acceleration*dt, -p.MaxReverseSpeed)
	default:
		v *= c.dampingFactor(dt)
	}

	// Steering
	yaw := c.vehicle.Yaw
	if math.Abs(v) > p.SteerMinSpeed {
		if in.Left {
			yaw += p.SteerRate * dt
		}
		if in.Right {
			yaw -= p.SteerRate * dt
		}
	}

	proposed := c.vehicle.Position.Add(Forward(yaw).Scale(v * dt))

	collision := c.collides(proposed)
	if collision != NoCollision {
		c.vehicle.Velocity = 0
	} else {
		c.vehicle.Position = proposed
		c.vehicle.Yaw = yaw
		c.vehicle.Velocity = v
	}

	// Camera
	if in.ToggleCamera && !c.toggleHeld {
		c.follow = !c.follow
	}
	c.toggleHeld = in.ToggleCamera

	if c.follow {
		c.camera = c.followCamera()
	} else {
		c.moveFreeCamera(dt, in)
	}

	c.frames++

	frame := c.Frame()
	frame.Collision = collision
	return frame
}

// Frame returns the current transforms without advancing
func (c *Controller) Frame() Frame {
	return Frame{
		Vehicle: c.vehicle,
		Camera:  c.camera,
		Follow:  c.follow,
	}
}

// Frames returns the number of updates since creation
func (c *Controller) Frames() int {
	return c.frames
}

// Params returns the tuning in use
func (c *Controller) Params() Params {
	return c.params
}

// PlaneRadius returns the half-width of the drivable square
func (c *Controller) PlaneRadius() float64 {
	return c.planeRadius
}

// Snapshot captures the mutable state for persistence
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Vehicle:    c.vehicle,
		Camera:     c.camera,
		Follow:     c.follow,
		ToggleHeld: c.toggleHeld,
		Frames:     c.frames,
	}
}

// Restore applies a previously captured snapshot
func (c *Controller) Restore(s Snapshot) {
	c.vehicle = s.Vehicle
	c.camera = s.Camera
	c.follow = s.Follow
	c.toggleHeld = s.ToggleHeld
	c.frames = s.Frames
}

// collides checks a proposed position against obstacles first, then bounds
func (c *Controller) collides(pos Vec3) CollisionKind {
	limit := c.params.CollisionDistance()
	here := layout.Pt(pos.X, pos.Z)
	for _, o := range c.obstacles {
		if here.Distance(o) < limit {
			return ObstacleCollision
		}
	}

	bound := c.planeRadius - c.params.CarRadius
	if pos.X < -bound || pos.X > bound || pos.Z < -bound || pos.Z > bound {
		return BoundaryCollision
	}
	return NoCollision
}

// dampingFactor is the coasting multiplier for one update
func (c *Controller) dampingFactor(dt float64) float64 {
	if c.params.DampingMode == DampingTimeNormalized {
		return math.Pow(c.params.Damping, dt*ReferenceFrameRate)
	}
	return c.params.Damping
}

// followCamera trails the vehicle and aims ahead of it
func (c *Controller) followCamera() Camera {
	p := c.params
	pos := c.vehicle.Position
	return Camera{
		Position: pos.Add(p.FollowOffset.RotateY(c.vehicle.Yaw)),
		Target:   pos.Add(Forward(c.vehicle.Yaw).Scale(p.LookAhead)).Add(Vec3{Y: p.LookHeight}),
	}
}

// moveFreeCamera raises or lowers the free camera, keeping its orientation
func (c *Controller) moveFreeCamera(dt float64, in Input) {
	dy := 0.0
	if in.Raise {
		dy += c.params.VerticalSpeed * dt
	}
	if in.Lower {
		dy -= c.params.VerticalSpeed * dt
	}
	if dy == 0 {
		return
	}
	c.camera.Position.Y += dy
	c.camera.Target.Y += dy
}
