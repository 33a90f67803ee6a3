package drive

import "math"

// Key names used by input bindings and transports
const (
	KeyForward      = "forward"
	KeyBack         = "back"
	KeyLeft         = "left"
	KeyRight        = "right"
	KeyToggleCamera = "toggle_camera"
	KeyRaise        = "raise"
	KeyLower        = "lower"
)

// KeyNames lists every key the controller understands
var KeyNames = []string{KeyForward, KeyBack, KeyLeft, KeyRight, KeyToggleCamera, KeyRaise, KeyLower}

// CollisionKind reports why a proposed move was rejected
type CollisionKind string

const (
	NoCollision       CollisionKind = ""
	ObstacleCollision CollisionKind = "obstacle"
	BoundaryCollision CollisionKind = "boundary"
)

// Input is the keyboard snapshot for one frame
type Input struct {
	Forward      bool `json:"forward,omitempty"`
	Back         bool `json:"back,omitempty"`
	Left         bool `json:"left,omitempty"`
	Right        bool `json:"right,omitempty"`
	ToggleCamera bool `json:"toggle_camera,omitempty"`
	Raise        bool `json:"raise,omitempty"`
	Lower        bool `json:"lower,omitempty"`
}

// InputFromKeys builds an Input from a list of pressed key names.
// Unknown names are ignored.
func InputFromKeys(keys []string) Input {
	var in Input
	for _, k := range keys {
		in.Set(k, true)
	}
	return in
}

// Set marks a named key as pressed or released. It reports whether the name
// was recognised.
func (in *Input) Set(key string, pressed bool) bool {
	switch key {
	case KeyForward:
		in.Forward = pressed
	case KeyBack:
		in.Back = pressed
	case KeyLeft:
		in.Left = pressed
	case KeyRight:
		in.Right = pressed
	case KeyToggleCamera:
		in.ToggleCamera = pressed
	case KeyRaise:
		in.Raise = pressed
	case KeyLower:
		in.Lower = pressed
	default:
		return false
	}
	return true
}

// Keys returns the names of the pressed keys
func (in Input) Keys() []string {
	var keys []string
	for _, k := range KeyNames {
		if in.Pressed(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// Pressed reports whether the named key is held
func (in Input) Pressed(key string) bool {
	switch key {
	case KeyForward:
		return in.Forward
	case KeyBack:
		return in.Back
	case KeyLeft:
		return in.Left
	case KeyRight:
		return in.Right
	case KeyToggleCamera:
		return in.ToggleCamera
	case KeyRaise:
		return in.Raise
	case KeyLower:
		return in.Lower
	}
	return false
}

// Vec3 is a scene-space vector, Y up
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Scale returns v * s
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// RotateY rotates v about the Y axis by angle radians
func (v Vec3) RotateY(angle float64) Vec3 {
	sin, cos := math.Sincos(angle)
	return Vec3{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}

// Forward returns the unit heading for a yaw. Yaw 0 faces -Z.
func Forward(yaw float64) Vec3 {
	return Vec3{X: -math.Sin(yaw), Y: 0, Z: -math.Cos(yaw)}
}

// Vehicle is the car transform plus its signed speed
type Vehicle struct {
	Position Vec3    `json:"position"`
	Yaw      float64 `json:"yaw"`
	Velocity float64 `json:"velocity"`
}

// Camera is a position and the point it looks at
type Camera struct {
	Position Vec3 `json:"position"`
	Target   Vec3 `json:"target"`
}

// Frame is the outcome of one update
type Frame struct {
	Vehicle   Vehicle       `json:"vehicle"`
	Camera    Camera        `json:"camera"`
	Follow    bool          `json:"follow"`
	Collision CollisionKind `json:"collision,omitempty"`
}

// Spawn is the initial vehicle and camera placement
type Spawn struct {
	Vehicle Vehicle `json:"vehicle"`
	Camera  Camera  `json:"camera"`
	Follow  bool    `json:"follow"`
}
