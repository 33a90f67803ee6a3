package service

import (
	"time"

	"github.com/whatiskeptiname/portfolio/city/drive"
	"github.com/whatiskeptiname/portfolio/city/world"
)

// Step limits
const (
	MaxStepFrames = 600
	MaxStepDT     = 0.25
	DefaultStepDT = 1.0 / 60
)

// Trip event types
const (
	EventSessionCreated = "session_created"
	EventCollision      = "collision"
	EventCameraToggle   = "camera_toggle"
	EventReset          = "reset"
)

// CreateSessionRequest selects whose repositories to load and how to tune
// the city. A nil Seed picks one from the clock.
type CreateSessionRequest struct {
	Username string `json:"username"`
	ConfigID string `json:"config_id"`
	Seed     *int64 `json:"seed,omitempty"`
}

// SessionInfo provides information about a city session
type SessionInfo struct {
	ID             string       `json:"id"`
	Username       string       `json:"username"`
	ConfigID       string       `json:"config_id"`
	ConfigName     string       `json:"config_name"`
	CreatedAt      time.Time    `json:"created_at"`
	LastAccessedAt time.Time    `json:"last_accessed_at"`
	Frames         int          `json:"frames"`
	Frame          drive.Frame  `json:"frame"`
	World          WorldSummary `json:"world"`
}

// WorldSummary is a compact description of a generated world
type WorldSummary struct {
	PlaneRadius float64       `json:"plane_radius"`
	Seed        int64         `json:"seed"`
	Cities      []CitySummary `json:"cities"`
	Buildings   int           `json:"buildings"`
	Trees       int           `json:"trees"`
	Roads       int           `json:"roads"`
}

// CitySummary describes one language cluster
type CitySummary struct {
	Language  string  `json:"language"`
	CenterX   float64 `json:"center_x"`
	CenterZ   float64 `json:"center_z"`
	Radius    float64 `json:"radius"`
	Buildings int     `json:"buildings"`
}

// Summarize builds the compact world description
func Summarize(w *world.World) WorldSummary {
	s := WorldSummary{
		PlaneRadius: w.PlaneRadius,
		Seed:        w.Seed,
		Cities:      make([]CitySummary, 0, len(w.Cities)),
		Buildings:   w.CountKind(world.KindBuilding),
		Trees:       w.CountKind(world.KindTree),
		Roads:       len(w.Roads),
	}
	for _, c := range w.Cities {
		s.Cities = append(s.Cities, CitySummary{
			Language:  c.Language,
			CenterX:   c.CenterX,
			CenterZ:   c.CenterZ,
			Radius:    c.ClusterRadius,
			Buildings: len(c.BuildingPositions),
		})
	}
	return s
}

// StepRequest holds one input for a number of frames. Keys are merged into
// Input. A zero DT uses DefaultStepDT and zero Frames runs one update.
type StepRequest struct {
	Input  drive.Input `json:"input"`
	Keys   []string    `json:"keys,omitempty"`
	DT     float64     `json:"dt,omitempty"`
	Frames int         `json:"frames,omitempty"`
	Reset  bool        `json:"reset,omitempty"`
}

// StepResult contains the outcome of a step
type StepResult struct {
	Frame           drive.Frame         `json:"frame"`
	FramesExecuted  int                 `json:"frames_executed"`
	RequestedFrames int                 `json:"requested_frames"`
	DT              float64             `json:"dt"`
	Collisions      int                 `json:"collisions"`
	FirstCollision  drive.CollisionKind `json:"first_collision,omitempty"`
	// 1-based frame within this step of the first rejected move
	FirstCollisionFrame int         `json:"first_collision_frame,omitempty"`
	Distance            float64     `json:"distance"`
	Truncated           bool        `json:"truncated,omitempty"`
	Limit               int         `json:"limit,omitempty"`
	Events              []TripEvent `json:"events"`
}

// TripEvent is one entry in a session's trip log
type TripEvent struct {
	Seq       int                 `json:"seq"`
	Type      string              `json:"type"`
	Message   string              `json:"message"`
	Frame     int                 `json:"frame"`
	Position  drive.Vec3          `json:"position"`
	Kind      drive.CollisionKind `json:"kind,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

// HistoryOptions configures event log retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// EventLogResponse contains a paginated trip log
type EventLogResponse struct {
	Events      []TripEvent `json:"events"`
	TotalEvents int         `json:"total_events"`
	Page        int         `json:"page"`
	PageSize    int         `json:"page_size"`
	TotalPages  int         `json:"total_pages"`
	HasNext     bool        `json:"has_next"`
	HasPrevious bool        `json:"has_previous"`
}
