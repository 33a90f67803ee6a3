package service

import (
	"math/rand"
	"time"

	"github.com/whatiskeptiname/portfolio/city/config"
	"github.com/whatiskeptiname/portfolio/city/drive"
	"github.com/whatiskeptiname/portfolio/city/world"
)

// MaxEventLog bounds the trip log kept per session; older entries are dropped
const MaxEventLog = 1000

// SessionSpec is everything needed to create a session
type SessionSpec struct {
	Username string
	ConfigID string
	Tuning   *config.Tuning
	World    *world.World
}

// Session is one generated city with its car
type Session struct {
	ID             string
	Username       string
	ConfigID       string
	Tuning         *config.Tuning
	World          *world.World
	Controller     *drive.Controller
	Events         []TripEvent
	LastCollision  drive.CollisionKind
	NextEventSeq   int
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// NewSession builds the controller for a world and places the car at spawn
func NewSession(id string, spec SessionSpec) *Session {
	now := time.Now()
	return &Session{
		ID:             id,
		Username:       spec.Username,
		ConfigID:       spec.ConfigID,
		Tuning:         spec.Tuning,
		World:          spec.World,
		Controller:     NewController(spec.Tuning, spec.World),
		NextEventSeq:   1,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
}

// BuildWorld lays out groups with the tuning's world options and records
// the seed on the result
func BuildWorld(groups world.Groups, tuning *config.Tuning, seed int64) *world.World {
	w := world.Build(groups, rand.New(rand.NewSource(seed)), tuning.World)
	w.Seed = seed
	return w
}

// NewController creates a drive controller for a tuning and world
func NewController(tuning *config.Tuning, w *world.World) *drive.Controller {
	return drive.NewController(tuning.Drive, w.ObstaclePoints(), w.PlaneRadius, tuning.Spawn)
}

// AppendEvent stamps and records a trip event, trimming the oldest entries
// beyond MaxEventLog
func (s *Session) AppendEvent(e TripEvent) TripEvent {
	if s.NextEventSeq < 1 {
		s.NextEventSeq = len(s.Events) + 1
	}
	e.Seq = s.NextEventSeq
	s.NextEventSeq++
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	s.Events = append(s.Events, e)
	if len(s.Events) > MaxEventLog {
		s.Events = append([]TripEvent(nil), s.Events[len(s.Events)-MaxEventLog:]...)
	}
	return e
}
