package session

import (
	"time"

	"github.com/whatiskeptiname/portfolio/city/config"
	"github.com/whatiskeptiname/portfolio/city/drive"
	"github.com/whatiskeptiname/portfolio/city/service"
	"github.com/whatiskeptiname/portfolio/city/world"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData represents the JSON structure for persisted sessions
type PersistedSessionData struct {
	ID             string              `json:"id"`
	Username       string              `json:"username"`
	ConfigID       string              `json:"config_id"`
	Tuning         *config.Tuning      `json:"tuning,omitempty"`
	World          *world.World        `json:"world"`
	Controller     drive.Snapshot      `json:"controller"`
	Events         []service.TripEvent `json:"events"`
	LastCollision  drive.CollisionKind `json:"last_collision,omitempty"`
	NextEventSeq   int                 `json:"next_event_seq"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
}

func toPersisted(s *service.Session) PersistedSessionData {
	return PersistedSessionData{
		ID:             s.ID,
		Username:       s.Username,
		ConfigID:       s.ConfigID,
		Tuning:         s.Tuning,
		World:          s.World,
		Controller:     s.Controller.Snapshot(),
		Events:         s.Events,
		LastCollision:  s.LastCollision,
		NextEventSeq:   s.NextEventSeq,
		CreatedAt:      s.CreatedAt,
		LastAccessedAt: s.LastAccessedAt,
	}
}
