package service

import (
	"context"
	"errors"

	"github.com/whatiskeptiname/portfolio/city/config"
	"github.com/whatiskeptiname/portfolio/city/drive"
	"github.com/whatiskeptiname/portfolio/city/world"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidStep          = errors.New("invalid step request")
	ErrSourceFailed         = errors.New("repository source failed")
)

// CityService defines all city-related operations
type CityService interface {
	// Session Management
	CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// World and driving
	GetWorld(ctx context.Context, sessionID string) (*world.World, error)
	GetFrame(ctx context.Context, sessionID string) (*drive.Frame, error)
	Step(ctx context.Context, sessionID string, req StepRequest) (*StepResult, error)
	Reset(ctx context.Context, sessionID string) (*drive.Frame, error)
	GetEventLog(ctx context.Context, sessionID string, opts HistoryOptions) (*EventLogResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*config.ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*config.Tuning, error)
	SaveConfig(ctx context.Context, configName string, tuning *config.Tuning) error

	// Persistence
	SyncSessions(ctx context.Context) error
	PruneSessions(ctx context.Context, exists func(id string) bool) int
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, spec SessionSpec) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	DeleteFromMemory(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
	SaveAllSessions() error
	Count() int
}

// ConfigManager handles tuning loading
type ConfigManager interface {
	LoadConfig(name string) (*config.Tuning, error)
	ListConfigs() ([]*config.ConfigInfo, error)
	GetDefault() *config.Tuning
	SaveConfig(name string, tuning *config.Tuning) error
}

// RepoSource supplies language-grouped repositories
type RepoSource interface {
	Name() string
	FetchGroups(ctx context.Context, user string) (world.Groups, error)
}
