package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/whatiskeptiname/portfolio/city/config"
	"github.com/whatiskeptiname/portfolio/city/drive"
	"github.com/whatiskeptiname/portfolio/city/layout"
	"github.com/whatiskeptiname/portfolio/city/world"
	"github.com/whatiskeptiname/portfolio/observability"
)

// cityServiceImpl implements the CityService interface
type cityServiceImpl struct {
	sessions    SessionManager
	configs     ConfigManager
	source      RepoSource
	metrics     *observability.Collector
	defaultUser string
	mu          sync.RWMutex
}

// Option configures the service
type Option func(*cityServiceImpl)

// WithMetrics records frames, collisions and session counts
func WithMetrics(m *observability.Collector) Option {
	return func(s *cityServiceImpl) { s.metrics = m }
}

// WithDefaultUser is used when a create request names no user
func WithDefaultUser(user string) Option {
	return func(s *cityServiceImpl) { s.defaultUser = user }
}

// NewCityService creates a new city service instance
func NewCityService(sessions SessionManager, configs ConfigManager, source RepoSource, opts ...Option) CityService {
	s := &cityServiceImpl{
		sessions: sessions,
		configs:  configs,
		source:   source,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics.SetActiveSessions(sessions.Count())
	return s
}

// CreateSession loads repositories, builds a world and places the car
func (s *cityServiceImpl) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error) {
	ctx, span := observability.StartSpan(ctx, "city.CreateSession",
		attribute.String("city.user", req.Username),
		attribute.String("city.config", req.ConfigID))
	defer span.End()

	tuning, configID, err := s.resolveConfig(req.ConfigID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	username := req.Username
	if username == "" {
		username = s.defaultUser
	}

	// Fetch outside the lock; it is the slow part
	groups, err := s.source.FetchGroups(ctx, username)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %w", ErrSourceFailed, err)
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	_, buildSpan := observability.StartSpan(ctx, "city.BuildWorld",
		attribute.Int64("city.seed", seed),
		attribute.Int("city.repos", groups.Count()))
	w := BuildWorld(groups, tuning, seed)
	buildSpan.SetAttributes(
		attribute.Int("city.cities", len(w.Cities)),
		attribute.Int("city.obstacles", len(w.Obstacles)))
	buildSpan.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Create("", SessionSpec{
		Username: username,
		ConfigID: configID,
		Tuning:   tuning,
		World:    w,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	sess.AppendEvent(TripEvent{
		Type: EventSessionCreated,
		Message: fmt.Sprintf("City for %s: %d repos in %d cities (seed %d)",
			displayUser(username), w.BuildingCount(), len(w.Cities), seed),
		Position: sess.Controller.Frame().Vehicle.Position,
	})
	if err := s.sessions.Save(sess.ID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		span.RecordError(err)
	}

	s.metrics.SetActiveSessions(s.sessions.Count())
	span.SetAttributes(attribute.String("city.session", sess.ID))
	return s.sessionInfo(sess), nil
}

// resolveConfig loads the named tuning, or the default when empty
func (s *cityServiceImpl) resolveConfig(configID string) (*config.Tuning, string, error) {
	if configID == "" {
		tuning := s.configs.GetDefault()
		if tuning == nil {
			return nil, "", fmt.Errorf("%w: no default configuration", config.ErrConfigNotFound)
		}
		return tuning, config.DefaultConfigID, nil
	}

	tuning, err := s.configs.LoadConfig(configID)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			available, listErr := s.configs.ListConfigs()
			if listErr == nil && len(available) > 0 {
				ids := make([]string, 0, len(available))
				for _, c := range available {
					ids = append(ids, c.ConfigID)
				}
				return nil, "", fmt.Errorf("%w: config '%s' not found. Available configs: %s",
					config.ErrConfigNotFound, configID, strings.Join(ids, ", "))
			}
			return nil, "", fmt.Errorf("%w: config '%s' not found. Use /api/configs to list available configurations",
				config.ErrConfigNotFound, configID)
		}
		return nil, "", fmt.Errorf("failed to load config %s: %w", configID, err)
	}
	return tuning, strings.TrimSuffix(configID, ".json"), nil
}

// GetSession retrieves session information
func (s *cityServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *cityServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *cityServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	s.metrics.SetActiveSessions(s.sessions.Count())
	return nil
}

// GetWorld returns the generated world of a session
func (s *cityServiceImpl) GetWorld(ctx context.Context, sessionID string) (*world.World, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.World, nil
}

// GetFrame returns the current vehicle and camera transforms
func (s *cityServiceImpl) GetFrame(ctx context.Context, sessionID string) (*drive.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	frame := sess.Controller.Frame()
	return &frame, nil
}

// Step runs the drive update for the requested number of frames
func (s *cityServiceImpl) Step(ctx context.Context, sessionID string, req StepRequest) (*StepResult, error) {
	dt, frames, err := normalizeStep(req)
	if err != nil {
		return nil, err
	}

	input := req.Input
	for _, key := range req.Keys {
		if !input.Set(key, true) {
			return nil, fmt.Errorf("%w: unknown key %q, expected one of %s",
				ErrInvalidStep, key, strings.Join(drive.KeyNames, ", "))
		}
	}

	_, span := observability.StartSpan(ctx, "city.Step",
		attribute.String("city.session", sessionID),
		attribute.Int("city.frames", frames),
		attribute.Float64("city.dt", dt))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	result := &StepResult{
		RequestedFrames: req.Frames,
		DT:              dt,
		Events:          []TripEvent{},
	}
	if result.RequestedFrames <= 0 {
		result.RequestedFrames = 1
	}
	if result.RequestedFrames > MaxStepFrames {
		result.Truncated = true
		result.Limit = MaxStepFrames
	}

	if req.Reset {
		result.Events = append(result.Events, s.resetSession(sess))
	}

	ctrl := sess.Controller
	collisionsByKind := map[string]int{}
	var frame drive.Frame
	for i := 1; i <= frames; i++ {
		before := ctrl.Frame()
		frame = ctrl.Update(dt, input)
		result.FramesExecuted++

		result.Distance += planarDistance(before.Vehicle.Position, frame.Vehicle.Position)

		if frame.Collision != drive.NoCollision {
			result.Collisions++
			collisionsByKind[string(frame.Collision)]++
			if result.FirstCollision == drive.NoCollision {
				result.FirstCollision = frame.Collision
				result.FirstCollisionFrame = i
			}
			// Log only the onset of contact, not every frame spent pushing
			if sess.LastCollision != frame.Collision {
				result.Events = append(result.Events, sess.AppendEvent(TripEvent{
					Type:     EventCollision,
					Message:  fmt.Sprintf("Hit %s at (%.1f, %.1f)", frame.Collision, frame.Vehicle.Position.X, frame.Vehicle.Position.Z),
					Frame:    ctrl.Frames(),
					Position: frame.Vehicle.Position,
					Kind:     frame.Collision,
				}))
			}
		}
		sess.LastCollision = frame.Collision

		if frame.Follow != before.Follow {
			mode := "free"
			if frame.Follow {
				mode = "follow"
			}
			result.Events = append(result.Events, sess.AppendEvent(TripEvent{
				Type:     EventCameraToggle,
				Message:  fmt.Sprintf("Camera switched to %s mode", mode),
				Frame:    ctrl.Frames(),
				Position: frame.Vehicle.Position,
			}))
		}
	}

	result.Frame = frame

	s.sessions.UpdateLastAccessed(sess.ID)
	s.metrics.ObserveFrames(result.FramesExecuted, collisionsByKind)
	span.SetAttributes(
		attribute.Int("city.collisions", result.Collisions),
		attribute.Float64("city.distance", result.Distance))

	return result, nil
}

// normalizeStep applies defaults and validates dt and frame count
func normalizeStep(req StepRequest) (float64, int, error) {
	dt := req.DT
	if dt == 0 {
		dt = DefaultStepDT
	}
	if dt < 0 || dt > MaxStepDT || math.IsNaN(dt) {
		return 0, 0, fmt.Errorf("%w: dt must be in (0, %v], got %v", ErrInvalidStep, MaxStepDT, req.DT)
	}

	frames := req.Frames
	if frames < 0 {
		return 0, 0, fmt.Errorf("%w: frames must not be negative, got %d", ErrInvalidStep, frames)
	}
	if frames == 0 {
		frames = 1
	}
	if frames > MaxStepFrames {
		frames = MaxStepFrames
	}
	return dt, frames, nil
}

// Reset restores the spawn placement keeping the world
func (s *cityServiceImpl) Reset(ctx context.Context, sessionID string) (*drive.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	s.resetSession(sess)
	if err := s.sessions.Save(sess.ID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	frame := sess.Controller.Frame()
	return &frame, nil
}

func (s *cityServiceImpl) resetSession(sess *Session) TripEvent {
	frame := sess.Controller.Reset()
	sess.LastCollision = drive.NoCollision
	s.sessions.UpdateLastAccessed(sess.ID)
	return sess.AppendEvent(TripEvent{
		Type:     EventReset,
		Message:  "Vehicle returned to spawn",
		Frame:    sess.Controller.Frames(),
		Position: frame.Vehicle.Position,
	})
}

// GetEventLog returns the paginated trip log
func (s *cityServiceImpl) GetEventLog(ctx context.Context, sessionID string, opts HistoryOptions) (*EventLogResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Events
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	events := []TripEvent{}
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			events = append(events, history[i])
		}
	} else if start < total {
		events = append(events, history[start:end]...)
	}

	return &EventLogResponse{
		Events:      events,
		TotalEvents: total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available tunings
func (s *cityServiceImpl) ListConfigs(ctx context.Context) ([]*config.ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific tuning
func (s *cityServiceImpl) LoadConfig(ctx context.Context, configName string) (*config.Tuning, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a tuning to disk
func (s *cityServiceImpl) SaveConfig(ctx context.Context, configName string, tuning *config.Tuning) error {
	return s.configs.SaveConfig(configName, tuning)
}

// SyncSessions writes every in-memory session to storage while holding the
// service lock, so no step mutates a session mid-write
func (s *cityServiceImpl) SyncSessions(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	err := s.sessions.SaveAllSessions()
	s.metrics.SetActiveSessions(s.sessions.Count())
	return err
}

// PruneSessions evicts live sessions whose stored copy exists reports as gone.
// It holds the service lock so a session is never pruned between its
// creation and its first save.
func (s *cityServiceImpl) PruneSessions(ctx context.Context, exists func(id string) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for _, sess := range s.sessions.List() {
		if exists(sess.ID) {
			continue
		}
		if err := s.sessions.DeleteFromMemory(sess.ID); err == nil {
			pruned++
		}
	}
	if pruned > 0 {
		s.metrics.SetActiveSessions(s.sessions.Count())
	}
	return pruned
}

// getSession looks up a session and touches its access time. Callers hold
// s.mu for writing; readers of LastAccessedAt rely on that.
func (s *cityServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

func (s *cityServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	name := sess.ConfigID
	if sess.Tuning != nil && sess.Tuning.Name != "" {
		name = sess.Tuning.Name
	}
	return &SessionInfo{
		ID:             sess.ID,
		Username:       sess.Username,
		ConfigID:       sess.ConfigID,
		ConfigName:     name,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Frames:         sess.Controller.Frames(),
		Frame:          sess.Controller.Frame(),
		World:          Summarize(sess.World),
	}
}

func planarDistance(a, b drive.Vec3) float64 {
	return layout.Pt(a.X, a.Z).Distance(layout.Pt(b.X, b.Z))
}

func displayUser(user string) string {
	if user == "" {
		return "snapshot"
	}
	return user
}
