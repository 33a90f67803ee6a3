package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/whatiskeptiname/portfolio/city/config"
	"github.com/whatiskeptiname/portfolio/city/drive"
	"github.com/whatiskeptiname/portfolio/city/service"
)

// stubConfigs resolves tunings for files saved without an inline copy
type stubConfigs struct{}

func (stubConfigs) LoadConfig(name string) (*config.Tuning, error) {
	if name == "default" {
		return config.DefaultTuning(), nil
	}
	return nil, config.ErrConfigNotFound
}
func (stubConfigs) ListConfigs() ([]*config.ConfigInfo, error) { return nil, nil }
func (stubConfigs) GetDefault() *config.Tuning                 { return config.DefaultTuning() }
func (stubConfigs) SaveConfig(string, *config.Tuning) error    { return nil }

func drivenSession(t *testing.T) *service.Session {
	t.Helper()
	sess := service.NewSession("a1b2", testSpec())
	for i := 0; i < 15; i++ {
		sess.Controller.Update(0.1, drive.Input{Forward: true, Left: true, ToggleCamera: i < 3})
	}
	sess.AppendEvent(service.TripEvent{Type: service.EventCameraToggle, Message: "Camera switched to follow mode"})
	sess.LastCollision = drive.ObstacleCollision
	return sess
}

func TestFilePersistence_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	persistence, err := NewFilePersistence(dir, stubConfigs{})
	if err != nil {
		t.Fatalf("Failed to create file persistence: %v", err)
	}

	sess := drivenSession(t)
	if err := persistence.Save(sess); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}
	if !persistence.Exists("a1b2") || !persistence.Exists("A1B2") {
		t.Error("Session file should exist after save")
	}
	if _, err := os.Stat(filepath.Join(dir, "a1b2.json.tmp")); !os.IsNotExist(err) {
		t.Error("Temporary file should not remain")
	}

	loaded, err := persistence.Load("a1b2")
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}

	if loaded.Controller.Frame() != sess.Controller.Frame() {
		t.Errorf("Frame mismatch:\n got %+v\nwant %+v", loaded.Controller.Frame(), sess.Controller.Frame())
	}
	if loaded.Controller.Frames() != 15 {
		t.Errorf("Expected 15 frames, got %d", loaded.Controller.Frames())
	}
	if len(loaded.World.Obstacles) != len(sess.World.Obstacles) || loaded.World.Seed != 11 {
		t.Errorf("World not restored: %d obstacles, seed %d", len(loaded.World.Obstacles), loaded.World.Seed)
	}
	if len(loaded.Events) != 1 || loaded.NextEventSeq != 2 {
		t.Errorf("Event log not restored: %+v next=%d", loaded.Events, loaded.NextEventSeq)
	}
	if loaded.LastCollision != drive.ObstacleCollision || loaded.Username != "octocat" {
		t.Errorf("Metadata not restored: %+v", loaded)
	}

	// The restored controller continues from the same state
	a := sess.Controller.Update(0.1, drive.Input{Forward: true})
	b := loaded.Controller.Update(0.1, drive.Input{Forward: true})
	if a != b {
		t.Errorf("Restored controller diverged:\n got %+v\nwant %+v", b, a)
	}
}

func TestFilePersistence_TuningFallback(t *testing.T) {
	dir := t.TempDir()
	persistence, _ := NewFilePersistence(dir, stubConfigs{})

	sess := drivenSession(t)
	sess.Tuning = nil
	if err := persistence.Save(sess); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	loaded, err := persistence.Load("a1b2")
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}
	if loaded.Tuning == nil || loaded.Tuning.Name != "Default" {
		t.Errorf("Expected tuning from config manager, got %+v", loaded.Tuning)
	}

	noConfigs, _ := NewFilePersistence(dir, nil)
	if _, err := noConfigs.Load("a1b2"); err == nil {
		t.Error("Expected error without tuning or config manager")
	}
}

func TestFilePersistence_DeleteAndList(t *testing.T) {
	dir := t.TempDir()
	persistence, _ := NewFilePersistence(dir, nil)

	for _, id := range []string{"aaaa", "bbbb"} {
		sess := service.NewSession(id, testSpec())
		if err := persistence.Save(sess); err != nil {
			t.Fatalf("Failed to save %s: %v", id, err)
		}
	}
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)
	os.Mkdir(filepath.Join(dir, "sub"), 0755)

	ids, err := persistence.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("Expected 2 IDs, got %v", ids)
	}

	if err := persistence.Delete("aaaa"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if persistence.Exists("aaaa") {
		t.Error("Expected file removed")
	}
	if err := persistence.Delete("aaaa"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
	if _, err := persistence.Load("aaaa"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound on load, got %v", err)
	}
}

func TestFilePersistence_RejectsUnsafeIDs(t *testing.T) {
	persistence, _ := NewFilePersistence(t.TempDir(), nil)
	sess := service.NewSession("../up", testSpec())
	if err := persistence.Save(sess); !errors.Is(err, ErrInvalidSessionID) {
		t.Errorf("Expected ErrInvalidSessionID, got %v", err)
	}
	if persistence.Exists("../up") {
		t.Error("Unsafe ID should never exist")
	}
}

func TestFilePersistence_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	persistence, _ := NewFilePersistence(dir, nil)
	os.WriteFile(filepath.Join(dir, "dead.json"), []byte("{not json"), 0644)

	if _, err := persistence.Load("dead"); err == nil {
		t.Error("Expected error for corrupt file")
	}
}
