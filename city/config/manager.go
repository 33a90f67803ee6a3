package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Manager handles tuning file loading and caching
type Manager struct {
	configDir     string
	defaultTuning *Tuning
	configs       map[string]*Tuning
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*Tuning),
	}

	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	return m, nil
}

// LoadConfig loads a tuning by name, with or without the .json suffix
func (m *Manager) LoadConfig(name string) (*Tuning, error) {
	name = configID(name)

	m.mu.RLock()
	if tuning, exists := m.configs[name]; exists {
		m.mu.RUnlock()
		return tuning, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if tuning, exists := m.configs[name]; exists {
		return tuning, nil
	}

	if strings.ContainsAny(name, `/\`) {
		return nil, ErrConfigNotFound
	}

	data, err := os.ReadFile(filepath.Join(m.configDir, name+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var tuning Tuning
	if err := json.Unmarshal(data, &tuning); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := ValidateTuning(&tuning); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	m.configs[name] = &tuning
	return &tuning, nil
}

// ListConfigs returns information about every valid tuning file, sorted by ID
func (m *Manager) ListConfigs() ([]*ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	configs := []*ConfigInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		id := configID(entry.Name())
		tuning, err := m.LoadConfig(id)
		if err != nil {
			// Skip invalid configs
			continue
		}
		configs = append(configs, tuning.Info(id))
	}

	sort.Slice(configs, func(i, j int) bool { return configs[i].ConfigID < configs[j].ConfigID })
	return configs, nil
}

// GetDefault returns the default tuning
func (m *Manager) GetDefault() *Tuning {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultTuning
}

// SetDefault sets the default tuning by name
func (m *Manager) SetDefault(name string) error {
	tuning, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultTuning = tuning
	return nil
}

// RefreshCache drops cached tunings and reloads the default
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*Tuning)
	m.mu.Unlock()

	return m.loadDefaultConfig()
}

// loadDefaultConfig prefers default.json, then the first valid file, then
// the built-in tuning
func (m *Manager) loadDefaultConfig() error {
	tuning, err := m.LoadConfig(DefaultConfigID)
	if err != nil {
		configs, listErr := m.ListConfigs()
		if listErr != nil || len(configs) == 0 {
			m.setDefault(DefaultTuning())
			return nil
		}

		tuning, err = m.LoadConfig(configs[0].ConfigID)
		if err != nil {
			m.setDefault(DefaultTuning())
			return nil
		}
	}

	m.setDefault(tuning)
	return nil
}

func (m *Manager) setDefault(t *Tuning) {
	m.mu.Lock()
	m.defaultTuning = t
	m.mu.Unlock()
}

// SaveConfig validates and writes a tuning to disk
func (m *Manager) SaveConfig(name string, tuning *Tuning) error {
	if err := ValidateTuning(tuning); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	name = configID(name)
	if name == "" || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: invalid config name %q", ErrInvalidConfig, name)
	}

	data, err := json.MarshalIndent(tuning, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(m.configDir, name+".json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[name] = tuning
	m.mu.Unlock()

	return nil
}

func configID(name string) string {
	return strings.TrimSuffix(name, ".json")
}

// LoadTuning opens dir and returns the named tuning, or its default when
// name is empty. Without a config dir only the built-in default is available.
func LoadTuning(dir, name string) (*Tuning, error) {
	m, err := NewManager(dir)
	if err != nil {
		if name == "" {
			return DefaultTuning(), nil
		}
		return nil, err
	}
	if name == "" {
		return m.GetDefault(), nil
	}
	return m.LoadConfig(name)
}
