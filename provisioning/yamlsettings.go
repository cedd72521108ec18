package provisioning

import (
	"os"
	"sync"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// YAMLSettings is a [Settings] backend persisting to a single YAML
// file, simulating the external NVS contract without depending on real
// flash. Writes replace the file atomically via renameio so a crash
// mid-write never leaves a truncated or torn settings file behind.
type YAMLSettings struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// NewYAMLSettings loads (or initializes, if absent) a YAML settings
// file at path.
func NewYAMLSettings(path string) (*YAMLSettings, error) {
	s := &YAMLSettings{path: path, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return s, nil
	}
	if err := yaml.Unmarshal(raw, &s.data); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the value for key and whether it was present.
func (s *YAMLSettings) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

// Set stores value under key and persists the whole map atomically.
func (s *YAMLSettings) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.flushLocked()
}

// Delete removes key and persists the whole map atomically. Deleting
// an absent key is not an error.
func (s *YAMLSettings) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return s.flushLocked()
}

func (s *YAMLSettings) flushLocked() error {
	raw, err := yaml.Marshal(s.data)
	if err != nil {
		return err
	}
	return renameio.WriteFile(s.path, raw, 0o600)
}
