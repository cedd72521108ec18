package provisioning

import (
	"github.com/ardnew/emberhal/pkg"
)

// Settings keys under which credentials are persisted.
const (
	SettingsKeySSID     = "wifi_prov/ssid"
	SettingsKeyPSK      = "wifi_prov/psk"
	SettingsKeySecurity = "wifi_prov/sec"
)

// Settings is the narrow external persistence contract provisioning
// depends on. It stands in for a platform's NVS/flash settings store;
// this package does not assume anything about its durability beyond
// get/set/delete semantics.
type Settings interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// Store persists and loads [Credentials] through a [Settings] backend.
type Store struct {
	settings Settings
}

// NewStore wraps a Settings backend.
func NewStore(settings Settings) *Store {
	return &Store{settings: settings}
}

// Load reads credentials from the settings backend. An absent or
// empty SSID reports [pkg.ErrNotPresent].
func (s *Store) Load() (Credentials, error) {
	var c Credentials

	ssid, ok := s.settings.Get(SettingsKeySSID)
	if !ok || len(ssid) == 0 {
		return c, pkg.ErrNotPresent
	}
	c.SSID = ssid

	psk, _ := s.settings.Get(SettingsKeyPSK)
	c.PSK = psk

	secStr, ok := s.settings.Get(SettingsKeySecurity)
	if ok && len(secStr) == 1 {
		c.Security = Security(secStr[0])
	}

	return c, nil
}

// Save writes credentials to the settings backend and returns the
// first error from its Set calls. This package has no background
// writer: a yaml-backed [Settings] implementation commits to disk
// synchronously inside Set, so Save's return includes that write.
func (s *Store) Save(c Credentials) error {
	if err := s.settings.Set(SettingsKeySSID, c.SSID); err != nil {
		return err
	}
	if err := s.settings.Set(SettingsKeyPSK, c.PSK); err != nil {
		return err
	}
	return s.settings.Set(SettingsKeySecurity, string([]byte{byte(c.Security)}))
}

// Erase removes all persisted credential keys. Best-effort: the first
// error encountered is returned, but subsequent keys are still
// attempted.
func (s *Store) Erase() error {
	var firstErr error
	for _, key := range []string{SettingsKeySSID, SettingsKeyPSK, SettingsKeySecurity} {
		if err := s.settings.Delete(key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
