package state

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const (
	// keyringService is the service name used for keychain entries.
	keyringService = "docwriter"
	apiKeyEntry    = "api-key"
	apiKeyStateKey = "api_key"
)

// Secrets stores the personal API key in the OS keychain (macOS Keychain,
// Linux Secret Service, Windows Credential Manager), falling back to the
// state file on hosts without a usable keychain.
type Secrets struct {
	store *Store
}

// NewSecrets creates secret storage backed by the given state store.
func NewSecrets(store *Store) *Secrets {
	return &Secrets{store: store}
}

// APIKey returns the stored personal API key, or empty when none is set.
func (s *Secrets) APIKey() string {
	if v, err := keyring.Get(keyringService, apiKeyEntry); err == nil && v != "" {
		return v
	}
	return s.store.GetString(apiKeyStateKey, "")
}

// SetAPIKey stores the key in the keychain, or in the state file when the
// keychain is unavailable.
func (s *Secrets) SetAPIKey(value string) error {
	if err := keyring.Set(keyringService, apiKeyEntry, value); err == nil {
		return nil
	}
	return s.store.Set(apiKeyStateKey, value)
}

// DeleteAPIKey removes the key from both backends.
func (s *Secrets) DeleteAPIKey() error {
	if err := keyring.Delete(keyringService, apiKeyEntry); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		// Keychain refused the delete; still clear the fallback copy.
		_ = s.store.Set(apiKeyStateKey, "")
		return err
	}
	return s.store.Set(apiKeyStateKey, "")
}
