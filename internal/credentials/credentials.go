// Package credentials persists the authenticated session's durable state:
// the bearer token in the OS keychain, and the user record, login type and
// token-expiry marker in a JSON state file under the user's config directory.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zalando/go-keyring"
)

const (
	service       = "kyc-cli"
	tokenKey      = "auth-token"
	configDirName = "kyc"
	stateFileName = "session.json"
)

// ErrNotFound is returned when a requested credential is not stored
var ErrNotFound = errors.New("credential not found")

// Store is the durable storage consumed by the request pipeline and the
// session store. Implementations must serialize mutations; callers may hit
// the store from concurrent requests.
type Store interface {
	SaveToken(token string) error
	LoadToken() (string, error)
	DeleteToken() error

	SaveUser(raw []byte) error
	LoadUser() ([]byte, error)
	DeleteUser() error

	SaveLoginType(loginType string) error
	LoadLoginType() (string, error)
	DeleteLoginType() error

	SaveTokenExpiry(at time.Time) error
	LoadTokenExpiry() (time.Time, error)

	// Invalidate atomically removes token, user record and expiry marker
	// (login type survives) and then notifies registered listeners. The
	// pipeline calls it on any 401 response.
	Invalidate() error
	OnInvalidate(fn func())
}

// stateFile is the on-disk layout of ~/.config/kyc/session.json
type stateFile struct {
	User        json.RawMessage `json:"user,omitempty"`
	LoginType   string          `json:"login_type,omitempty"`
	TokenExpiry *time.Time      `json:"token_expiry,omitempty"`
}

// KeyringStore keeps the token in the OS keychain/credential manager and the
// rest of the session state in a JSON file.
type KeyringStore struct {
	mu        sync.Mutex
	statePath string
	listeners []func()
}

var _ Store = (*KeyringStore)(nil)

// NewKeyringStore creates a store rooted at the user's config directory
func NewKeyringStore() (*KeyringStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	statePath := filepath.Join(homeDir, ".config", configDirName, stateFileName)
	return &KeyringStore{statePath: statePath}, nil
}

func (s *KeyringStore) SaveToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := keyring.Set(service, tokenKey, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (s *KeyringStore) LoadToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, err := keyring.Get(service, tokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

func (s *KeyringStore) DeleteToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteTokenLocked()
}

func (s *KeyringStore) deleteTokenLocked() error {
	if err := keyring.Delete(service, tokenKey); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // already deleted
		}
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

func (s *KeyringStore) SaveUser(raw []byte) error {
	return s.mutateState(func(st *stateFile) {
		st.User = append([]byte(nil), raw...)
	})
}

func (s *KeyringStore) LoadUser() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.loadState()
	if err != nil {
		return nil, err
	}
	if len(st.User) == 0 {
		return nil, ErrNotFound
	}
	return st.User, nil
}

func (s *KeyringStore) DeleteUser() error {
	return s.mutateState(func(st *stateFile) {
		st.User = nil
	})
}

func (s *KeyringStore) SaveLoginType(loginType string) error {
	return s.mutateState(func(st *stateFile) {
		st.LoginType = loginType
	})
}

func (s *KeyringStore) LoadLoginType() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.loadState()
	if err != nil {
		return "", err
	}
	if st.LoginType == "" {
		return "", ErrNotFound
	}
	return st.LoginType, nil
}

func (s *KeyringStore) DeleteLoginType() error {
	return s.mutateState(func(st *stateFile) {
		st.LoginType = ""
	})
}

func (s *KeyringStore) SaveTokenExpiry(at time.Time) error {
	return s.mutateState(func(st *stateFile) {
		st.TokenExpiry = &at
	})
}

func (s *KeyringStore) LoadTokenExpiry() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.loadState()
	if err != nil {
		return time.Time{}, err
	}
	if st.TokenExpiry == nil {
		return time.Time{}, ErrNotFound
	}
	return *st.TokenExpiry, nil
}

func (s *KeyringStore) Invalidate() error {
	s.mu.Lock()
	tokenErr := s.deleteTokenLocked()
	stateErr := s.mutateStateLocked(func(st *stateFile) {
		st.User = nil
		st.TokenExpiry = nil
	})
	listeners := append([]func(){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
	return errors.Join(tokenErr, stateErr)
}

func (s *KeyringStore) OnInvalidate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *KeyringStore) mutateState(mutate func(*stateFile)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutateStateLocked(mutate)
}

func (s *KeyringStore) mutateStateLocked(mutate func(*stateFile)) error {
	st, err := s.loadState()
	if err != nil {
		return err
	}
	mutate(st)
	return s.saveState(st)
}

func (s *KeyringStore) loadState() (*stateFile, error) {
	data, err := os.ReadFile(s.statePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &stateFile{}, nil
		}
		return nil, fmt.Errorf("failed to read session state file: %w", err)
	}

	var st stateFile
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to parse session state file: %w", err)
	}
	return &st, nil
}

func (s *KeyringStore) saveState(st *stateFile) error {
	dir := filepath.Dir(s.statePath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}

	if err := os.WriteFile(s.statePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write session state file: %w", err)
	}
	return nil
}
