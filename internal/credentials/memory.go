package credentials

import (
	"sync"
	"time"
)

// Memory is an in-process Store. It backs tests and environments where no
// OS keyring is available (CI, containers); nothing survives the process.
type Memory struct {
	mu        sync.Mutex
	token     string
	hasToken  bool
	user      []byte
	loginType string
	expiry    *time.Time
	listeners []func()
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) SaveToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.hasToken = true
	return nil
}

func (m *Memory) LoadToken() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hasToken {
		return "", ErrNotFound
	}
	return m.token, nil
}

func (m *Memory) DeleteToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.hasToken = false
	return nil
}

func (m *Memory) SaveUser(raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = append([]byte(nil), raw...)
	return nil
}

func (m *Memory) LoadUser() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.user) == 0 {
		return nil, ErrNotFound
	}
	return m.user, nil
}

func (m *Memory) DeleteUser() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	return nil
}

func (m *Memory) SaveLoginType(loginType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loginType = loginType
	return nil
}

func (m *Memory) LoadLoginType() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loginType == "" {
		return "", ErrNotFound
	}
	return m.loginType, nil
}

func (m *Memory) DeleteLoginType() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loginType = ""
	return nil
}

func (m *Memory) SaveTokenExpiry(at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expiry = &at
	return nil
}

func (m *Memory) LoadTokenExpiry() (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.expiry == nil {
		return time.Time{}, ErrNotFound
	}
	return *m.expiry, nil
}

func (m *Memory) Invalidate() error {
	m.mu.Lock()
	m.token = ""
	m.hasToken = false
	m.user = nil
	m.expiry = nil
	listeners := append([]func(){}, m.listeners...)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
	return nil
}

func (m *Memory) OnInvalidate(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}
