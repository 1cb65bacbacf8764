// Package session owns the authenticated-session aggregate: who is logged
// in, as what role, with what token. All mutation flows through the four
// operations; readers subscribe or take snapshots.
package session

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/datahuba/kyc-client/internal/api"
	"github.com/datahuba/kyc-client/internal/auth"
	"github.com/datahuba/kyc-client/internal/credentials"
	"github.com/datahuba/kyc-client/internal/types"
)

// ErrLoginInFlight is returned when Login is called while another login has
// not finished. At most one login may be outstanding per session.
var ErrLoginInFlight = errors.New("login already in progress")

// ErrAlreadyAuthenticated is returned when Login is called on an
// authenticated session. There is no authenticated-to-logging-in
// transition; callers log out first.
var ErrAlreadyAuthenticated = errors.New("already authenticated, log out first")

// ErrSessionInvalidated is returned when a login completes after the session
// was torn down mid-flight (logout or a 401 elsewhere in the pipeline).
var ErrSessionInvalidated = errors.New("session invalidated during login")

// Gateway is the slice of the auth gateway the store consumes
type Gateway interface {
	LoginAdmin(auth.Credentials) (*auth.LoginResponse, error)
	LoginStudent(auth.Credentials) (*auth.LoginResponse, error)
	Me() (*types.User, error)
}

// Store is the single source of truth for session state
type Store struct {
	mu      sync.Mutex
	state   State
	epoch   uint64
	gateway Gateway
	creds   credentials.Store
	log     zerolog.Logger

	subs      map[int]func(State)
	nextSubID int
}

// New creates a session store. It registers with the credential store so a
// 401-triggered purge anywhere in the pipeline also resets in-memory state.
func New(gateway Gateway, creds credentials.Store) *Store {
	s := &Store{
		gateway: gateway,
		creds:   creds,
		log:     log.Logger,
		subs:    make(map[int]func(State)),
	}
	creds.OnInvalidate(s.handleInvalidate)
	return s
}

// Snapshot returns a copy of the current session state
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers an observer called with a state copy after every
// committed mutation. The returned function unsubscribes.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// SetLoginType persists the active login type and then commits it to
// in-memory state. LoginTypeUnset clears the persisted value. Persistence
// failure leaves the state untouched so memory and disk never diverge.
func (s *Store) SetLoginType(t LoginType) error {
	var err error
	if t == LoginTypeUnset {
		err = s.creds.DeleteLoginType()
	} else {
		err = s.creds.SaveLoginType(string(t))
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.state.LoginType = t
	st, subs := s.committedLocked()
	s.mu.Unlock()
	s.notify(st, subs)
	return nil
}

// Login runs the full login flow for the configured login type: exchange
// credentials for a token, persist it, fetch the identity record, persist it,
// commit the authenticated state. On failure the error is recorded as a
// user-facing message and returned for the caller to handle further.
func (s *Store) Login(creds auth.Credentials) error {
	s.mu.Lock()
	if s.state.Loading {
		s.mu.Unlock()
		return ErrLoginInFlight
	}
	if s.state.IsAuthenticated {
		s.mu.Unlock()
		return ErrAlreadyAuthenticated
	}
	loginType := s.state.LoginType
	epoch := s.epoch
	s.state.Loading = true
	s.state.Err = ""
	st, subs := s.committedLocked()
	s.mu.Unlock()
	s.notify(st, subs)

	if err := s.doLogin(loginType, creds, epoch); err != nil {
		api.LogError(err)
		s.mu.Lock()
		s.state.Loading = false
		s.state.Err = api.UserMessage(api.KindOf(err))
		st, subs := s.committedLocked()
		s.mu.Unlock()
		s.notify(st, subs)
		return err
	}
	return nil
}

func (s *Store) doLogin(loginType LoginType, creds auth.Credentials, epoch uint64) error {
	var resp *auth.LoginResponse
	var err error
	if loginType == LoginTypeStudent {
		resp, err = s.gateway.LoginStudent(creds)
	} else {
		// Admin flow is the default when no type was configured
		resp, err = s.gateway.LoginAdmin(creds)
	}
	if err != nil {
		return err
	}

	if err := s.creds.SaveToken(resp.AccessToken); err != nil {
		return err
	}
	if expiry, ok := tokenExpiry(resp.AccessToken); ok {
		if err := s.creds.SaveTokenExpiry(expiry); err != nil {
			s.log.Warn().Err(err).Msg("failed to persist token expiry")
		}
	}

	user, err := s.gateway.Me()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.creds.SaveUser(raw); err != nil {
		return err
	}

	s.mu.Lock()
	if s.epoch != epoch {
		// The session was torn down while this login was in flight; purge
		// what was just persisted instead of resurrecting it.
		s.mu.Unlock()
		if err := s.creds.Invalidate(); err != nil {
			s.log.Warn().Err(err).Msg("failed to purge credentials of stale login")
		}
		return ErrSessionInvalidated
	}
	s.state = State{
		User:            user,
		Token:           resp.AccessToken,
		IsAuthenticated: true,
		LoginType:       loginType,
	}
	st, subs := s.committedLocked()
	s.mu.Unlock()
	s.notify(st, subs)
	return nil
}

// Logout clears all persisted credential data and resets in-memory state,
// then restores only the persisted login type. Idempotent.
func (s *Store) Logout() error {
	err := s.creds.Invalidate()
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to clear credentials on logout")
	}

	loginType := LoginTypeUnset
	if v, lerr := s.creds.LoadLoginType(); lerr == nil {
		loginType = LoginType(v)
	}

	s.mu.Lock()
	s.epoch++
	s.state = State{LoginType: loginType}
	st, subs := s.committedLocked()
	s.mu.Unlock()
	s.notify(st, subs)
	return err
}

// Init rehydrates the session from durable storage, once, at startup. No
// network round-trip: a stored token plus a parseable user record restore
// full authenticated state; anything less degrades to the unauthenticated
// default with the login type retained.
func (s *Store) Init() {
	loginType := LoginTypeUnset
	if v, err := s.creds.LoadLoginType(); err == nil {
		loginType = LoginType(v)
	}

	token, tokenErr := s.creds.LoadToken()
	raw, userErr := s.creds.LoadUser()

	if tokenErr == nil && userErr == nil && token != "" {
		var user types.User
		if err := json.Unmarshal(raw, &user); err != nil {
			s.log.Error().Err(err).Msg("corrupt stored user record, clearing session")
			if derr := s.creds.DeleteToken(); derr != nil {
				s.log.Warn().Err(derr).Msg("failed to delete token")
			}
			if derr := s.creds.DeleteUser(); derr != nil {
				s.log.Warn().Err(derr).Msg("failed to delete user record")
			}
			s.replace(State{LoginType: loginType})
			return
		}
		s.replace(State{
			User:            &user,
			Token:           token,
			IsAuthenticated: true,
			LoginType:       loginType,
		})
		return
	}

	s.replace(State{LoginType: loginType})
}

// handleInvalidate runs when the credential store is purged, typically by
// the pipeline's 401 handler. Bumping the epoch makes any in-flight login
// discard its result.
func (s *Store) handleInvalidate() {
	s.mu.Lock()
	s.epoch++
	s.state = State{LoginType: s.state.LoginType}
	st, subs := s.committedLocked()
	s.mu.Unlock()
	s.notify(st, subs)
}

func (s *Store) replace(st State) {
	s.mu.Lock()
	s.state = st
	out, subs := s.committedLocked()
	s.mu.Unlock()
	s.notify(out, subs)
}

// committedLocked captures the state copy and subscriber list to publish
// after the lock is released; callbacks never run under the store lock.
func (s *Store) committedLocked() (State, []func(State)) {
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return s.state.clone(), subs
}

func (s *Store) notify(st State, subs []func(State)) {
	for _, fn := range subs {
		fn(st)
	}
}

// tokenExpiry extracts the exp claim from a JWT without verifying the
// signature; verification is the backend's job, the client only needs the
// expiry marker.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
