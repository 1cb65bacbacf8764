package session

import (
	"github.com/datahuba/kyc-client/internal/types"
)

// LoginType selects which login flow a subsequent Login call uses.
// It is independent of authentication status and survives logout so the
// caller knows which login form/flow to present.
type LoginType string

const (
	LoginTypeAdmin   LoginType = "admin"
	LoginTypeStudent LoginType = "student"
	LoginTypeUnset   LoginType = ""
)

// State is a point-in-time copy of the session aggregate. Observers receive
// State values; mutating one has no effect on the store.
type State struct {
	User            *types.User
	Token           string
	IsAuthenticated bool
	Loading         bool
	Err             string
	LoginType       LoginType
}

// Role is derived from the identity record; it is never stored separately,
// so it cannot diverge from User.Role.
func (s State) Role() string {
	if s.User != nil {
		return s.User.Role
	}
	return ""
}

// clone deep-copies the state so subscribers cannot alias the store's user
// record.
func (s State) clone() State {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	return out
}
