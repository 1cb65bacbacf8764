package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datahuba/kyc-client/internal/api"
	"github.com/datahuba/kyc-client/internal/auth"
	"github.com/datahuba/kyc-client/internal/credentials"
	"github.com/datahuba/kyc-client/internal/types"
)

// fakeGateway scripts the backend responses so store behavior can be tested
// without the request pipeline.
type fakeGateway struct {
	adminCalls   int
	studentCalls int
	loginResp    *auth.LoginResponse
	loginErr     error
	user         *types.User
	meErr        error

	// beforeMe runs between the login exchange and the identity fetch,
	// simulating events that land mid-flight.
	beforeMe func()
}

func (f *fakeGateway) LoginAdmin(auth.Credentials) (*auth.LoginResponse, error) {
	f.adminCalls++
	return f.loginResp, f.loginErr
}

func (f *fakeGateway) LoginStudent(auth.Credentials) (*auth.LoginResponse, error) {
	f.studentCalls++
	return f.loginResp, f.loginErr
}

func (f *fakeGateway) Me() (*types.User, error) {
	if f.beforeMe != nil {
		f.beforeMe()
	}
	return f.user, f.meErr
}

// unsignedJWT builds a structurally valid JWT with the given exp claim. The
// store never verifies signatures, so an empty one is enough.
func unsignedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	enc := func(v any) string {
		data, err := json.Marshal(v)
		require.NoError(t, err)
		return base64.RawURLEncoding.EncodeToString(data)
	}
	header := enc(map[string]string{"alg": "none", "typ": "JWT"})
	claims := enc(map[string]int64{"exp": exp.Unix()})
	return fmt.Sprintf("%s.%s.", header, claims)
}

func testUser() *types.User {
	return &types.User{ID: "u1", Username: "ana", Role: "student", Active: true}
}

func TestStore_LoginStudentSuccess(t *testing.T) {
	gw := &fakeGateway{
		loginResp: &auth.LoginResponse{AccessToken: "abc"},
		user:      testUser(),
	}
	creds := credentials.NewMemory()
	store := New(gw, creds)
	require.NoError(t, store.SetLoginType(LoginTypeStudent))

	err := store.Login(auth.Credentials{Username: "ana", Password: "pw"})
	require.NoError(t, err)

	st := store.Snapshot()
	assert.True(t, st.IsAuthenticated)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Err)
	assert.Equal(t, "abc", st.Token)
	assert.Equal(t, "student", st.Role())
	assert.Equal(t, LoginTypeStudent, st.LoginType)
	assert.Equal(t, 1, gw.studentCalls)
	assert.Zero(t, gw.adminCalls)

	token, err := creds.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
	raw, err := creds.LoadUser()
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"u1","username":"ana","email":"","role":"student","activo":true,"ultimo_acceso":"","created_at":"","updated_at":""}`, string(raw))
}

func TestStore_LoginDefaultsToAdmin(t *testing.T) {
	gw := &fakeGateway{
		loginResp: &auth.LoginResponse{AccessToken: "abc"},
		user:      &types.User{ID: "u2", Role: "admin"},
	}
	store := New(gw, credentials.NewMemory())

	require.NoError(t, store.Login(auth.Credentials{Username: "root", Password: "pw"}))
	assert.Equal(t, 1, gw.adminCalls)
	assert.Zero(t, gw.studentCalls)
}

func TestStore_LoginFailureRecordsUserMessage(t *testing.T) {
	netErr := &api.AppError{Message: "network error", Kind: api.KindNetwork}
	gw := &fakeGateway{loginErr: netErr}
	store := New(gw, credentials.NewMemory())

	err := store.Login(auth.Credentials{Username: "ana", Password: "pw"})
	require.Error(t, err)
	assert.True(t, api.IsKind(err, api.KindNetwork))

	st := store.Snapshot()
	assert.False(t, st.IsAuthenticated)
	assert.False(t, st.Loading)
	assert.Equal(t, api.UserMessage(api.KindNetwork), st.Err)
}

func TestStore_LoginRejectsConcurrentAttempt(t *testing.T) {
	gw := &fakeGateway{
		loginResp: &auth.LoginResponse{AccessToken: "abc"},
		user:      testUser(),
	}
	var store *Store
	var nested error
	gw.beforeMe = func() {
		nested = store.Login(auth.Credentials{Username: "x", Password: "y"})
	}
	store = New(gw, credentials.NewMemory())

	require.NoError(t, store.Login(auth.Credentials{Username: "ana", Password: "pw"}))
	assert.ErrorIs(t, nested, ErrLoginInFlight)
}

func TestStore_LoginRejectedWhileAuthenticated(t *testing.T) {
	gw := &fakeGateway{
		loginResp: &auth.LoginResponse{AccessToken: "abc"},
		user:      testUser(),
	}
	store := New(gw, credentials.NewMemory())
	require.NoError(t, store.Login(auth.Credentials{Username: "ana", Password: "pw"}))

	// A failing re-login must not be attempted; the session stays intact
	gw.loginErr = &api.AppError{Message: "network error", Kind: api.KindNetwork}
	err := store.Login(auth.Credentials{Username: "ana", Password: "pw"})
	assert.ErrorIs(t, err, ErrAlreadyAuthenticated)

	st := store.Snapshot()
	assert.True(t, st.IsAuthenticated)
	assert.Empty(t, st.Err)
	assert.Equal(t, "abc", st.Token)
	assert.Equal(t, 1, gw.adminCalls, "the gateway must not see a second login")
}

// failingCreds wraps a Store to make login-type persistence fail
type failingCreds struct {
	credentials.Store
	saveErr error
}

func (f *failingCreds) SaveLoginType(string) error { return f.saveErr }

func TestStore_SetLoginTypePersistenceFailureLeavesStateUntouched(t *testing.T) {
	creds := &failingCreds{Store: credentials.NewMemory(), saveErr: errors.New("disk full")}
	store := New(&fakeGateway{}, creds)

	notified := false
	store.Subscribe(func(State) { notified = true })

	err := store.SetLoginType(LoginTypeStudent)
	assert.ErrorIs(t, err, creds.saveErr)
	assert.Equal(t, LoginTypeUnset, store.Snapshot().LoginType)
	assert.False(t, notified, "no commit means no notification")
}

func TestStore_LoginPersistsTokenExpiry(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	gw := &fakeGateway{
		loginResp: &auth.LoginResponse{AccessToken: unsignedJWT(t, exp)},
		user:      testUser(),
	}
	creds := credentials.NewMemory()
	store := New(gw, creds)

	require.NoError(t, store.Login(auth.Credentials{Username: "ana", Password: "pw"}))

	got, err := creds.LoadTokenExpiry()
	require.NoError(t, err)
	assert.True(t, got.Equal(exp), "got %v, want %v", got, exp)
}

func TestStore_LoginOpaqueTokenSkipsExpiry(t *testing.T) {
	gw := &fakeGateway{
		loginResp: &auth.LoginResponse{AccessToken: "not-a-jwt"},
		user:      testUser(),
	}
	creds := credentials.NewMemory()
	store := New(gw, creds)

	require.NoError(t, store.Login(auth.Credentials{Username: "ana", Password: "pw"}))
	_, err := creds.LoadTokenExpiry()
	assert.ErrorIs(t, err, credentials.ErrNotFound)
}

func TestStore_LoginInvalidatedMidFlight(t *testing.T) {
	creds := credentials.NewMemory()
	gw := &fakeGateway{
		loginResp: &auth.LoginResponse{AccessToken: "abc"},
		user:      testUser(),
	}
	var store *Store
	gw.beforeMe = func() {
		// A 401 elsewhere purges credentials while this login is waiting
		// on the identity fetch.
		require.NoError(t, creds.Invalidate())
	}
	store = New(gw, creds)

	err := store.Login(auth.Credentials{Username: "ana", Password: "pw"})
	assert.ErrorIs(t, err, ErrSessionInvalidated)

	st := store.Snapshot()
	assert.False(t, st.IsAuthenticated)
	_, terr := creds.LoadToken()
	assert.ErrorIs(t, terr, credentials.ErrNotFound, "stale login must not resurrect the token")
	_, uerr := creds.LoadUser()
	assert.ErrorIs(t, uerr, credentials.ErrNotFound)
}

func TestStore_LogoutIsIdempotent(t *testing.T) {
	gw := &fakeGateway{
		loginResp: &auth.LoginResponse{AccessToken: "abc"},
		user:      testUser(),
	}
	creds := credentials.NewMemory()
	store := New(gw, creds)
	require.NoError(t, store.SetLoginType(LoginTypeAdmin))
	require.NoError(t, store.Login(auth.Credentials{Username: "ana", Password: "pw"}))

	require.NoError(t, store.Logout())
	st := store.Snapshot()
	assert.False(t, st.IsAuthenticated)
	assert.Empty(t, st.Token)
	assert.Nil(t, st.User)
	assert.Equal(t, LoginTypeAdmin, st.LoginType, "login type survives logout")

	_, err := creds.LoadToken()
	assert.ErrorIs(t, err, credentials.ErrNotFound)

	// Logging out again changes nothing and reports no error
	require.NoError(t, store.Logout())
	assert.Equal(t, st, store.Snapshot())
}

func TestStore_InitRehydratesPersistedSession(t *testing.T) {
	creds := credentials.NewMemory()
	require.NoError(t, creds.SaveToken("abc"))
	require.NoError(t, creds.SaveLoginType("student"))
	raw, err := json.Marshal(testUser())
	require.NoError(t, err)
	require.NoError(t, creds.SaveUser(raw))

	store := New(&fakeGateway{}, creds)
	store.Init()

	st := store.Snapshot()
	assert.True(t, st.IsAuthenticated)
	assert.Equal(t, "abc", st.Token)
	assert.Equal(t, "student", st.Role())
	assert.Equal(t, LoginTypeStudent, st.LoginType)
	require.NotNil(t, st.User)
	assert.Equal(t, "u1", st.User.ID)
}

func TestStore_InitWithoutTokenStaysUnauthenticated(t *testing.T) {
	creds := credentials.NewMemory()
	require.NoError(t, creds.SaveLoginType("admin"))

	store := New(&fakeGateway{}, creds)
	store.Init()

	st := store.Snapshot()
	assert.False(t, st.IsAuthenticated)
	assert.Equal(t, LoginTypeAdmin, st.LoginType)
}

func TestStore_InitCorruptUserRecordPurges(t *testing.T) {
	creds := credentials.NewMemory()
	require.NoError(t, creds.SaveToken("abc"))
	require.NoError(t, creds.SaveUser([]byte("{broken")))

	store := New(&fakeGateway{}, creds)
	store.Init()

	st := store.Snapshot()
	assert.False(t, st.IsAuthenticated)
	_, err := creds.LoadToken()
	assert.ErrorIs(t, err, credentials.ErrNotFound, "corrupt record must purge the token too")
	_, err = creds.LoadUser()
	assert.ErrorIs(t, err, credentials.ErrNotFound)
}

func TestStore_SubscribeAndUnsubscribe(t *testing.T) {
	gw := &fakeGateway{
		loginResp: &auth.LoginResponse{AccessToken: "abc"},
		user:      testUser(),
	}
	store := New(gw, credentials.NewMemory())

	var seen []State
	unsubscribe := store.Subscribe(func(st State) { seen = append(seen, st) })

	require.NoError(t, store.Login(auth.Credentials{Username: "ana", Password: "pw"}))
	// loading=true first, then the committed authenticated state
	require.GreaterOrEqual(t, len(seen), 2)
	assert.True(t, seen[0].Loading)
	last := seen[len(seen)-1]
	assert.True(t, last.IsAuthenticated)
	assert.False(t, last.Loading)

	count := len(seen)
	unsubscribe()
	require.NoError(t, store.Logout())
	assert.Len(t, seen, count, "unsubscribed observer must not be notified")
}

func TestStore_SubscriberGetsCopy(t *testing.T) {
	gw := &fakeGateway{
		loginResp: &auth.LoginResponse{AccessToken: "abc"},
		user:      testUser(),
	}
	store := New(gw, credentials.NewMemory())

	store.Subscribe(func(st State) {
		if st.User != nil {
			st.User.Role = "tampered"
		}
	})
	require.NoError(t, store.Login(auth.Credentials{Username: "ana", Password: "pw"}))

	assert.Equal(t, "student", store.Snapshot().Role())
}

func TestStore_ExternalInvalidateResetsState(t *testing.T) {
	gw := &fakeGateway{
		loginResp: &auth.LoginResponse{AccessToken: "abc"},
		user:      testUser(),
	}
	creds := credentials.NewMemory()
	store := New(gw, creds)
	require.NoError(t, store.SetLoginType(LoginTypeStudent))
	require.NoError(t, store.Login(auth.Credentials{Username: "ana", Password: "pw"}))

	// the pipeline's 401 handler calls Invalidate directly
	require.NoError(t, creds.Invalidate())

	st := store.Snapshot()
	assert.False(t, st.IsAuthenticated)
	assert.Nil(t, st.User)
	assert.Equal(t, LoginTypeStudent, st.LoginType)
}

func TestStore_LoginErrorIsReturnedVerbatim(t *testing.T) {
	sentinel := errors.New("backend down")
	gw := &fakeGateway{loginErr: sentinel}
	store := New(gw, credentials.NewMemory())

	err := store.Login(auth.Credentials{Username: "a", Password: "b"})
	assert.ErrorIs(t, err, sentinel)
}
