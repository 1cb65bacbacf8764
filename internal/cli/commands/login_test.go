package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/datahuba/kyc-client/internal/api"
	"github.com/datahuba/kyc-client/internal/auth"
	"github.com/datahuba/kyc-client/internal/credentials"
	"github.com/datahuba/kyc-client/internal/services"
	"github.com/datahuba/kyc-client/internal/session"
)

// newTestApp wires a full stack against a fake backend: real pipeline, real
// session store, in-memory credentials.
func newTestApp(t *testing.T, handler http.HandlerFunc) (*App, credentials.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	creds := credentials.NewMemory()
	client := api.New(srv.URL, creds)
	client.SetMaxRetries(0)
	store := session.New(auth.NewGateway(client), creds)
	store.Init()

	return &App{
		Session:     store,
		Courses:     services.NewCourseService(client),
		Students:    services.NewStudentService(client),
		Payments:    services.NewPaymentService(client),
		Enrollments: services.NewEnrollmentService(client),
		Discounts:   services.NewDiscountService(client),
		Users:       services.NewUserService(client),
	}, creds
}

func loginBackend(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login", "/api/v1/auth/login/student":
			json.NewEncoder(w).Encode(auth.LoginResponse{AccessToken: "tok"})
		case "/api/v1/auth/me":
			w.Write([]byte(`{"_id":"u1","username":"ana","email":"ana@example.com","role":"student","activo":true}`))
		default:
			http.NotFound(w, r)
		}
	}
}

func TestRunLogin_Success(t *testing.T) {
	app, creds := newTestApp(t, loginBackend(t))
	var out bytes.Buffer

	err := runLogin(app, session.LoginTypeStudent, "ana", "secret", &out)
	if err != nil {
		t.Fatal(err)
	}

	text := out.String()
	if !strings.Contains(text, "Login successful") {
		t.Errorf("missing success message in output:\n%s", text)
	}
	if !strings.Contains(text, "ana (ana@example.com)") {
		t.Errorf("missing user line in output:\n%s", text)
	}
	if !strings.Contains(text, "Role: student") {
		t.Errorf("missing role line in output:\n%s", text)
	}

	token, err := creds.LoadToken()
	if err != nil || token != "tok" {
		t.Errorf("expected persisted token, got %q err=%v", token, err)
	}
	if lt, err := creds.LoadLoginType(); err != nil || lt != "student" {
		t.Errorf("expected persisted login type, got %q err=%v", lt, err)
	}
}

func TestRunLogin_MissingUsername(t *testing.T) {
	t.Setenv("KYC_USERNAME", "")
	t.Setenv("KYC_PASSWORD", "")
	app, _ := newTestApp(t, loginBackend(t))

	err := runLogin(app, session.LoginTypeAdmin, "", "", &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "username is required") {
		t.Fatalf("expected username error, got %v", err)
	}
}

func TestRunLogin_CredentialsFromEnv(t *testing.T) {
	t.Setenv("KYC_USERNAME", "ana")
	t.Setenv("KYC_PASSWORD", "secret")
	app, creds := newTestApp(t, loginBackend(t))

	if err := runLogin(app, session.LoginTypeAdmin, "", "", &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	if _, err := creds.LoadToken(); err != nil {
		t.Errorf("expected token persisted after env-var login: %v", err)
	}
}

func TestRunLogin_BackendRejection(t *testing.T) {
	app, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "credenciales inválidas"})
	})

	err := runLogin(app, session.LoginTypeAdmin, "ana", "wrong", &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "login failed") {
		t.Fatalf("expected login failure, got %v", err)
	}

	st := app.Session.Snapshot()
	if st.IsAuthenticated {
		t.Error("session must not be authenticated after rejection")
	}
	if st.Err == "" {
		t.Error("expected user-facing error recorded in session state")
	}
}

func TestRunLogin_PersistedTypeUsedWhenFlagAbsent(t *testing.T) {
	var studentCalls int
	app, creds := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/auth/login/student" {
			studentCalls++
		}
		loginBackend(t)(w, r)
	})
	if err := creds.SaveLoginType("student"); err != nil {
		t.Fatal(err)
	}
	app.Session.Init()

	if err := runLogin(app, session.LoginTypeUnset, "ana", "secret", &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	if studentCalls != 1 {
		t.Errorf("expected the persisted student flow, got %d student calls", studentCalls)
	}
}

func TestWhoamiCmd(t *testing.T) {
	app, _ := newTestApp(t, loginBackend(t))
	if err := runLogin(app, session.LoginTypeStudent, "ana", "secret", &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	cmd := NewWhoamiCmd(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	text := out.String()
	for _, want := range []string{"User:  ana", "Email: ana@example.com", "Role:  student", "Type:  student"} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in output:\n%s", want, text)
		}
	}
}

func TestWhoamiCmd_JSONOutput(t *testing.T) {
	app, _ := newTestApp(t, loginBackend(t))
	if err := runLogin(app, session.LoginTypeStudent, "ana", "secret", &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	cmd := NewWhoamiCmd(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"-o", "json"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	var user map[string]any
	if err := json.Unmarshal(out.Bytes(), &user); err != nil {
		t.Fatalf("expected JSON output: %v\n%s", err, out.String())
	}
	if user["username"] != "ana" || user["role"] != "student" {
		t.Errorf("unexpected user payload %v", user)
	}
}

func TestWhoamiCmd_NotAuthenticated(t *testing.T) {
	app, _ := newTestApp(t, loginBackend(t))

	cmd := NewWhoamiCmd(app)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "not authenticated") {
		t.Fatalf("expected not-authenticated error, got %v", err)
	}
}

func TestLogoutCmd(t *testing.T) {
	app, creds := newTestApp(t, loginBackend(t))
	if err := runLogin(app, session.LoginTypeAdmin, "ana", "secret", &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	cmd := NewLogoutCmd(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	if _, err := creds.LoadToken(); err == nil {
		t.Error("expected token cleared after logout")
	}
	if app.Session.Snapshot().IsAuthenticated {
		t.Error("expected unauthenticated session after logout")
	}
}
