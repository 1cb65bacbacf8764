package credentials

import (
	"errors"
	"testing"
	"time"
)

func TestMemory_TokenLifecycle(t *testing.T) {
	store := NewMemory()

	if _, err := store.LoadToken(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.SaveToken("abc"); err != nil {
		t.Fatal(err)
	}
	token, err := store.LoadToken()
	if err != nil || token != "abc" {
		t.Fatalf("got token=%q err=%v", token, err)
	}

	if err := store.DeleteToken(); err != nil {
		t.Fatal(err)
	}
	if _, err := store.LoadToken(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	// deleting again is a no-op
	if err := store.DeleteToken(); err != nil {
		t.Fatal(err)
	}
}

func TestMemory_InvalidateKeepsLoginType(t *testing.T) {
	store := NewMemory()
	if err := store.SaveToken("abc"); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveUser([]byte(`{"_id":"u1"}`)); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveLoginType("student"); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveTokenExpiry(time.Now().Add(time.Hour)); err != nil {
		t.Fatal(err)
	}

	if err := store.Invalidate(); err != nil {
		t.Fatal(err)
	}

	if _, err := store.LoadToken(); !errors.Is(err, ErrNotFound) {
		t.Error("expected token gone")
	}
	if _, err := store.LoadUser(); !errors.Is(err, ErrNotFound) {
		t.Error("expected user gone")
	}
	if _, err := store.LoadTokenExpiry(); !errors.Is(err, ErrNotFound) {
		t.Error("expected expiry gone")
	}
	if lt, err := store.LoadLoginType(); err != nil || lt != "student" {
		t.Errorf("expected login type retained, got %q err=%v", lt, err)
	}
}

func TestMemory_InvalidateNotifiesListeners(t *testing.T) {
	store := NewMemory()
	fired := 0
	store.OnInvalidate(func() { fired++ })
	store.OnInvalidate(func() { fired++ })

	if err := store.Invalidate(); err != nil {
		t.Fatal(err)
	}
	if fired != 2 {
		t.Errorf("expected both listeners notified, got %d", fired)
	}
}

func TestMemory_UserRecordIsCopied(t *testing.T) {
	store := NewMemory()
	raw := []byte(`{"_id":"u1"}`)
	if err := store.SaveUser(raw); err != nil {
		t.Fatal(err)
	}
	raw[2] = 'X'

	got, err := store.LoadUser()
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"_id":"u1"}` {
		t.Errorf("stored record aliased caller's slice: %s", got)
	}
}
