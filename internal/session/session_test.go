package session

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
)

type fakeIdentity struct {
	authorities []string
	roles       []string
	authErr     error
	rolesErr    error
}

func (f *fakeIdentity) GetAuthorities(ctx context.Context) ([]string, error) {
	return f.authorities, f.authErr
}

func (f *fakeIdentity) GetRoles(ctx context.Context) ([]string, error) {
	return f.roles, f.rolesErr
}

func discard() *log.Logger { return log.New(io.Discard, "", 0) }

func TestLoadPermissionsCombinesBothEndpoints(t *testing.T) {
	id := &fakeIdentity{
		authorities: []string{"CASE_CREATE", "CASE_DELETE"},
		roles:       []string{"CONSULTANT"},
	}
	s := New(id, NewNullPreferences(discard()), "consultant@example.com", "en", discard())

	if err := s.LoadPermissions(context.Background()); err != nil {
		t.Fatalf("LoadPermissions: %v", err)
	}
	if !s.Loaded() {
		t.Fatal("Loaded should report true")
	}
	if !s.Can("CASE_CREATE") || !s.Can("CASE_DELETE") {
		t.Fatal("granted authorities rejected")
	}
	if s.Can("CASE_ASSIGN") {
		t.Fatal("missing authority granted")
	}
	if !s.HasRole("CONSULTANT") || s.HasRole("ADMIN") {
		t.Fatal("role check wrong")
	}
	if got := s.Roles(); len(got) != 1 || got[0] != "CONSULTANT" {
		t.Fatalf("Roles = %v", got)
	}
}

func TestPermissionsDefaultOpenBeforeLoad(t *testing.T) {
	s := New(&fakeIdentity{}, NewNullPreferences(discard()), "x@example.com", "en", discard())
	if !s.Can("ANYTHING") || !s.HasRole("ANY_ROLE") {
		t.Fatal("unloaded session must not hide UI affordances")
	}
}

func TestLoadPermissionsFailsClosedOnPartialError(t *testing.T) {
	id := &fakeIdentity{
		authorities: []string{"CASE_CREATE"},
		rolesErr:    errors.New("roles endpoint down"),
	}
	s := New(id, NewNullPreferences(discard()), "x@example.com", "en", discard())

	if err := s.LoadPermissions(context.Background()); err == nil {
		t.Fatal("expected error when one endpoint fails")
	}
	if s.Loaded() {
		t.Fatal("partial load must not mark the session as loaded")
	}
}

func TestNullPreferencesRoundTrip(t *testing.T) {
	p := NewNullPreferences(discard())
	ctx := context.Background()
	email := "consultant@example.com"

	if _, ok, err := p.Get(ctx, email, PrefLanguage); err != nil || ok {
		t.Fatalf("unset key: ok=%v err=%v", ok, err)
	}
	if err := p.Set(ctx, email, PrefLanguage, "ar"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, ok, err := p.Get(ctx, email, PrefLanguage)
	if err != nil || !ok || value != "ar" {
		t.Fatalf("Get = %q, %v, %v", value, ok, err)
	}

	// Keys are scoped per user.
	if _, ok, _ := p.Get(ctx, "other@example.com", PrefLanguage); ok {
		t.Fatal("preference leaked across users")
	}

	if err := p.Delete(ctx, email, PrefLanguage); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := p.Get(ctx, email, PrefLanguage); ok {
		t.Fatal("deleted key still present")
	}
}

func TestNewPreferencesFallsBackWithoutRedis(t *testing.T) {
	p := NewPreferences("", discard())
	if _, ok := p.(*NullPreferences); !ok {
		t.Fatalf("empty URL should yield the in-memory store, got %T", p)
	}
}
