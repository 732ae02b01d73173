package session

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
)

// Identity is the slice of the API client the session needs.
type Identity interface {
	GetAuthorities(ctx context.Context) ([]string, error)
	GetRoles(ctx context.Context) ([]string, error)
}

// Session holds the identity of the logged-in user: email, language and
// the permission sets fetched from the backend. The backend trusts the
// email header; this struct only mirrors what it reports back.
type Session struct {
	client   Identity
	prefs    Preferences
	email    string
	language string
	logger   *log.Logger

	mu          sync.RWMutex
	authorities map[string]struct{}
	roles       map[string]struct{}
	loaded      bool
}

func New(client Identity, prefs Preferences, email, language string, logger *log.Logger) *Session {
	return &Session{
		client:      client,
		prefs:       prefs,
		email:       email,
		language:    language,
		logger:      logger,
		authorities: make(map[string]struct{}),
		roles:       make(map[string]struct{}),
	}
}

// Email returns the logged-in user's email.
func (s *Session) Email() string { return s.email }

// Language returns the display language, "en" or "ar".
func (s *Session) Language() string { return s.language }

// Preferences exposes the per-user settings store.
func (s *Session) Preferences() Preferences { return s.prefs }

// LoadPermissions fetches authorities and roles in one go. Both calls
// must succeed; a partial permission set is worse than none.
func (s *Session) LoadPermissions(ctx context.Context) error {
	authorities, err := s.client.GetAuthorities(ctx)
	if err != nil {
		return fmt.Errorf("failed to load permissions: %w", err)
	}
	roles, err := s.client.GetRoles(ctx)
	if err != nil {
		return fmt.Errorf("failed to load permissions: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.authorities = make(map[string]struct{}, len(authorities))
	for _, a := range authorities {
		s.authorities[a] = struct{}{}
	}
	s.roles = make(map[string]struct{}, len(roles))
	for _, r := range roles {
		s.roles[r] = struct{}{}
	}
	s.loaded = true
	s.logger.Printf("[INFO] loaded %d authorities and %d roles for %s", len(authorities), len(roles), s.email)
	return nil
}

// Loaded reports whether permissions were fetched successfully.
func (s *Session) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Can reports whether the user holds a fine-grained authority. Before
// permissions load, everything is allowed; the backend enforces the
// real rules and the flags only drive UI affordances.
func (s *Session) Can(authority string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return true
	}
	_, ok := s.authorities[authority]
	return ok
}

// HasRole reports whether the user holds a coarse role.
func (s *Session) HasRole(role string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return true
	}
	_, ok := s.roles[role]
	return ok
}

// Roles returns the sorted role list, for display.
func (s *Session) Roles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.roles))
	for r := range s.roles {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
