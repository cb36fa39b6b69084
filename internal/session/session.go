// Package session is the single source of truth for "who is the current
// user and what can they do". State is hydrated from the token store at
// construction, mutated only by the transitions below, and every predicate
// is recomputed from the underlying fields on each call — nothing is cached.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"jobdeck/board-client/internal/gateway"
	"jobdeck/board-client/internal/tokenstore"
)

// ─── Roles ───────────────────────────────────────────────────────────────────

// Role is the authorization category controlling which workflows a user may
// use. "both" grants candidate and recruiter capabilities at once.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
	RoleBoth      Role = "both"
)

// ParseRole maps a stored/wire value to a Role, defaulting unknown or empty
// values to candidate.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleCandidate, RoleRecruiter, RoleBoth:
		return Role(s)
	}
	return RoleCandidate
}

// ─── Errors ──────────────────────────────────────────────────────────────────

var (
	// ErrInvalidCredentials is returned by Login when the server rejects the
	// username/password pair. Session state is untouched.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoRefreshToken is returned by Refresh when no refresh token is
	// stored. No network call is made; callers should force a logout.
	ErrNoRefreshToken = errors.New("no refresh token")
)

// ─── Wire shapes ─────────────────────────────────────────────────────────────

type loginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

// Me is the authenticated user's profile as reported by the server.
type Me struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	IsCandidate bool   `json:"is_candidate"`
	IsRecruiter bool   `json:"is_recruiter"`
}

// Registered is the created-user summary returned by Register.
type Registered struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// ─── Session ─────────────────────────────────────────────────────────────────

// Session holds the current credentials and cached role. All field access
// goes through the mutex so overlapping operations from independent callers
// never observe a torn token/role tuple.
type Session struct {
	store tokenstore.Store
	gw    *gateway.Gateway

	mu      sync.RWMutex
	access  string
	refresh string
	role    Role
}

// New hydrates a Session from store. The role cached by a previous run is
// kept even when no token survives — it is only reset by an explicit logout.
func New(store tokenstore.Store, gw *gateway.Gateway) *Session {
	s := &Session{store: store, gw: gw, role: RoleCandidate}
	if v, ok := store.Get(tokenstore.KeyAccessToken); ok {
		s.access = v
	}
	if v, ok := store.Get(tokenstore.KeyRefreshToken); ok {
		s.refresh = v
	}
	if v, ok := store.Get(tokenstore.KeyUserRole); ok {
		s.role = ParseRole(v)
	}
	return s
}

// AccessToken returns the current access token, "" when unauthenticated.
// Satisfies gateway.TokenFunc.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

// Role returns the cached authorization role.
func (s *Session) Role() Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// IsAuthenticated reports whether an access token is present.
func (s *Session) IsAuthenticated() bool {
	return s.AccessToken() != ""
}

// IsCandidate reports whether the cached role grants candidate workflows.
func (s *Session) IsCandidate() bool {
	r := s.Role()
	return r == RoleCandidate || r == RoleBoth
}

// IsRecruiter reports whether the cached role grants recruiter workflows.
func (s *Session) IsRecruiter() bool {
	r := s.Role()
	return r == RoleRecruiter || r == RoleBoth
}

// ─── Transitions ─────────────────────────────────────────────────────────────

// Login exchanges credentials for a token pair, persists it, then resolves
// the authoritative role via FetchMe (the login response itself carries no
// role). On invalid credentials the session is left exactly as it was.
//
// Callers must not run Login concurrently with Refresh on the same session.
func (s *Session) Login(ctx context.Context, username, password string) (Me, error) {
	var res loginResponse
	err := s.gw.PostJSON(ctx, "/auth/login/", map[string]string{
		"username": username,
		"password": password,
	}, &res)
	if err != nil {
		if gateway.IsStatus(err, http.StatusUnauthorized) || gateway.IsStatus(err, http.StatusBadRequest) {
			return Me{}, fmt.Errorf("%w: %s", ErrInvalidCredentials, username)
		}
		return Me{}, fmt.Errorf("login: %w", err)
	}

	if err := s.setTokens(res.Access, res.Refresh); err != nil {
		return Me{}, fmt.Errorf("persist tokens: %w", err)
	}

	// Role resolution rides on the freshly persisted access token; the
	// ordering matters and is why this call only happens after setTokens.
	return s.FetchMe(ctx)
}

// FetchMe resolves the current user's profile and persists the role it
// reports. Idempotent; safe to call opportunistically on startup when a
// token already exists. An invalid token surfaces as an error the caller
// may treat as "session expired" — the session itself is not cleared.
func (s *Session) FetchMe(ctx context.Context) (Me, error) {
	var me Me
	if err := s.gw.GetJSON(ctx, "/auth/me/", nil, &me); err != nil {
		return Me{}, fmt.Errorf("fetch me: %w", err)
	}
	me.Role = ParseRole(string(me.Role))

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Set(tokenstore.KeyUserRole, string(me.Role)); err != nil {
		return Me{}, fmt.Errorf("persist role: %w", err)
	}
	s.role = me.Role
	return me, nil
}

// Refresh exchanges the stored refresh token for a new access token. The
// refresh token and role are untouched. Fails with ErrNoRefreshToken, and
// without any network call, when no refresh token is available.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.RLock()
	refresh := s.refresh
	s.mu.RUnlock()
	if refresh == "" {
		return ErrNoRefreshToken
	}

	var res refreshResponse
	err := s.gw.PostJSON(ctx, "/auth/refresh/", map[string]string{"refresh": refresh}, &res)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Set(tokenstore.KeyAccessToken, res.Access); err != nil {
		return fmt.Errorf("persist access token: %w", err)
	}
	s.access = res.Access
	return nil
}

// Register creates a new account. It is a pure pass-through: registration
// alone does not authenticate and no session state is mutated.
func (s *Session) Register(ctx context.Context, username, password string, role Role, email string) (Registered, error) {
	var res Registered
	err := s.gw.PostJSON(ctx, "/auth/register/", map[string]string{
		"username": username,
		"password": password,
		"email":    email,
		"role":     string(role),
	}, &res)
	if err != nil {
		return Registered{}, fmt.Errorf("register: %w", err)
	}
	return res, nil
}

// Logout clears the persisted keys and resets in-memory state to the
// unauthenticated default in one critical section, so no reader observes a
// half-cleared session. Any navigation side effect belongs to the caller
// and must happen after Logout returns.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for _, key := range []string{
		tokenstore.KeyAccessToken,
		tokenstore.KeyRefreshToken,
		tokenstore.KeyUserRole,
	} {
		if err := s.store.Clear(key); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("clear %s: %w", key, err)
		}
	}

	s.access = ""
	s.refresh = ""
	s.role = RoleCandidate

	if firstErr != nil {
		slog.Warn("logout: token store clear failed", "err", firstErr)
	}
	return firstErr
}

// setTokens persists and publishes a new token pair as one unit.
func (s *Session) setTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Set(tokenstore.KeyAccessToken, access); err != nil {
		return err
	}
	if err := s.store.Set(tokenstore.KeyRefreshToken, refresh); err != nil {
		return err
	}
	s.access = access
	s.refresh = refresh
	return nil
}
