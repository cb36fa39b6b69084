package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expiryLeeway treats a token expiring within this window as already
// expired, so a request started now does not race the server clock.
const expiryLeeway = 30 * time.Second

// tokenExpiry extracts the exp claim from a JWT-style token without
// verifying the signature — the server remains the authority, this is only
// a hint to refresh proactively. Returns false for opaque or claimless
// tokens.
func tokenExpiry(raw string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// TokenExpired reports whether the current access token is absent, or
// carries an exp claim within expiryLeeway of now. Tokens without a
// readable exp claim are assumed live.
func (s *Session) TokenExpired() bool {
	tok := s.AccessToken()
	if tok == "" {
		return true
	}
	exp, ok := tokenExpiry(tok)
	if !ok {
		return false
	}
	return time.Now().Add(expiryLeeway).After(exp)
}

// EnsureFresh refreshes the access token when it is expired or about to
// expire. A no-op for live tokens; ErrNoRefreshToken propagates when the
// session cannot be refreshed, in which case the caller should log out.
func (s *Session) EnsureFresh(ctx context.Context) error {
	if !s.IsAuthenticated() {
		return nil
	}
	if !s.TokenExpired() {
		return nil
	}
	return s.Refresh(ctx)
}
