// Package tokenstore provides durable key/value persistence for session
// credentials. Tokens are opaque strings — nothing here validates their
// contents.
package tokenstore

// Well-known keys. Cleared together on logout.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUserRole     = "user_role"
)

// Store is the durable key/value medium a session survives restarts on.
// An absent storage medium (missing file, empty database) is "no prior
// session", never an error.
type Store interface {
	// Get returns the stored value and whether it was present.
	Get(key string) (string, bool)
	// Set overwrites the value for key with a durable write.
	Set(key, value string) error
	// Clear durably deletes key. Clearing an absent key is a no-op.
	Clear(key string) error
}
