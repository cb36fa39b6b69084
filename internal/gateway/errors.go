package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned for any non-2xx response. Body carries the raw
// server payload for logging; callers branch on Code.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Body)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// IsNotFound reports whether err is a 404 from the server, as opposed to a
// transport failure. Callers render "not found" vs. "try again" on this.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err is a 401, i.e. the access token was
// missing, invalid or expired.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}
