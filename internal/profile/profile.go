// Package profile reads and writes the candidate's own profile, including
// the multipart CV upload path.
package profile

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"jobdeck/board-client/internal/gateway"
)

// CandidateProfile is the candidate's profile as stored by the server.
type CandidateProfile struct {
	ID          int     `json:"id,omitempty"`
	FullName    string  `json:"full_name"`
	Phone       string  `json:"phone"`
	CVURL       *string `json:"cv_url"`
	CoverLetter string  `json:"cover_letter"`
	Skills      string  `json:"skills"`
	Experience  string  `json:"experience"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

// Changes holds the writable profile fields of an update. Every field is
// always transmitted; the server treats empty strings as cleared values.
type Changes struct {
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	CoverLetter string `json:"cover_letter"`
	Skills      string `json:"skills"`
	Experience  string `json:"experience"`
}

// SaveError wraps a failed profile write. Submitted carries the values the
// user entered so the caller can re-render the form without losing input.
type SaveError struct {
	Submitted Changes
	Err       error
}

func (e *SaveError) Error() string { return fmt.Sprintf("save profile: %v", e.Err) }
func (e *SaveError) Unwrap() error { return e.Err }

// CV is an optional file attachment for Update/Patch.
type CV struct {
	FileName string
	Reader   io.Reader
}

// Service performs profile operations for the authenticated user.
type Service struct {
	gw *gateway.Gateway
}

// NewService returns a configured Service.
func NewService(gw *gateway.Gateway) *Service {
	return &Service{gw: gw}
}

// Get fetches the caller's profile.
func (s *Service) Get(ctx context.Context) (CandidateProfile, error) {
	var p CandidateProfile
	if err := s.gw.GetJSON(ctx, "/profiles/me/", nil, &p); err != nil {
		return CandidateProfile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// Update replaces the profile. With a CV attached the request goes out as
// multipart/form-data, otherwise as JSON.
func (s *Service) Update(ctx context.Context, changes Changes, cv *CV) (CandidateProfile, error) {
	return s.save(ctx, http.MethodPut, changes, cv)
}

// Patch partially updates the profile, same attachment rule as Update.
func (s *Service) Patch(ctx context.Context, changes Changes, cv *CV) (CandidateProfile, error) {
	return s.save(ctx, http.MethodPatch, changes, cv)
}

func (s *Service) save(ctx context.Context, method string, changes Changes, cv *CV) (CandidateProfile, error) {
	var saved CandidateProfile
	var err error
	if cv != nil {
		fields := map[string]string{
			"full_name":    changes.FullName,
			"phone":        changes.Phone,
			"cover_letter": changes.CoverLetter,
			"skills":       changes.Skills,
			"experience":   changes.Experience,
		}
		err = s.gw.SendMultipart(ctx, method, "/profiles/me/", fields, "cv", cv.FileName, cv.Reader, &saved)
	} else if method == http.MethodPatch {
		err = s.gw.PatchJSON(ctx, "/profiles/me/", changes, &saved)
	} else {
		err = s.gw.PutJSON(ctx, "/profiles/me/", changes, &saved)
	}
	if err != nil {
		return CandidateProfile{}, &SaveError{Submitted: changes, Err: err}
	}
	return saved, nil
}
