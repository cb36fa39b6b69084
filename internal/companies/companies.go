// Package companies exposes the company directory: listing, detail lookup
// and recruiter-gated creation.
package companies

import (
	"context"
	"errors"
	"fmt"

	"jobdeck/board-client/internal/gateway"
	"jobdeck/board-client/internal/jobs"
)

// ErrNotFound is returned by Get when the server reports no such company.
var ErrNotFound = errors.New("company not found")

type listEnvelope struct {
	Count    int            `json:"count"`
	Next     *string        `json:"next"`
	Previous *string        `json:"previous"`
	Results  []jobs.Company `json:"results"`
}

// NewCompany is the payload for creating a company.
type NewCompany struct {
	Name        string `json:"name"`
	Sector      string `json:"sector,omitempty"`
	Description string `json:"description,omitempty"`
}

// Service performs company operations.
type Service struct {
	gw *gateway.Gateway
}

// NewService returns a configured Service.
func NewService(gw *gateway.Gateway) *Service {
	return &Service{gw: gw}
}

// List returns all companies with the server's total count.
func (s *Service) List(ctx context.Context) ([]jobs.Company, int, error) {
	var env listEnvelope
	if err := s.gw.GetJSON(ctx, "/companies", nil, &env); err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}
	return env.Results, env.Count, nil
}

// Get fetches a single company by id.
func (s *Service) Get(ctx context.Context, id int) (jobs.Company, error) {
	var c jobs.Company
	if err := s.gw.GetJSON(ctx, fmt.Sprintf("/companies/%d/", id), nil, &c); err != nil {
		if gateway.IsNotFound(err) {
			return jobs.Company{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return jobs.Company{}, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// Create registers a new company. Requires an authenticated recruiter; the
// caller gates, the server decides.
func (s *Service) Create(ctx context.Context, c NewCompany) (jobs.Company, error) {
	var created jobs.Company
	if err := s.gw.PostJSON(ctx, "/companies/", c, &created); err != nil {
		return jobs.Company{}, fmt.Errorf("create company: %w", err)
	}
	return created, nil
}
