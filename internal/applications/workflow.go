// Package applications orchestrates the candidate's application workflow:
// listing own applications, the "already applied to job X" membership check
// and the apply action itself.
package applications

import (
	"context"
	"fmt"
	"time"

	"jobdeck/board-client/internal/gateway"
)

// ─── Model ───────────────────────────────────────────────────────────────────

// Status of an application. Status changes are server-driven; the client
// only ever observes them via refetch.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Application is one submitted application. Immutable from the client's
// perspective once created.
type Application struct {
	ID            int       `json:"id"`
	JobOfferID    int       `json:"job_offer"`
	JobOfferTitle string    `json:"job_offer_title"`
	Message       string    `json:"message"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// listEnvelope mirrors the server's pagination envelope.
type listEnvelope struct {
	Count    int           `json:"count"`
	Next     *string       `json:"next"`
	Previous *string       `json:"previous"`
	Results  []Application `json:"results"`
}

// ─── Errors ──────────────────────────────────────────────────────────────────

// ApplyError wraps a rejected apply action (duplicate application,
// validation failure, transport failure). The caller's affordance stays
// Eligible so the user may retry; any local "applied" flag must be
// re-derived via HasApplied if consistency matters.
type ApplyError struct {
	JobOfferID int
	Err        error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("apply to job %d: %v", e.JobOfferID, e.Err)
}
func (e *ApplyError) Unwrap() error { return e.Err }

// ─── Workflow ────────────────────────────────────────────────────────────────

// Workflow performs application operations for the authenticated user.
// It does not re-check authentication or role — gating is the caller's
// responsibility and the server is the final authority.
type Workflow struct {
	gw *gateway.Gateway
}

// NewWorkflow returns a configured Workflow.
func NewWorkflow(gw *gateway.Gateway) *Workflow {
	return &Workflow{gw: gw}
}

// List returns the caller's applications with the server's total count.
func (w *Workflow) List(ctx context.Context) ([]Application, int, error) {
	var env listEnvelope
	if err := w.gw.GetJSON(ctx, "/applications", nil, &env); err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	return env.Results, env.Count, nil
}

// HasApplied reports whether the caller already has a visible application
// for jobOfferID. A linear scan over the user's own applications — the
// server exposes no existence endpoint and the cardinality is small.
func (w *Workflow) HasApplied(ctx context.Context, jobOfferID int) (bool, error) {
	apps, _, err := w.List(ctx)
	if err != nil {
		return false, err
	}
	for _, a := range apps {
		if a.JobOfferID == jobOfferID {
			return true, nil
		}
	}
	return false, nil
}

// Apply submits an application for jobOfferID. An empty message is sent as
// "" — never omitted. On failure nothing cached changes; the returned
// *ApplyError carries the cause.
func (w *Workflow) Apply(ctx context.Context, jobOfferID int, message string) (Application, error) {
	var created Application
	err := w.gw.PostJSON(ctx, "/applications/", map[string]any{
		"job_offer": jobOfferID,
		"message":   message,
	}, &created)
	if err != nil {
		return Application{}, &ApplyError{JobOfferID: jobOfferID, Err: err}
	}
	return created, nil
}
