package jobs

import (
	"context"
	"errors"
	"fmt"

	"jobdeck/board-client/internal/gateway"
)

// PageSize is fixed by the server's pagination class.
const PageSize = 10

// ─── Errors ──────────────────────────────────────────────────────────────────

// ErrNotFound is returned by Get when the server reports no such job offer,
// distinguished from transport failure so callers can render "not found"
// instead of "try again".
var ErrNotFound = errors.New("job offer not found")

// QueryError wraps any transport or decode failure on a list/detail fetch.
// No partial result accompanies it; callers render an empty or error state
// and may re-issue the query — nothing here retries automatically.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *QueryError) Unwrap() error { return e.Err }

// ─── Page result ─────────────────────────────────────────────────────────────

// Page is a read-only snapshot of one result page. Callers never mutate it;
// they request a new snapshot to reflect new filters or pages.
type Page struct {
	Items       []JobOffer
	TotalCount  int
	TotalPages  int
	CurrentPage int
}

// listEnvelope mirrors the server's pagination envelope.
type listEnvelope struct {
	Count    int            `json:"count"`
	Next     *string        `json:"next"`
	Previous *string        `json:"previous"`
	Results  []jobOfferWire `json:"results"`
}

// TotalPages computes ceil(count / PageSize), floored to 1 so an empty
// result set still renders as a single page.
func TotalPages(count int) int {
	pages := (count + PageSize - 1) / PageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ─── Service ─────────────────────────────────────────────────────────────────

// Service executes job queries against the transport.
type Service struct {
	gw *gateway.Gateway
}

// NewService returns a configured Service.
func NewService(gw *gateway.Gateway) *Service {
	return &Service{gw: gw}
}

// Search runs one filtered, paginated job query and returns a normalised
// page. Every raw item passes through denormalize before it is exposed.
func (s *Service) Search(ctx context.Context, f Filter) (Page, error) {
	var env listEnvelope
	if err := s.gw.GetJSON(ctx, "/jobs", f.Values(), &env); err != nil {
		return Page{}, &QueryError{Op: "list jobs", Err: err}
	}

	items := make([]JobOffer, 0, len(env.Results))
	for _, w := range env.Results {
		items = append(items, denormalize(w))
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	return Page{
		Items:       items,
		TotalCount:  env.Count,
		TotalPages:  TotalPages(env.Count),
		CurrentPage: page,
	}, nil
}

// Get fetches a single job offer by id. Returns ErrNotFound when the server
// reports no such record.
func (s *Service) Get(ctx context.Context, id int) (JobOffer, error) {
	var w jobOfferWire
	if err := s.gw.GetJSON(ctx, fmt.Sprintf("/jobs/%d/", id), nil, &w); err != nil {
		if gateway.IsNotFound(err) {
			return JobOffer{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return JobOffer{}, &QueryError{Op: "get job", Err: err}
	}
	return denormalize(w), nil
}

// Trending fetches the fixed, un-paginated trending sequence. Each call
// re-fetches; there is no cursor to resume.
func (s *Service) Trending(ctx context.Context) ([]JobOffer, error) {
	var raw []jobOfferWire
	if err := s.gw.GetJSON(ctx, "/jobs/trending/", nil, &raw); err != nil {
		return nil, &QueryError{Op: "trending jobs", Err: err}
	}
	items := make([]JobOffer, 0, len(raw))
	for _, w := range raw {
		items = append(items, denormalize(w))
	}
	return items, nil
}

// ─── Recruiter surface ───────────────────────────────────────────────────────

// NewJob is the payload for posting a job offer. CompanyID must reference a
// company the recruiter owns; the server is the authority on that.
type NewJob struct {
	Title       string `json:"title"`
	CompanyID   int    `json:"company"`
	Description string `json:"description,omitempty"`
	Salary      *int   `json:"salary,omitempty"`
	Location    string `json:"location,omitempty"`
}

// Create posts a new job offer. Requires an authenticated recruiter; the
// caller gates on the session predicates, the server has the final say.
func (s *Service) Create(ctx context.Context, job NewJob) (JobOffer, error) {
	var w jobOfferWire
	if err := s.gw.PostJSON(ctx, "/jobs/", job, &w); err != nil {
		return JobOffer{}, &QueryError{Op: "create job", Err: err}
	}
	return denormalize(w), nil
}
