// Package jobs implements the job listing query pipeline: it turns a
// structured Filter into transport query parameters and normalises the
// paginated wire payload into view-ready values.
package jobs

import "time"

// Company is a resolved company entity.
type Company struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Sector      string `json:"sector,omitempty"`
	Description string `json:"description,omitempty"`
}

// JobOffer is the normalised job listing exposed to callers. Company is
// either a fully resolved entity or nil — never a bare identifier.
type JobOffer struct {
	ID          int
	Title       string
	Company     *Company
	Description string
	Salary      *int
	Location    string
	CreatedAt   time.Time
}

// jobOfferWire mirrors the raw API item. List and detail payloads share
// this shape; both carry a bare company id alongside an optional embedded
// company_detail.
type jobOfferWire struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Company       *int      `json:"company"`
	CompanyDetail *Company  `json:"company_detail"`
	Description   string    `json:"description"`
	Salary        *int      `json:"salary"`
	Location      string    `json:"location"`
	CreatedAt     time.Time `json:"created_at"`
}

// denormalize is the single enforcement point of the "resolved company or
// nothing" invariant, shared by every fetch path. A missing company_detail
// yields a nil Company even when a bare company id is present on the wire —
// the id is deliberately dropped, matching the upstream API contract.
func denormalize(w jobOfferWire) JobOffer {
	return JobOffer{
		ID:          w.ID,
		Title:       w.Title,
		Company:     w.CompanyDetail,
		Description: w.Description,
		Salary:      w.Salary,
		Location:    w.Location,
		CreatedAt:   w.CreatedAt,
	}
}
