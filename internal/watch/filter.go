// Package watch re-runs a saved job search on a schedule, records offers it
// has not seen before and drops anything matching the user's exclusion
// terms.
package watch

import (
	"strings"

	"jobdeck/board-client/internal/jobs"
)

// ContainsExcluded returns true if any exclusion term appears
// (case-insensitive) anywhere in the combined title + company + description
// text of the offer. A matching offer is silently discarded before it
// reaches the feed.
func ContainsExcluded(offer jobs.JobOffer, excluded []string) bool {
	if len(excluded) == 0 {
		return false
	}
	company := ""
	if offer.Company != nil {
		company = offer.Company.Name
	}
	combined := strings.ToLower(offer.Title + " " + company + " " + offer.Description)
	for _, term := range excluded {
		if term == "" {
			continue
		}
		if strings.Contains(combined, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
