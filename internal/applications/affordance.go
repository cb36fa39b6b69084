// Apply-affordance state machine for a single job-detail view.
//
// Valid state graph:
//
//	UNKNOWN ──► NOT_ELIGIBLE   (unauthenticated or wrong role)
//	UNKNOWN ──► ELIGIBLE ──► APPLIED
//	UNKNOWN ──► APPLIED        (membership check finds a prior application)
//
// ELIGIBLE → APPLIED is the only forward transition and fires on a
// successful apply. Nothing moves out of APPLIED on the client; only a
// server-side withdrawal could, and the client would observe it on refetch.
package applications

import "fmt"

// Affordance is the apply button's state for one job.
type Affordance string

const (
	AffordanceUnknown     Affordance = "UNKNOWN"
	AffordanceNotEligible Affordance = "NOT_ELIGIBLE"
	AffordanceEligible    Affordance = "ELIGIBLE"
	AffordanceApplied     Affordance = "APPLIED"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[Affordance][]Affordance{
	AffordanceUnknown:  {AffordanceNotEligible, AffordanceEligible, AffordanceApplied},
	AffordanceEligible: {AffordanceApplied},
	// NOT_ELIGIBLE and APPLIED are terminal on the client
}

// ParseAffordance converts a raw string to an Affordance, returning an
// error for unknown values.
func ParseAffordance(s string) (Affordance, error) {
	a := Affordance(s)
	switch a {
	case AffordanceUnknown, AffordanceNotEligible, AffordanceEligible, AffordanceApplied:
		return a, nil
	}
	return "", fmt.Errorf("unknown apply affordance %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted.
func IsTransitionAllowed(from, to Affordance) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false
	}
	for _, a := range allowed {
		if a == to {
			return true
		}
	}
	return false
}

// Resolve computes the affordance from the session predicates and the
// HasApplied membership check. The order matters: a prior application wins
// over eligibility, ineligibility wins over everything.
func Resolve(authenticated, candidate, applied bool) Affordance {
	if !authenticated || !candidate {
		return AffordanceNotEligible
	}
	if applied {
		return AffordanceApplied
	}
	return AffordanceEligible
}
