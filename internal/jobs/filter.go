package jobs

import (
	"net/url"
	"strconv"
)

// Ordering values accepted by the list endpoint.
const (
	OrderNewest     = "-created_at"
	OrderOldest     = "created_at"
	OrderSalaryDesc = "-salary"
	OrderSalaryAsc  = "salary"
)

// DefaultOrdering is applied when a Filter leaves Ordering empty.
const DefaultOrdering = OrderNewest

// Filter describes one job search. Zero values mean "no filter": empty
// strings and nil salary pointers are omitted from the request entirely, so
// the server never mistakes "no filter" for "filter by empty string". A
// salary of 0 is a real filter value — use the pointer, not a sentinel.
//
// Page is 1-based. Changing any other field invalidates the current page;
// use WithPage on an otherwise-identical Filter to navigate.
type Filter struct {
	Search    string
	Location  string
	Company   string
	SalaryMin *int
	SalaryMax *int
	Ordering  string
	Page      int
}

// WithPage returns a copy of f targeting page p (floored to 1).
func (f Filter) WithPage(p int) Filter {
	if p < 1 {
		p = 1
	}
	f.Page = p
	return f
}

// Values serialises only the present fields into query parameters.
func (f Filter) Values() url.Values {
	params := url.Values{}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.Location != "" {
		params.Set("location", f.Location)
	}
	if f.Company != "" {
		params.Set("company", f.Company)
	}
	if f.SalaryMin != nil {
		params.Set("salary_min", strconv.Itoa(*f.SalaryMin))
	}
	if f.SalaryMax != nil {
		params.Set("salary_max", strconv.Itoa(*f.SalaryMax))
	}
	if f.Ordering != "" {
		params.Set("ordering", f.Ordering)
	}
	if f.Page > 0 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	return params
}
