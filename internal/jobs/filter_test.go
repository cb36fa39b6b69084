package jobs_test

import (
	"testing"

	"jobdeck/board-client/internal/jobs"
)

func TestFilterValues_AllAbsentOmitsEverything(t *testing.T) {
	params := jobs.Filter{}.Values()
	if len(params) != 0 {
		t.Errorf("empty Filter produced params %v, want none", params)
	}
}

func TestFilterValues_ZeroSalaryIsPresent(t *testing.T) {
	zero := 0
	params := jobs.Filter{SalaryMin: &zero}.Values()
	if got := params.Get("salary_min"); got != "0" {
		t.Errorf("salary_min = %q, want \"0\" (zero is a valid filter value)", got)
	}
}

func TestFilterValues_NilSalaryIsOmitted(t *testing.T) {
	params := jobs.Filter{Search: "engineer"}.Values()
	if params.Has("salary_min") || params.Has("salary_max") {
		t.Error("nil salary bounds must be omitted entirely")
	}
	if got := params.Get("search"); got != "engineer" {
		t.Errorf("search = %q, want \"engineer\"", got)
	}
}

func TestFilterValues_AllFieldsPresent(t *testing.T) {
	min, max := 30000, 90000
	f := jobs.Filter{
		Search:    "engineer",
		Location:  "Paris",
		Company:   "Acme",
		SalaryMin: &min,
		SalaryMax: &max,
		Ordering:  jobs.OrderSalaryDesc,
		Page:      2,
	}
	params := f.Values()

	want := map[string]string{
		"search":     "engineer",
		"location":   "Paris",
		"company":    "Acme",
		"salary_min": "30000",
		"salary_max": "90000",
		"ordering":   "-salary",
		"page":       "2",
	}
	for key, v := range want {
		if got := params.Get(key); got != v {
			t.Errorf("%s = %q, want %q", key, got, v)
		}
	}
	if len(params) != len(want) {
		t.Errorf("produced %d params, want %d", len(params), len(want))
	}
}

func TestFilterValues_ZeroPageOmitted(t *testing.T) {
	params := jobs.Filter{Search: "x"}.Values()
	if params.Has("page") {
		t.Error("page 0 must be omitted; page 1 and no page are server-equivalent")
	}
}

func TestWithPage_FloorsToOne(t *testing.T) {
	for _, p := range []int{-3, 0} {
		if got := (jobs.Filter{}).WithPage(p).Page; got != 1 {
			t.Errorf("WithPage(%d).Page = %d, want 1", p, got)
		}
	}
	if got := (jobs.Filter{}).WithPage(4).Page; got != 4 {
		t.Errorf("WithPage(4).Page = %d, want 4", got)
	}
}
