package watch_test

import (
	"testing"

	"jobdeck/board-client/internal/jobs"
	"jobdeck/board-client/internal/watch"
)

func offer(title, company, description string) jobs.JobOffer {
	o := jobs.JobOffer{Title: title, Description: description}
	if company != "" {
		o.Company = &jobs.Company{Name: company}
	}
	return o
}

func TestContainsExcluded(t *testing.T) {
	cases := []struct {
		name     string
		offer    jobs.JobOffer
		excluded []string
		want     bool
	}{
		{"no terms", offer("Go Dev", "Acme", "backend work"), nil, false},
		{"term in title", offer("Senior PHP Dev", "Acme", ""), []string{"php"}, true},
		{"term in company", offer("Go Dev", "Spamcorp", ""), []string{"spamcorp"}, true},
		{"term in description", offer("Go Dev", "Acme", "mostly on-call"), []string{"on-call"}, true},
		{"case insensitive", offer("GO DEV", "Acme", ""), []string{"go dev"}, true},
		{"no match", offer("Go Dev", "Acme", "backend"), []string{"frontend", "php"}, false},
		{"empty term ignored", offer("Go Dev", "Acme", ""), []string{""}, false},
		{"nil company", offer("Go Dev", "", "x"), []string{"acme"}, false},
	}
	for _, c := range cases {
		if got := watch.ContainsExcluded(c.offer, c.excluded); got != c.want {
			t.Errorf("%s: ContainsExcluded = %v, want %v", c.name, got, c.want)
		}
	}
}
