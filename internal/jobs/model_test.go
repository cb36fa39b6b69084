package jobs

import (
	"reflect"
	"testing"
	"time"
)

func TestDenormalize_ResolvedCompanyKept(t *testing.T) {
	companyID := 3
	w := jobOfferWire{
		ID:            1,
		Title:         "Backend Engineer",
		Company:       &companyID,
		CompanyDetail: &Company{ID: 3, Name: "Acme"},
		Location:      "Paris",
		CreatedAt:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	offer := denormalize(w)
	if offer.Company == nil || offer.Company.Name != "Acme" {
		t.Fatalf("Company = %+v, want resolved Acme", offer.Company)
	}
}

func TestDenormalize_BareCompanyIDIsDropped(t *testing.T) {
	companyID := 3
	w := jobOfferWire{ID: 1, Title: "Backend Engineer", Company: &companyID}
	if offer := denormalize(w); offer.Company != nil {
		t.Errorf("Company = %+v, want nil when no embedded detail is present", offer.Company)
	}
}

func TestDenormalize_Idempotent(t *testing.T) {
	salary := 55000
	w := jobOfferWire{
		ID:            2,
		Title:         "Data Engineer",
		CompanyDetail: &Company{ID: 9, Name: "Globex", Sector: "tech"},
		Salary:        &salary,
		Location:      "Lyon",
		CreatedAt:     time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC),
	}

	once := denormalize(w)

	// Re-deriving a wire item from the normalised offer and mapping again
	// must yield the identical offer.
	again := denormalize(jobOfferWire{
		ID:            once.ID,
		Title:         once.Title,
		CompanyDetail: once.Company,
		Description:   once.Description,
		Salary:        once.Salary,
		Location:      once.Location,
		CreatedAt:     once.CreatedAt,
	})

	if !reflect.DeepEqual(once, again) {
		t.Errorf("mapping twice diverged:\nonce:  %+v\nagain: %+v", once, again)
	}
}
