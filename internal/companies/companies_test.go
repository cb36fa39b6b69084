package companies_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobdeck/board-client/internal/companies"
	"jobdeck/board-client/internal/gateway"
)

func TestList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/companies" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"count": 2, "next": null, "previous": null, "results": [
			{"id": 1, "name": "Acme", "sector": "tech"},
			{"id": 2, "name": "Globex"}
		]}`)
	}))
	defer srv.Close()

	svc := companies.NewService(gateway.New(srv.URL))
	list, count, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if count != 2 || len(list) != 2 {
		t.Fatalf("count %d, %d items, want 2/2", count, len(list))
	}
	if list[0].Name != "Acme" || list[0].Sector != "tech" {
		t.Errorf("list[0] = %+v", list[0])
	}
}

func TestGet_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Not found."}`, http.StatusNotFound)
	}))
	defer srv.Close()

	svc := companies.NewService(gateway.New(srv.URL))
	_, err := svc.Get(context.Background(), 99)
	if !errors.Is(err, companies.ErrNotFound) {
		t.Fatalf("Get error = %v, want ErrNotFound", err)
	}
}

func TestCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/companies/" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id": 3, "name": "Initech", "sector": "it"}`)
	}))
	defer srv.Close()

	svc := companies.NewService(gateway.New(srv.URL))
	created, err := svc.Create(context.Background(), companies.NewCompany{Name: "Initech", Sector: "it"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 3 || created.Name != "Initech" {
		t.Errorf("created = %+v", created)
	}
}
