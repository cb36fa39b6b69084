package gateway_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobdeck/board-client/internal/gateway"
)

func TestGetJSON_SetsAuthAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		fmt.Fprint(w, `{"ok": true}`)
	}))
	defer srv.Close()

	gw := gateway.New(srv.URL, gateway.WithTokenFunc(func() string { return "tok" }))
	var out map[string]bool
	if err := gw.GetJSON(context.Background(), "/x", nil, &out); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q, want \"Bearer tok\"", gotAuth)
	}
	if gotReqID == "" {
		t.Error("X-Request-ID should be set on every request")
	}
	if !out["ok"] {
		t.Error("response not decoded")
	}
}

func TestGetJSON_NoAuthHeaderWhenUnauthenticated(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	gw := gateway.New(srv.URL, gateway.WithTokenFunc(func() string { return "" }))
	if err := gw.GetJSON(context.Background(), "/x", nil, nil); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want unset", gotAuth)
	}
}

func TestStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"nope"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	gw := gateway.New(srv.URL)
	err := gw.GetJSON(context.Background(), "/missing", nil, nil)

	var se *gateway.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if se.Code != http.StatusNotFound {
		t.Errorf("Code = %d, want 404", se.Code)
	}
	if !gateway.IsNotFound(err) {
		t.Error("IsNotFound should report true")
	}
	if gateway.IsUnauthorized(err) {
		t.Error("IsUnauthorized should report false for a 404")
	}
}

func TestPostJSON_EncodesBody(t *testing.T) {
	var gotContentType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	gw := gateway.New(srv.URL)
	err := gw.PostJSON(context.Background(), "/y", map[string]string{"a": "b"}, nil)
	if err != nil {
		t.Fatalf("PostJSON: %v", err)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if gotBody != `{"a":"b"}` {
		t.Errorf("body = %q", gotBody)
	}
}

func TestSendMultipart_FieldsAndFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
			return
		}
		if got := r.FormValue("full_name"); got != "Alice" {
			t.Errorf("full_name = %q, want Alice", got)
		}
		f, hdr, err := r.FormFile("cv")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			return
		}
		defer f.Close()
		if hdr.Filename != "cv.pdf" {
			t.Errorf("filename = %q, want cv.pdf", hdr.Filename)
		}
		b := make([]byte, 4)
		f.Read(b)
		if string(b) != "data" {
			t.Errorf("file content = %q, want data", b)
		}
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	gw := gateway.New(srv.URL)
	err := gw.SendMultipart(context.Background(), http.MethodPut, "/profiles/me/",
		map[string]string{"full_name": "Alice"}, "cv", "cv.pdf", strings.NewReader("data"), nil)
	if err != nil {
		t.Fatalf("SendMultipart: %v", err)
	}
}
