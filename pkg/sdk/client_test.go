package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearch_OK(t *testing.T) {
	var gotAuth string
	var gotBody SearchRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/search" || r.Method != "POST" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		_ = json.NewEncoder(w).Encode(Page{
			Hits: []Hit{{
				TextID: 3, Title: "الرسالة", Author: "القشيري",
				Snippets: []Snippet{{Pre: "في", Match: "القلب", Post: "سر"}},
			}},
			Total: 12, Page: 1, PageSize: 20,
		})
	}))
	defer srv.Close()

	client := New(srv.URL, WithAPIKey("secret"))
	page, err := client.Search(context.Background(), SearchRequest{
		Query:   "القلب",
		Filters: &Filters{Genres: []string{"تصوف"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer secret" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotBody.Query != "القلب" || gotBody.Filters == nil || len(gotBody.Filters.Genres) != 1 {
		t.Errorf("unexpected request body: %+v", gotBody)
	}
	if page.Total != 12 || len(page.Hits) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if page.Hits[0].Snippets[0].Match != "القلب" {
		t.Errorf("unexpected snippet: %+v", page.Hits[0].Snippets)
	}
}

func TestSearch_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		code     string
		sentinel error
	}{
		{"invalid query", http.StatusBadRequest, "invalid_query", ErrInvalidQuery},
		{"empty query", http.StatusBadRequest, "empty_query", ErrEmptyQuery},
		{"engine unavailable", http.StatusBadGateway, "engine_unavailable", ErrEngineUnavailable},
		{"engine error", http.StatusBadGateway, "engine_error", ErrEngineError},
		{"metadata unavailable", http.StatusServiceUnavailable, "metadata_unavailable", ErrMetadataUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"code": tc.code, "message": tc.name,
				})
			}))
			defer srv.Close()

			_, err := New(srv.URL).Search(context.Background(), SearchRequest{Query: "x"})
			if !errors.Is(err, tc.sentinel) {
				t.Errorf("expected %v, got %v", tc.sentinel, err)
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %T", err)
			}
			if apiErr.Status != tc.status || apiErr.Code != tc.code {
				t.Errorf("unexpected APIError: %+v", apiErr)
			}
		})
	}
}

func TestSearch_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code": "bad_request", "message": "invalid api key",
		})
	}))
	defer srv.Close()

	_, err := New(srv.URL, WithAPIKey("wrong")).Search(context.Background(), SearchRequest{Query: "x"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestSearch_ConnectionRefused(t *testing.T) {
	client := New("http://127.0.0.1:1")
	_, err := client.Search(context.Background(), SearchRequest{Query: "x"})
	if !errors.Is(err, ErrEngineUnavailable) {
		t.Errorf("expected ErrEngineUnavailable, got %v", err)
	}
}

func TestExport_UsesExportPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(Page{Page: 1, PageSize: 5000})
	}))
	defer srv.Close()

	page, err := New(srv.URL).Export(context.Background(), SearchRequest{Query: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/v1/search/export" {
		t.Errorf("expected export path, got %q", gotPath)
	}
	if page.PageSize != 5000 {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(HealthStatus{
			Status: "degraded",
			Checks: map[string]string{"engine": "error", "catalog": "ok"},
			Texts:  10, Authors: 4,
		})
	}))
	defer srv.Close()

	status, healthy, err := New(srv.URL).Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if healthy {
		t.Error("expected unhealthy")
	}
	if status.Status != "degraded" || status.Checks["engine"] != "error" || status.Texts != 10 {
		t.Errorf("unexpected status: %+v", status)
	}
}
