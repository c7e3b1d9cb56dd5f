package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if got := r.URL.Query().Get("q"); got != "Rua do Ouro, Lisboa" {
			t.Errorf("unexpected query %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"38.7100","lon":"-9.1400","display_name":"Rua do Ouro, Lisboa, Portugal"}]`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "test-agent")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	location, err := client.Resolve(context.Background(), "Rua do Ouro, Lisboa")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if location.Latitude != 38.71 {
		t.Fatalf("expected latitude 38.71, got %v", location.Latitude)
	}
	if location.Longitude != -9.14 {
		t.Fatalf("expected longitude -9.14, got %v", location.Longitude)
	}
	if location.DisplayName != "Rua do Ouro, Lisboa, Portugal" {
		t.Fatalf("unexpected display name %q", location.DisplayName)
	}
}

func TestResolve_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.Resolve(context.Background(), "nowhere at all"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestResolve_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.Resolve(context.Background(), "Rua do Ouro"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestResolve_EmptyAddress(t *testing.T) {
	client, err := NewClient("http://localhost:1", "")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.Resolve(context.Background(), ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for empty address, got %v", err)
	}
}
