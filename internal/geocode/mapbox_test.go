package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestForwardReturnsFirstFeatureGeometry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("access_token") != "test-token" {
			t.Errorf("expected access_token in query, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"features":[{"geometry":{"type":"Point","coordinates":[-119.95,39.09]}}]}`))
	}))
	defer server.Close()

	client := &MapboxClient{Token: "test-token", BaseURL: server.URL, HTTPClient: server.Client()}

	geometry, err := client.Forward(context.Background(), "Lake Tahoe")
	if err != nil {
		t.Fatalf("Forward returned error: %v", err)
	}
	if geometry.Type != "Point" {
		t.Fatalf("expected Point geometry, got %q", geometry.Type)
	}
	if len(geometry.Coordinates) != 2 || geometry.Coordinates[0] != -119.95 || geometry.Coordinates[1] != 39.09 {
		t.Fatalf("unexpected coordinates: %v", geometry.Coordinates)
	}
}

func TestForwardNoFeaturesReturnsErrNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"features":[]}`))
	}))
	defer server.Close()

	client := &MapboxClient{Token: "test-token", BaseURL: server.URL, HTTPClient: server.Client()}

	_, err := client.Forward(context.Background(), "nonexistent-place-xyz")
	if !errors.Is(err, ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
}

func TestForwardNonOKStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := &MapboxClient{Token: "bad-token", BaseURL: server.URL, HTTPClient: server.Client()}

	_, err := client.Forward(context.Background(), "anywhere")
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
	if errors.Is(err, ErrNoResults) {
		t.Fatal("status error must not be ErrNoResults")
	}
}
