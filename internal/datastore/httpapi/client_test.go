package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vietddude/matchboard/internal/core/domain"
	"github.com/vietddude/matchboard/internal/datastore"
	"github.com/vietddude/matchboard/internal/resilience/fetch"
)

func TestQueryCampaigns_BuildsFilterQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"c1","status":"active","created_at":"2026-03-01T00:00:00Z"}]`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	campaigns, err := c.QueryCampaigns(context.Background(), datastore.CampaignFilter{
		Status:          domain.CampaignStatusActive,
		Category:        "Beauty",
		TargetLanguages: []string{"en", "ko"},
	})
	if err != nil {
		t.Fatalf("QueryCampaigns failed: %v", err)
	}
	if len(campaigns) != 1 || campaigns[0].ID != "c1" {
		t.Errorf("campaigns = %+v", campaigns)
	}
	for _, want := range []string{"status=active", "category=Beauty", "target_languages=en%2Cko"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestGetInfluencer_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such influencer", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.GetInfluencer(context.Background(), "ghost")
	if !errors.Is(err, datastore.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestErrorClassMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   fetch.ErrorClass
	}{
		{"422 is application-class", http.StatusUnprocessableEntity, fetch.ClassApplication},
		{"401 is application-class", http.StatusUnauthorized, fetch.ClassApplication},
		{"503 is network-class", http.StatusServiceUnavailable, fetch.ClassNetwork},
		{"500 is network-class", http.StatusInternalServerError, fetch.ClassNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.status)
			}))
			defer srv.Close()

			c := NewClient(Config{BaseURL: srv.URL})
			_, err := c.QueryCampaigns(context.Background(), datastore.CampaignFilter{})
			if err == nil {
				t.Fatal("expected error")
			}
			if got := fetch.Classify(err); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", err, got, tt.want)
			}
		})
	}
}

func TestGetJSON_TransportFailureIsNetworkClass(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Connection refused from here on

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.QueryCampaigns(context.Background(), datastore.CampaignFilter{})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := fetch.Classify(err); got != fetch.ClassNetwork {
		t.Errorf("Classify(%v) = %v, want network", err, got)
	}
}
