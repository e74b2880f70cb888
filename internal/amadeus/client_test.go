package amadeus

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchOffersParsesItineraries(t *testing.T) {
	tokenCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/security/oauth2/token":
			tokenCalls++
			if err := r.ParseForm(); err != nil {
				t.Fatalf("parse form: %v", err)
			}
			if r.Form.Get("grant_type") != "client_credentials" {
				t.Errorf("grant_type = %q", r.Form.Get("grant_type"))
			}
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "tok-123",
				"expires_in":   3600,
			})
		case "/v2/shopping/flight-offers":
			if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
				t.Errorf("authorization = %q", got)
			}
			if got := r.URL.Query().Get("originLocationCode"); got != "SYD" {
				t.Errorf("origin = %q", got)
			}
			w.Write([]byte(`{"data":[{
				"itineraries":[{"segments":[
					{"departure":{"iataCode":"SYD","at":"2025-07-07T09:00:00"},"arrival":{"iataCode":"MEL"},"carrierCode":"QF"}
				]}],
				"price":{"total":"300.50","currency":"AUD"}
			}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient("key", "secret", WithBaseURL(server.URL))
	offers, err := client.SearchOffers(context.Background(), "SYD", "MEL", "2025-07-07")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(offers) != 1 {
		t.Fatalf("expected 1 offer, got %d", len(offers))
	}
	offer := offers[0]
	if offer.Origin != "SYD" || offer.Destination != "MEL" {
		t.Fatalf("route = %s-%s", offer.Origin, offer.Destination)
	}
	if offer.DepartureDate != "2025-07-07" {
		t.Fatalf("departure date = %q", offer.DepartureDate)
	}
	if offer.Price != "300.50" || offer.Currency != "AUD" {
		t.Fatalf("price = %s %s", offer.Price, offer.Currency)
	}

	// Second search reuses the cached token.
	if _, err := client.SearchOffers(context.Background(), "SYD", "MEL", "2025-07-08"); err != nil {
		t.Fatalf("second search: %v", err)
	}
	if tokenCalls != 1 {
		t.Fatalf("token endpoint called %d times, want 1", tokenCalls)
	}
}

func TestSearchOffersSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/security/oauth2/token" {
			json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "expires_in": 3600})
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"errors":[{"title":"rate limit"}]}`))
	}))
	defer server.Close()

	client := NewClient("key", "secret", WithBaseURL(server.URL))
	if _, err := client.SearchOffers(context.Background(), "SYD", "MEL", "2025-07-07"); err == nil {
		t.Fatal("expected an error from a 429 response")
	}
}
