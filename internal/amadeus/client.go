// Package amadeus is a thin client for the Amadeus flight-offers API,
// the upstream provider that delivers raw offer records for ingestion.
package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const defaultBaseURL = "https://test.api.amadeus.com"

// tokenSafety refreshes the OAuth token this long before it expires.
const tokenSafety = 10 * time.Minute

// Offer is one raw flight offer as reported by the provider, before
// any cleaning or classification.
type Offer struct {
	Origin        string
	Destination   string
	DepartureDate string // YYYY-MM-DD as sent by the API
	ReturnDate    string
	Airline       string
	Price         string // decimal string, parsed during cleaning
	Currency      string
}

// Client talks to the Amadeus REST API using the client-credentials
// OAuth2 flow. It caches the access token and refreshes it shortly
// before expiry. Safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewClient constructs a client with sane defaults.
func NewClient(apiKey, apiSecret string, opts ...func(*Client)) *Client {
	c := &Client{
		baseURL:   defaultBaseURL,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithHTTPClient overrides the internal HTTP client.
func WithHTTPClient(hc *http.Client) func(*Client) {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the default API base URL (useful for tests).
func WithBaseURL(u string) func(*Client) {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// accessToken returns a valid bearer token, requesting a fresh one when
// the cached token is absent or close to expiry.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && time.Now().Before(c.expiresAt) {
		return c.token, nil
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.apiKey},
		"client_secret": {c.apiSecret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("amadeus: create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("amadeus: token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("amadeus: token error %d: %s", resp.StatusCode, string(data))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("amadeus: decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("amadeus: empty access token")
	}
	c.token = payload.AccessToken
	c.expiresAt = time.Now().Add(time.Duration(payload.ExpiresIn)*time.Second - tokenSafety)
	return c.token, nil
}

// offersResponse mirrors the subset of the flight-offers payload we
// consume.
type offersResponse struct {
	Data []struct {
		Itineraries []struct {
			Segments []struct {
				Departure struct {
					IataCode string `json:"iataCode"`
					At       string `json:"at"`
				} `json:"departure"`
				Arrival struct {
					IataCode string `json:"iataCode"`
				} `json:"arrival"`
				CarrierCode string `json:"carrierCode"`
			} `json:"segments"`
		} `json:"itineraries"`
		Price struct {
			Total    string `json:"total"`
			Currency string `json:"currency"`
		} `json:"price"`
	} `json:"data"`
}

// SearchOffers queries flight offers for one route and departure date.
// The provider reports each offer's full itinerary; only the first and
// last segment of the outbound leg matter for the route, and the first
// itinerary's date is the departure date.
func (c *Client) SearchOffers(ctx context.Context, origin, destination, departureDate string) ([]Offer, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	q := url.Values{
		"originLocationCode":      {origin},
		"destinationLocationCode": {destination},
		"departureDate":           {departureDate},
		"adults":                  {"1"},
		"max":                     {"100"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v2/shopping/flight-offers?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("amadeus: create search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("amadeus: search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("amadeus: search error %d: %s", resp.StatusCode, string(data))
	}

	var payload offersResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("amadeus: decode search response: %w", err)
	}

	offers := make([]Offer, 0, len(payload.Data))
	for _, d := range payload.Data {
		if len(d.Itineraries) == 0 || len(d.Itineraries[0].Segments) == 0 {
			continue
		}
		segments := d.Itineraries[0].Segments
		first := segments[0]
		last := segments[len(segments)-1]

		date := first.Departure.At
		if len(date) >= 10 {
			date = date[:10]
		}
		offers = append(offers, Offer{
			Origin:        first.Departure.IataCode,
			Destination:   last.Arrival.IataCode,
			DepartureDate: date,
			Airline:       first.CarrierCode,
			Price:         d.Price.Total,
			Currency:      d.Price.Currency,
		})
	}
	return offers, nil
}
