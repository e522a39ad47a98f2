// Package distancematrix queries the Google Distance Matrix API for
// driving distances between formatted addresses.
package distancematrix

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/terangalabs/livraison-webhook/internal/domains/orders/ports"
)

// DefaultBaseURL is the production distance-matrix endpoint.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api/distancematrix"

const statusOK = "OK"

var _ ports.DistanceEstimator = (*Client)(nil)

// Client calls the distance-matrix service. The API credential and reply
// language are fixed at construction.
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLanguage sets the language requested for service replies.
func WithLanguage(language string) Option {
	return func(c *Client) {
		if language != "" {
			c.language = language
		}
	}
}

// NewClient instantiates the distance-matrix client with sane defaults.
// An empty baseURL selects the production endpoint.
func NewClient(baseURL, apiKey string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("distance matrix API key is required")
	}
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		language:   "fr",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// response mirrors the subset of the API payload the service reads: a
// top-level status plus one element per origin/destination pair, each
// carrying its own status and a distance in meters.
type response struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value float64 `json:"value"`
			} `json:"distance"`
		} `json:"elements"`
	} `json:"rows"`
}

// DrivingDistance returns the driving distance in meters between origin
// and destination. A non-OK top-level status, a non-OK element status, or
// an empty result maps to ports.ErrNoRoute.
func (c *Client) DrivingDistance(ctx context.Context, origin, destination string) (float64, error) {
	query := url.Values{}
	query.Set("origins", origin)
	query.Set("destinations", destination)
	query.Set("key", c.apiKey)
	query.Set("language", c.language)

	endpoint := c.baseURL + "/json?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("build distance matrix request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("call distance matrix API: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("distance matrix API returned %s", resp.Status)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode distance matrix response: %w", err)
	}
	if payload.Status != statusOK {
		return 0, fmt.Errorf("%w: response status %s", ports.ErrNoRoute, payload.Status)
	}
	if len(payload.Rows) == 0 || len(payload.Rows[0].Elements) == 0 {
		return 0, fmt.Errorf("%w: empty result set", ports.ErrNoRoute)
	}
	element := payload.Rows[0].Elements[0]
	if element.Status != statusOK {
		return 0, fmt.Errorf("%w: element status %s", ports.ErrNoRoute, element.Status)
	}
	return element.Distance.Value, nil
}
