// Package callmebot sends WhatsApp confirmation messages through the
// CallMeBot gateway.
package callmebot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/terangalabs/livraison-webhook/internal/domains/orders/domain"
	"github.com/terangalabs/livraison-webhook/internal/domains/orders/ports"
)

// DefaultBaseURL is the production CallMeBot endpoint.
const DefaultBaseURL = "https://api.callmebot.com"

var _ ports.Notifier = (*Client)(nil)

// Client submits messages to a fixed recipient with a fixed credential,
// both set at construction.
type Client struct {
	baseURL    string
	phone      string
	apiKey     string
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

// NewClient instantiates the CallMeBot client. An empty baseURL selects
// the production endpoint.
func NewClient(baseURL, phone, apiKey string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if strings.TrimSpace(phone) == "" {
		return nil, errors.New("recipient phone number is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("CallMeBot API key is required")
	}
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		phone:      phone,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// OrderConfirmed sends the confirmation message embedding the client
// name, the order reference, and the public receipt URL.
func (c *Client) OrderConfirmed(ctx context.Context, order *domain.Order, receiptURL string) error {
	if order == nil {
		return errors.New("order is nil")
	}
	message := fmt.Sprintf(
		"Bonjour %s, votre commande a été confirmée.\nRéf : %s\nVoici votre bon de livraison :\n%s\n\nMerci pour votre confiance.",
		order.ClientName, order.Reference, receiptURL,
	)

	query := url.Values{}
	query.Set("phone", c.phone)
	query.Set("text", message)
	query.Set("apikey", c.apiKey)

	endpoint := c.baseURL + "/whatsapp.php?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build CallMeBot request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call CallMeBot API: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("CallMeBot API returned %s", resp.Status)
	}
	return nil
}
