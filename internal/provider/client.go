// Package provider is the single choke point for calls to the Commerce
// Provider's REST API. It injects credentials, normalizes failure bodies
// into displayable messages, and leaves caching to the calling service.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gamestore/internal/domain"
)

// Client talks to the Commerce Provider on behalf of one store.
type Client struct {
	baseURL    string
	apiKey     string
	storeID    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewClient builds a provider client. baseURL carries no trailing slash.
func NewClient(baseURL, apiKey, storeID string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		storeID:    storeID,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// Fetch performs a request against the provider. The bearer credential and
// JSON content-type headers are always injected; caller-supplied headers
// are applied afterwards and may override them. The raw response is
// returned un-parsed so callers can distinguish transport failures from
// payload-shape failures; the caller owns closing the body.
func (c *Client) Fetch(ctx context.Context, method, path string, query url.Values, body io.Reader, headers http.Header) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	for key, values := range headers {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	return c.httpClient.Do(req)
}

// GetJSON fetches path and decodes the 2xx response body into out. Non-2xx
// responses come back as a normalized *Error; a body that decodes but does
// not fit out's shape surfaces as domain.ErrBadResponse.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.Fetch(ctx, http.MethodGet, path, query, nil, nil)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.readError(path, resp)
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(out); err != nil {
		c.logger.Printf("provider: decode %s error=%v", path, err)
		return fmt.Errorf("decode %s: %w", path, domain.ErrBadResponse)
	}
	return nil
}

// Checkout submits a checkout request and returns the hosted-checkout URL.
func (c *Client) Checkout(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal checkout: %w", err)
	}

	query := url.Values{"store": {c.storeID}}
	resp, err := c.Fetch(ctx, http.MethodPost, "/store/checkout", query, bytes.NewReader(payload), nil)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.readError("/store/checkout", resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read checkout response: %w", err)
	}
	var out domain.CheckoutResponse
	if err := json.Unmarshal(body, &out); err != nil || out.URL == "" {
		c.logger.Printf("provider: checkout response not usable err=%v body=%.200s", err, body)
		return nil, fmt.Errorf("checkout response: %w", domain.ErrBadResponse)
	}
	return &out, nil
}

// Identifiers asks which identifier names the checkout form must collect
// for the given products. The endpoint requires no credential; the
// provider answers either a bare array or the wrapped object form.
func (c *Client) Identifiers(ctx context.Context, productIDs []int) (*domain.CheckoutIdentifiersResponse, error) {
	products, err := json.Marshal(productIDs)
	if err != nil {
		return nil, fmt.Errorf("marshal product ids: %w", err)
	}
	query := url.Values{
		"store":    {c.storeID},
		"products": {string(products)},
	}
	headers := http.Header{"Authorization": nil}
	resp, err := c.Fetch(ctx, http.MethodGet, "/store/checkout/identifiers", query, nil, headers)
	if err != nil {
		return nil, fmt.Errorf("identifiers: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.readError("/store/checkout/identifiers", resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read identifiers response: %w", err)
	}

	var names []string
	if err := json.Unmarshal(body, &names); err == nil {
		return &domain.CheckoutIdentifiersResponse{Identifiers: names}, nil
	}
	var out domain.CheckoutIdentifiersResponse
	if err := json.Unmarshal(body, &out); err != nil {
		c.logger.Printf("provider: identifiers response not usable body=%.200s", body)
		return nil, fmt.Errorf("identifiers response: %w", domain.ErrBadResponse)
	}
	return &out, nil
}

func (c *Client) readError(path string, resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	perr := normalizeError(resp.StatusCode, body)
	c.logger.Printf("provider: %s status=%d message=%q", path, perr.Status, perr.Message)
	return perr
}

// AsError unwraps a normalized provider failure from err, if present.
func AsError(err error) (*Error, bool) {
	var perr *Error
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}
