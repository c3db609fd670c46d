package vinlookup

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// defaultPrice substitutes for a live payload that carries no usable price.
const defaultPrice = 15000

// Quote is a single price lookup result. Live marks a value that came from
// the upstream API rather than the local simulator.
type Quote struct {
	Value float64
	Live  bool
}

// Client fetches vehicle market values from the RapidAPI VIN endpoint.
// Lookup never returns an error: when the upstream is unreachable, times
// out, or no API key is configured, it degrades to a simulated quote.
type Client struct {
	apiKey string
	apiURL string
	hc     *http.Client
	log    *zap.Logger
}

func New(apiKey, apiURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		apiKey: apiKey,
		apiURL: apiURL,
		hc:     &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Configured reports whether the client has upstream credentials.
func (c *Client) Configured() bool { return c.apiKey != "" }

func (c *Client) Lookup(ctx context.Context, vin string) Quote {
	if c.apiKey == "" {
		return Quote{Value: simulatedValue()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		c.log.Warn("vin lookup request build failed, using simulated valuation", zap.Error(err))
		return Quote{Value: simulatedValue()}
	}
	q := req.URL.Query()
	q.Set("vin", vin)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", hostOf(c.apiURL))

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn("vin lookup failed, using simulated valuation", zap.String("vin", vin), zap.Error(err))
		return Quote{Value: simulatedValue()}
	}
	defer resp.Body.Close()

	var payload map[string]any
	if resp.StatusCode != http.StatusOK || json.NewDecoder(resp.Body).Decode(&payload) != nil {
		c.log.Warn("vin lookup bad response, using simulated valuation",
			zap.String("vin", vin), zap.Int("status", resp.StatusCode))
		return Quote{Value: simulatedValue()}
	}

	v := extractPrice(payload)
	if v == 0 {
		v = defaultPrice
	}
	return Quote{Value: v, Live: true}
}

// extractPrice tries the known payload fields in priority order:
// price, estimated_value, then data.price.
func extractPrice(payload map[string]any) float64 {
	if v := asFloat(payload["price"]); v != 0 {
		return v
	}
	if v := asFloat(payload["estimated_value"]); v != 0 {
		return v
	}
	if data, ok := payload["data"].(map[string]any); ok {
		return asFloat(data["price"])
	}
	return 0
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	}
	return 0
}

// simulatedValue mirrors the mock pricing model: base 20000 minus a random
// offset in [5000, 13000), landing in [7000, 15000].
func simulatedValue() float64 {
	return float64(20000 - (rand.IntN(8000) + 5000))
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
