// Package client provides HTTP clients for the external enrichment providers.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"leadreach_backend/platform/config"
	"leadreach_backend/platform/logger"
)

const (
	defaultHTTPTimeout = 10 * time.Second
)

// FlexNumber handles JSON fields that may be a number or a quoted string.
// DataUSA serializes some measures inconsistently across years.
type FlexNumber struct {
	Value *float64
}

// UnmarshalJSON implements json.Unmarshaler for FlexNumber.
func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		f.Value = nil
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		f.Value = &num
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if str == "" {
			f.Value = nil
			return nil
		}
		parsed, parseErr := strconv.ParseFloat(str, 64)
		if parseErr != nil {
			f.Value = nil
			return nil
		}
		f.Value = &parsed
		return nil
	}

	f.Value = nil
	return nil
}

// ToFloat64 returns the value, or the given fallback when absent.
func (f FlexNumber) ToFloat64(fallback float64) float64 {
	if f.Value == nil {
		return fallback
	}
	return *f.Value
}

// ToInt64 returns the value truncated to int64, or the fallback when absent.
func (f FlexNumber) ToInt64(fallback int64) int64 {
	if f.Value == nil {
		return fallback
	}
	return int64(*f.Value)
}

// Client calls the OpenWeather and DataUSA APIs.
type Client struct {
	httpClient *http.Client
	cfg        config.EnrichmentConfig
	log        *logger.Logger
}

// New creates a new enrichment API client.
func New(cfg config.EnrichmentConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		cfg:        cfg,
		log:        log,
	}
}

// getJSON performs a GET request and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, provider, endpoint string, params url.Values, out any) error {
	requestURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("create %s request: %w", provider, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ExternalAPIError(provider, "request", err)
		return fmt.Errorf("%s request failed: %w", provider, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%s returned status %d", provider, resp.StatusCode)
		c.log.ExternalAPIError(provider, "response", err)
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.ExternalAPIError(provider, "decode", err)
		return fmt.Errorf("decode %s response: %w", provider, err)
	}

	return nil
}
