package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/cineverse/cineverse/internal/config"
)

// LanguageFunc returns the active display-language preference. It is
// consulted on every request so a language change takes effect immediately.
type LanguageFunc func() string

// Client wraps the catalog provider's read-only HTTP API. Every request
// carries the active language parameter. Responses are cached with a short
// TTL and transient failures are retried with exponential backoff.
type Client struct {
	baseURL    string
	apiKey     string
	language   LanguageFunc
	httpClient *http.Client
	cache      *gocache.Cache
	logger     *logrus.Logger
}

// NewClient creates a new catalog client.
func NewClient(cfg *config.Config, language LanguageFunc, logger *logrus.Logger) (*Client, error) {
	if cfg.TMDBAPIKey == "" {
		return nil, fmt.Errorf("catalog API key is required")
	}
	if language == nil {
		return nil, fmt.Errorf("language source is required")
	}

	ttl := time.Duration(cfg.CatalogCacheTTLMinutes) * time.Minute
	return &Client{
		baseURL:    cfg.TMDBBaseURL,
		apiKey:     cfg.TMDBAPIKey,
		language:   language,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      gocache.New(ttl, 2*ttl),
		logger:     logger,
	}, nil
}

// SweepCache evicts expired response cache entries.
func (c *Client) SweepCache() {
	c.cache.DeleteExpired()
}

// get performs a cached, retried GET against the provider and decodes the
// JSON response into result.
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("language", c.language())

	cacheKey := path + "?" + params.Encode()
	if cached, ok := c.cache.Get(cacheKey); ok {
		if err := json.Unmarshal(cached.([]byte), result); err == nil {
			return nil
		}
		c.cache.Delete(cacheKey)
	}

	apiURL, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid catalog base URL: %w", err)
	}
	apiURL.Path, err = url.JoinPath(apiURL.Path, path)
	if err != nil {
		return fmt.Errorf("invalid catalog path %q: %w", path, err)
	}
	params.Set("api_key", c.apiKey)
	apiURL.RawQuery = params.Encode()
	finalURL := apiURL.String()

	c.logger.WithFields(logrus.Fields{
		"path":     path,
		"language": params.Get("language"),
	}).Debug("Performing catalog request")

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, finalURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "cineverse/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("catalog request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			respBody, _ := io.ReadAll(resp.Body)
			err := fmt.Errorf("catalog API returned status %d: %s", resp.StatusCode, string(respBody))
			// Client errors won't heal on retry; 429 and 5xx might.
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return backoff.Permanent(err)
			}
			return err
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxElapsedTime = 10 * time.Second
	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to decode catalog response: %w", err)
	}

	c.cache.SetDefault(cacheKey, body)
	return nil
}
