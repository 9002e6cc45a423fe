// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package probe fetches series data and measures its accessibility and shape.
// See docs/ARCHITECTURE § Probing.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/catalog-engine/internal/httputil"
	"github.com/pdiddy/catalog-engine/pkg/types"
)

// FetchResponse is what a fetch client returns for one series. Success and
// Error cover providers that report failure in-band; transport failures
// surface as an error from FetchSeries instead. The prober tolerates both.
type FetchResponse struct {
	Success    bool
	HTTPStatus int
	Payload    string
	Error      string
}

// FetchClient retrieves the raw data payload for a single series.
type FetchClient interface {
	FetchSeries(ctx context.Context, id string) (FetchResponse, error)
}

// HTTPFetchClient fetches series data from an SDMX data endpoint.
type HTTPFetchClient struct {
	Client     *http.Client
	Endpoint   string
	UserAgent  string
	APIKey     string
	MaxRetries int
}

// NewHTTPFetchClient builds a client from probe configuration.
func NewHTTPFetchClient(cfg types.ProbeConfig) *HTTPFetchClient {
	return &HTTPFetchClient{
		Client:     &http.Client{Timeout: cfg.Timeout},
		Endpoint:   cfg.DataEndpoint,
		UserAgent:  cfg.UserAgent,
		APIKey:     cfg.APIKey,
		MaxRetries: cfg.MaxRetries,
	}
}

// FetchSeries requests <endpoint>/data/<id>. Non-200 statuses become an
// in-band failure with the status recorded; only building or executing the
// request returns an error.
func (c *HTTPFetchClient) FetchSeries(ctx context.Context, id string) (FetchResponse, error) {
	if c.Endpoint == "" {
		return FetchResponse{}, fmt.Errorf("data endpoint is not configured")
	}

	endpoint := strings.TrimRight(c.Endpoint, "/") + "/data/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return FetchResponse{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.APIKey != "" {
		req.Header.Set("Ocp-Apim-Subscription-Key", c.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, c.MaxRetries)
	if err != nil {
		return FetchResponse{}, fmt.Errorf("fetching %s: %w", id, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return FetchResponse{HTTPStatus: resp.StatusCode}, fmt.Errorf("reading %s response: %w", id, err)
	}

	if resp.StatusCode != http.StatusOK {
		return FetchResponse{
			HTTPStatus: resp.StatusCode,
			Error:      fmt.Sprintf("HTTP %d from %s", resp.StatusCode, endpoint),
		}, nil
	}

	return FetchResponse{
		Success:    true,
		HTTPStatus: resp.StatusCode,
		Payload:    string(body),
	}, nil
}
