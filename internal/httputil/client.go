// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the LLM and search clients.
package httputil

import (
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/teaching-team/pkg/types"
)

// redactedParams are query parameters whose values never reach the logs.
var redactedParams = []string{"api_key", "key", "token"}

// NewClient returns an HTTP client with cfg's timeout. Requests carry
// cfg.UserAgent when set and are logged at debug level.
func NewClient(cfg types.HTTPConfig, logger *zap.Logger) *http.Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &loggingTransport{
			base:      http.DefaultTransport,
			userAgent: cfg.UserAgent,
			logger:    logger,
		},
	}
}

// loggingTransport sets the User-Agent header and logs each round trip.
type loggingTransport struct {
	base      http.RoundTripper
	userAgent string
	logger    *zap.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", RedactURL(req.URL)),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		t.logger.Debug("http request failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	t.logger.Debug("http request", append(fields, zap.Int("status", resp.StatusCode))...)
	return resp, nil
}

// RedactURL renders u with credential query parameters masked.
func RedactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	q := u.Query()
	changed := false
	for _, p := range redactedParams {
		if q.Has(p) {
			q.Set(p, "REDACTED")
			changed = true
		}
	}
	if !changed {
		return u.String()
	}
	c := *u
	c.RawQuery = q.Encode()
	return c.String()
}
