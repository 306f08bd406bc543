// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package fetch retrieves the raw report markup.
package fetch

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Snogren/testpadapi/internal/cacheutil"
	"github.com/Snogren/testpadapi/internal/failure"
	"github.com/Snogren/testpadapi/internal/log"
	"github.com/Snogren/testpadapi/internal/version"
)

// DefaultTimeout bounds a single request when none is configured.
const DefaultTimeout = 30 * time.Second

const markupKind = "markup"

// Fetcher issues one GET per call and never retries.
type Fetcher struct {
	client *resty.Client
	cache  *cacheutil.Cache
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.client.SetTimeout(d)
		}
	}
}

// WithCache keeps a copy of each fetched document in c.
func WithCache(c *cacheutil.Cache) Option {
	return func(f *Fetcher) { f.cache = c }
}

// New returns a Fetcher with a fresh resty client.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: resty.New().
			SetRetryCount(0).
			SetTimeout(DefaultTimeout).
			SetHeader("User-Agent", version.UserAgent()),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch GETs rawURL and returns the body. Transport errors and non-2xx
// responses are fetch failures.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	target := Redact(rawURL)
	if rawURL == "" {
		return nil, failure.Newf(failure.Fetch, "", "no report URL configured")
	}

	log.Debugf("fetching %s", target)
	res, err := f.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, failure.New(failure.Fetch, target, redactError(err, target))
	}
	if !res.IsSuccess() {
		return nil, failure.Newf(failure.Fetch, target, "unexpected status %s", res.Status())
	}

	body := res.Body()
	log.Debugf("fetched %d bytes in %s", len(body), res.Time())

	if err := f.cache.Write(markupKind, rawURL, body); err != nil {
		log.WithError(err).Warn("failed to cache report markup")
	}
	return body, nil
}

// Cached returns the markup last fetched from rawURL.
func (f *Fetcher) Cached(rawURL string) ([]byte, error) {
	entry, ok := f.cache.Read(markupKind, rawURL)
	if !ok {
		return nil, failure.Newf(failure.Fetch, Redact(rawURL), "no cached markup")
	}
	log.Infof("using markup cached at %s", entry.ModTime.Format(time.RFC3339))
	return entry.Data, nil
}

// redactError replaces the URL the HTTP client embeds in err with target.
func redactError(err error, target string) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		uerr.URL = target
	}
	return err
}

// Redact drops the query string, which carries the report's auth token, so
// the URL can be logged.
func Redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid url>"
	}
	if u.RawQuery != "" {
		u.RawQuery = "REDACTED"
	}
	u.User = nil
	return u.String()
}
