// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package tracker runs one capture: fetch the report, extract a snapshot,
// compare it with the latest stored snapshot and store it.
package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/Snogren/testpadapi/internal/cacheutil"
	"github.com/Snogren/testpadapi/internal/differ"
	"github.com/Snogren/testpadapi/internal/extract"
	"github.com/Snogren/testpadapi/internal/failure"
	"github.com/Snogren/testpadapi/internal/fetch"
	"github.com/Snogren/testpadapi/internal/log"
	"github.com/Snogren/testpadapi/internal/snapshot"
	"github.com/Snogren/testpadapi/internal/store"
)

// Config is everything a run needs, resolved once at startup.
type Config struct {
	URL      string
	Location snapshot.Location
	Store    store.Settings
	Timeout  time.Duration
	// KeyLists compares lists of mappings by their id field instead of as
	// opaque values.
	KeyLists bool
	// Offline replays the last fetched markup instead of issuing a request.
	Offline bool
}

// Fetcher retrieves report markup.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
	Cached(url string) ([]byte, error)
}

// Archive is the snapshot store a run reads from and appends to.
type Archive interface {
	LoadLatest(ctx context.Context) (snapshot.Snapshot, string, error)
	Store(ctx context.Context, snap snapshot.Snapshot) (string, error)
	Locate(id string) string
}

// Result reports what a run did.
type Result struct {
	PreviousID  string              `json:"previous,omitempty"`
	StoredID    string              `json:"stored"`
	Location    string              `json:"location"`
	HadPrevious bool                `json:"had_previous"`
	Changes     differ.ChangeRecord `json:"changes"`
}

// Tracker sequences a run.
type Tracker struct {
	cfg      Config
	fetcher  Fetcher
	archive  Archive
	comparer differ.Comparer
}

// New returns a Tracker over the given collaborators.
func New(cfg Config, f Fetcher, a Archive) *Tracker {
	t := &Tracker{cfg: cfg, fetcher: f, archive: a}
	if cfg.KeyLists {
		t.comparer = differ.Comparer{KeyField: differ.DefaultKeyField}
	}
	return t
}

// Open builds the fetcher and archive cfg describes.
func Open(ctx context.Context, cfg Config) (*Tracker, error) {
	backend, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	f := fetch.New(fetch.WithTimeout(cfg.Timeout), fetch.WithCache(cacheutil.Open()))
	return New(cfg, f, store.New(backend)), nil
}

// Run performs one capture. Fetch, parse and store failures abort the run
// with nothing stored. A latest snapshot that cannot be decoded is logged and
// the run proceeds as a first run.
func (t *Tracker) Run(ctx context.Context) (Result, error) {
	var res Result

	markup, err := t.markup(ctx)
	if err != nil {
		return res, err
	}

	current, err := extract.Extract(markup, t.cfg.Location)
	if err != nil {
		return res, err
	}

	previous, previousID, err := t.archive.LoadLatest(ctx)
	switch {
	case err == nil:
		res.HadPrevious = true
		res.PreviousID = previousID
	case errors.Is(err, store.ErrEmpty):
		log.Infof("no previous snapshot, first run")
	case failure.Is(err, failure.Decode):
		log.WithError(err).Warnf("ignoring unreadable previous snapshot %s", previousID)
	default:
		return res, err
	}

	if res.HadPrevious {
		res.Changes = t.comparer.Compare(previous, current)
		log.Debugf("%d changes since %s", res.Changes.Count(), previousID)
	}

	id, err := t.archive.Store(ctx, current)
	if err != nil {
		return res, err
	}
	res.StoredID = id
	res.Location = t.archive.Locate(id)

	return res, nil
}

func (t *Tracker) markup(ctx context.Context) ([]byte, error) {
	if t.cfg.Offline {
		return t.fetcher.Cached(t.cfg.URL)
	}
	return t.fetcher.Fetch(ctx, t.cfg.URL)
}
