// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"io/fs"
	"sort"
	"time"

	"github.com/Snogren/testpadapi/internal/differ"
	"github.com/Snogren/testpadapi/internal/failure"
	"github.com/Snogren/testpadapi/internal/log"
	"github.com/Snogren/testpadapi/internal/snapshot"
)

// ErrEmpty is returned by LoadLatest when nothing has been stored yet.
var ErrEmpty = errors.New("no snapshots stored")

// maxNameAttempts bounds how far Store walks forward past taken names.
const maxNameAttempts = 60

// Entry describes one stored snapshot.
type Entry struct {
	ID         string    `json:"id"`
	CapturedAt time.Time `json:"captured_at"`
	Size       int64     `json:"size"`
	Location   string    `json:"location"`
	// External marks a file resolved from a path outside the store.
	External bool `json:"-"`
}

// HistoryEntry is the change from the previous stored snapshot to the one
// named by ID.
type HistoryEntry struct {
	ID       string              `json:"file"`
	Previous string              `json:"previous"`
	Changes  differ.ChangeRecord `json:"changes"`
}

// Archive names, orders and compares the snapshots a Backend holds.
type Archive struct {
	backend  Backend
	now      func() time.Time
	comparer differ.Comparer
	last     time.Time
}

// Option customizes an Archive.
type Option func(*Archive)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *Archive) { a.now = now }
}

// WithComparer sets how History compares consecutive snapshots.
func WithComparer(c differ.Comparer) Option {
	return func(a *Archive) { a.comparer = c }
}

// New returns an Archive over b.
func New(b Backend, opts ...Option) *Archive {
	a := &Archive{backend: b, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Store writes snap under a name derived from the current second. Names
// issued by one Archive strictly increase: when the clock has not moved past
// the last issued second, or the name is already taken, the timestamp
// advances by a second.
func (a *Archive) Store(ctx context.Context, snap snapshot.Snapshot) (string, error) {
	data, err := snap.Encode()
	if err != nil {
		return "", failure.New(failure.Store, "encode", err)
	}

	ts := a.now().Truncate(time.Second)
	if !a.last.IsZero() && !ts.After(a.last) {
		ts = a.last.Add(time.Second)
	}

	for range maxNameAttempts {
		name := Name(ts)
		err := a.backend.Create(ctx, name, data)
		if err == nil {
			a.last = ts
			log.Debugf("stored %s (%d bytes)", a.backend.Locate(name), len(data))
			return name, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", failure.New(failure.Store, a.backend.Locate(name), err)
		}
		log.Debugf("%s exists, advancing a second", name)
		ts = ts.Add(time.Second)
	}
	return "", failure.Newf(failure.Store, a.backend.String(), "no free snapshot name after %d attempts", maxNameAttempts)
}

// List returns the stored snapshots in ascending name order.
func (a *Archive) List(ctx context.Context) ([]Entry, error) {
	objects, err := a.backend.List(ctx)
	if err != nil {
		return nil, failure.New(failure.Store, a.backend.String(), err)
	}

	entries := make([]Entry, 0, len(objects))
	for _, o := range objects {
		at, ok := ParseName(o.Name)
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			ID:         o.Name,
			CapturedAt: at,
			Size:       o.Size,
			Location:   a.backend.Locate(o.Name),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

// Load reads and decodes one snapshot.
func (a *Archive) Load(ctx context.Context, id string) (snapshot.Snapshot, error) {
	data, err := a.backend.Read(ctx, id)
	if err != nil {
		return nil, failure.New(failure.Store, a.backend.Locate(id), err)
	}
	return decode(a.backend.Locate(id), data)
}

// Raw reads one snapshot without decoding it.
func (a *Archive) Raw(ctx context.Context, id string) ([]byte, error) {
	data, err := a.backend.Read(ctx, id)
	if err != nil {
		return nil, failure.New(failure.Store, a.backend.Locate(id), err)
	}
	return data, nil
}

// LoadLatest returns the snapshot with the greatest name, or ErrEmpty.
func (a *Archive) LoadLatest(ctx context.Context) (snapshot.Snapshot, string, error) {
	entries, err := a.List(ctx)
	if err != nil {
		return nil, "", err
	}
	if len(entries) == 0 {
		return nil, "", ErrEmpty
	}

	id := entries[len(entries)-1].ID
	snap, err := a.Load(ctx, id)
	if err != nil {
		return nil, id, err
	}
	return snap, id, nil
}

// History diffs every stored snapshot against the one before it. Snapshots
// that cannot be read or decoded are logged and skipped; the chain resumes
// from the last good snapshot.
func (a *Archive) History(ctx context.Context) ([]HistoryEntry, error) {
	entries, err := a.List(ctx)
	if err != nil {
		return nil, err
	}

	history := []HistoryEntry{}
	var (
		prev   snapshot.Snapshot
		prevID string
	)
	for _, e := range entries {
		snap, err := a.Load(ctx, e.ID)
		if err != nil {
			log.WithError(err).Warnf("skipping %s", e.ID)
			continue
		}
		if prev != nil {
			history = append(history, HistoryEntry{
				ID:       e.ID,
				Previous: prevID,
				Changes:  a.comparer.Compare(prev, snap),
			})
		}
		prev, prevID = snap, e.ID
	}
	return history, nil
}

// Locate returns where id lives in the backend.
func (a *Archive) Locate(id string) string {
	return a.backend.Locate(id)
}

func (a *Archive) String() string {
	return a.backend.String()
}

func decode(where string, data []byte) (snapshot.Snapshot, error) {
	snap, err := snapshot.Decode(data)
	if err != nil {
		return nil, failure.New(failure.Decode, where, err)
	}
	return snap, nil
}
