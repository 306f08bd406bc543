// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Snogren/testpadapi/internal/failure"
	"github.com/Snogren/testpadapi/internal/snapshot"
)

// Resolve maps snapshot specs onto entries, which must be in ascending name
// order as List returns them. No specs resolves the latest snapshot. A spec
// is one of:
//
//	~N      the N-th most recent snapshot, ~0 being the latest
//	0, -N   the same, relative to the latest
//	ID      a snapshot name or name prefix, with or without data_; the most
//	        recent match wins
//	path    a snapshot file outside the store
func Resolve(entries []Entry, specs ...string) ([]Entry, error) {
	if len(specs) == 0 {
		specs = []string{"~0"}
	}

	result := make([]Entry, 0, len(specs))
	for _, spec := range specs {
		e, err := resolveSpec(spec, entries)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, nil
}

func resolveSpec(spec string, entries []Entry) (Entry, error) {
	spec = strings.TrimSpace(spec)

	switch {
	case spec == "":
		return Entry{}, fmt.Errorf("empty snapshot spec")

	case strings.HasPrefix(spec, "~"):
		n, err := strconv.Atoi(spec[1:])
		if err != nil || n < 0 {
			return Entry{}, fmt.Errorf("invalid snapshot spec: %s", spec)
		}
		return recent(n, entries)

	case isRelative(spec):
		n, _ := strconv.Atoi(spec)
		return recent(-n, entries)
	}

	if e, ok := resolveID(spec, entries); ok {
		return e, nil
	}

	if info, err := os.Stat(spec); err == nil && !info.IsDir() {
		at, _ := ParseName(info.Name())
		return Entry{ID: spec, CapturedAt: at, Size: info.Size(), Location: spec, External: true}, nil
	}

	return Entry{}, fmt.Errorf("no snapshot matches %s", spec)
}

func recent(n int, entries []Entry) (Entry, error) {
	if n > len(entries)-1 {
		return Entry{}, fmt.Errorf("index %d out of range for %d snapshots", n, len(entries))
	}
	return entries[len(entries)-1-n], nil
}

// isRelative reports whether spec is a zero or negative integer.
func isRelative(spec string) bool {
	n, err := strconv.Atoi(spec)
	return err == nil && n <= 0
}

func resolveID(spec string, entries []Entry) (Entry, bool) {
	if !strings.HasPrefix(spec, namePrefix) {
		spec = namePrefix + spec
	}
	for i := len(entries) - 1; i >= 0; i-- {
		if strings.HasPrefix(entries[i].ID, spec) {
			return entries[i], true
		}
	}
	return Entry{}, false
}

// ReadEntry reads an entry returned by Resolve, from the store or, for external
// entries, from disk.
func (a *Archive) ReadEntry(ctx context.Context, e Entry) ([]byte, error) {
	if !e.External {
		return a.Raw(ctx, e.ID)
	}
	data, err := os.ReadFile(e.Location)
	if err != nil {
		return nil, failure.New(failure.Store, e.Location, err)
	}
	return data, nil
}

// LoadEntry reads and decodes an entry returned by Resolve.
func (a *Archive) LoadEntry(ctx context.Context, e Entry) (snapshot.Snapshot, error) {
	data, err := a.ReadEntry(ctx, e)
	if err != nil {
		return nil, err
	}
	return decode(e.Location, data)
}

// ResolveSpecs lists the archive and resolves specs against it.
func (a *Archive) ResolveSpecs(ctx context.Context, specs ...string) ([]Entry, error) {
	entries, err := a.List(ctx)
	if err != nil {
		return nil, err
	}
	return Resolve(entries, specs...)
}
