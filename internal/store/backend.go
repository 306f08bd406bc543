// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"fmt"
	"time"
)

// Object is a stored document as a backend lists it.
type Object struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// Backend abstracts where snapshot documents live.
type Backend interface {
	// List returns every object under the backend's root. A root that does
	// not exist yet lists as empty.
	List(ctx context.Context) ([]Object, error)
	// Read returns the named object's body.
	Read(ctx context.Context, name string) ([]byte, error)
	// Create writes a new object. It fails with an error matching
	// fs.ErrExist when the name is taken.
	Create(ctx context.Context, name string, data []byte) error
	// Locate returns a human-readable location for name.
	Locate(name string) string
	String() string
}

// Backend types.
const (
	TypeLocal = "local"
	TypeS3    = "s3"
)

// DefaultDir is the local backend's directory when none is configured.
const DefaultDir = "data"

// Settings select and configure a Backend.
type Settings struct {
	Type string
	Dir  string

	Bucket   string
	Prefix   string
	Region   string
	Profile  string
	Endpoint string
}

// Open returns the Backend described by s.
func Open(ctx context.Context, s Settings) (Backend, error) {
	switch s.Type {
	case "", TypeLocal:
		dir := s.Dir
		if dir == "" {
			dir = DefaultDir
		}
		return NewLocal(dir), nil
	case TypeS3:
		return NewS3(ctx, s)
	default:
		return nil, fmt.Errorf("unknown store type %q (want %s or %s)", s.Type, TypeLocal, TypeS3)
	}
}
