// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cacheutil keeps the most recently fetched report markup on disk so
// a run can be replayed without the network.
package cacheutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Snogren/testpadapi/internal/log"
)

// Entry is a cached artifact on disk. Key is the clear-text key; EncodedKey
// is the hashed filename.
type Entry struct {
	Key        string
	EncodedKey string
	Path       string
	Data       []byte
	ModTime    time.Time
}

// Cache is a directory of entries keyed by hashed clear-text keys, grouped
// into subdirectories by kind.
type Cache struct {
	Base string
}

// Dir resolves the base cache directory.
// Precedence:
//  1. TESTPAD_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/testpad
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("TESTPAD_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "testpad"), true
	}
	return "", false
}

// Enabled returns true unless TESTPAD_CACHE explicitly disables it
// ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("TESTPAD_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// Open returns the cache rooted at Dir, or nil when caching is disabled or
// no base directory can be resolved. A nil *Cache is valid and inert.
func Open() *Cache {
	if !Enabled() {
		return nil
	}
	base, ok := Dir()
	if !ok {
		return nil
	}
	return &Cache{Base: base}
}

// Path returns where the entry for clearKey beneath kind lives.
func (c *Cache) Path(kind, clearKey string) string {
	return filepath.Join(c.Base, kind, encodeKey(clearKey))
}

// Read returns the entry for clearKey beneath kind, if present.
func (c *Cache) Read(kind, clearKey string) (*Entry, bool) {
	if c == nil {
		return nil, false
	}
	p := c.Path(kind, clearKey)
	info, err := os.Stat(p)
	if err != nil {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	log.Debugf("cache hit: key=%s", encodeKey(clearKey))
	return &Entry{
		Key:        clearKey,
		EncodedKey: encodeKey(clearKey),
		Path:       p,
		Data:       b,
		ModTime:    info.ModTime(),
	}, true
}

// Write stores data for clearKey beneath kind, replacing any previous entry.
// Creates directories as needed.
func (c *Cache) Write(kind, clearKey string, data []byte) error {
	if c == nil {
		return nil
	}
	dir := filepath.Join(c.Base, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	p := filepath.Join(dir, encodeKey(clearKey))
	if err := os.WriteFile(p, data, os.FileMode(0o600)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cache write: key=%s", encodeKey(clearKey))
	return nil
}

// Purge removes files older than the provided number of hours.
// If hours <= 0 it is a no-op.
func (c *Cache) Purge(hours int) error {
	if c == nil {
		return nil
	}
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return nil
	}

	maxAge := time.Duration(hours) * time.Hour
	if err := filepath.Walk(c.Base, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}

		if info == nil {
			return nil
		}

		if !info.IsDir() && time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err == nil {
				log.Debugf("removed cache file %s", path)
			} else {
				log.WithError(err).Warnf("failed to remove cache file %s", path)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

// encodeKey returns the hex sha256 of input.
func encodeKey(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}
