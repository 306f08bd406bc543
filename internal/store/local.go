// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Local keeps snapshots in a directory, created on first write.
type Local struct {
	Dir string
}

// NewLocal returns a Local rooted at dir.
func NewLocal(dir string) *Local {
	return &Local{Dir: dir}
}

// List implements Backend.
func (l *Local) List(_ context.Context) ([]Object, error) {
	entries, err := os.ReadDir(l.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var objects []Object
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		objects = append(objects, Object{Name: e.Name(), Size: info.Size(), ModTime: info.ModTime()})
	}
	return objects, nil
}

// Read implements Backend.
func (l *Local) Read(_ context.Context, name string) ([]byte, error) {
	return os.ReadFile(l.Locate(name))
}

// Create implements Backend. O_EXCL keeps an existing snapshot from being
// overwritten.
func (l *Local) Create(_ context.Context, name string, data []byte) (err error) {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	f, err := os.OpenFile(l.Locate(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644) //nolint:mnd
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		// A partly written file is not a snapshot; free the name.
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	return writeData(f, data)
}

// writeData is swapped in tests.
var writeData = func(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}

// Locate implements Backend.
func (l *Local) Locate(name string) string {
	return filepath.Join(l.Dir, name)
}

func (l *Local) String() string {
	return "local:" + l.Dir
}
