// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package store

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_CreateExisting(t *testing.T) {
	ctx := context.Background()
	l := NewLocal(t.TempDir())

	require.NoError(t, l.Create(ctx, "data_20250401_093000.json", []byte("{}")))
	err := l.Create(ctx, "data_20250401_093000.json", []byte(`{"a":1}`))
	assert.ErrorIs(t, err, fs.ErrExist)

	data, err := l.Read(ctx, "data_20250401_093000.json")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestLocal_CreateWriteFailureLeavesNoFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	l := NewLocal(dir)
	name := "data_20250401_093000.json"

	saved := writeData
	defer func() { writeData = saved }()
	writeData = func(w io.Writer, data []byte) error {
		_, _ = w.Write(data[:1])
		return errors.New("no space left on device")
	}

	err := l.Create(ctx, name, []byte(`{"a":1}`))
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(statErr))

	writeData = saved
	require.NoError(t, l.Create(ctx, name, []byte(`{"a":1}`)))

	objects, err := l.List(ctx)
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, name, objects[0].Name)
}
