// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Snogren/testpadapi/internal/log"
)

// TestDir_WithTESTPAD_CACHE_DIR verifies Dir() respects TESTPAD_CACHE_DIR.
func TestDir_WithTESTPAD_CACHE_DIR(t *testing.T) {
	customDir := t.TempDir()
	t.Setenv("TESTPAD_CACHE_DIR", customDir)

	result, ok := Dir()

	assert.True(t, ok)
	assert.Equal(t, customDir, result)
}

// TestDir_WithoutTESTPAD_CACHE_DIR verifies Dir() falls back to
// os.UserCacheDir/testpad.
func TestDir_WithoutTESTPAD_CACHE_DIR(t *testing.T) {
	t.Setenv("TESTPAD_CACHE_DIR", "")

	result, ok := Dir()

	if ok {
		assert.True(t, filepath.IsAbs(result))
		assert.Equal(t, "testpad", filepath.Base(result))
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"", true},
		{"1", true},
		{"true", true},
		{"0", false},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			t.Setenv("TESTPAD_CACHE", tt.value)
			assert.Equal(t, tt.expected, Enabled())
		})
	}
}

func TestOpen_Disabled(t *testing.T) {
	t.Setenv("TESTPAD_CACHE", "0")
	assert.Nil(t, Open())
}

func TestNilCacheIsInert(t *testing.T) {
	var c *Cache

	entry, ok := c.Read("markup", "k")
	assert.False(t, ok)
	assert.Nil(t, entry)
	assert.NoError(t, c.Write("markup", "k", []byte("x")))
	assert.NoError(t, c.Purge(1))
}

func TestWriteRead(t *testing.T) {
	t.Setenv("TESTPAD_CACHE_DIR", t.TempDir())
	t.Setenv("TESTPAD_CACHE", "1")
	c := Open()
	require.NotNil(t, c)

	key := "https://example.testpad.com/script/65/report"
	require.NoError(t, c.Write("markup", key, []byte("<html></html>")))

	entry, ok := c.Read("markup", key)
	require.True(t, ok)
	assert.Equal(t, key, entry.Key)
	assert.Equal(t, encodeKey(key), entry.EncodedKey)
	assert.Equal(t, c.Path("markup", key), entry.Path)
	assert.Equal(t, []byte("<html></html>"), entry.Data)

	// Overwrites keep only the latest copy.
	require.NoError(t, c.Write("markup", key, []byte("<html>2</html>")))
	entry, ok = c.Read("markup", key)
	require.True(t, ok)
	assert.Equal(t, []byte("<html>2</html>"), entry.Data)

	_, ok = c.Read("markup", "other")
	assert.False(t, ok)
}

func TestPurge(t *testing.T) {
	c := &Cache{Base: t.TempDir()}
	require.NoError(t, c.Write("markup", "old", []byte("x")))
	require.NoError(t, c.Write("markup", "new", []byte("y")))

	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(c.Path("markup", "old"), past, past))

	require.NoError(t, c.Purge(24))

	assert.NoFileExists(t, c.Path("markup", "old"))
	assert.FileExists(t, c.Path("markup", "new"))
}

func TestPurge_Disabled(t *testing.T) {
	c := &Cache{Base: t.TempDir()}
	require.NoError(t, c.Write("markup", "old", []byte("x")))
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(c.Path("markup", "old"), past, past))

	require.NoError(t, c.Purge(0))

	assert.FileExists(t, c.Path("markup", "old"))
}

func TestPurge_MissingBase(t *testing.T) {
	c := &Cache{Base: filepath.Join(t.TempDir(), "missing")}
	assert.NoError(t, c.Purge(1))
}

func TestEncodeKey(t *testing.T) {
	assert.Len(t, encodeKey("x"), 64)
	assert.Equal(t, encodeKey("x"), encodeKey("x"))
	assert.NotEqual(t, encodeKey("x"), encodeKey("y"))
}

func TestLogsOmitClearKey(t *testing.T) {
	t.Setenv("TESTPAD_CACHE_DIR", t.TempDir())
	t.Setenv("TESTPAD_LOG", "debug")
	log.InitLogger()
	defer func() {
		t.Setenv("TESTPAD_LOG", "")
		log.InitLogger()
	}()

	var buf bytes.Buffer
	saved := log.Output
	log.Output = &buf
	defer func() { log.Output = saved }()

	c := Open()
	require.NotNil(t, c)

	key := "https://example.testpad.com/script/65/report?auth=secret"
	require.NoError(t, c.Write("markup", key, []byte("<html></html>")))
	_, ok := c.Read("markup", key)
	require.True(t, ok)

	assert.Contains(t, buf.String(), encodeKey(key))
	assert.NotContains(t, buf.String(), "secret")
}
