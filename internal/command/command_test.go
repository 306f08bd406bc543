// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Snogren/testpadapi/internal/failure"
	"github.com/Snogren/testpadapi/internal/tracker"
)

//go:embed testdata/report.html
var reportTemplate string

const (
	olderID = "data_20260101_120000.json"
	newerID = "data_20260102_120000.json"
)

func report(result string) string {
	return strings.ReplaceAll(reportTemplate, "{{.}}", result)
}

func snapshotJSON(result string) string {
	return `{
  "TRENDConnect": {
    "Regular Releases": {
      "25.04": {
        "tests": [
          {
            "id": "1",
            "case": "Login",
            "result": null,
            "sub_tests": [
              {"id": "1.1", "case": "Valid password", "result": "pass"},
              {"id": "1.2", "case": "Invalid password", "result": "` + result + `"}
            ]
          }
        ]
      }
    }
  }
}
`
}

// setup isolates config and cache and returns a data dir holding two
// snapshots.
func setup(t *testing.T) string {
	t.Helper()
	t.Setenv("TESTPAD_CFG_FILE", filepath.Join("testdata", "config.yaml"))
	t.Setenv("TESTPAD_CACHE_DIR", t.TempDir())
	t.Setenv("NO_COLOR", "1")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, olderID), []byte(snapshotJSON("fail")), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, newerID), []byte(snapshotJSON("pass")), 0o644))
	return dir
}

// runApp runs args through a fresh app and returns stdout, stderr and the
// error.
func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	args = append([]string{"testpad"}, args...)

	app, err := InitApp(context.Background(), args)
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	app.Writer = &stdout
	app.ErrWriter = &stderr

	err = app.Run(context.Background(), args)
	return stdout.String(), stderr.String(), err
}

func storedFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "data_*.json"))
	require.NoError(t, err)
	return matches
}

func TestRunCommand_FirstThenChanged(t *testing.T) {
	setup(t)
	dir := t.TempDir()

	result := "fail"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(report(result)))
	}))
	defer srv.Close()

	stdout, _, err := runApp(t, "run", "--url", srv.URL, "--data-dir", dir)
	require.NoError(t, err)
	assert.NotContains(t, stdout, "Changes:")
	assert.Contains(t, stdout, "Data stored to "+dir)
	assert.Contains(t, stdout, "Process completed successfully.")
	assert.Len(t, storedFiles(t, dir), 1)

	result = "pass"
	stdout, _, err = runApp(t, "run", "--url", srv.URL, "--data-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Changes: {")
	assert.Contains(t, stdout, `"tests"`)
	assert.Len(t, storedFiles(t, dir), 2)
}

func TestRunCommand_JSONOutput(t *testing.T) {
	setup(t)
	dir := t.TempDir()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(report("pass")))
	}))
	defer srv.Close()

	stdout, _, err := runApp(t, "run", "--url", srv.URL, "--data-dir", dir, "--output", "json")
	require.NoError(t, err)

	var res tracker.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.False(t, res.HadPrevious)
	assert.True(t, strings.HasPrefix(res.StoredID, "data_"))
}

func TestRunCommand_FetchFailureIsNotFatal(t *testing.T) {
	setup(t)
	dir := t.TempDir()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	stdout, stderr, err := runApp(t, "run", "--url", srv.URL, "--data-dir", dir)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "ERROR: ")
	assert.Empty(t, storedFiles(t, dir))
}

func TestRunCommand_ParseFailureIsNotFatal(t *testing.T) {
	setup(t)
	dir := t.TempDir()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body>maintenance</body></html>"))
	}))
	defer srv.Close()

	_, stderr, err := runApp(t, "run", "--url", srv.URL, "--data-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stderr, "ERROR: ")
	assert.Empty(t, storedFiles(t, dir))
}

func TestRunCommand_MissingURL(t *testing.T) {
	setup(t)
	t.Setenv("TESTPAD_URL", "")

	_, _, err := runApp(t, "run", "--data-dir", t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
	assert.Equal(t, 1, ExitCode(err))
}

func TestRunCommand_HelpNamesURLRequirement(t *testing.T) {
	setup(t)

	stdout, _, err := runApp(t, "run", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "A report URL is required")
	assert.Contains(t, stdout, "report URL to fetch (required)")
}

type stubRunner struct {
	err error
}

func (s stubRunner) Run(context.Context) (tracker.Result, error) {
	return tracker.Result{}, s.err
}

func TestRunCommand_StoreFailureIsFatal(t *testing.T) {
	setup(t)

	saved := openRunner
	defer func() { openRunner = saved }()
	openRunner = func(context.Context, tracker.Config) (Runner, error) {
		return stubRunner{err: failure.New(failure.Store, "data", errors.New("disk full"))}, nil
	}

	_, _, err := runApp(t, "run", "--url", "http://example.invalid", "--data-dir", t.TempDir())
	require.Error(t, err)
	assert.True(t, failure.Is(err, failure.Store))
	assert.Equal(t, 2, ExitCode(err))
}

func TestHistoryCommand(t *testing.T) {
	dir := setup(t)

	stdout, _, err := runApp(t, "history", "--data-dir", dir, "--output", "json")
	require.NoError(t, err)

	var history []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &history))
	require.Len(t, history, 1)
	assert.Equal(t, newerID, history[0]["file"])
	assert.Equal(t, olderID, history[0]["previous"])

	stdout, _, err = runApp(t, "history", "--data-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, newerID)
	assert.Contains(t, stdout, "1 changes recorded")
}

func TestLsCommand(t *testing.T) {
	dir := setup(t)

	stdout, _, err := runApp(t, "ls", "--data-dir", dir, "--output", "json")
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, newerID, entries[0]["id"])
	assert.Equal(t, olderID, entries[1]["id"])

	stdout, _, err = runApp(t, "ls", "--data-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "ago")
}

func TestDiffCommand(t *testing.T) {
	dir := setup(t)

	stdout, _, err := runApp(t, "diff", "--data-dir", dir, "--output", "json")
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &entry))
	assert.Equal(t, newerID, entry["file"])
	assert.Equal(t, olderID, entry["previous"])
	assert.NotEmpty(t, entry["changes"])

	stdout, _, err = runApp(t, "diff", "--data-dir", dir, "~0", "~0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "{}")

	stdout, _, err = runApp(t, "diff", "--data-dir", dir, "--delta")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"fail"`)

	_, _, err = runApp(t, "diff", "--data-dir", dir, "~0", "~1", "~2")
	assert.Error(t, err)
}

func TestDiffCommand_RelativeSpecsAfterTerminator(t *testing.T) {
	dir := setup(t)

	stdout, _, err := runApp(t, "diff", "--data-dir", dir, "--output", "json", "--", "-1", "0")
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &entry))
	assert.Equal(t, olderID, entry["previous"])
	assert.Equal(t, newerID, entry["file"])
}

func TestDiffCommand_KeyLists(t *testing.T) {
	dir := setup(t)

	stdout, _, err := runApp(t, "diff", "--data-dir", dir, "--key-lists", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"1.2"`)
	assert.Contains(t, stdout, `"distance": 3`)
}

func TestShowCommand(t *testing.T) {
	dir := setup(t)

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"latest", nil, `"result": "pass"`},
		{"previous", []string{"~1"}, `"result": "fail"`},
		{"by id", []string{"20260101"}, `"result": "fail"`},
		{"query", []string{"--query", "TRENDConnect.Regular Releases.25\\.04.tests.0.sub_tests.1.result"}, "pass"},
		{"yaml", []string{"--output", "yaml"}, "case: Login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"show", "--data-dir", dir}, tt.args...)
			stdout, _, err := runApp(t, args...)
			require.NoError(t, err)
			assert.Contains(t, stdout, tt.expected)
		})
	}

	_, _, err := runApp(t, "show", "--data-dir", dir, "--query", "nope")
	assert.Error(t, err)
}

func TestResultsCommand(t *testing.T) {
	dir := setup(t)

	stdout, _, err := runApp(t, "results", "--data-dir", dir, "--output", "json", "--filter", "result=fail", "~1")
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "1.2", rows[0]["id"])

	stdout, _, err = runApp(t, "results", "--data-dir", dir, "--sort=-id", "--titles")
	require.NoError(t, err)
	assert.Less(t, strings.Index(stdout, "1.2"), strings.Index(stdout, "1.1"))
	assert.Contains(t, stdout, "2 results")
}

func TestStoreFlagsValidator(t *testing.T) {
	setup(t)

	_, _, err := runApp(t, "ls", "--store", "s3")
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))

	_, _, err = runApp(t, "ls", "--store", "ftp")
	assert.Error(t, err)
}

func TestCompletionCommand(t *testing.T) {
	setup(t)

	stdout, _, err := runApp(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, stdout, "complete -F _testpad testpad")

	stdout, _, err = runApp(t, "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, stdout, "compdef _testpad testpad")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, 0},
		{"config", configErrorf("no url"), 1},
		{"store", failure.New(failure.Store, "x", errors.New("boom")), 2},
		{"other", errors.New("boom"), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExitCode(tt.err))
		})
	}
}

func TestOutputValidator(t *testing.T) {
	for _, v := range []string{"text", "json", "yaml", "raw"} {
		assert.NoError(t, OutputValidator(v))
	}
	assert.Error(t, OutputValidator("xml"))
	assert.Error(t, OutputValidator(42))
}
