// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSnapshot = `{
  "TRENDConnect": {
    "Regular Releases": {
      "25.04": {
        "tests": [
          {"id": "1", "case": "Login", "result": null, "sub_tests": [
            {"id": "1.1", "case": "Valid password", "result": "pass"},
            {"id": "1.2", "case": "Invalid password", "result": null}
          ]},
          {"id": "2", "case": "Empty", "result": null, "sub_tests": []}
        ]
      },
      "junk": "not a release"
    }
  }
}`

func TestRows(t *testing.T) {
	rows := Rows([]byte(sampleSnapshot))

	require.Len(t, rows, 3)
	assert.Equal(t, map[string]any{
		"product": "TRENDConnect",
		"channel": "Regular Releases",
		"release": "25.04",
		"parent":  "1",
		"group":   "Login",
		"id":      "1.1",
		"case":    "Valid password",
		"result":  "pass",
	}, rows[0])
	assert.Nil(t, rows[1]["result"])
	assert.Equal(t, "2", rows[2]["parent"])
	assert.Nil(t, rows[2]["id"])
}

func TestRows_NotASnapshot(t *testing.T) {
	assert.Empty(t, Rows([]byte(`[1,2]`)))
	assert.Empty(t, Rows([]byte(`not json`)))
}

func TestQuery(t *testing.T) {
	r := Query([]byte(sampleSnapshot), `TRENDConnect.Regular Releases.25\.04.tests.#.id`)
	assert.Equal(t, `["1","2"]`, r.Raw)
}

func TestSortDataset(t *testing.T) {
	testData := []map[string]any{
		{"id": "1.10", "case": "zebra", "n": 3.0},
		{"id": "1.2", "case": "Alpha", "n": 1.0},
		{"id": "2.1", "case": "beta", "n": 2.0},
		{"id": "1.2.1", "case": "alpha", "n": 1.0},
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{"dotted ids", "id", []string{"1.2", "1.2.1", "1.10", "2.1"}},
		{"dotted ids descending", "-id", []string{"2.1", "1.10", "1.2.1", "1.2"}},
		{"numbers", "n", []string{"1.2", "1.2.1", "2.1", "1.10"}},
		{"case insensitive is stable", "case", []string{"1.2", "1.2.1", "2.1", "1.10"}},
		{"case sensitive", "!case", []string{"1.2", "1.2.1", "2.1", "1.10"}},
		{"multiple fields", "n,-id", []string{"1.2.1", "1.2", "2.1", "1.10"}},
		{"empty spec", "", []string{"1.10", "1.2", "2.1", "1.2.1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]map[string]any, len(testData))
			copy(data, testData)
			SortDataset(data, tt.spec)

			var got []string
			for _, r := range data {
				got = append(got, r["id"].(string))
			}
			assert.Equal(t, tt.wantOrder, got)
		})
	}
}

func TestCompareDotted(t *testing.T) {
	tests := []struct {
		a, b string
		want int
		ok   bool
	}{
		{"1.2", "1.10", -1, true},
		{"3", "3", 0, true},
		{"2", "1.9", 1, true},
		{"1", "1.1", -1, true},
		{"1.a", "1.1", 0, false},
		{"", "1", 0, false},
	}

	for _, tt := range tests {
		got, ok := compareDotted(tt.a, tt.b)
		assert.Equal(t, tt.ok, ok, "%s vs %s", tt.a, tt.b)
		assert.Equal(t, tt.want, got, "%s vs %s", tt.a, tt.b)
	}
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		emptyVal []string
		want     string
	}{
		{"string", "hello", nil, "hello"},
		{"int", 42, nil, "42"},
		{"whole float", 42.0, nil, "42"},
		{"fractional float", 42.5, nil, "42.5"},
		{"bool true", true, nil, "true"},
		{"bool false is zero value", false, nil, ""},
		{"nil default", nil, nil, ""},
		{"nil custom", nil, []string{"-"}, "-"},
		{"empty string custom", "", []string{"-"}, "-"},
		{"slice", []any{"a", 1.0}, nil, `["a",1]`},
		{"map", map[string]any{"k": "v"}, nil, `{"k":"v"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterfaceToString(tt.value, tt.emptyVal...))
		})
	}
}

func TestTableWriter(t *testing.T) {
	rows := []map[string]any{
		{"id": "1.1", "case": "Valid password", "result": "pass"},
		{"id": "1.2", "case": "Invalid password", "result": nil},
	}

	t.Run("empty result set writes nothing", func(t *testing.T) {
		var buf bytes.Buffer
		TableWriter(nil, []string{"id"}, TableOptions{Titles: true}, &buf)
		assert.Empty(t, buf.String())
	})

	t.Run("titles header and footer", func(t *testing.T) {
		var buf bytes.Buffer
		TableWriter(rows, []string{"id", "case", "result"}, TableOptions{
			Titles:  true,
			Padding: 2,
			Header:  "25.04",
			Footer:  "2 sub-tests",
		}, &buf)

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		require.GreaterOrEqual(t, len(lines), 5)
		assert.Contains(t, lines[0], "25.04")
		assert.Contains(t, buf.String(), "result")
		assert.Contains(t, buf.String(), "Invalid password")
		assert.Contains(t, lines[len(lines)-2], "-")
		assert.Contains(t, lines[len(lines)-1], "2 sub-tests")
	})

	t.Run("no titles", func(t *testing.T) {
		var buf bytes.Buffer
		TableWriter(rows, []string{"id"}, TableOptions{}, &buf)
		assert.NotContains(t, buf.String(), "id ")
		assert.Contains(t, buf.String(), "1.2")
	})
}

func TestGetColors(t *testing.T) {
	header, even, odd := getColors("colors")

	assert.NotNil(t, header)
	assert.NotNil(t, even)
	assert.NotNil(t, odd)
}

func TestColorDefault(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, ColorDefault(f))
	assert.False(t, ColorDefault(nil))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorDefault(os.Stdout))
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintJSON(&buf, map[string]any{"case": "A & B", "n": 1}))
	assert.Equal(t, "{\n  \"case\": \"A & B\",\n  \"n\": 1\n}\n", buf.String())
}

func TestPrintYAML(t *testing.T) {
	type change struct {
		Old      any  `json:"old"`
		New      any  `json:"new"`
		Distance *int `json:"distance,omitempty"`
	}

	var buf bytes.Buffer
	require.NoError(t, PrintYAML(&buf, map[string]any{"c": change{New: 2.0}}))
	assert.Equal(t, "c:\n  new: 2\n  old: null\n", buf.String())
}

func TestEmit(t *testing.T) {
	rows := []map[string]any{{"id": "1.1", "result": "fail"}}

	tests := []struct {
		format string
		want   string
	}{
		{FormatJSON, "[\n  {\n    \"id\": \"1.1\",\n    \"result\": \"fail\"\n  }\n]\n"},
		{FormatYAML, "- id: \"1.1\"\n  result: fail\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Emit(&buf, tt.format, rows, []string{"id", "result"}, TableOptions{}))
			assert.Equal(t, tt.want, buf.String())
		})
	}

	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, FormatText, rows, []string{"id", "result"}, TableOptions{}))
	assert.Contains(t, buf.String(), "fail")

	assert.Error(t, Emit(&buf, "xml", rows, nil, TableOptions{}))
}
