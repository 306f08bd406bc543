// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package snapshot defines the record captured from one report fetch.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Result values a sub-test can carry. A nil result means unknown.
const (
	Pass = "pass"
	Fail = "fail"
)

// Location names where a report sits in the snapshot tree.
type Location struct {
	Product string
	Channel string
	Release string
}

// DefaultLocation is used when the configuration names no location.
var DefaultLocation = Location{
	Product: "TRENDConnect",
	Channel: "Regular Releases",
	Release: "25.04",
}

func (l Location) String() string {
	return fmt.Sprintf("%s/%s/%s", l.Product, l.Channel, l.Release)
}

// SubTestCase is a leaf row of the report.
type SubTestCase struct {
	ID     string  `json:"id"`
	Case   string  `json:"case"`
	Result *string `json:"result"`
}

// TestCase is a parent row grouping the leaf rows that follow it.
type TestCase struct {
	ID       string        `json:"id"`
	Case     string        `json:"case"`
	Result   *string       `json:"result"`
	SubTests []SubTestCase `json:"sub_tests"`
}

// ResultOf returns a pointer suitable for SubTestCase.Result.
func ResultOf(s string) *string {
	return &s
}

// Snapshot is the generic tree form of a capture, as encoding/json decodes
// it: nested map[string]any with []any lists and float64 numbers.
type Snapshot map[string]any

// New builds the tree {product: {channel: {release: {tests: [...]}}}}.
func New(loc Location, tests []TestCase) (Snapshot, error) {
	if tests == nil {
		tests = []TestCase{}
	}
	for i := range tests {
		if tests[i].SubTests == nil {
			tests[i].SubTests = []SubTestCase{}
		}
	}

	tree := map[string]any{
		loc.Product: map[string]any{
			loc.Channel: map[string]any{
				loc.Release: map[string]any{
					"tests": tests,
				},
			},
		},
	}

	// Round-trip so the typed structs become the same generic values a
	// stored snapshot decodes to.
	data, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return Decode(data)
}

// Decode parses a stored snapshot. The document must be a JSON object.
func Decode(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, errors.New("snapshot is not a JSON object")
	}
	return snap, nil
}

// Encode renders the snapshot pretty-printed with a two space indent.
func (s Snapshot) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Tests returns the test cases stored at loc, or false when the snapshot has
// nothing there.
func (s Snapshot) Tests(loc Location) ([]TestCase, bool) {
	node, ok := s[loc.Product].(map[string]any)
	if !ok {
		return nil, false
	}
	if node, ok = node[loc.Channel].(map[string]any); !ok {
		return nil, false
	}
	if node, ok = node[loc.Release].(map[string]any); !ok {
		return nil, false
	}
	raw, ok := node["tests"]
	if !ok {
		return nil, false
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, false
	}
	var tests []TestCase
	if err := json.Unmarshal(data, &tests); err != nil {
		return nil, false
	}
	return tests, true
}
