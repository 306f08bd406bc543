// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package failure

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	assert.NoError(t, New(Fetch, "x", nil))

	err := New(Store, "data_20250101_120000.json", fs.ErrPermission)
	assert.EqualError(t, err, "store failure: data_20250101_120000.json: permission denied")
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"plain error", errors.New("boom"), Unknown},
		{"nil", nil, Unknown},
		{"direct", New(Parse, "", errors.New("no table")), Parse},
		{"wrapped", fmt.Errorf("run: %w", New(Decode, "f.json", errors.New("bad json"))), Decode},
		{"formatted", Newf(Fetch, "https://x", "unexpected status %d", 503), Fetch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", New(Fetch, "u", errors.New("refused")))
	assert.True(t, Is(err, Fetch))
	assert.False(t, Is(err, Parse))
	assert.False(t, Is(nil, Unknown))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "fetch failure", Fetch.String())
	assert.Equal(t, "parse failure", Parse.String())
	assert.Equal(t, "store failure", Store.String())
	assert.Equal(t, "decode failure", Decode.String())
	assert.Equal(t, "failure", Unknown.String())
}
