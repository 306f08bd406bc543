// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Delta writes a line-oriented view of the differences between two raw
// snapshot documents to w, with +/- markers per changed line. It reports
// whether the documents differ; nothing is written when they do not.
func Delta(w io.Writer, prev, next []byte, color bool) (bool, error) {
	log.Debugf("len(snapshots): %d %d", len(prev), len(next))

	delta, err := gojsondiff.New().Compare(prev, next)
	if err != nil {
		return false, fmt.Errorf("failed to compare snapshots: %w", err)
	}

	if !delta.Modified() {
		return false, nil
	}

	var left map[string]interface{}
	if err := json.Unmarshal(prev, &left); err != nil {
		return false, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       color,
	}

	rendered, err := formatter.NewAsciiFormatter(left, config).Format(delta)
	if err != nil {
		return false, err
	}

	fmt.Fprint(w, rendered)
	return true, nil
}
