// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v2"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatRaw  = "raw"
)

// Formats lists the accepted --output values.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatRaw}

// PrintJSON writes v as JSON indented by two spaces, without HTML escaping.
func PrintJSON(w io.Writer, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// PrintYAML writes v as YAML. v is passed through JSON first so JSON field
// names and omissions carry over.
func PrintYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	out, err := yaml.Marshal(generic)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// Emit renders rows in the given format. Text is a table of columns.
func Emit(w io.Writer, format string, rows []map[string]any, columns []string, opts TableOptions) error {
	switch format {
	case FormatJSON:
		return PrintJSON(w, rows)
	case FormatYAML:
		return PrintYAML(w, rows)
	case "", FormatText:
		TableWriter(rows, columns, opts, w)
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
