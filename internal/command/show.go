// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/Snogren/testpadapi/internal/meta"
	"github.com/Snogren/testpadapi/internal/output"
	"github.com/Snogren/testpadapi/internal/store"
)

// readSpec resolves at most one snapshot spec and reads the document.
func readSpec(ctx context.Context, cmd *cli.Command) (store.Entry, []byte, error) {
	specs := cmd.Args().Slice()
	if len(specs) > 1 {
		return store.Entry{}, nil, fmt.Errorf("%s takes at most one snapshot, got %d", cmd.Name, len(specs))
	}

	archive, err := OpenArchive(ctx, cmd)
	if err != nil {
		return store.Entry{}, nil, err
	}

	entries, err := archive.ResolveSpecs(ctx, specs...)
	if err != nil {
		return store.Entry{}, nil, err
	}

	raw, err := archive.ReadEntry(ctx, entries[0])
	if err != nil {
		return store.Entry{}, nil, err
	}
	return entries[0], raw, nil
}

func showCommandAction(ctx context.Context, cmd *cli.Command) error {
	entry, raw, err := readSpec(ctx, cmd)
	if err != nil {
		return err
	}

	w := writer(cmd)
	format := cmd.String("output")

	if path := cmd.String("query"); path != "" {
		result := output.Query(raw, path)
		if !result.Exists() {
			return fmt.Errorf("no match for %q in %s", path, entry.ID)
		}
		switch format {
		case output.FormatJSON:
			return output.PrintJSON(w, result.Value())
		case output.FormatYAML:
			return output.PrintYAML(w, result.Value())
		case output.FormatRaw:
			fmt.Fprintln(w, result.Raw)
		default:
			fmt.Fprintln(w, result.String())
		}
		return nil
	}

	switch format {
	case output.FormatJSON, output.FormatYAML:
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("failed to decode %s: %w", entry.ID, err)
		}
		if format == output.FormatYAML {
			return output.PrintYAML(w, doc)
		}
		return output.PrintJSON(w, doc)
	default:
		_, err = w.Write(raw)
		return err
	}
}

func showCommandBuilder(meta meta.Meta) *cli.Command {
	ns := "show"
	path := meta.Config.Source

	return (&CommandBuilder{
		Name:      ns,
		Usage:     "print a stored snapshot",
		UsageText: "testpad show [SPEC] [--query PATH]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output format (text, json, yaml, raw)",
				Sources: valueChain(ns, "output", path),
				Value:   output.FormatText,
				Validator: func(value string) error {
					return FlagValidators(value, OutputValidator)
				},
			},
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "gjson path to print instead of the whole snapshot",
			},
		},
		Action: showCommandAction,
		Meta:   meta,
	}).Build()
}
