// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/Snogren/testpadapi/internal/meta"
	"github.com/Snogren/testpadapi/internal/output"
	"github.com/Snogren/testpadapi/internal/store"
)

var lsColumns = []string{"id", "captured", "size", "location"}

func lsCommandAction(ctx context.Context, cmd *cli.Command) error {
	archive, err := OpenArchive(ctx, cmd)
	if err != nil {
		return err
	}

	entries, err := archive.List(ctx)
	if err != nil {
		return err
	}

	// Newest first.
	slices.Reverse(entries)

	w := writer(cmd)
	switch format := outputFormat(cmd); format {
	case output.FormatJSON:
		return output.PrintJSON(w, entries)
	case output.FormatYAML:
		return output.PrintYAML(w, entries)
	default:
		return output.Emit(w, format, lsRows(entries), lsColumns, tableOptions(cmd))
	}
}

func lsRows(entries []store.Entry) []map[string]any {
	rows := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		row := map[string]any{
			"id":       e.ID,
			"size":     humanize.Bytes(uint64(max(e.Size, 0))),
			"location": e.Location,
		}
		if !e.CapturedAt.IsZero() {
			row["captured"] = humanize.Time(e.CapturedAt)
		}
		rows = append(rows, row)
	}
	return rows
}

func lsCommandBuilder(meta meta.Meta) *cli.Command {
	ns := "ls"
	return (&CommandBuilder{
		Name:      ns,
		Usage:     "list stored snapshots",
		UsageText: "testpad ls [--output text|json|yaml]",
		Flags:     NewOutputFlags(ns, meta.Config.Source, false),
		Action:    lsCommandAction,
		Meta:      meta,
	}).Build()
}
