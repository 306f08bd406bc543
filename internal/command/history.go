// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/Snogren/testpadapi/internal/log"
	"github.com/Snogren/testpadapi/internal/meta"
	"github.com/Snogren/testpadapi/internal/output"
	"github.com/Snogren/testpadapi/internal/store"
)

var historyColumns = []string{"file", "previous", "changes", "age"}

func historyCommandAction(ctx context.Context, cmd *cli.Command) error {
	archive, err := OpenArchive(ctx, cmd)
	if err != nil {
		return err
	}

	history, err := archive.History(ctx)
	if err != nil {
		return err
	}
	log.Debugf("history: %d entries from %s", len(history), archive)

	w := writer(cmd)
	switch format := outputFormat(cmd); format {
	case output.FormatJSON:
		return output.PrintJSON(w, history)
	case output.FormatYAML:
		return output.PrintYAML(w, history)
	default:
		opts := tableOptions(cmd)
		opts.Footer = fmt.Sprintf("%d changes recorded in %s", len(history), archive)
		return output.Emit(w, format, historyRows(history), historyColumns, opts)
	}
}

// historyRows summarizes each entry as its change count and age.
func historyRows(history []store.HistoryEntry) []map[string]any {
	rows := make([]map[string]any, 0, len(history))
	for _, h := range history {
		row := map[string]any{
			"file":     h.ID,
			"previous": h.Previous,
			"changes":  h.Changes.Count(),
		}
		if t, ok := store.ParseName(h.ID); ok {
			row["age"] = humanize.Time(t)
		}
		rows = append(rows, row)
	}
	return rows
}

func historyCommandBuilder(meta meta.Meta) *cli.Command {
	ns := "history"
	return (&CommandBuilder{
		Name:      ns,
		Usage:     "list the changes between consecutive snapshots",
		UsageText: "testpad history [--output text|json|yaml]",
		Flags:     NewOutputFlags(ns, meta.Config.Source, false),
		Action:    historyCommandAction,
		Meta:      meta,
	}).Build()
}
