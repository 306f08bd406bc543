// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/Snogren/testpadapi/internal/differ"
	"github.com/Snogren/testpadapi/internal/log"
	"github.com/Snogren/testpadapi/internal/meta"
	"github.com/Snogren/testpadapi/internal/output"
	"github.com/Snogren/testpadapi/internal/store"
)

func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	specs := cmd.Args().Slice()
	switch len(specs) {
	case 0:
		specs = []string{"~1", "~0"}
	case 1:
		specs = append(specs, "~0")
	case 2:
	default:
		return fmt.Errorf("diff takes at most two snapshots, got %d", len(specs))
	}

	archive, err := OpenArchive(ctx, cmd)
	if err != nil {
		return err
	}

	entries, err := archive.ResolveSpecs(ctx, specs...)
	if err != nil {
		return err
	}
	from, to := entries[0], entries[1]
	log.Debugf("diff: %s -> %s", from.ID, to.ID)

	w := writer(cmd)
	if cmd.Bool("delta") {
		return deltaEntries(ctx, cmd, archive, from, to)
	}

	prev, err := archive.LoadEntry(ctx, from)
	if err != nil {
		return err
	}
	next, err := archive.LoadEntry(ctx, to)
	if err != nil {
		return err
	}

	changes := Comparer(cmd).Compare(prev, next)
	entry := store.HistoryEntry{ID: to.ID, Previous: from.ID, Changes: changes}

	switch outputFormat(cmd) {
	case output.FormatYAML:
		return output.PrintYAML(w, entry)
	case output.FormatJSON:
		return output.PrintJSON(w, entry)
	default:
		fmt.Fprintf(w, "Changes %s -> %s: ", from.ID, to.ID)
		return output.PrintJSON(w, changes)
	}
}

// deltaEntries prints the line delta between two stored documents.
func deltaEntries(ctx context.Context, cmd *cli.Command, archive *store.Archive, from, to store.Entry) error {
	prev, err := archive.ReadEntry(ctx, from)
	if err != nil {
		return err
	}
	next, err := archive.ReadEntry(ctx, to)
	if err != nil {
		return err
	}

	w := writer(cmd)
	changed, err := differ.Delta(w, prev, next, cmd.Bool("color"))
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintf(w, "No differences between %s and %s\n", from.ID, to.ID)
	}
	return nil
}

func diffCommandBuilder(meta meta.Meta) *cli.Command {
	ns := "diff"
	flags := append(NewOutputFlags(ns, meta.Config.Source, false), &cli.BoolFlag{
		Name:  "delta",
		Usage: "show a line delta of the documents instead of the change report",
	})

	return (&CommandBuilder{
		Name:      ns,
		Usage:     "compare two stored snapshots",
		UsageText: "testpad diff [FROM] [TO] (defaults ~1 ~0)\n" +
			"   testpad diff [flags] -- -1 0 (relative specs starting with - follow --)",
		Flags:     flags,
		Action:    diffCommandAction,
		Meta:      meta,
	}).Build()
}
