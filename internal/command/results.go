// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/Snogren/testpadapi/internal/filters"
	"github.com/Snogren/testpadapi/internal/log"
	"github.com/Snogren/testpadapi/internal/meta"
	"github.com/Snogren/testpadapi/internal/output"
)

func resultsCommandAction(ctx context.Context, cmd *cli.Command) error {
	entry, raw, err := readSpec(ctx, cmd)
	if err != nil {
		return err
	}

	rows := output.Rows(raw)
	log.Debugf("results: %d rows in %s", len(rows), entry.ID)

	rows = filters.FilterRows(rows, cmd.String("filter"))
	output.SortDataset(rows, cmd.String("sort"))

	columns := output.ShortColumns
	if cmd.Bool("wide") {
		columns = output.Columns
	}

	opts := tableOptions(cmd)
	opts.Header = entry.ID
	opts.Footer = fmt.Sprintf("%d results", len(rows))

	return output.Emit(writer(cmd), outputFormat(cmd), rows, columns, opts)
}

func resultsCommandBuilder(meta meta.Meta) *cli.Command {
	ns := "results"
	flags := append(NewOutputFlags(ns, meta.Config.Source, true), &cli.BoolFlag{
		Name:    "wide",
		Aliases: []string{"w"},
		Usage:   "include the product, channel and release columns",
	})

	return (&CommandBuilder{
		Name:      ns,
		Usage:     "list the sub-test results of a stored snapshot",
		UsageText: "testpad results [SPEC] [--filter SPEC] [--sort COLUMNS]",
		Flags:     flags,
		Action:    resultsCommandAction,
		Meta:      meta,
	}).Build()
}
