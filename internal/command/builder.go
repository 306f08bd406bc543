// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/Snogren/testpadapi/internal/meta"
)

// CommandBuilder constructs the store-backed subcommands (run, history, diff,
// show, results, ls) using a consistent pattern. The builder wires metadata,
// appends the store flags and validates them before the action runs.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	ns := cb.Name
	path := cb.Meta.Config.Source

	flags := append([]cli.Flag{}, cb.Flags...)
	if ns != "run" {
		// run carries the store flags already.
		flags = append(flags, NewStoreFlags(ns, path)...)
	}

	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		Metadata: map[string]any{
			meta.Key: cb.Meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, StoreFlagsValidator(ctx, c)
		},
		Action: cb.Action,
	}
}
