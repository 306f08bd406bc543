// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/Snogren/testpadapi/internal/failure"
	"github.com/Snogren/testpadapi/internal/log"
	"github.com/Snogren/testpadapi/internal/meta"
	"github.com/Snogren/testpadapi/internal/output"
	"github.com/Snogren/testpadapi/internal/tracker"
)

// Runner performs one capture.
type Runner interface {
	Run(ctx context.Context) (tracker.Result, error)
}

// openRunner is swapped in tests.
var openRunner = func(ctx context.Context, cfg tracker.Config) (Runner, error) {
	return tracker.Open(ctx, cfg)
}

// trackerConfig resolves the run flags into a tracker.Config.
func trackerConfig(cmd *cli.Command) (tracker.Config, error) {
	cfg := tracker.Config{
		URL:      cmd.String("url"),
		Location: Location(cmd),
		Store:    StoreSettings(cmd),
		Timeout:  defaultTimeout(cmd.Duration("timeout")),
		KeyLists: cmd.Bool("key-lists"),
		Offline:  cmd.Bool("offline"),
	}
	if cfg.URL == "" {
		return cfg, configErrorf("no report URL, set --url, TESTPAD_URL or report.url")
	}
	return cfg, nil
}

func runCommandAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := trackerConfig(cmd)
	if err != nil {
		return err
	}
	log.Debugf("run: url=%s location=%s store=%s", cfg.URL, cfg.Location, cfg.Store.Type)

	t, err := openRunner(ctx, cfg)
	if err != nil {
		return configErrorf("%v", err)
	}

	res, err := t.Run(ctx)
	if err != nil {
		// A report that cannot be fetched or parsed leaves the store
		// untouched and is not a failed invocation.
		if failure.Is(err, failure.Fetch) || failure.Is(err, failure.Parse) {
			log.WithError(err).Debugf("run aborted")
			fmt.Fprintf(errWriter(cmd), "ERROR: %v\n", err)
			return nil
		}
		return err
	}

	return printResult(writer(cmd), cmd.String("output"), res)
}

func printResult(w io.Writer, format string, res tracker.Result) error {
	switch format {
	case output.FormatJSON, output.FormatRaw:
		return output.PrintJSON(w, res)
	case output.FormatYAML:
		return output.PrintYAML(w, res)
	}

	if res.HadPrevious {
		fmt.Fprint(w, "Changes: ")
		if err := output.PrintJSON(w, res.Changes); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "Data stored to %s\n", res.Location)
	fmt.Fprintln(w, "Process completed successfully.")
	return nil
}

func runCommandBuilder(meta meta.Meta) *cli.Command {
	ns := "run"
	path := meta.Config.Source

	flags := append(NewRunFlags(ns, path), &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format (text, json, yaml, raw)",
		Sources: valueChain(ns, "output", path),
		Value:   output.FormatText,
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	})

	return (&CommandBuilder{
		Name:      ns,
		Usage:     "capture the report and record what changed",
		UsageText: "testpad run [--url URL] [--data-dir DIR] [--key-lists]\n\n" +
			"   A report URL is required. Set --url, TESTPAD_URL or report.url in the\n" +
			"   config file; without one the run exits 1 before fetching.",
		Flags:     flags,
		Action:    runCommandAction,
		Meta:      meta,
	}).Build()
}
