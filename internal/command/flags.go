// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os"
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/Snogren/testpadapi/internal/config"
	"github.com/Snogren/testpadapi/internal/fetch"
	"github.com/Snogren/testpadapi/internal/output"
	"github.com/Snogren/testpadapi/internal/snapshot"
	"github.com/Snogren/testpadapi/internal/store"
)

// valueChain builds a flag's sources: the env vars first, then <ns>.<name>
// and <name> from the YAML config file at path.
func valueChain(ns, name, path string, envs ...string) cli.ValueSourceChain {
	chain := cli.NewValueSourceChain()
	for _, env := range envs {
		chain.Chain = append(chain.Chain, cli.EnvVar(env))
	}
	if path == "" {
		return chain
	}
	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(name, altsrc.StringSourcer(path)))
	return chain
}

// configString reads a dotted config key, falling back to def.
func configString(key, def string) string {
	v, err := config.GetString(key, def)
	if err != nil || v == "" {
		return def
	}
	return v
}

// NewRunFlags are the flags of a capture run. ns is the command namespace
// used for config lookups and path the config file.
func NewRunFlags(ns, path string) []cli.Flag {
	timeout, _ := config.GetDuration("fetch.timeout", fetch.DefaultTimeout)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "url",
			Aliases: []string{"u"},
			Usage:   "report URL to fetch (required)",
			Sources: valueChain(ns, "url", path, "TESTPAD_URL"),
			Value:   configString("report.url", ""),
		},
		&cli.StringFlag{
			Name:    "product",
			Usage:   "product the report is filed under",
			Sources: valueChain(ns, "product", path, "TESTPAD_PRODUCT"),
			Value:   configString("report.product", snapshot.DefaultLocation.Product),
		},
		&cli.StringFlag{
			Name:    "channel",
			Usage:   "release channel the report is filed under",
			Sources: valueChain(ns, "channel", path, "TESTPAD_CHANNEL"),
			Value:   configString("report.channel", snapshot.DefaultLocation.Channel),
		},
		&cli.StringFlag{
			Name:    "release",
			Usage:   "release version the report is filed under",
			Sources: valueChain(ns, "release", path, "TESTPAD_RELEASE"),
			Value:   configString("report.release", snapshot.DefaultLocation.Release),
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "HTTP request timeout",
			Sources: valueChain(ns, "timeout", path, "TESTPAD_TIMEOUT"),
			Value:   timeout,
		},
		&cli.BoolFlag{
			Name:  "offline",
			Usage: "replay the last fetched report instead of fetching",
		},
	}

	return append(flags, NewStoreFlags(ns, path)...)
}

// NewStoreFlags select the snapshot store and how snapshots are compared.
func NewStoreFlags(ns, path string) []cli.Flag {
	keyLists, _ := config.GetBool("diff.key_lists", false)

	return []cli.Flag{
		&cli.StringFlag{
			Name:    "data-dir",
			Aliases: []string{"d"},
			Usage:   "directory holding snapshots (local store)",
			Sources: valueChain(ns, "data-dir", path, "TESTPAD_DATA_DIR"),
			Value:   configString("store.dir", store.DefaultDir),
		},
		&cli.StringFlag{
			Name:    "store",
			Usage:   "snapshot store type (local or s3)",
			Sources: valueChain(ns, "store", path, "TESTPAD_STORE"),
			Value:   configString("store.type", store.TypeLocal),
			Validator: func(value string) error {
				return FlagValidators(value, StoreValidator)
			},
		},
		&cli.StringFlag{
			Name:    "bucket",
			Usage:   "S3 bucket (s3 store)",
			Sources: valueChain(ns, "bucket", path, "TESTPAD_S3_BUCKET"),
			Value:   configString("store.s3.bucket", ""),
		},
		&cli.StringFlag{
			Name:    "prefix",
			Usage:   "S3 key prefix (s3 store)",
			Sources: valueChain(ns, "prefix", path, "TESTPAD_S3_PREFIX"),
			Value:   configString("store.s3.prefix", ""),
		},
		&cli.StringFlag{
			Name:    "region",
			Usage:   "AWS region (s3 store)",
			Sources: valueChain(ns, "region", path, "TESTPAD_S3_REGION"),
			Value:   configString("store.s3.region", ""),
		},
		&cli.StringFlag{
			Name:    "profile",
			Usage:   "AWS shared config profile (s3 store)",
			Sources: valueChain(ns, "profile", path, "TESTPAD_S3_PROFILE"),
			Value:   configString("store.s3.profile", ""),
		},
		&cli.StringFlag{
			Name:    "endpoint",
			Usage:   "S3-compatible endpoint URL (s3 store)",
			Sources: valueChain(ns, "endpoint", path, "TESTPAD_S3_ENDPOINT"),
			Value:   configString("store.s3.endpoint", ""),
		},
		&cli.BoolFlag{
			Name:    "key-lists",
			Aliases: []string{"k"},
			Usage:   "compare lists of tests by id instead of by position",
			Sources: valueChain(ns, "key-lists", path, "TESTPAD_KEY_LISTS"),
			Value:   keyLists,
		},
	}
}

// NewOutputFlags are the listing flags shared by the read-only commands.
func NewOutputFlags(ns, path string, withFilters bool) []cli.Flag {
	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   output.ColorDefault(os.Stdout),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml, raw)",
			Sources: valueChain(ns, "output", path, "TESTPAD_OUTPUT"),
			Value:   output.FormatText,
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: valueChain(ns, "titles", path),
		},
		&cli.IntFlag{
			Name:    "padding",
			Usage:   "spaces between text columns",
			Sources: valueChain(ns, "padding", path),
			Value:   2, //nolint:mnd
		},
	}

	if withFilters {
		flags = append(flags,
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "comma-separated list of filters to apply to results",
				Sources: valueChain(ns, "filter", path),
			},
			&cli.StringFlag{
				Name:    "sort",
				Aliases: []string{"s"},
				Usage:   "comma-separated list of columns to sort the results by",
				Sources: valueChain(ns, "sort", path),
			},
		)
	}

	return flags
}

// defaultTimeout is used when the timeout flag is unset or zero.
func defaultTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return fetch.DefaultTimeout
	}
	return d
}
