// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Snogren/testpadapi/internal/differ"
	"github.com/Snogren/testpadapi/internal/meta"
	"github.com/Snogren/testpadapi/internal/output"
	"github.com/Snogren/testpadapi/internal/snapshot"
	"github.com/Snogren/testpadapi/internal/store"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata[meta.Key].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// writer is where a command prints its results.
func writer(cmd *cli.Command) io.Writer {
	if cmd != nil {
		if w := cmd.Root().Writer; w != nil {
			return w
		}
	}
	return os.Stdout
}

// StoreSettings reads the store selection flags.
func StoreSettings(cmd *cli.Command) store.Settings {
	return store.Settings{
		Type:     cmd.String("store"),
		Dir:      cmd.String("data-dir"),
		Bucket:   cmd.String("bucket"),
		Prefix:   cmd.String("prefix"),
		Region:   cmd.String("region"),
		Profile:  cmd.String("profile"),
		Endpoint: cmd.String("endpoint"),
	}
}

// Location reads the product, channel and release flags.
func Location(cmd *cli.Command) snapshot.Location {
	return snapshot.Location{
		Product: cmd.String("product"),
		Channel: cmd.String("channel"),
		Release: cmd.String("release"),
	}
}

// OpenArchive opens the snapshot archive the store flags select.
func OpenArchive(ctx context.Context, cmd *cli.Command) (*store.Archive, error) {
	backend, err := store.Open(ctx, StoreSettings(cmd))
	if err != nil {
		return nil, err
	}

	return store.New(backend, store.WithComparer(Comparer(cmd))), nil
}

// Comparer returns the snapshot comparison the key-lists flag selects.
func Comparer(cmd *cli.Command) differ.Comparer {
	if cmd.Bool("key-lists") {
		return differ.Comparer{KeyField: differ.DefaultKeyField}
	}
	return differ.Comparer{}
}

// outputFormat reads --output. raw has no meaning for listings and is
// treated as json.
func outputFormat(cmd *cli.Command) string {
	if f := cmd.String("output"); f != output.FormatRaw {
		return f
	}
	return output.FormatJSON
}

// tableOptions reads the listing flags.
func tableOptions(cmd *cli.Command) output.TableOptions {
	return output.TableOptions{
		Titles:  cmd.Bool("titles"),
		Color:   cmd.Bool("color"),
		Padding: cmd.Int("padding"),
	}
}
