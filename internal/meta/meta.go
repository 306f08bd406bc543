// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package meta carries the runtime metadata every command receives.
package meta

import (
	"context"

	"github.com/Snogren/testpadapi/internal/config"
)

// Meta contains runtime metadata shared by commands: CLI arguments, the
// loaded configuration, the root context and the starting working directory.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	StartingDir string
}

// Key is the cli.Command Metadata key Meta is stored under.
const Key = "meta"
