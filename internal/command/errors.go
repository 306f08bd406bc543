// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

// ErrConfig marks errors caused by missing or inconsistent settings.
var ErrConfig = errors.New("configuration error")

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}

// ExitCode maps an error returned by the app to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrConfig):
		return 1
	default:
		return 2
	}
}

// errWriter is where a command prints diagnostics.
func errWriter(cmd *cli.Command) io.Writer {
	if cmd != nil {
		if w := cmd.Root().ErrWriter; w != nil {
			return w
		}
	}
	return os.Stderr
}
