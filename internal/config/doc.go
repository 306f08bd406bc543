// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for testpad's user
// configuration. The configuration is a YAML document named testpad.yaml in
// the user's configuration directory, typically:
//   - Linux/macOS: $XDG_CONFIG_HOME/testpad.yaml or $HOME/.config/testpad.yaml
//   - Windows: %APPDATA%/testpad.yaml
//
// TESTPAD_CFG_FILE overrides the location.
package config
