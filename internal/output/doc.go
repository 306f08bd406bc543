// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output flattens snapshots into rows and renders rows, change
// reports and history as text tables, JSON or YAML.
package output
