// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ computes and renders differences between two snapshots.
//
// Diff walks two nested mappings and reports only what changed: keys that
// were added, removed or replaced, recursing into sub-mappings. Lists are
// compared as whole values. Identical subtrees never appear in the result.
package differ
