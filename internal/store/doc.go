// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package store persists snapshots as data_<YYYYMMDD_HHMMSS>.json documents
// and reads them back, in name order, to find the latest capture and to
// build the history of changes between consecutive captures.
//
// The Archive holds the naming and ordering rules. Where the documents live
// is a Backend: a local directory or an S3 bucket prefix. Backends only ever
// create new documents; nothing is rewritten.
package store
