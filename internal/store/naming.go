// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"strings"
	"time"
)

const (
	namePrefix = "data_"
	nameSuffix = ".json"

	// TimeLayout is the timestamp embedded in a snapshot name.
	TimeLayout = "20060102_150405"
)

// Name returns the document name for a capture at t, in local time.
func Name(t time.Time) string {
	return namePrefix + t.Local().Format(TimeLayout) + nameSuffix
}

// ParseName returns the capture time embedded in name, or false when name
// is not a snapshot document.
func ParseName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, namePrefix) || !strings.HasSuffix(name, nameSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, namePrefix), nameSuffix)
	t, err := time.ParseInLocation(TimeLayout, stamp, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
