// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"sort"
	"strconv"
	"strings"
)

// SortDataset orders rows by a comma-separated list of columns. A leading -
// sorts a column descending and a leading ! makes it case-sensitive. Dotted
// test ids compare segment by segment, so 1.2 sorts before 1.10.
func SortDataset(resultSet []map[string]any, spec string) {
	if strings.TrimSpace(spec) == "" {
		return
	}
	fields := strings.Split(spec, ",")

	sort.SliceStable(resultSet, func(one, two int) bool {
		for _, field := range fields {
			field = strings.TrimSpace(field)
			ascending := true
			if strings.HasPrefix(field, "-") {
				field = strings.TrimPrefix(field, "-")
				ascending = false
			}

			caseSensitive := false
			if strings.HasPrefix(field, "!") {
				field = strings.TrimPrefix(field, "!")
				caseSensitive = true
			}

			c := compareValues(resultSet[one][field], resultSet[two][field], caseSensitive)
			if c == 0 {
				continue
			}
			if ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
}

func compareValues(one, two any, caseSensitive bool) int {
	oneNum, oneOk := one.(float64)
	twoNum, twoOk := two.(float64)
	if oneOk && twoOk {
		switch {
		case oneNum < twoNum:
			return -1
		case oneNum > twoNum:
			return 1
		}
		return 0
	}

	oneStr := InterfaceToString(one)
	twoStr := InterfaceToString(two)
	if !caseSensitive {
		oneStr = strings.ToLower(oneStr)
		twoStr = strings.ToLower(twoStr)
	}

	if c, ok := compareDotted(oneStr, twoStr); ok {
		return c
	}
	return strings.Compare(oneStr, twoStr)
}

// compareDotted compares values like 1.2 and 1.10 numerically per segment.
// ok is false unless both values are dotted integers.
func compareDotted(a, b string) (int, bool) {
	as, aok := dottedSegments(a)
	bs, bok := dottedSegments(b)
	if !aok || !bok {
		return 0, false
	}
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] != bs[i] {
			if as[i] < bs[i] {
				return -1, true
			}
			return 1, true
		}
	}
	switch {
	case len(as) < len(bs):
		return -1, true
	case len(as) > len(bs):
		return 1, true
	}
	return 0, true
}

func dottedSegments(s string) ([]int, bool) {
	if s == "" {
		return nil, false
	}
	parts := strings.Split(s, ".")
	segments := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, false
		}
		segments[i] = n
	}
	return segments, true
}
