// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"reflect"
	"sort"

	"github.com/antzucaro/matchr"
	"github.com/google/go-cmp/cmp"
)

// exportAll lets cmp look into unexported fields of opaque values instead of
// panicking on them.
var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

// Change describes one replaced, added or removed value. Added keys have a
// nil Old and removed keys a nil New. Distance is set only when both sides
// are strings.
type Change struct {
	Old      any  `json:"old"`
	New      any  `json:"new"`
	Distance *int `json:"distance,omitempty"`
}

// ChangeRecord maps a changed key to either a Change or, for a sub-mapping
// that changed internally, a nested ChangeRecord. It is never populated with
// empty nested records.
type ChangeRecord map[string]any

// Keys returns the changed keys of this level in sorted order.
func (cr ChangeRecord) Keys() []string {
	keys := make([]string, 0, len(cr))
	for k := range cr {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Count returns the number of leaf changes at every level.
func (cr ChangeRecord) Count() int {
	n := 0
	for _, v := range cr {
		if nested, ok := v.(ChangeRecord); ok {
			n += nested.Count()
			continue
		}
		n++
	}
	return n
}

// Diff compares prev against next and returns the keys that differ. It never
// fails and has no side effects.
func Diff(prev, next map[string]any) ChangeRecord {
	changes := ChangeRecord{}

	for key, newValue := range next {
		oldValue, found := prev[key]
		if !found {
			changes[key] = Change{New: newValue, Old: nil}
			continue
		}

		oldMap, oldIsMap := asMapping(oldValue)
		newMap, newIsMap := asMapping(newValue)
		if oldIsMap && newIsMap {
			if nested := Diff(oldMap, newMap); len(nested) > 0 {
				changes[key] = nested
			}
			continue
		}

		if cmp.Equal(oldValue, newValue, exportAll) {
			continue
		}

		change := Change{Old: oldValue, New: newValue}
		if oldStr, ok := oldValue.(string); ok {
			if newStr, ok := newValue.(string); ok {
				d := Distance(oldStr, newStr)
				change.Distance = &d
			}
		}
		changes[key] = change
	}

	for key, oldValue := range prev {
		if _, found := next[key]; !found {
			changes[key] = Change{Old: oldValue, New: nil}
		}
	}

	return changes
}

// Distance is the Levenshtein distance between a and b: the fewest single
// character insertions, deletions or substitutions turning one into the
// other. Characters are runes, not bytes.
func Distance(a, b string) int {
	return matchr.Levenshtein(a, b)
}

// asMapping reports whether v is a string-keyed mapping Diff can recurse
// into.
func asMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case ChangeRecord:
		return m, true
	default:
		return nil, false
	}
}
