// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

// DefaultKeyField is the field lists are keyed on when list keying is on.
const DefaultKeyField = "id"

// Comparer applies optional list keying before diffing. The zero value
// compares lists as opaque values.
type Comparer struct {
	// KeyField, when set, turns every list of mappings that all carry a
	// unique, non-empty string under this field into a mapping keyed by it.
	KeyField string
}

// Compare diffs prev against next under the comparer's settings.
func (c Comparer) Compare(prev, next map[string]any) ChangeRecord {
	if c.KeyField != "" {
		prev = KeyLists(prev, c.KeyField)
		next = KeyLists(next, c.KeyField)
	}
	return Diff(prev, next)
}

// KeyLists returns a copy of tree where qualifying lists are replaced by
// mappings keyed on field. A list qualifies when it is non-empty and every
// element is a mapping with a distinct, non-empty string value for field.
// Other lists keep their order and are only descended into.
func KeyLists(tree map[string]any, field string) map[string]any {
	if tree == nil {
		return nil
	}
	out := make(map[string]any, len(tree))
	for k, v := range tree {
		out[k] = keyValue(v, field)
	}
	return out
}

func keyValue(v any, field string) any {
	switch t := v.(type) {
	case map[string]any:
		return KeyLists(t, field)
	case []any:
		if keyed, ok := keyList(t, field); ok {
			return keyed
		}
		items := make([]any, len(t))
		for i, item := range t {
			items[i] = keyValue(item, field)
		}
		return items
	default:
		return v
	}
}

func keyList(list []any, field string) (map[string]any, bool) {
	if len(list) == 0 {
		return nil, false
	}

	keyed := make(map[string]any, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		id, ok := m[field].(string)
		if !ok || id == "" {
			return nil, false
		}
		if _, dup := keyed[id]; dup {
			return nil, false
		}
		keyed[id] = KeyLists(m, field)
	}
	return keyed, true
}
