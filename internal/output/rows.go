// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"github.com/tidwall/gjson"
)

// Columns of a Rows result, in display order.
var Columns = []string{"product", "channel", "release", "parent", "group", "id", "case", "result"}

// ShortColumns omit the location columns.
var ShortColumns = []string{"parent", "group", "id", "case", "result"}

// Rows flattens a raw snapshot into one row per sub-test, carrying its
// location and parent test. Parents without sub-tests yield a single row with
// no id. Branches that are not objects are ignored.
func Rows(raw []byte) []map[string]any {
	rows := []map[string]any{}

	eachObject(gjson.ParseBytes(raw), func(product, channels gjson.Result) {
		eachObject(channels, func(channel, releases gjson.Result) {
			eachObject(releases, func(release, node gjson.Result) {
				node.Get("tests").ForEach(func(_, test gjson.Result) bool {
					base := map[string]any{
						"product": product.String(),
						"channel": channel.String(),
						"release": release.String(),
						"parent":  test.Get("id").Value(),
						"group":   test.Get("case").Value(),
					}

					subs := test.Get("sub_tests").Array()
					if len(subs) == 0 {
						rows = append(rows, withFields(base, nil, nil, nil))
						return true
					}
					for _, sub := range subs {
						rows = append(rows, withFields(base,
							sub.Get("id").Value(),
							sub.Get("case").Value(),
							sub.Get("result").Value()))
					}
					return true
				})
			})
		})
	})

	return rows
}

func eachObject(r gjson.Result, fn func(key, value gjson.Result)) {
	if !r.IsObject() {
		return
	}
	r.ForEach(func(key, value gjson.Result) bool {
		if value.IsObject() {
			fn(key, value)
		}
		return true
	})
}

func withFields(base map[string]any, id, name, result any) map[string]any {
	row := make(map[string]any, len(base)+3)
	for k, v := range base {
		row[k] = v
	}
	row["id"] = id
	row["case"] = name
	row["result"] = result
	return row
}

// Query evaluates a gjson path against a raw document.
func Query(raw []byte, path string) gjson.Result {
	return gjson.GetBytes(raw, path)
}
