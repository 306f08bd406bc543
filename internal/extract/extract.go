// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package extract turns a rendered Testpad report into a Snapshot.
package extract

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Snogren/testpadapi/internal/failure"
	"github.com/Snogren/testpadapi/internal/log"
	"github.com/Snogren/testpadapi/internal/snapshot"
)

const gridSelector = "table.scriptGrid"

// Extract parses markup and returns the snapshot rooted at loc. Rows that
// lack an id or case cell, and leaf rows seen before any parent, are
// dropped.
func Extract(markup []byte, loc snapshot.Location) (snapshot.Snapshot, error) {
	tests, err := Tests(markup)
	if err != nil {
		return nil, err
	}
	snap, err := snapshot.New(loc, tests)
	if err != nil {
		return nil, failure.New(failure.Parse, "extract", err)
	}
	return snap, nil
}

// Tests returns the parent test cases of the report grid in document order.
func Tests(markup []byte) ([]snapshot.TestCase, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, failure.New(failure.Parse, "extract", err)
	}

	grid := doc.Find(gridSelector).First()
	if grid.Length() == 0 {
		return nil, failure.Newf(failure.Parse, "extract", "no %s in report", gridSelector)
	}

	tests := []snapshot.TestCase{}
	current := -1
	dropped := 0

	grid.Find("tr.parent, tr.leaf").Each(func(i int, row *goquery.Selection) {
		id, idOK := cellText(row, "id")
		name, caseOK := cellText(row, "case")
		if !idOK || !caseOK {
			log.Warnf("row %d: missing id or case cell, skipped", i)
			dropped++
			return
		}

		if row.HasClass("leaf") {
			if current < 0 {
				log.Warnf("row %d: sub-test %q before any parent, skipped", i, id)
				dropped++
				return
			}
			tests[current].SubTests = append(tests[current].SubTests, snapshot.SubTestCase{
				ID:     id,
				Case:   name,
				Result: result(row),
			})
			return
		}

		tests = append(tests, snapshot.TestCase{
			ID:       id,
			Case:     name,
			SubTests: []snapshot.SubTestCase{},
		})
		current = len(tests) - 1
	})

	log.Debugf("extracted %d test cases (%d rows dropped)", len(tests), dropped)
	return tests, nil
}

func cellText(row *goquery.Selection, class string) (string, bool) {
	cell := row.Find("td." + class).First()
	if cell.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(cell.Text()), true
}

func result(row *goquery.Selection) *string {
	cell := row.Find("td.result").First()
	switch {
	case cell.Length() == 0:
		return nil
	case cell.HasClass(snapshot.Pass):
		return snapshot.ResultOf(snapshot.Pass)
	case cell.HasClass(snapshot.Fail):
		return snapshot.ResultOf(snapshot.Fail)
	default:
		return nil
	}
}
