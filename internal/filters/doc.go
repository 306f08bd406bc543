// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects rows of the results listing.
//
// A filter is a key, an operator and a target, such as "result=fail".
// Several filters are joined with commas (or TESTPAD_FILTER_DELIM) and a row
// must match all of them. Operators, each negatable with a leading !:
//
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix
//   - < : less than (numeric when the column is a number)
//   - > : greater than (numeric when the column is a number)
//   - @ : contains
//   - / : regular expression
//
// Examples:
//
//   - "result=fail" : failing sub-tests
//   - "result=" : sub-tests with no result yet
//   - "parent^2.,case!@smoke" : sub-tests of parent 2.x whose case does
//     not mention smoke
//
// Keys are column names of the listing. Unknown keys are reported and
// ignored.
package filters
