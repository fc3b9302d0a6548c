// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects rows of a listing by column value.
//
// A filter spec is a comma-delimited (CLSTRCTL_FILTER_DELIM overrides the
// delimiter) list of key-operator-target expressions, where key is a column
// name. A row is kept only when it matches every expression.
//
// Operators, each negatable with a leading "!":
//
//   - = : equal (string or numeric)
//   - ~ : case-insensitive equal
//   - ^ : prefix
//   - < : less than (numeric when both sides are numbers)
//   - > : greater than (numeric when both sides are numbers)
//   - @ : contains; members@seqA keeps clusters listing seqA
//   - / : regular expression match
//
// Examples:
//
//   - "size>1" : clusters with more than one member
//   - "representative^sp|" : clusters led by a Swiss-Prot identifier
//   - "members!@seqX" : clusters without seqX
//
// Malformed expressions are logged and skipped.
package filters
