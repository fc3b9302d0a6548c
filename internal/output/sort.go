// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"sort"
	"strings"
)

// SortDataset stably sorts rows by a comma-separated list of keys. A "-"
// prefix sorts a key descending and "!" compares strings case-sensitively.
// Numeric values compare numerically.
func SortDataset(rows []map[string]interface{}, spec string) {
	if strings.TrimSpace(spec) == "" {
		return
	}
	fields := strings.Split(spec, ",")

	sort.SliceStable(rows, func(i, j int) bool {
		for _, field := range fields {
			field = strings.TrimSpace(field)
			ascending := !strings.HasPrefix(field, "-")
			field = strings.TrimPrefix(field, "-")
			caseSensitive := strings.HasPrefix(field, "!")
			field = strings.TrimPrefix(field, "!")

			a, b := rows[i][field], rows[j][field]

			af, aNum := a.(float64)
			bf, bNum := b.(float64)
			if aNum && bNum {
				if af != bf {
					return (af < bf) == ascending
				}
				continue
			}

			as, bs := InterfaceToString(a), InterfaceToString(b)
			if !caseSensitive {
				as, bs = strings.ToLower(as), strings.ToLower(bs)
			}
			if as != bs {
				return (as < bs) == ascending
			}
		}
		return false
	})
}
