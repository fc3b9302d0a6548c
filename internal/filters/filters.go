// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/tfctl/clstrctl/internal/log"
)

// EnvDelim overrides the "," between filter expressions.
const EnvDelim = "CLSTRCTL_FILTER_DELIM"

// filterRegex splits an expression into key, optional negated operator and
// target: "size" (key only), "size>1", "members!@seqA".
var filterRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string `yaml:"key"`
	Negate  bool   `yaml:"negate"`
	Operand string `yaml:"operand"`
	Value   string `yaml:"value"`
}

// BuildFilters parses spec into filters. Expressions without a key or an
// operator are skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if strings.TrimSpace(spec) == "" {
		return filters
	}

	delim := ","
	if d, ok := os.LookupEnv(EnvDelim); ok && d != "" {
		delim = d
	}

	for _, expr := range strings.Split(spec, delim) {
		expr = strings.TrimSpace(expr)
		if expr == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(expr)
		key := strings.TrimSpace(parts[1])
		operand := parts[2]
		if key == "" || operand == "" {
			log.Errorf("invalid filter: %s", expr)
			continue
		}

		negate := strings.HasPrefix(operand, "!")
		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: strings.TrimPrefix(operand, "!"),
			Value:   parts[3],
		})
	}

	return filters
}

// FilterRows returns the rows matching every expression in spec, keeping
// their order. Rows are not copied.
func FilterRows(rows []map[string]interface{}, spec string) []map[string]interface{} {
	filters := BuildFilters(spec)
	if len(filters) == 0 {
		return rows
	}

	for _, f := range filters {
		if len(rows) > 0 {
			if _, ok := rows[0][f.Key]; !ok {
				log.Warnf("filter key not found: %s", f.Key)
			}
		}
	}

	kept := rows[:0:0]
	for _, row := range rows {
		if Match(row, filters) {
			kept = append(kept, row)
		}
	}
	log.Debugf("filtered rows: spec=%q in=%d out=%d", spec, len(rows), len(kept))
	return kept
}

// Match reports whether row satisfies all filters. A missing column fails
// the row.
func Match(row map[string]interface{}, filters []Filter) bool {
	for _, f := range filters {
		value, ok := row[f.Key]
		if !ok || value == nil {
			return false
		}

		var result bool
		switch v := value.(type) {
		case string:
			result = checkStringOperand(v, f)
		case bool:
			result = checkStringOperand(strconv.FormatBool(v), f)
		default:
			if num, ok := toFloat64(v); ok {
				result = checkNumericOperand(num, f)
			} else {
				result = checkStringOperand(fmt.Sprintf("%v", v), f)
			}
		}

		if !result {
			return false
		}
	}
	return true
}

// checkNumericOperand compares numerically for =, < and >. Other operands
// fall back to comparing the formatted number as a string.
func checkNumericOperand(value float64, filter Filter) bool {
	switch filter.Operand {
	case "=", "<", ">":
	default:
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}

	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		log.Errorf("invalid numeric value: %s", filter.Value)
		return false
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	default:
		return (value < tgt) == !filter.Negate
	}
}

func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return (value == filter.Value) == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return (value > filter.Value) == !filter.Negate
	case "<":
		return (value < filter.Value) == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Errorf("invalid regex: %s", filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Errorf("unsupported filtering operand: %s", filter.Operand)
		return false
	}
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint32:
		return float64(n), true
	default:
		return 0, false
	}
}
