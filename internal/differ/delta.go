// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// keyed renders c as a JSON object keyed by each cluster's smallest member,
// so that a cluster that gained or lost members shows up as a modified key
// rather than a removal plus an addition.
func (c Canonical) keyed() map[string][]string {
	out := make(map[string][]string, c.Len())
	for _, s := range c.Sets() {
		key := ""
		if len(s) > 0 {
			key = s[0]
		}
		// The same identifier can lead two clusters in malformed input.
		for n, base := 2, key; ; n++ {
			if _, taken := out[key]; !taken {
				break
			}
			key = fmt.Sprintf("%s#%d", base, n)
		}
		out[key] = s
	}
	return out
}

// WriteDelta writes a structural JSON delta from A to B. It writes nothing
// when the partitions are equal.
func (r Report) WriteDelta(w io.Writer, coloring bool) error {
	left, err := json.Marshal(r.A.keyed())
	if err != nil {
		return fmt.Errorf("failed to marshal partition A: %w", err)
	}
	right, err := json.Marshal(r.B.keyed())
	if err != nil {
		return fmt.Errorf("failed to marshal partition B: %w", err)
	}

	delta, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return fmt.Errorf("failed to compare partitions: %w", err)
	}
	if !delta.Modified() {
		return nil
	}

	var jdoc map[string]interface{}
	if err := json.Unmarshal(left, &jdoc); err != nil {
		return fmt.Errorf("failed to unmarshal partition A: %w", err)
	}

	f := formatter.NewAsciiFormatter(jdoc, formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       coloring,
	})
	out, err := f.Format(delta)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, out)
	return err
}
