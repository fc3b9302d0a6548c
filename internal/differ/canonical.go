// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"slices"
	"strconv"
	"strings"

	"github.com/tfctl/clstrctl/clstr"
)

// Set is a canonical cluster: its members sorted and de-duplicated.
type Set []string

// NewSet canonicalizes one cluster.
func NewSet(members []string) Set {
	s := slices.Clone(members)
	slices.Sort(s)
	return slices.Compact(s)
}

// key encodes s unambiguously, whatever bytes the identifiers contain.
func (s Set) key() string {
	var b strings.Builder
	for _, m := range s {
		b.WriteString(strconv.Itoa(len(m)))
		b.WriteByte(':')
		b.WriteString(m)
	}
	return b.String()
}

// String renders s as {"a", "b"}.
func (s Set) String() string {
	quoted := make([]string, len(s))
	for i, m := range s {
		quoted[i] = strconv.Quote(m)
	}
	return "{" + strings.Join(quoted, ", ") + "}"
}

// compareSets orders sets member by member; a proper prefix sorts first.
func compareSets(a, b Set) int {
	return slices.Compare(a, b)
}

// Canonical is a partition reduced to a set of member sets. Cluster order,
// member order, cluster numbering and representative choice are all gone;
// identical clusters collapse into one.
type Canonical struct {
	sets map[string]Set
}

// Canonicalize reduces p to its canonical form.
func Canonicalize(p clstr.Partition) Canonical {
	c := Canonical{sets: make(map[string]Set, len(p))}
	for _, cluster := range p {
		s := NewSet(cluster)
		c.sets[s.key()] = s
	}
	return c
}

// Len is the number of distinct clusters.
func (c Canonical) Len() int {
	return len(c.sets)
}

// Contains reports whether s, as an exact member set, is in c.
func (c Canonical) Contains(s Set) bool {
	_, ok := c.sets[s.key()]
	return ok
}

// Sets returns every cluster in lexicographic order.
func (c Canonical) Sets() []Set {
	out := make([]Set, 0, len(c.sets))
	for _, s := range c.sets {
		out = append(out, s)
	}
	slices.SortFunc(out, compareSets)
	return out
}

// Equal reports whether c and o hold exactly the same member sets.
func (c Canonical) Equal(o Canonical) bool {
	if len(c.sets) != len(o.sets) {
		return false
	}
	for k := range c.sets {
		if _, ok := o.sets[k]; !ok {
			return false
		}
	}
	return true
}

// Difference returns the clusters of c that are not in o, in lexicographic
// order. A cluster differing from every cluster of o by a single member is
// reported whole.
func (c Canonical) Difference(o Canonical) []Set {
	var out []Set
	for k, s := range c.sets {
		if _, ok := o.sets[k]; !ok {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, compareSets)
	return out
}
