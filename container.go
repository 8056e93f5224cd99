package bser

import (
	"bytes"
	"sort"
)

// KeyOrdering selects how a decoded [Object] presents its entries
// (§3.2, §4.4).
type KeyOrdering int

const (
	// Unsorted preserves the order keys appeared on the wire.
	Unsorted KeyOrdering = iota
	// Sorted presents keys in ascending lexicographic order of their
	// UTF-8 code units.
	Sorted
)

// newObject applies ordering to entries and returns the resulting
// Object. Duplicate keys are resolved last-write-wins (§3.2, §9): when
// the same key appears twice, the later occurrence's value replaces the
// earlier one's and the key keeps the position of its first occurrence,
// so |entries| after newObject reflects unique keys only.
//
// Under Sorted, entries are sorted by the raw UTF-8 bytes of the key
// (unsigned-octet order), the same comparison
// map-protocol-map1/encode.go applies when it canonicalizes MAP keys.
func newObject(entries []objectEntry, ordering KeyOrdering) *Object {
	deduped := dedupeLastWins(entries)

	if ordering == Sorted {
		sort.SliceStable(deduped, func(i, j int) bool {
			return bytes.Compare([]byte(deduped[i].key), []byte(deduped[j].key)) < 0
		})
	}

	obj := &Object{
		Keys:   make([]string, len(deduped)),
		Values: make([]Value, len(deduped)),
	}
	for i, e := range deduped {
		obj.Keys[i] = e.key
		obj.Values[i] = e.val
	}
	return obj
}

// dedupeLastWins collapses repeated keys, keeping each key's last
// occurrence but at the position of its first occurrence — this is
// what lets Unsorted ordering remain "wire order" even when a later
// duplicate overwrites an earlier value.
func dedupeLastWins(entries []objectEntry) []objectEntry {
	hasDup := false
	seen := make(map[string]int, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.key]; ok {
			hasDup = true
			break
		}
		seen[e.key] = 1
	}
	if !hasDup {
		return entries
	}

	order := make([]string, 0, len(entries))
	last := make(map[string]Value, len(entries))
	for _, e := range entries {
		if _, ok := last[e.key]; !ok {
			order = append(order, e.key)
		}
		last[e.key] = e.val
	}
	out := make([]objectEntry, len(order))
	for i, k := range order {
		out[i] = objectEntry{key: k, val: last[k]}
	}
	return out
}
