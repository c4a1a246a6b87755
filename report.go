package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/worldaudit/blockscan/scan"
)

// Totals are the fixed summary categories printed after the per-location
// report.
type Totals struct {
	Chest    int `json:"chest"`
	Obsidian int `json:"obsidian"`
	RF       int `json:"rf"`
}

type entry struct {
	label  string
	cx, cz int
	counts *scan.Counts
}

// Report accumulates per-location block counts over one scan, in insertion
// order. Locations are labeled by block coordinates (chunk * 16).
type Report struct {
	order   []string
	entries map[string]*entry
}

func NewReport() *Report {
	return &Report{entries: map[string]*entry{}}
}

func locationLabel(cx, cz int) string {
	return fmt.Sprintf("x:%d, z:%d", cx*16, cz*16)
}

// Put stores counts under the chunk's location label. A repeated label keeps
// its original position but the counts are replaced (last write wins).
func (r *Report) Put(cx, cz int, counts *scan.Counts) {
	label := locationLabel(cx, cz)
	if _, ok := r.entries[label]; !ok {
		r.order = append(r.order, label)
	}
	r.entries[label] = &entry{label: label, cx: cx, cz: cz, counts: counts}
}

func (r *Report) Len() int {
	return len(r.order)
}

func (r *Report) each(fn func(e *entry)) {
	for _, label := range r.order {
		fn(r.entries[label])
	}
}

// Totals folds the chest/obsidian/rf counts across all locations; absent
// names count as zero.
func (r *Report) Totals() Totals {
	t := Totals{}
	r.each(func(e *entry) {
		t.Chest += e.counts.Get("chest")
		t.Obsidian += e.counts.Get("obsidian")
		t.RF += e.counts.Get("rf")
	})
	return t
}

// Print writes one line per location followed by the three summary totals.
func (r *Report) Print(w io.Writer) {
	r.each(func(e *entry) {
		fmt.Fprintf(w, "%s: %s\n", e.label, e.counts)
	})
	t := r.Totals()
	fmt.Fprintf(w, "Total chests: %d\n", t.Chest)
	fmt.Fprintf(w, "Total obsidian: %d\n", t.Obsidian)
	fmt.Fprintf(w, "Total RF blocks: %d\n", t.RF)
}

// MarshalJSON renders the report as an ordered array of locations plus the
// totals, for the serve verb.
func (r *Report) MarshalJSON() ([]byte, error) {
	type jsonEntry struct {
		Location string       `json:"location"`
		X        int          `json:"x"`
		Z        int          `json:"z"`
		Counts   *scan.Counts `json:"counts"`
	}
	locations := []jsonEntry{}
	r.each(func(e *entry) {
		locations = append(locations, jsonEntry{
			Location: e.label,
			X:        e.cx * 16,
			Z:        e.cz * 16,
			Counts:   e.counts,
		})
	})
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	err := enc.Encode(struct {
		Locations []jsonEntry `json:"locations"`
		Totals    Totals      `json:"totals"`
	}{locations, r.Totals()})
	return bytes.TrimSpace(buf.Bytes()), err
}
