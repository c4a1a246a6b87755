package scan

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Block is one decoded block with world coordinates. Produced by the region
// package (or tests); never mutated here.
type Block struct {
	ID      int
	X, Y, Z int
}

type Coord struct {
	X, Y, Z int
}

// FindByID returns the coordinates of every block matching id, in encounter
// order. No matches yields an empty slice.
func FindByID(id int, blocks []Block) []Coord {
	coords := []Coord{}
	for _, b := range blocks {
		if b.ID == id {
			coords = append(coords, Coord{X: b.X, Y: b.Y, Z: b.Z})
		}
	}
	return coords
}

// Chunker is the minimal view of a decoded chunk the scanner needs.
type Chunker interface {
	Coords() (x, z int)
	Blocks() []Block
}

type ChunkMatches struct {
	ChunkX, ChunkZ int
	Count          int
}

// FindInChunks counts matches of id per chunk. Every input chunk produces an
// entry, zero matches included, in input order.
func FindInChunks[C Chunker](id int, chunks []C) []ChunkMatches {
	results := make([]ChunkMatches, 0, len(chunks))
	for _, c := range chunks {
		x, z := c.Coords()
		results = append(results, ChunkMatches{
			ChunkX: x,
			ChunkZ: z,
			Count:  len(FindByID(id, c.Blocks())),
		})
	}
	return results
}

// Counts is a name → count mapping that remembers first-seen key order, since
// the report prints entries in the order blocks were encountered.
type Counts struct {
	order  []string
	counts map[string]int
}

func NewCounts() *Counts {
	return &Counts{counts: map[string]int{}}
}

func (c *Counts) Add(name string, n int) {
	if _, ok := c.counts[name]; !ok {
		c.order = append(c.order, name)
	}
	c.counts[name] += n
}

// Get returns 0 for absent names.
func (c *Counts) Get(name string) int {
	return c.counts[name]
}

func (c *Counts) Len() int {
	return len(c.order)
}

func (c *Counts) Each(fn func(name string, n int)) {
	for _, name := range c.order {
		fn(name, c.counts[name])
	}
}

func (c *Counts) String() string {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.order {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%s: %d", name, c.counts[name])
	}
	buf.WriteByte('}')
	return buf.String()
}

// MarshalJSON emits an object with keys in first-seen order. encoding/json
// would sort a plain map.
func (c *Counts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":%d", c.counts[name])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// CountBlocks tallies every non-air block by its classified label. Air is
// skipped before classification is consulted.
func CountBlocks(blocks []Block) *Counts {
	counts := NewCounts()
	for _, b := range blocks {
		if b.ID == AirID {
			continue
		}
		counts.Add(Classify(b.ID).Label(), 1)
	}
	return counts
}
