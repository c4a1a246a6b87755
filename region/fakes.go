package region

import (
	"sort"

	"github.com/worldaudit/blockscan/scan"
)

// FakeSource is an in-memory ChunkSource so the analyzer and tests don't
// need region files on disk.
type FakeSource struct {
	chunks []*Chunk
}

func NewFakeSource(chunks ...*Chunk) *FakeSource {
	return &FakeSource{chunks: chunks}
}

func (f *FakeSource) Add(c *Chunk) {
	f.chunks = append(f.chunks, c)
}

func (f *FakeSource) Chunks() ([]*Chunk, error) {
	return f.chunks, nil
}

// MakeChunk builds a chunk at grid (x, z) holding the given blocks, placed
// into real sections so Blocks() exercises the same decode path as disk
// chunks. Block coordinates must fall inside the chunk's column and
// 0 <= Y < 256.
func MakeChunk(x, z int, blocks []scan.Block) *Chunk {
	c := &Chunk{X: x, Z: z}
	bySection := map[int]*section{}
	for _, b := range blocks {
		sy := b.Y >> 4
		s, ok := bySection[sy]
		if !ok {
			s = &section{y: sy, blocks: make([]byte, 4096), add: make([]byte, 2048)}
			bySection[sy] = s
		}
		i := (b.Y&15)<<8 | (b.Z-z*16)<<4 | (b.X - x*16)
		s.blocks[i] = byte(b.ID)
		s.add[i>>1] |= byte((b.ID>>8)&0xf) << ((i & 1) << 2)
	}
	for _, s := range bySection {
		c.sections = append(c.sections, *s)
	}
	sort.Slice(c.sections, func(i, j int) bool { return c.sections[i].y < c.sections[j].y })
	return c
}
