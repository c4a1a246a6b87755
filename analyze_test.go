package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldaudit/blockscan/region"
	"github.com/worldaudit/blockscan/scan"
)

func rfChunk(cx, cz, n int) *region.Chunk {
	blocks := []scan.Block{}
	for i := 0; i < n; i++ {
		blocks = append(blocks, scan.Block{ID: 3886, X: cx * 16, Y: 10 + i, Z: cz * 16})
	}
	return region.MakeChunk(cx, cz, blocks)
}

func TestScanChunksLocationLabels(t *testing.T) {
	src := region.NewFakeSource(rfChunk(5, -3, 4))

	report := NewReport()
	require.NoError(t, scanChunks(report, src, nil))

	require.Equal(t, 1, report.Len())
	e := report.entries["x:80, z:-48"]
	require.NotNil(t, e)
	assert.Equal(t, 4, e.counts.Get("rf"))
	assert.Equal(t, 4, report.Totals().RF)
}

func TestScanChunksSkipsEmptyChunks(t *testing.T) {
	// all-air chunk: counts are empty, so no report entry
	empty := region.MakeChunk(0, 0, []scan.Block{{ID: 0, X: 0, Y: 0, Z: 0}})
	src := region.NewFakeSource(empty, rfChunk(1, 1, 1))

	report := NewReport()
	require.NoError(t, scanChunks(report, src, nil))

	assert.Equal(t, 1, report.Len())
	assert.Nil(t, report.entries[locationLabel(0, 0)])
}

func TestScanChunksBounds(t *testing.T) {
	src := region.NewFakeSource(rfChunk(5, -3, 1), rfChunk(100, 100, 1))
	bounds := &Bounds{MinX: 0, MaxX: 10, MinZ: -10, MaxZ: 10}

	report := NewReport()
	require.NoError(t, scanChunks(report, src, bounds))

	assert.Equal(t, 1, report.Len())
	assert.NotNil(t, report.entries["x:80, z:-48"])
}

func TestReportPutLastWriteWins(t *testing.T) {
	report := NewReport()

	first := scan.NewCounts()
	first.Add("chest", 1)
	report.Put(2, 2, first)

	second := scan.NewCounts()
	second.Add("obsidian", 7)
	report.Put(2, 2, second)

	require.Equal(t, 1, report.Len())
	assert.Equal(t, 0, report.entries["x:32, z:32"].counts.Get("chest"))
	assert.Equal(t, 7, report.entries["x:32, z:32"].counts.Get("obsidian"))
}

func TestFindBlocks(t *testing.T) {
	src := region.NewFakeSource(
		region.MakeChunk(5, -3, []scan.Block{
			{ID: 54, X: 81, Y: 12, Z: -46},
			{ID: 54, X: 82, Y: 12, Z: -46},
			{ID: 49, X: 80, Y: 12, Z: -48},
		}),
		region.MakeChunk(0, 0, []scan.Block{{ID: 49, X: 1, Y: 1, Z: 1}}),
	)

	var buf bytes.Buffer
	n, err := findBlocks(&buf, src, 54)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, `chunk (5, -3): 2
  x:81, y:12, z:-46
  x:82, y:12, z:-46
`, buf.String())
}

func TestScanWorldUnknownWorld(t *testing.T) {
	cfg := &Config{Worlds: map[string]string{}}
	_, err := scanWorld(cfg, "cyan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
