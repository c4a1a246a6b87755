package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldaudit/blockscan/scan"
)

func countsOf(blocks ...scan.Block) *scan.Counts {
	return scan.CountBlocks(blocks)
}

func TestReportPrint(t *testing.T) {
	report := NewReport()
	report.Put(5, -3, countsOf(
		scan.Block{ID: 3886}, scan.Block{ID: 3886}, scan.Block{ID: 3886}, scan.Block{ID: 3886},
	))
	report.Put(0, 0, countsOf(scan.Block{ID: 54}, scan.Block{ID: 49}, scan.Block{ID: 54}))

	var buf bytes.Buffer
	report.Print(&buf)

	assert.Equal(t, `x:80, z:-48: {rf: 4}
x:0, z:0: {chest: 2, obsidian: 1}
Total chests: 2
Total obsidian: 1
Total RF blocks: 4
`, buf.String())
}

func TestReportTotalsDefaultZero(t *testing.T) {
	report := NewReport()
	report.Put(1, 1, countsOf(scan.Block{ID: 1}, scan.Block{ID: 9999}))

	assert.Equal(t, Totals{}, report.Totals())
}

func TestReportEmptyPrint(t *testing.T) {
	var buf bytes.Buffer
	NewReport().Print(&buf)
	assert.Equal(t, "Total chests: 0\nTotal obsidian: 0\nTotal RF blocks: 0\n", buf.String())
}

func TestReportJSON(t *testing.T) {
	report := NewReport()
	report.Put(5, -3, countsOf(scan.Block{ID: 3886}))

	buf, err := json.Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"locations": [
			{"location": "x:80, z:-48", "x": 80, "z": -48, "counts": {"rf": 1}}
		],
		"totals": {"chest": 0, "obsidian": 0, "rf": 1}
	}`, string(buf))
}
