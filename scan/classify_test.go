package scan

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	for _, tc := range []struct {
		id    int
		kind  Kind
		label string
	}{
		{0, Air, "0"},
		{54, Known, "chest"},
		{146, Known, "chest"},
		{49, Known, "obsidian"},
		{3886, Known, "rf"},
		{1, Known, "stone"},
		{7, Known, "bedrock"},
		{9999, Unknown, "9999"},
		{-3, Unknown, "-3"},
		{255, Unknown, "255"},
	} {
		c := Classify(tc.id)
		assert.Equal(t, tc.kind, c.Kind, "Classify(%d).Kind", tc.id)
		assert.Equal(t, tc.label, c.Label(), "Classify(%d).Label()", tc.id)
	}
}

func TestClassifyTableComplete(t *testing.T) {
	for id, name := range blockNames {
		c := Classify(id)
		require.Equal(t, Known, c.Kind, "id %d", id)
		require.Equal(t, name, c.Label(), "id %d", id)
	}
}

func TestClassifyUnknownIsDecimal(t *testing.T) {
	for _, id := range []int{2, 100, 4095, 123456} {
		if _, ok := blockNames[id]; ok {
			continue
		}
		assert.Equal(t, strconv.Itoa(id), Classify(id).Label())
	}
}
