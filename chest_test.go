package wld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaedenn/wld/internal/fixture"
)

func writeItemSlot(w *fixture.Writer, stack int16, id int32, prefix uint8) {
	w.I16(stack)
	if stack > 0 {
		w.I32(id)
		w.U8(prefix)
	}
}

func TestReadChests_NoOverflow(t *testing.T) {
	w := fixture.New()
	w.U16(1)  // total
	w.U16(20) // max_items, within inline capacity

	w.I32(10) // x
	w.I32(20) // y
	w.String("My Chest")
	writeItemSlot(w, 5, 100, 1)
	for i := 1; i < 20; i++ {
		writeItemSlot(w, 0, 0, 0)
	}

	diag := &Diagnostics{}
	s := NewByteStream(w.Bytes())
	chests, err := readChests(s, diag)
	require.NoError(t, err)
	require.Len(t, chests, 1)
	assert.Equal(t, int32(10), chests[0].X)
	assert.Equal(t, int32(20), chests[0].Y)
	assert.Equal(t, "My Chest", chests[0].Name)
	assert.Len(t, chests[0].Items, 20)
	assert.Equal(t, Item{ItemID: 100, Prefix: 1, Stack: 5}, chests[0].Items[0])
	assert.Empty(t, chests[0].Overflow)
	assert.False(t, diag.HasWarnings())
}

func TestReadChests_OverflowWarns(t *testing.T) {
	w := fixture.New()
	w.U16(1)  // total
	w.U16(45) // max_items > maxChestSlots (40)

	w.I32(0)
	w.I32(0)
	w.String("")
	for i := 0; i < 45; i++ {
		writeItemSlot(w, 0, 0, 0)
	}

	diag := &Diagnostics{}
	s := NewByteStream(w.Bytes())
	chests, err := readChests(s, diag)
	require.NoError(t, err)
	require.Len(t, chests, 1)
	assert.Len(t, chests[0].Items, maxChestSlots)
	assert.Len(t, chests[0].Overflow, 5)
	assert.True(t, diag.HasWarnings())
	assert.Equal(t, WarnChestOverflow, diag.Warnings[0].Kind)
}

func TestReadItemSlot_EmptySlot(t *testing.T) {
	w := fixture.New()
	w.I16(0)
	s := NewByteStream(w.Bytes())
	item, err := readItemSlot(s)
	require.NoError(t, err)
	assert.Equal(t, Item{}, item)
}
