package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInventory_Accessors(t *testing.T) {
	inv := Inventory{Records: []ObjectRecord{{Key: "a"}, {Key: "b"}}}

	assert.Equal(t, 2, inv.Len())
	assert.Equal(t, []string{"a", "b"}, inv.Keys())

	r, ok := inv.Find("b")
	assert.True(t, ok)
	assert.Equal(t, "b", r.Key)
	_, ok = inv.Find("c")
	assert.False(t, ok)

	r, ok = inv.At(1)
	assert.True(t, ok)
	assert.Equal(t, "a", r.Key)
	_, ok = inv.At(0)
	assert.False(t, ok)
	_, ok = inv.At(3)
	assert.False(t, ok)
}

func TestInventory_MarkedStaleCopies(t *testing.T) {
	inv := Inventory{Records: []ObjectRecord{{Key: "a"}}}
	stale := inv.markedStale()

	stale.Records[0].Key = "changed"
	assert.True(t, stale.Stale)
	assert.False(t, inv.Stale)
	assert.Equal(t, "a", inv.Records[0].Key)
}
