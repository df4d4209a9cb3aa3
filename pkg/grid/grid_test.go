package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGrid(t *testing.T) {
	data := []byte(" # o ")
	d, err := ParseGrid(data, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, Floor, d.At(0, 0))
	assert.Equal(t, Wall, d.At(1, 0))
	assert.Equal(t, Floor, d.At(2, 0))
	assert.Equal(t, Costly, d.At(3, 0))
	assert.Equal(t, Floor, d.At(4, 0))
}

func TestParseGrid_WrongSize(t *testing.T) {
	_, err := ParseGrid([]byte("  "), 3, 1)
	assert.Error(t, err)
}

func TestParseGrid_InvalidByte(t *testing.T) {
	_, err := ParseGrid([]byte("x"), 1, 1)
	assert.Error(t, err)
}

func TestEncodeRoundTrip(t *testing.T) {
	data := []byte("o# ")
	d, err := ParseGrid(data, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, data, d.Encode())
}

func TestInBoundsAndCost(t *testing.T) {
	d := New(3, 3)
	d.Set(1, 1, Wall)
	d.Set(2, 2, Costly)

	assert.True(t, d.InBounds(0, 0))
	assert.False(t, d.InBounds(-1, 0))
	assert.False(t, d.InBounds(3, 0))

	assert.True(t, d.IsWall(1, 1))
	assert.False(t, d.IsFloor(1, 1))
	assert.Equal(t, CostlyCost, d.Cost(2, 2))
	assert.Equal(t, FloorCost, d.Cost(0, 0))

	// Out-of-bounds reads behave as walls.
	assert.Equal(t, Wall, d.At(-1, -1))
}

func TestIndex(t *testing.T) {
	d := New(4, 4)
	assert.Equal(t, 0, d.Index(0, 0))
	assert.Equal(t, 5, d.Index(1, 1))
	assert.Equal(t, 15, d.Index(3, 3))
}
