package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2Add(t *testing.T) {
	assert.Equal(t, Vec2{4, 6}, Vec2{1, 2}.Add(Vec2{3, 4}))
}

func TestVec2Sub(t *testing.T) {
	assert.Equal(t, Vec2{3, 4}, Vec2{5, 7}.Sub(Vec2{2, 3}))
}

func TestVec2Distance(t *testing.T) {
	assert.InDelta(t, 5.0, Vec2{0, 0}.Distance(Vec2{3, 4}), 1e-9)
}

func TestEuclidean(t *testing.T) {
	assert.InDelta(t, 5.0, Euclidean(0, 0, 3, 4), 1e-9)
	assert.InDelta(t, 0.0, Euclidean(2, 2, 2, 2), 1e-9)
}
