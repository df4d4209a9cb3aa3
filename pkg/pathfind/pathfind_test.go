package pathfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/dungeonkernel/pkg/grid"
)

func gridFromRows(rows []string) *grid.DungeonData {
	h := len(rows)
	w := len(rows[0])
	data := make([]byte, 0, w*h)
	for _, r := range rows {
		data = append(data, []byte(r)...)
	}
	d, err := grid.ParseGrid(data, w, h)
	if err != nil {
		panic(err)
	}
	return d
}

func assertContiguous(t *testing.T, path []grid.Position) {
	t.Helper()
	for i := 1; i < len(path); i++ {
		dx := path[i].X - path[i-1].X
		dy := path[i].Y - path[i-1].Y
		manhattan := abs(dx) + abs(dy)
		assert.Equal(t, 1, manhattan, "cells %v -> %v are not 4-connected", path[i-1], path[i])
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func TestFindAstar_SameStartGoal(t *testing.T) {
	d := grid.New(5, 5)
	p := grid.Position{X: 2, Y: 2}
	path := FindAstar(d, p, p, 1.0)
	require.Len(t, path, 1)
	assert.Equal(t, p, path[0])
}

func TestFindAstar_Scenario1_Row(t *testing.T) {
	d := gridFromRows([]string{"     "})
	path := FindAstar(d, grid.Position{0, 0}, grid.Position{4, 0}, 1.0)
	require.Len(t, path, 5)
	assert.Equal(t, grid.Position{0, 0}, path[0])
	assert.Equal(t, grid.Position{4, 0}, path[4])
}

func TestFindAstar_Scenario2_DetourAroundWalls(t *testing.T) {
	d := gridFromRows([]string{
		" # ",
		" # ",
		"   ",
	})
	path := FindAstar(d, grid.Position{0, 0}, grid.Position{2, 0}, 1.0)
	require.Len(t, path, 7)
	assert.Equal(t, grid.Position{0, 0}, path[0])
	assert.Equal(t, grid.Position{2, 0}, path[len(path)-1])
	assertContiguous(t, path)
	for _, p := range path {
		assert.False(t, d.IsWall(p.X, p.Y))
	}
}

func TestFindAstar_Scenario3_CostlyVsWall(t *testing.T) {
	d := gridFromRows([]string{
		"o#",
		"  ",
	})
	path := FindAstar(d, grid.Position{1, 1}, grid.Position{0, 0}, 1.0)
	require.NotEmpty(t, path)
	assert.Equal(t, 11, PathCost(d, path))
	assert.Equal(t, []grid.Position{{1, 1}, {0, 1}, {0, 0}}, path)
}

func TestFindAstar_Unreachable(t *testing.T) {
	d := gridFromRows([]string{
		"###",
		"###",
		"###",
	})
	d.Set(1, 1, grid.Floor)
	path := FindAstar(d, grid.Position{1, 1}, grid.Position{1, 1}, 1.0)
	assert.Len(t, path, 1)

	d.Set(0, 0, grid.Floor)
	path = FindAstar(d, grid.Position{0, 0}, grid.Position{1, 1}, 1.0)
	assert.Empty(t, path)
}

func TestFindAstar_OutOfBounds(t *testing.T) {
	d := grid.New(3, 3)
	assert.Empty(t, FindAstar(d, grid.Position{-1, 0}, grid.Position{1, 1}, 1.0))
	assert.Empty(t, FindAstar(d, grid.Position{0, 0}, grid.Position{9, 9}, 1.0))
}

func TestFindAstar_BlockedEndpoints(t *testing.T) {
	d := grid.New(3, 3)
	d.Set(1, 1, grid.Wall)
	assert.Empty(t, FindAstar(d, grid.Position{1, 1}, grid.Position{0, 0}, 1.0))
	assert.Empty(t, FindAstar(d, grid.Position{0, 0}, grid.Position{1, 1}, 1.0))
}

func TestFindIDA_Scenario4_20x20(t *testing.T) {
	rows := make([]string, 20)
	for i := range rows {
		row := make([]byte, 20)
		for j := range row {
			row[j] = ' '
		}
		rows[i] = string(row)
	}
	d := gridFromRows(rows)
	path := FindIDA(d, grid.Position{0, 0}, grid.Position{19, 19})
	require.NotEmpty(t, path)
	assert.Len(t, path, 39)
}

func TestFindIDA_MatchesAstarCost(t *testing.T) {
	d := gridFromRows([]string{
		" # ",
		" # ",
		"   ",
	})
	astarPath := FindAstar(d, grid.Position{0, 0}, grid.Position{2, 0}, 1.0)
	idaPath := FindIDA(d, grid.Position{0, 0}, grid.Position{2, 0})
	assert.Equal(t, PathCost(d, astarPath), PathCost(d, idaPath))
}

func TestFindIDA_NoPath(t *testing.T) {
	d := gridFromRows([]string{
		"# #",
		"###",
		"# #",
	})
	path := FindIDA(d, grid.Position{0, 0}, grid.Position{2, 0})
	assert.Empty(t, path)
}

func TestARAIteration_ConvergesToAstarCost(t *testing.T) {
	d := gridFromRows([]string{
		"     ",
		" ### ",
		"     ",
	})
	from := grid.Position{0, 1}
	to := grid.Position{4, 1}

	s := NewARAState()
	eps := ARAStartEpsilon
	var last []grid.Position
	for {
		path := ARAIteration(s, d, from, to, eps)
		if path != nil {
			last = path
		}
		if eps <= ARAFloorEpsilon {
			break
		}
		eps -= ARAEpsilonStep
		if eps < ARAFloorEpsilon {
			eps = ARAFloorEpsilon
		}
	}

	require.NotEmpty(t, last)
	assert.Equal(t, from, last[0])
	assert.Equal(t, to, last[len(last)-1])

	astarPath := FindAstar(d, from, to, 1.0)
	assert.Equal(t, PathCost(d, astarPath), PathCost(d, last))
}

func TestARAState_ResetClearsVisited(t *testing.T) {
	d := grid.New(3, 3)
	s := NewARAState()
	ARAIteration(s, d, grid.Position{0, 0}, grid.Position{2, 2}, ARAStartEpsilon)
	assert.True(t, s.Visited(grid.Position{0, 0}))
	s.Reset()
	assert.False(t, s.Visited(grid.Position{0, 0}))
}
