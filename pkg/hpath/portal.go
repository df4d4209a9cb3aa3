// Package hpath implements hierarchical pathfinding: a precomputed portal
// graph over fixed-size super-tiles, and a two-level A* query on top of it
// (intra-tile grid A*, inter-tile portal A*).
package hpath

import (
	"github.com/Faultbox/dungeonkernel/pkg/grid"
	"github.com/Faultbox/dungeonkernel/pkg/pathfind"
)

// DefaultSuperTileSize is the default super-tile edge length S.
const DefaultSuperTileSize = 10

// PortalEdge is a weighted edge to another portal reachable within the same
// super-tile.
type PortalEdge struct {
	Other    int // index into Portals.List
	Distance int // in-tile path distance
}

// Portal is a maximal run of mutually-adjacent floor cells straddling two
// neighboring super-tiles: an axis-aligned interval [startX..endX] x
// [startY..endY] where one dimension degenerates to a single value. The
// stored coordinates are the TileA-side cells; Vertical says which axis
// degenerates, so the TileB-side cells (one step across the boundary) can
// be derived without storing them twice.
type Portal struct {
	StartX, StartY int
	EndX, EndY     int
	Vertical       bool // true: degenerates in X (boundary runs along Y); false: along X
	TileA, TileB   int  // super-tile indices this portal connects
	Edges          []PortalEdge
}

// Equal compares portals by coordinates only, ignoring Edges. This is
// intentional: portal identity is positional, per spec.md §9.
func (p Portal) Equal(o Portal) bool {
	return p.StartX == o.StartX && p.StartY == o.StartY &&
		p.EndX == o.EndX && p.EndY == o.EndY
}

// Cells returns the TileA-side cells of this portal's interval.
func (p Portal) Cells() []grid.Position {
	return p.CellsForTile(p.TileA)
}

// CellsForTile returns the portal's interval cells as seen from the given
// touching super-tile: the stored coordinates for TileA, or the coordinates
// one step across the boundary for TileB.
func (p Portal) CellsForTile(tileID int) []grid.Position {
	shiftX, shiftY := 0, 0
	if tileID == p.TileB {
		if p.Vertical {
			shiftX = 1
		} else {
			shiftY = 1
		}
	}

	var cells []grid.Position
	if p.Vertical {
		for y := p.StartY; y <= p.EndY; y++ {
			cells = append(cells, grid.Position{X: p.StartX + shiftX, Y: y})
		}
	} else {
		for x := p.StartX; x <= p.EndX; x++ {
			cells = append(cells, grid.Position{X: x, Y: p.StartY + shiftY})
		}
	}
	return cells
}

// Portals is the complete precomputed portal graph for a grid.
type Portals struct {
	List         []Portal
	SuperSize    int
	tilesWide    int
	tilesHigh    int
	byTile       map[int][]int // super-tile index -> portal indices touching it
}

// superTileIndex returns the super-tile index containing grid cell (x,y).
func (ps *Portals) superTileIndex(x, y int) int {
	tx := x / ps.SuperSize
	ty := y / ps.SuperSize
	return ty*ps.tilesWide + tx
}

// PrebuildPortals partitions the grid into S*S super-tiles, discovers every
// portal along interior super-tile boundaries, and precomputes in-tile
// distances between every pair of portals sharing a super-tile.
func PrebuildPortals(d *grid.DungeonData, superSize int) *Portals {
	if superSize <= 0 {
		superSize = DefaultSuperTileSize
	}
	tilesWide := ceilDiv(d.Width, superSize)
	tilesHigh := ceilDiv(d.Height, superSize)

	ps := &Portals{
		SuperSize: superSize,
		tilesWide: tilesWide,
		tilesHigh: tilesHigh,
		byTile:    make(map[int][]int),
	}

	discoverVerticalPortals(d, ps, superSize, tilesWide)
	discoverHorizontalPortals(d, ps, superSize, tilesHigh)

	for i := range ps.List {
		ps.byTile[ps.List[i].TileA] = append(ps.byTile[ps.List[i].TileA], i)
		ps.byTile[ps.List[i].TileB] = append(ps.byTile[ps.List[i].TileB], i)
	}

	computeIntraTileEdges(d, ps)

	return ps
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// discoverVerticalPortals scans interior vertical super-tile boundaries
// (shared edges between horizontally-adjacent super-tiles). Each boundary
// is scanned one super-tile row at a time — never across a horizontal
// super-tile seam — matching the original source's `check_border`, which
// is called once per (super-tile-x, super-tile-y) pair and only ever walks
// `splitTiles` cells of a single super-tile's edge. A floor run that spans
// two super-tile rows therefore yields two portals, one per row, instead
// of one portal whose TileA/TileB are wrong for the second row.
func discoverVerticalPortals(d *grid.DungeonData, ps *Portals, superSize, tilesWide int) {
	for tx := 0; tx < tilesWide-1; tx++ {
		boundaryX := (tx+1)*superSize - 1
		if boundaryX+1 >= d.Width {
			continue
		}
		for ty := 0; ty < ps.tilesHigh; ty++ {
			yStart := ty * superSize
			yEnd := yStart + superSize - 1
			if yEnd >= d.Height {
				yEnd = d.Height - 1
			}
			leftTile := ps.superTileIndex(boundaryX, yStart)
			rightTile := ps.superTileIndex(boundaryX+1, yStart)

			runStart := -1
			for y := yStart; y <= yEnd; y++ {
				ok := d.IsFloor(boundaryX, y) && d.IsFloor(boundaryX+1, y)
				if ok && runStart == -1 {
					runStart = y
				}
				if (!ok || y == yEnd) && runStart != -1 {
					endY := y
					if !ok {
						endY = y - 1
					}
					ps.List = append(ps.List, Portal{
						StartX: boundaryX, EndX: boundaryX,
						StartY: runStart, EndY: endY,
						Vertical: true,
						TileA:    leftTile, TileB: rightTile,
					})
					runStart = -1
				}
			}
		}
	}
}

// discoverHorizontalPortals scans interior horizontal super-tile boundaries
// (shared edges between vertically-adjacent super-tiles), one super-tile
// column at a time for the same reason discoverVerticalPortals segments by
// row: a run must never cross a vertical super-tile seam.
func discoverHorizontalPortals(d *grid.DungeonData, ps *Portals, superSize, tilesHigh int) {
	for ty := 0; ty < tilesHigh-1; ty++ {
		boundaryY := (ty+1)*superSize - 1
		if boundaryY+1 >= d.Height {
			continue
		}
		for tx := 0; tx < ps.tilesWide; tx++ {
			xStart := tx * superSize
			xEnd := xStart + superSize - 1
			if xEnd >= d.Width {
				xEnd = d.Width - 1
			}
			topTile := ps.superTileIndex(xStart, boundaryY)
			botTile := ps.superTileIndex(xStart, boundaryY+1)

			runStart := -1
			for x := xStart; x <= xEnd; x++ {
				ok := d.IsFloor(x, boundaryY) && d.IsFloor(x, boundaryY+1)
				if ok && runStart == -1 {
					runStart = x
				}
				if (!ok || x == xEnd) && runStart != -1 {
					endX := x
					if !ok {
						endX = x - 1
					}
					ps.List = append(ps.List, Portal{
						StartX: runStart, EndX: endX,
						StartY: boundaryY, EndY: boundaryY,
						Vertical: false,
						TileA:    topTile, TileB: botTile,
					})
					runStart = -1
				}
			}
		}
	}
}

// computeIntraTileEdges finds, for every super-tile and every unordered
// pair of its portals, the shortest in-tile A* path between them and
// records it as a bidirectional weighted edge. Pairs with no connecting
// path are simply omitted (the portal graph is permitted to be
// disconnected).
func computeIntraTileEdges(d *grid.DungeonData, ps *Portals) {
	for tile, idxs := range ps.byTile {
		for i := 0; i < len(idxs); i++ {
			for j := i + 1; j < len(idxs); j++ {
				a, b := idxs[i], idxs[j]
				if a == b {
					continue
				}
				dist, ok := bestInTileDistance(d, ps, tile, ps.List[a], ps.List[b])
				if !ok {
					continue
				}
				ps.List[a].Edges = append(ps.List[a].Edges, PortalEdge{Other: b, Distance: dist})
				ps.List[b].Edges = append(ps.List[b].Edges, PortalEdge{Other: a, Distance: dist})
			}
		}
	}
}

// bestInTileDistance finds the shortest A* path from any cell of portal A
// to any cell of portal B, clipped to the given super-tile's rectangle.
func bestInTileDistance(d *grid.DungeonData, ps *Portals, tile int, a, b Portal) (int, bool) {
	clip := superTileRect(ps, tile, d)
	best := -1
	for _, sa := range a.CellsForTile(tile) {
		if !clip.contains(sa) {
			continue
		}
		for _, sb := range b.CellsForTile(tile) {
			if !clip.contains(sb) {
				continue
			}
			path := pathfind.FindAstar(clip.sub, localize(sa, clip), localize(sb, clip), 1.0)
			if len(path) == 0 {
				continue
			}
			length := len(path) - 1
			if best == -1 || length < best {
				best = length
			}
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

type rect struct {
	minX, minY, maxX, maxY int
	sub                    *grid.DungeonData
}

func (r rect) contains(p grid.Position) bool {
	return p.X >= r.minX && p.X <= r.maxX && p.Y >= r.minY && p.Y <= r.maxY
}

func localize(p grid.Position, r rect) grid.Position {
	return grid.Position{X: p.X - r.minX, Y: p.Y - r.minY}
}

// superTileRect builds a clipped sub-grid view of the given super-tile.
func superTileRect(ps *Portals, tile int, d *grid.DungeonData) rect {
	tx := tile % ps.tilesWide
	ty := tile / ps.tilesWide
	minX := tx * ps.SuperSize
	minY := ty * ps.SuperSize
	maxX := minX + ps.SuperSize - 1
	if maxX >= d.Width {
		maxX = d.Width - 1
	}
	maxY := minY + ps.SuperSize - 1
	if maxY >= d.Height {
		maxY = d.Height - 1
	}

	w := maxX - minX + 1
	h := maxY - minY + 1
	sub := grid.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sub.Set(x, y, d.At(minX+x, minY+y))
		}
	}
	return rect{minX: minX, minY: minY, maxX: maxX, maxY: maxY, sub: sub}
}

// PortalsOf returns the portal indices touching the super-tile containing
// (x,y).
func (ps *Portals) PortalsOf(x, y int) []int {
	return ps.byTile[ps.superTileIndex(x, y)]
}

// Reachable reports whether portal a can reach portal b through the
// precomputed edge graph (BFS over Edges). This is an additive convenience
// query (SPEC_FULL §13), cheap to call before an expensive two-level query.
func (ps *Portals) Reachable(a, b int) bool {
	if a == b {
		return true
	}
	visited := make(map[int]bool)
	queue := []int{a}
	visited[a] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range ps.List[cur].Edges {
			if e.Other == b {
				return true
			}
			if !visited[e.Other] {
				visited[e.Other] = true
				queue = append(queue, e.Other)
			}
		}
	}
	return false
}
