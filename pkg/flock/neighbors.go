package flock

import (
	"math"
	"slices"
)

// NeighborQuery finds the boids a given snapshot member can perceive.
// Implementations must be safe for concurrent use once built.
type NeighborQuery interface {
	Neighbors(self int) []*Boid
}

// Neighbors returns every boid of snapshot strictly closer than radius to
// snapshot[self], in snapshot order. self is excluded by index, so a second
// boid sitting on the very same spot is still a neighbor.
func Neighbors(self int, snapshot []Boid, radius float64) []*Boid {
	if radius <= 0 {
		return nil
	}
	radiusSq := radius * radius
	me := snapshot[self].Pos

	var found []*Boid
	for i := range snapshot {
		if i == self {
			continue
		}
		if me.DistanceSquaredTo(snapshot[i].Pos) < radiusSq {
			found = append(found, &snapshot[i])
		}
	}
	return found
}

// scan is the O(n) per boid NeighborQuery.
type scan struct {
	snapshot []Boid
	radius   float64
}

// NewScan returns the linear-scan NeighborQuery over snapshot.
func NewScan(snapshot []Boid, radius float64) NeighborQuery {
	return scan{snapshot: snapshot, radius: radius}
}

func (s scan) Neighbors(self int) []*Boid {
	return Neighbors(self, s.snapshot, s.radius)
}

type gridKey struct {
	x, y int
}

// Grid is a spatial hash over a snapshot. Cells are as wide as the perception
// radius, so the 3x3 block around a boid holds every candidate neighbor.
type Grid struct {
	snapshot []Boid
	radius   float64
	cellSize float64
	cells    map[gridKey][]int
}

// minCellSize keeps tiny radii from producing a huge number of cells.
const minCellSize = 10.0

// NewGrid buckets every boid of snapshot by cell.
func NewGrid(snapshot []Boid, radius float64) *Grid {
	g := &Grid{
		snapshot: snapshot,
		radius:   radius,
		cellSize: math.Max(radius, minCellSize),
		cells:    make(map[gridKey][]int),
	}
	for i := range snapshot {
		k := g.key(snapshot[i].Pos.X, snapshot[i].Pos.Y)
		g.cells[k] = append(g.cells[k], i)
	}
	return g
}

func (g *Grid) key(x, y float64) gridKey {
	return gridKey{
		x: int(math.Floor(x / g.cellSize)),
		y: int(math.Floor(y / g.cellSize)),
	}
}

// candidates returns the snapshot indices stored in the 3x3 block around (x, y).
func (g *Grid) candidates(x, y float64) []int {
	center := g.key(x, y)
	var idx []int
	for i := center.x - 1; i <= center.x+1; i++ {
		for j := center.y - 1; j <= center.y+1; j++ {
			idx = append(idx, g.cells[gridKey{x: i, y: j}]...)
		}
	}
	return idx
}

// Neighbors returns the same set, in the same order, as the linear scan.
// Candidates are sorted back into snapshot order because the steering sums
// are order sensitive in floating point.
func (g *Grid) Neighbors(self int) []*Boid {
	if g.radius <= 0 {
		return nil
	}
	radiusSq := g.radius * g.radius
	me := g.snapshot[self].Pos

	idx := g.candidates(me.X, me.Y)
	slices.Sort(idx)

	var found []*Boid
	for _, i := range idx {
		if i == self {
			continue
		}
		if me.DistanceSquaredTo(g.snapshot[i].Pos) < radiusSq {
			found = append(found, &g.snapshot[i])
		}
	}
	return found
}
