package systems

import (
	"math"

	"github.com/pthm-cable/flocking/geom"
)

// SpatialGrid buckets creature indices into cells covering the torus.
// Cell dimensions divide the world exactly so neighborhoods wrap cleanly.
type SpatialGrid struct {
	cellW, cellH float64
	cols, rows   int
	cells        [][]int
}

// NewSpatialGrid creates a grid with cells no smaller than cellSize.
func NewSpatialGrid(b geom.Bounds, cellSize float64) *SpatialGrid {
	cols := max(int(b.Width/cellSize), 1)
	rows := max(int(b.Height/cellSize), 1)

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellW: b.Width / float64(cols),
		cellH: b.Height / float64(rows),
		cols:  cols,
		rows:  rows,
		cells: cells,
	}
}

// CellSize returns the exact cell dimensions used for bucketing.
func (g *SpatialGrid) CellSize() (w, h float64) {
	return g.cellW, g.cellH
}

// Insert adds index idx at position p.
func (g *SpatialGrid) Insert(idx int, p geom.Vec2) {
	col, row := g.cellOf(p)
	c := row*g.cols + col
	g.cells[c] = append(g.cells[c], idx)
}

// CandidatesInto appends every index stored in cells that could hold a point
// within radius of p, excluding exclude. Callers filter by exact distance.
func (g *SpatialGrid) CandidatesInto(dst []int, p geom.Vec2, radius float64, exclude int) []int {
	col, row := g.cellOf(p)
	cols := axisRange(col, cellSpan(radius, g.cellW, g.cols), g.cols)
	rows := axisRange(row, cellSpan(radius, g.cellH, g.rows), g.rows)

	for _, r := range rows {
		for _, c := range cols {
			for _, idx := range g.cells[r*g.cols+c] {
				if idx != exclude {
					dst = append(dst, idx)
				}
			}
		}
	}
	return dst
}

// cellSpan returns how many cells a radius reaches along an axis of n cells.
// The span is capped in float so huge radii cannot overflow int.
func cellSpan(radius, cell float64, n int) int {
	span := math.Ceil(radius/cell) + 1
	if !(span < float64(n)) {
		return n
	}
	return int(span)
}

// axisRange returns the wrapped cell indices within span of center,
// each at most once.
func axisRange(center, span, n int) []int {
	if 2*span+1 >= n {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	out := make([]int, 0, 2*span+1)
	for d := -span; d <= span; d++ {
		out = append(out, (center+d+n)%n)
	}
	return out
}

// cellOf returns the column and row for a world position.
func (g *SpatialGrid) cellOf(p geom.Vec2) (col, row int) {
	col = int(p.X / g.cellW)
	row = int(p.Y / g.cellH)

	// Clamp to valid range
	col = min(max(col, 0), g.cols-1)
	row = min(max(row, 0), g.rows-1)
	return col, row
}
