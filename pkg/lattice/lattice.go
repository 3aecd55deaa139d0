package lattice

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// ErrBadBounds is returned when the domain rectangle has no area.
var ErrBadBounds = errors.New("domain bounds have no area")

// Cell is one axis-aligned square of the refinement, addressed on the
// integer lattice. Size is the side length in lattice units and is always
// the root size divided by a power of two. Cells are value structs held in
// flat slices; a cell id is its index in the owning slice.
type Cell struct {
	I, J  int32 // lattice coordinates of the lower-left corner
	Size  int32 // side length in lattice units
	Depth uint8
}

// Lattice fixes the bijection between integer lattice coordinates and world
// coordinates. The finest resolution divides each root cell into Scale×Scale
// unit cells, so every cell corner of every refinement level has exact
// integer coordinates and no per-level floating point drift can accumulate.
type Lattice struct {
	Origin   orb.Point // world position of lattice (0,0)
	NX, NY   int       // root cell grid dimensions
	MaxDepth int
	Scale    int32   // 2^MaxDepth; root cell side length in lattice units
	DX, DY   float64 // world size of one lattice unit
}

// New computes the lattice for a domain rectangle, a target root cell size
// and a maximum refinement depth. Root cells are sized to divide the domain
// exactly, so rootSize is a target: the actual root size is the domain
// extent divided by ceil(extent/rootSize).
func New(bounds orb.Bound, rootSize float64, maxDepth int) (*Lattice, error) {
	lx := bounds.Max[0] - bounds.Min[0]
	ly := bounds.Max[1] - bounds.Min[1]
	if lx <= 0 || ly <= 0 {
		return nil, ErrBadBounds
	}
	if rootSize <= 0 {
		return nil, fmt.Errorf("root cell size %g, want > 0", rootSize)
	}
	if maxDepth < 0 || maxDepth > 30 {
		return nil, fmt.Errorf("max depth %d, want 0..30", maxDepth)
	}

	nx := int(math.Ceil(lx / rootSize))
	ny := int(math.Ceil(ly / rootSize))
	scale := int32(1) << maxDepth

	return &Lattice{
		Origin:   bounds.Min,
		NX:       nx,
		NY:       ny,
		MaxDepth: maxDepth,
		Scale:    scale,
		DX:       lx / float64(nx) / float64(scale),
		DY:       ly / float64(ny) / float64(scale),
	}, nil
}

// Bounds returns the world rectangle covered by the whole lattice.
func (l *Lattice) Bounds() orb.Bound {
	return orb.Bound{
		Min: l.Origin,
		Max: l.World(orb.Point{float64(int32(l.NX) * l.Scale), float64(int32(l.NY) * l.Scale)}),
	}
}

// World converts a point in lattice units to world coordinates.
func (l *Lattice) World(p orb.Point) orb.Point {
	return orb.Point{l.Origin[0] + p[0]*l.DX, l.Origin[1] + p[1]*l.DY}
}

// CellBound returns the world bounding box of a cell.
func (l *Lattice) CellBound(c Cell) orb.Bound {
	return orb.Bound{
		Min: l.World(orb.Point{float64(c.I), float64(c.J)}),
		Max: l.World(orb.Point{float64(c.I + c.Size), float64(c.J + c.Size)}),
	}
}

// CellCenter returns the world coordinates of a cell's center.
func (l *Lattice) CellCenter(c Cell) orb.Point {
	return l.World(orb.Point{float64(c.I) + float64(c.Size)/2, float64(c.J) + float64(c.Size)/2})
}

// CellArea returns the world-space area of a cell.
func (l *Lattice) CellArea(c Cell) float64 {
	s := float64(c.Size)
	return s * l.DX * s * l.DY
}
