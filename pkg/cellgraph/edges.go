// Package cellgraph derives adjacency structure from lattice leaves by way
// of shared unit-length boundary segments at the finest lattice resolution.
package cellgraph

import "meshpart/pkg/lattice"

// EdgeKey identifies one unit-length boundary segment on the integer
// lattice. For a horizontal segment from (Run, Fixed) to (Run+1, Fixed),
// Vertical is false; for a vertical segment from (Fixed, Run) to
// (Fixed, Run+1), Vertical is true.
type EdgeKey struct {
	Vertical bool
	Fixed    int32
	Run      int32
}

// Endpoints returns the lattice coordinates of the segment's two endpoints.
func (k EdgeKey) Endpoints() (x0, y0, x1, y1 int32) {
	if k.Vertical {
		return k.Fixed, k.Run, k.Fixed, k.Run + 1
	}
	return k.Run, k.Fixed, k.Run + 1, k.Fixed
}

// EdgeMap maps each unit segment to the ids of the leaves whose boundary
// contains it. One owner means a domain (or component) boundary segment;
// two owners means a shared interior segment.
type EdgeMap map[EdgeKey][]int32

// VisitCellEdges calls fn for every unit segment on the boundary of c,
// sides in bottom, top, left, right order. A cell of size s contributes 4s
// segments, so total work over a leaf set is proportional to total leaf
// perimeter at finest resolution, not leaf count; callers working on large
// domains should size root cells and depth with that in mind.
func VisitCellEdges(c lattice.Cell, fn func(EdgeKey)) {
	for x := c.I; x < c.I+c.Size; x++ {
		fn(EdgeKey{Vertical: false, Fixed: c.J, Run: x})
		fn(EdgeKey{Vertical: false, Fixed: c.J + c.Size, Run: x})
	}
	for y := c.J; y < c.J+c.Size; y++ {
		fn(EdgeKey{Vertical: true, Fixed: c.I, Run: y})
		fn(EdgeKey{Vertical: true, Fixed: c.I + c.Size, Run: y})
	}
}

// BuildEdgeMap enumerates the unit boundary segments of every cell and
// records ownership. Cell ids are indices into cells.
func BuildEdgeMap(cells []lattice.Cell) EdgeMap {
	edges := make(EdgeMap, 4*len(cells))
	for id, c := range cells {
		cid := int32(id)
		VisitCellEdges(c, func(k EdgeKey) {
			edges[k] = append(edges[k], cid)
		})
	}
	return edges
}
