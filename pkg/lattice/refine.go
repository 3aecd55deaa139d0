package lattice

import (
	"fmt"

	"github.com/paulmach/orb"
)

// ObstacleIndex answers box-intersection queries against the obstacle set.
// An intersection test that touches only a box edge, or a box degenerate to
// a point or line, still counts as intersecting.
type ObstacleIndex interface {
	Intersects(b orb.Bound) (bool, error)
}

// Refinement holds the two disjoint leaf arenas produced by Refine. Together
// the free and blocked leaves tile the domain exactly, with no gaps or
// overlaps. A leaf id is its index in the owning slice.
type Refinement struct {
	Free    []Cell
	Blocked []Cell
}

// Refine runs a depth-bounded quadtree over the lattice using an explicit
// work stack. Each cell is classified against the obstacle index:
//
//   - no intersection: emitted as a free leaf
//   - intersection at max depth, or with world size at or below minWorld:
//     emitted as a blocked leaf
//   - otherwise: split into four half-size children and pushed back
//
// Termination is guaranteed by the depth bound and the size floor. Stack
// order affects only the order leaves are appended, never the resulting
// leaf set.
func Refine(l *Lattice, index ObstacleIndex, minWorld float64) (*Refinement, error) {
	stack := make([]Cell, 0, l.NX*l.NY)
	for i := 0; i < l.NX; i++ {
		for j := 0; j < l.NY; j++ {
			stack = append(stack, Cell{
				I:    int32(i) * l.Scale,
				J:    int32(j) * l.Scale,
				Size: l.Scale,
			})
		}
	}

	ref := &Refinement{}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		hit, err := index.Intersects(l.CellBound(c))
		if err != nil {
			return nil, fmt.Errorf("classify cell (%d,%d) size %d: %w", c.I, c.J, c.Size, err)
		}

		if !hit {
			ref.Free = append(ref.Free, c)
			continue
		}

		s := float64(c.Size)
		tooSmall := s*l.DX <= minWorld || s*l.DY <= minWorld
		if int(c.Depth) >= l.MaxDepth || tooSmall {
			ref.Blocked = append(ref.Blocked, c)
			continue
		}

		half := c.Size / 2
		depth := c.Depth + 1
		stack = append(stack,
			Cell{I: c.I, J: c.J, Size: half, Depth: depth},
			Cell{I: c.I + half, J: c.J, Size: half, Depth: depth},
			Cell{I: c.I, J: c.J + half, Size: half, Depth: depth},
			Cell{I: c.I + half, J: c.J + half, Size: half, Depth: depth},
		)
	}
	return ref, nil
}
