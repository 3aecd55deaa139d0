package coverage

import (
	"fmt"
	"log"

	"github.com/paulmach/orb"

	"meshpart/pkg/lattice"
	"meshpart/pkg/spatial"
)

// Build reconstructs, per partition, the hole-free polygon rings whose
// union is that partition's assigned lattice area. Boundary segments are
// retained where the domain ends or where two partitions meet, polygonized
// into simple faces, and each face is attributed by testing an interior
// representative point against an index of the original leaf boxes.
//
// A face whose representative point lands on no leaf (possible at
// degenerate polygonization vertices) falls back to the leaf with the
// nearest center, and to partition 0 if there are no leaves at all; both
// fallbacks are logged.
func Build(
	l *lattice.Lattice,
	free []lattice.Cell, freeLabels []int32,
	blocked []lattice.Cell, blockedLabels []int32,
	k int,
) ([][]orb.Ring, error) {
	if k <= 0 {
		return nil, fmt.Errorf("partition count %d, want > 0", k)
	}
	if len(freeLabels) != len(free) || len(blockedLabels) != len(blocked) {
		return nil, fmt.Errorf("label counts (%d free, %d blocked) do not match leaf counts (%d, %d)",
			len(freeLabels), len(blockedLabels), len(free), len(blocked))
	}

	keys := BoundaryEdges(free, freeLabels, blocked, blockedLabels)
	faces := traceFaces(keys)

	// Leaf boxes and labels in one combined arena for face attribution.
	// Boxes stay in lattice coordinates: the representative points are
	// exact unit-cell centers there, so containment tests are robust.
	boxes := make([]orb.Bound, 0, len(free)+len(blocked))
	labels := make([]int32, 0, len(free)+len(blocked))
	for id, c := range free {
		boxes = append(boxes, cellLatticeBound(c))
		labels = append(labels, freeLabels[id])
	}
	for id, c := range blocked {
		boxes = append(boxes, cellLatticeBound(c))
		labels = append(labels, blockedLabels[id])
	}
	index := spatial.NewBoxIndex(boxes)

	out := make([][]orb.Ring, k)
	for _, f := range faces {
		ring := make(orb.Ring, len(f.Ring))
		for i, p := range f.Ring {
			ring[i] = l.World(p)
		}

		label := int32(0)
		if hits := index.Covering(f.Rep); len(hits) > 0 {
			label = labels[hits[0]]
		} else if id, ok := index.Nearest(f.Rep); ok {
			label = labels[id]
			log.Printf("coverage: face at %v matched no leaf, using nearest leaf %d (partition %d)", f.Rep, id, label)
		} else {
			log.Printf("coverage: face at %v matched no leaf and no leaves exist, defaulting to partition 0", f.Rep)
		}
		out[label] = append(out[label], ring)
	}
	return out, nil
}

func cellLatticeBound(c lattice.Cell) orb.Bound {
	return orb.Bound{
		Min: orb.Point{float64(c.I), float64(c.J)},
		Max: orb.Point{float64(c.I + c.Size), float64(c.J + c.Size)},
	}
}
