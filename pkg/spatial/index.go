// Package spatial provides an R-tree index over axis-aligned boxes, used
// both for the obstacle set during refinement and for leaf lookup during
// coverage labeling.
package spatial

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/tidwall/rtree"
)

// BoxIndex answers intersection, containment and nearest queries over a
// fixed set of boxes. Boxes keep the index they were inserted with, so
// callers can map results back to their own arrays. Degenerate boxes
// (zero width or height) are indexed like any other: intersection is
// inclusive of edges, so a touching query still matches.
type BoxIndex struct {
	tr    rtree.RTreeG[int]
	boxes []orb.Bound
}

// NewBoxIndex builds an index over the given boxes. Box i is reported as id i.
func NewBoxIndex(boxes []orb.Bound) *BoxIndex {
	x := &BoxIndex{boxes: boxes}
	for i, b := range boxes {
		x.tr.Insert(b.Min, b.Max, i)
	}
	return x
}

// Len returns the number of indexed boxes.
func (x *BoxIndex) Len() int { return len(x.boxes) }

// Box returns the box inserted with id i.
func (x *BoxIndex) Box(i int) orb.Bound { return x.boxes[i] }

// Intersects reports whether any indexed box intersects b. The error return
// satisfies lattice.ObstacleIndex; it is always nil for an in-memory index.
func (x *BoxIndex) Intersects(b orb.Bound) (bool, error) {
	hit := false
	x.tr.Search(b.Min, b.Max, func(min, max [2]float64, _ int) bool {
		hit = true
		return false
	})
	return hit, nil
}

// Query returns the ids of all boxes intersecting b, in ascending order.
func (x *BoxIndex) Query(b orb.Bound) []int {
	var ids []int
	x.tr.Search(b.Min, b.Max, func(min, max [2]float64, id int) bool {
		ids = append(ids, id)
		return true
	})
	sort.Ints(ids)
	return ids
}

// Covering returns the ids of all boxes containing p (edges inclusive),
// in ascending order.
func (x *BoxIndex) Covering(p orb.Point) []int {
	return x.Query(orb.Bound{Min: p, Max: p})
}

// Nearest returns the id of the box whose center is closest to p, or false
// if the index is empty. Ties resolve to the lowest id.
func (x *BoxIndex) Nearest(p orb.Point) (int, bool) {
	best := -1
	bestDist := 0.0
	x.tr.Nearby(
		rtree.BoxDist[float64, int](p, p, func(min, max [2]float64, id int) float64 {
			cx := (min[0] + max[0]) / 2
			cy := (min[1] + max[1]) / 2
			return (cx-p[0])*(cx-p[0]) + (cy-p[1])*(cy-p[1])
		}),
		func(min, max [2]float64, id int, dist float64) bool {
			if best < 0 || dist < bestDist || (dist == bestDist && id < best) {
				best = id
				bestDist = dist
			}
			// Centers can be farther than box edges, so keep scanning while
			// the frontier distance is still at or below the best center
			// distance seen.
			return best < 0 || dist <= bestDist
		},
	)
	if best < 0 {
		return 0, false
	}
	return best, true
}
