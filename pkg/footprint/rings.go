package footprint

import (
	"log"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Validate filters out malformed obstacle rings: fewer than three distinct
// points, or zero enclosed area. Each rejected ring is logged; the count of
// rejects is returned alongside the survivors. Malformed input is a data
// problem, never a fatal one.
func Validate(rings []orb.Ring) (valid []orb.Ring, skipped int) {
	valid = make([]orb.Ring, 0, len(rings))
	for i, r := range rings {
		if distinctPoints(r) < 3 {
			log.Printf("footprint: skipping ring %d: fewer than 3 distinct points", i)
			skipped++
			continue
		}
		if math.Abs(planar.Area(r)) == 0 {
			log.Printf("footprint: skipping ring %d: zero area", i)
			skipped++
			continue
		}
		valid = append(valid, r)
	}
	return valid, skipped
}

func distinctPoints(r orb.Ring) int {
	seen := make(map[orb.Point]struct{}, len(r))
	for _, p := range r {
		seen[p] = struct{}{}
	}
	return len(seen)
}

// Normalize translates rings so the minimum footprint corner sits at the
// origin and returns the translated rings with their joint bounds.
func Normalize(rings []orb.Ring) ([]orb.Ring, orb.Bound) {
	if len(rings) == 0 {
		return nil, orb.Bound{}
	}

	min := orb.Point{math.Inf(1), math.Inf(1)}
	max := orb.Point{math.Inf(-1), math.Inf(-1)}
	for _, r := range rings {
		b := r.Bound()
		min[0] = math.Min(min[0], b.Min[0])
		min[1] = math.Min(min[1], b.Min[1])
		max[0] = math.Max(max[0], b.Max[0])
		max[1] = math.Max(max[1], b.Max[1])
	}

	out := make([]orb.Ring, len(rings))
	for i, r := range rings {
		shifted := make(orb.Ring, len(r))
		for j, p := range r {
			shifted[j] = orb.Point{p[0] - min[0], p[1] - min[1]}
		}
		out[i] = shifted
	}
	bounds := orb.Bound{Max: orb.Point{max[0] - min[0], max[1] - min[1]}}
	return out, bounds
}

// Boxes reduces rings to axis-aligned obstacle boxes, padded by a uniform
// margin on all four sides.
func Boxes(rings []orb.Ring, margin float64) []orb.Bound {
	boxes := make([]orb.Bound, len(rings))
	for i, r := range rings {
		b := r.Bound()
		boxes[i] = orb.Bound{
			Min: orb.Point{b.Min[0] - margin, b.Min[1] - margin},
			Max: orb.Point{b.Max[0] + margin, b.Max[1] + margin},
		}
	}
	return boxes
}
