// Package coverage reconstructs hole-free polygonal regions per partition
// from the final labeled lattice.
package coverage

import (
	"sort"

	"meshpart/pkg/cellgraph"
	"meshpart/pkg/lattice"
)

type edgeInfo struct {
	count  int
	labels []int32 // distinct partition labels touching the segment
}

func (e *edgeInfo) add(label int32) {
	e.count++
	for _, l := range e.labels {
		if l == label {
			return
		}
	}
	e.labels = append(e.labels, label)
}

// BoundaryEdges recomputes unit-edge ownership over the combined leaf set,
// recording the distinct partition labels touching each segment, and
// returns the segments to keep as region boundaries: those owned by exactly
// one leaf (domain boundary) or touched by two or more labels (partition
// interface). The result is sorted so downstream tracing is deterministic.
func BoundaryEdges(free []lattice.Cell, freeLabels []int32, blocked []lattice.Cell, blockedLabels []int32) []cellgraph.EdgeKey {
	edges := make(map[cellgraph.EdgeKey]*edgeInfo, 4*(len(free)+len(blocked)))

	addCell := func(c lattice.Cell, label int32) {
		cellgraph.VisitCellEdges(c, func(key cellgraph.EdgeKey) {
			e := edges[key]
			if e == nil {
				e = &edgeInfo{}
				edges[key] = e
			}
			e.add(label)
		})
	}
	for id, c := range free {
		addCell(c, freeLabels[id])
	}
	for id, c := range blocked {
		addCell(c, blockedLabels[id])
	}

	keys := make([]cellgraph.EdgeKey, 0, len(edges))
	for key, e := range edges {
		if e.count == 1 || len(e.labels) >= 2 {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Vertical != b.Vertical {
			return !a.Vertical
		}
		if a.Fixed != b.Fixed {
			return a.Fixed < b.Fixed
		}
		return a.Run < b.Run
	})
	return keys
}
