package partition

import (
	"meshpart/pkg/cellgraph"
	"meshpart/pkg/lattice"
)

// AssignHoles labels every blocked leaf with a partition, keeping each
// connected blocked component on a single partition. Components are
// discovered by BFS in ascending leaf-id order and assigned greedily in
// that order: each goes to the partition with the largest boundary contact
// score, where contact is the total physical length of unit segments the
// component shares with that partition's free leaves. A positive
// loadPenalty subtracts loadPenalty·max(0, load[p]−target) from each
// score so heavily loaded partitions attract fewer holes; the running
// loads start from the free-leaf areas and grow by each assigned
// component's area. Full ties go to the lowest partition index.
//
// The result is order-dependent by construction (an online packing
// heuristic); the fixed discovery order makes it reproducible.
func AssignHoles(
	l *lattice.Lattice,
	blocked []lattice.Cell,
	blockedAdj [][]int32,
	freeEdges cellgraph.EdgeMap,
	freeLabels []int32,
	freeAreas []float64,
	k int,
	loadPenalty float64,
) []int32 {
	loads := make([]float64, k)
	var total float64
	for id, lab := range freeLabels {
		loads[lab] += freeAreas[id]
		total += freeAreas[id]
	}
	target := total / float64(k)

	// Unit segment -> labels of the free leaves owning it.
	edgeLabels := make(map[cellgraph.EdgeKey][]int32, len(freeEdges))
	for key, owners := range freeEdges {
		labs := make([]int32, len(owners))
		for i, cid := range owners {
			labs[i] = freeLabels[cid]
		}
		edgeLabels[key] = labs
	}

	labels := make([]int32, len(blocked))
	contact := make([]float64, k)

	for _, comp := range cellgraph.Components(len(blocked), blockedAdj) {
		for p := range contact {
			contact[p] = 0
		}
		var compArea float64

		for _, cid := range comp {
			c := blocked[cid]
			compArea += l.CellArea(c)
			cellgraph.VisitCellEdges(c, func(key cellgraph.EdgeKey) {
				labs, ok := edgeLabels[key]
				if !ok {
					return
				}
				length := l.DX
				if key.Vertical {
					length = l.DY
				}
				for _, lab := range labs {
					contact[lab] += length
				}
			})
		}

		best := 0
		bestScore := score(contact[0], loads[0], target, loadPenalty)
		for p := 1; p < k; p++ {
			if s := score(contact[p], loads[p], target, loadPenalty); s > bestScore {
				best = p
				bestScore = s
			}
		}

		for _, cid := range comp {
			labels[cid] = int32(best)
		}
		loads[best] += compArea
	}
	return labels
}

func score(contact, load, target, penalty float64) float64 {
	if penalty > 0 && load > target {
		return contact - penalty*(load-target)
	}
	return contact
}
