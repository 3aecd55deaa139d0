package partition

import "fmt"

// Bisection is the default Solver: deterministic recursive bisection. Each
// level splits the vertex set in two by growing one side from a
// pseudo-peripheral seed via breadth-first search until it holds a k-share
// of the total weight, then recurses. It is a locality-respecting heuristic
// in the spirit of multilevel partitioners, not an optimal cut.
type Bisection struct{}

// Solve implements Solver. The output is fully determined by the input:
// seeds, growth order and splits all resolve ties by lowest vertex id.
func (Bisection) Solve(adj [][]int32, weights []int32, k int) ([]int32, error) {
	if k <= 0 {
		return nil, ErrBadPartCount
	}
	n := len(weights)
	if n < k {
		return nil, fmt.Errorf("%w: %d cells for %d partitions", ErrTooFewCells, n, k)
	}
	if len(adj) != n {
		return nil, fmt.Errorf("adjacency covers %d vertices, weights %d", len(adj), n)
	}

	verts := make([]int32, n)
	for i := range verts {
		verts[i] = int32(i)
	}
	labels := make([]int32, n)
	bisect(adj, weights, verts, 0, k, labels)
	return labels, nil
}

// bisect labels verts with base..base+k-1. verts is sorted ascending.
func bisect(adj [][]int32, weights []int32, verts []int32, base int32, k int, labels []int32) {
	if k == 1 {
		for _, v := range verts {
			labels[v] = base
		}
		return
	}

	k1 := k / 2
	k2 := k - k1

	inSet := make(map[int32]bool, len(verts))
	var total int64
	for _, v := range verts {
		inSet[v] = true
		total += int64(weights[v])
	}
	target := float64(total) * float64(k1) / float64(k)

	// Grow side A from a pseudo-peripheral vertex until it carries the
	// proportional weight share, leaving at least k2 vertices for side B.
	seed := peripheral(adj, verts, inSet)
	visited := make(map[int32]bool, len(verts))
	visited[seed] = true
	queue := []int32{seed}
	qi := 0

	sideA := make(map[int32]bool, len(verts)/2)
	var weightA float64

	for len(sideA) < len(verts)-k2 {
		if len(sideA) >= k1 && weightA >= target {
			break
		}
		var v int32
		if qi < len(queue) {
			v = queue[qi]
			qi++
		} else {
			// Disconnected remainder: restart from the lowest unvisited id.
			v = -1
			for _, u := range verts {
				if !visited[u] {
					v = u
					break
				}
			}
			if v < 0 {
				break
			}
			visited[v] = true
		}
		sideA[v] = true
		weightA += float64(weights[v])
		for _, w := range adj[v] {
			if inSet[w] && !visited[w] {
				visited[w] = true
				queue = append(queue, w)
			}
		}
	}

	vertsA := make([]int32, 0, len(sideA))
	vertsB := make([]int32, 0, len(verts)-len(sideA))
	for _, v := range verts {
		if sideA[v] {
			vertsA = append(vertsA, v)
		} else {
			vertsB = append(vertsB, v)
		}
	}

	bisect(adj, weights, vertsA, base, k1, labels)
	bisect(adj, weights, vertsB, base+int32(k1), k2, labels)
}

// peripheral returns an approximately peripheral vertex of the subgraph
// induced by verts: the last vertex reached by BFS from the lowest id.
// Growing a bisection side from the boundary inward keeps both sides
// compact instead of wrapping one around the other.
func peripheral(adj [][]int32, verts []int32, inSet map[int32]bool) int32 {
	start := verts[0]
	visited := map[int32]bool{start: true}
	queue := []int32{start}
	last := start
	for qi := 0; qi < len(queue); qi++ {
		last = queue[qi]
		for _, w := range adj[queue[qi]] {
			if inSet[w] && !visited[w] {
				visited[w] = true
				queue = append(queue, w)
			}
		}
	}
	return last
}
