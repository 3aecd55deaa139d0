package cellgraph

import "sort"

// Adjacency converts edge ownership into symmetric sorted neighbor lists
// for n cells: two cells are adjacent iff they share at least one unit
// segment. Map iteration order does not affect the result because each
// neighbor set is deduplicated and sorted before return.
func Adjacency(n int, edges EdgeMap) [][]int32 {
	sets := make([]map[int32]struct{}, n)
	for _, owners := range edges {
		if len(owners) < 2 {
			continue
		}
		for _, a := range owners {
			for _, b := range owners {
				if a == b {
					continue
				}
				if sets[a] == nil {
					sets[a] = make(map[int32]struct{})
				}
				sets[a][b] = struct{}{}
			}
		}
	}

	adj := make([][]int32, n)
	for i, set := range sets {
		if len(set) == 0 {
			continue
		}
		nbrs := make([]int32, 0, len(set))
		for v := range set {
			nbrs = append(nbrs, v)
		}
		sort.Slice(nbrs, func(x, y int) bool { return nbrs[x] < nbrs[y] })
		adj[i] = nbrs
	}
	return adj
}

// Components returns the connected components of the n-cell graph described
// by adj, discovered by breadth-first search from ascending cell ids. Each
// component lists its member ids in BFS order starting from the lowest id,
// and components are ordered by that lowest id, so the decomposition is
// deterministic for a given adjacency.
func Components(n int, adj [][]int32) [][]int32 {
	seen := make([]bool, n)
	var comps [][]int32

	for u := 0; u < n; u++ {
		if seen[u] {
			continue
		}
		queue := []int32{int32(u)}
		seen[u] = true
		for qi := 0; qi < len(queue); qi++ {
			v := queue[qi]
			for _, w := range adj[v] {
				if !seen[w] {
					seen[w] = true
					queue = append(queue, w)
				}
			}
		}
		comps = append(comps, queue)
	}
	return comps
}
