// Package partition labels lattice leaves with partition indices: free
// leaves through a balanced k-way graph solver, blocked leaves through
// boundary-contact assignment of whole connected components.
package partition

import (
	"errors"
	"math"

	"meshpart/pkg/lattice"
)

var (
	// ErrBadPartCount is returned when the requested partition count is not positive.
	ErrBadPartCount = errors.New("partition count must be positive")
	// ErrTooFewCells is returned when there are fewer cells than partitions.
	ErrTooFewCells = errors.New("fewer cells than partitions")
)

// Solver is the balanced k-way graph partitioning contract: given symmetric
// sorted neighbor lists, one positive weight per vertex and a partition
// count k, produce one label in [0,k) per vertex, minimizing edge cut
// subject to near-equal total weight per partition, best effort. A Solver
// is synchronous and side-effect free; failure is reported by error, never
// by returning partial or invalid labels.
type Solver interface {
	Solve(adj [][]int32, weights []int32, k int) ([]int32, error)
}

// Areas returns the world-space area of every cell.
func Areas(l *lattice.Lattice, cells []lattice.Cell) []float64 {
	areas := make([]float64, len(cells))
	for i, c := range cells {
		areas[i] = l.CellArea(c)
	}
	return areas
}

// SolverWeights converts cell areas into solver vertex weights: normalized
// to the mean area, scaled by ten, rounded, and clamped to [1,1000] so the
// solver sees a bounded positive-integer range regardless of how skewed the
// refinement is.
func SolverWeights(areas []float64) []int32 {
	var sum float64
	for _, a := range areas {
		sum += a
	}
	mean := sum / float64(len(areas))

	weights := make([]int32, len(areas))
	for i, a := range areas {
		w := int32(math.Round(a / mean * 10))
		if w < 1 {
			w = 1
		} else if w > 1000 {
			w = 1000
		}
		weights[i] = w
	}
	return weights
}
