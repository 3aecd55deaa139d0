package partition

import (
	"errors"
	"reflect"
	"testing"

	"meshpart/pkg/cellgraph"
	"meshpart/pkg/lattice"
)

// gridGraph builds unit cells in an n x n block with their adjacency.
func gridGraph(n int) ([]lattice.Cell, [][]int32) {
	var cells []lattice.Cell
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			cells = append(cells, lattice.Cell{I: int32(i), J: int32(j), Size: 1})
		}
	}
	return cells, cellgraph.Adjacency(len(cells), cellgraph.BuildEdgeMap(cells))
}

func uniformWeights(n int) []int32 {
	w := make([]int32, n)
	for i := range w {
		w[i] = 10
	}
	return w
}

func TestBisectionErrors(t *testing.T) {
	_, adj := gridGraph(2)

	if _, err := (Bisection{}).Solve(adj, uniformWeights(4), 0); !errors.Is(err, ErrBadPartCount) {
		t.Errorf("k=0 error = %v, want ErrBadPartCount", err)
	}
	if _, err := (Bisection{}).Solve(adj, uniformWeights(4), 5); !errors.Is(err, ErrTooFewCells) {
		t.Errorf("n<k error = %v, want ErrTooFewCells", err)
	}
}

func TestBisectionSinglePartition(t *testing.T) {
	_, adj := gridGraph(3)
	labels, err := (Bisection{}).Solve(adj, uniformWeights(9), 1)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	for i, lab := range labels {
		if lab != 0 {
			t.Errorf("labels[%d] = %d, want 0", i, lab)
		}
	}
}

func TestBisectionLabelCoverage(t *testing.T) {
	_, adj := gridGraph(5)
	k := 3
	labels, err := (Bisection{}).Solve(adj, uniformWeights(25), k)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(labels) != 25 {
		t.Fatalf("labels = %d, want 25", len(labels))
	}

	seen := make([]bool, k)
	for i, lab := range labels {
		if lab < 0 || int(lab) >= k {
			t.Fatalf("labels[%d] = %d, outside [0,%d)", i, lab, k)
		}
		seen[lab] = true
	}
	for p, s := range seen {
		if !s {
			t.Errorf("partition %d received no vertices", p)
		}
	}
}

func TestBisectionBalanceUniformGrid(t *testing.T) {
	_, adj := gridGraph(8)
	k := 4
	labels, err := (Bisection{}).Solve(adj, uniformWeights(64), k)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	counts := make([]int, k)
	for _, lab := range labels {
		counts[lab]++
	}
	// 64 uniform vertices over 4 parts: 16 each, within 20%.
	for p, c := range counts {
		if c < 13 || c > 19 {
			t.Errorf("partition %d has %d vertices, want 16 +/- 20%%", p, c)
		}
	}
}

func TestBisectionWeightedBalance(t *testing.T) {
	_, adj := gridGraph(4)
	// Left half heavy: columns 0-1 weigh 30, columns 2-3 weigh 10.
	weights := make([]int32, 16)
	var total int64
	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			w := int32(10)
			if i < 2 {
				w = 30
			}
			weights[j*4+i] = w
			total += int64(w)
		}
	}

	labels, err := (Bisection{}).Solve(adj, weights, 2)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	sums := make([]int64, 2)
	for v, lab := range labels {
		sums[lab] += int64(weights[v])
	}
	for p, s := range sums {
		if s < total/4 || s > 3*total/4 {
			t.Errorf("partition %d weight = %d of %d, badly unbalanced", p, s, total)
		}
	}
}

func TestBisectionDeterministic(t *testing.T) {
	_, adj := gridGraph(6)
	a, err := (Bisection{}).Solve(adj, uniformWeights(36), 4)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	b, err := (Bisection{}).Solve(adj, uniformWeights(36), 4)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("repeated solves produced different labels")
	}
}

func TestBisectionDisconnectedGraph(t *testing.T) {
	// Two 2x2 islands with no edges between them.
	cells := []lattice.Cell{
		{I: 0, J: 0, Size: 1}, {I: 1, J: 0, Size: 1},
		{I: 0, J: 1, Size: 1}, {I: 1, J: 1, Size: 1},
		{I: 10, J: 0, Size: 1}, {I: 11, J: 0, Size: 1},
		{I: 10, J: 1, Size: 1}, {I: 11, J: 1, Size: 1},
	}
	adj := cellgraph.Adjacency(len(cells), cellgraph.BuildEdgeMap(cells))

	labels, err := (Bisection{}).Solve(adj, uniformWeights(8), 2)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	counts := make(map[int32]int)
	for _, lab := range labels {
		counts[lab]++
	}
	if counts[0] != 4 || counts[1] != 4 {
		t.Errorf("island split = %v, want 4/4", counts)
	}
}
