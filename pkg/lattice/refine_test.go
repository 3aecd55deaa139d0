package lattice

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/paulmach/orb"
)

// boxes is a brute-force ObstacleIndex over a box list, edges inclusive.
type boxes []orb.Bound

func (bs boxes) Intersects(q orb.Bound) (bool, error) {
	for _, b := range bs {
		if b.Min[0] <= q.Max[0] && q.Min[0] <= b.Max[0] &&
			b.Min[1] <= q.Max[1] && q.Min[1] <= b.Max[1] {
			return true, nil
		}
	}
	return false, nil
}

type failingIndex struct{ err error }

func (f failingIndex) Intersects(orb.Bound) (bool, error) { return false, f.err }

func mustLattice(t *testing.T, bounds orb.Bound, rootSize float64, maxDepth int) *Lattice {
	t.Helper()
	l, err := New(bounds, rootSize, maxDepth)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l
}

func totalArea(l *Lattice, cells []Cell) float64 {
	var sum float64
	for _, c := range cells {
		sum += l.CellArea(c)
	}
	return sum
}

func TestRefineEmptyDomain(t *testing.T) {
	l := mustLattice(t, orb.Bound{Max: orb.Point{100, 100}}, 25, 3)

	ref, err := Refine(l, boxes(nil), 0)
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}

	if len(ref.Blocked) != 0 {
		t.Errorf("blocked leaves = %d, want 0", len(ref.Blocked))
	}
	if len(ref.Free) != 16 {
		t.Errorf("free leaves = %d, want 16 root cells", len(ref.Free))
	}
	for _, c := range ref.Free {
		if c.Depth != 0 {
			t.Errorf("free leaf %+v has depth %d, want 0", c, c.Depth)
		}
	}
}

func TestRefineCenterObstacle(t *testing.T) {
	l := mustLattice(t, orb.Bound{Max: orb.Point{100, 100}}, 50, 3)
	obs := boxes{{Min: orb.Point{40, 40}, Max: orb.Point{60, 60}}}

	ref, err := Refine(l, obs, 0)
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}

	// Tiling completeness: leaves cover the domain exactly.
	got := totalArea(l, ref.Free) + totalArea(l, ref.Blocked)
	if math.Abs(got-10000) > 1e-9 {
		t.Errorf("total leaf area = %g, want 10000", got)
	}

	// Depth bound.
	for _, c := range append(append([]Cell{}, ref.Free...), ref.Blocked...) {
		if int(c.Depth) > l.MaxDepth {
			t.Errorf("leaf %+v exceeds max depth %d", c, l.MaxDepth)
		}
	}

	// Classification soundness.
	for _, c := range ref.Free {
		if hit, _ := obs.Intersects(l.CellBound(c)); hit {
			t.Errorf("free leaf %+v intersects an obstacle", c)
		}
	}
	for _, c := range ref.Blocked {
		if hit, _ := obs.Intersects(l.CellBound(c)); !hit {
			t.Errorf("blocked leaf %+v intersects no obstacle", c)
		}
	}

	// The box spans lattice units [6.4, 9.6] on both axes, so the finest
	// cells 6..9 are blocked: a 4x4 patch of unit cells.
	if len(ref.Blocked) != 16 {
		t.Errorf("blocked leaves = %d, want 16", len(ref.Blocked))
	}
	if area := totalArea(l, ref.Blocked); math.Abs(area-625) > 1e-9 {
		t.Errorf("blocked area = %g, want 625", area)
	}
}

func TestRefineZeroAreaObstacle(t *testing.T) {
	l := mustLattice(t, orb.Bound{Max: orb.Point{100, 100}}, 50, 2)
	// A point obstacle still blocks every cell it touches.
	pt := orb.Point{50, 50}
	ref, err := Refine(l, boxes{{Min: pt, Max: pt}}, 0)
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}

	if len(ref.Blocked) == 0 {
		t.Fatal("point obstacle produced no blocked leaves")
	}
	for _, c := range ref.Blocked {
		b := l.CellBound(c)
		if pt[0] < b.Min[0] || pt[0] > b.Max[0] || pt[1] < b.Min[1] || pt[1] > b.Max[1] {
			t.Errorf("blocked leaf %+v does not touch the point obstacle", c)
		}
	}
}

func TestRefineMinWorldFloor(t *testing.T) {
	l := mustLattice(t, orb.Bound{Max: orb.Point{100, 100}}, 100, 4)
	obs := boxes{{Min: orb.Point{49, 49}, Max: orb.Point{51, 51}}}

	// Unit size is 6.25; a floor of 25 stops subdivision two levels early.
	ref, err := Refine(l, obs, 25)
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}
	for _, c := range ref.Blocked {
		if w := float64(c.Size) * l.DX; w < 25-1e-9 {
			t.Errorf("blocked leaf %+v has world size %g, below floor 25", c, w)
		}
	}
}

func TestRefineDeterministic(t *testing.T) {
	l := mustLattice(t, orb.Bound{Max: orb.Point{100, 100}}, 50, 3)
	obs := boxes{
		{Min: orb.Point{40, 40}, Max: orb.Point{60, 60}},
		{Min: orb.Point{10, 70}, Max: orb.Point{20, 90}},
	}

	a, err := Refine(l, obs, 0)
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}
	b, err := Refine(l, obs, 0)
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("repeated refinement produced different leaves")
	}
}

func TestRefineIndexFailureAborts(t *testing.T) {
	l := mustLattice(t, orb.Bound{Max: orb.Point{100, 100}}, 50, 3)

	boom := errors.New("index offline")
	_, err := Refine(l, failingIndex{err: boom}, 0)
	if !errors.Is(err, boom) {
		t.Fatalf("Refine error = %v, want wrapped %v", err, boom)
	}
}
