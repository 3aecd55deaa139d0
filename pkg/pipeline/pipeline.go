// Package pipeline wires the partitioning stages into a one-shot batch
// run: obstacle index → lattice refinement → adjacency → k-way solve →
// hole assignment → coverage reconstruction. The pipeline holds no state
// between runs; a stage failure aborts the run without propagating partial
// results downstream.
package pipeline

import (
	"fmt"
	"log"

	"github.com/paulmach/orb"

	"meshpart/pkg/cellgraph"
	"meshpart/pkg/coverage"
	"meshpart/pkg/footprint"
	"meshpart/pkg/lattice"
	"meshpart/pkg/partition"
	"meshpart/pkg/spatial"
)

// Config carries the full input of one partitioning run.
type Config struct {
	Bounds    orb.Bound  // domain rectangle, world coordinates
	Obstacles []orb.Ring // obstacle outlines; malformed rings are skipped
	Margin    float64    // uniform padding applied to obstacle boxes

	RootSize float64 // target root cell size H
	MaxDepth int     // quadtree depth bound D
	MinWorld float64 // minimum world cell size W (blocks further splits)

	Parts       int     // partition count k
	LoadPenalty float64 // ≥ 0; discourages piling holes onto heavy partitions

	// Solver labels the free-leaf graph. Nil selects partition.Bisection.
	// Solver failure aborts the run; there is deliberately no fallback to
	// naive labeling, because a silently unbalanced result is worse than an
	// error the caller can act on.
	Solver partition.Solver
}

// Result is the complete output of a run.
type Result struct {
	Lattice *lattice.Lattice

	Free          []lattice.Cell
	Blocked       []lattice.Cell
	FreeLabels    []int32
	BlockedLabels []int32

	// Coverage[p] lists the hole-free polygon rings of partition p, world
	// coordinates, counterclockwise, closed.
	Coverage [][]orb.Ring

	SkippedObstacles int
}

// Run executes the whole pipeline.
func Run(cfg Config) (*Result, error) {
	if cfg.Parts <= 0 {
		return nil, partition.ErrBadPartCount
	}
	if cfg.LoadPenalty < 0 {
		return nil, fmt.Errorf("load penalty %g, want >= 0", cfg.LoadPenalty)
	}

	obstacles, skipped := footprint.Validate(cfg.Obstacles)
	index := spatial.NewBoxIndex(footprint.Boxes(obstacles, cfg.Margin))

	lat, err := lattice.New(cfg.Bounds, cfg.RootSize, cfg.MaxDepth)
	if err != nil {
		return nil, fmt.Errorf("lattice: %w", err)
	}

	ref, err := lattice.Refine(lat, index, cfg.MinWorld)
	if err != nil {
		return nil, fmt.Errorf("refine: %w", err)
	}
	log.Printf("pipeline: refined to %d free, %d blocked leaves", len(ref.Free), len(ref.Blocked))

	freeEdges := cellgraph.BuildEdgeMap(ref.Free)
	freeAdj := cellgraph.Adjacency(len(ref.Free), freeEdges)

	freeAreas := partition.Areas(lat, ref.Free)
	solver := cfg.Solver
	if solver == nil {
		solver = partition.Bisection{}
	}
	freeLabels, err := solver.Solve(freeAdj, partition.SolverWeights(freeAreas), cfg.Parts)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	log.Printf("pipeline: partitioned %d free leaves into %d parts", len(ref.Free), cfg.Parts)

	blockedEdges := cellgraph.BuildEdgeMap(ref.Blocked)
	blockedAdj := cellgraph.Adjacency(len(ref.Blocked), blockedEdges)
	blockedLabels := partition.AssignHoles(
		lat, ref.Blocked, blockedAdj, freeEdges, freeLabels, freeAreas, cfg.Parts, cfg.LoadPenalty)

	cov, err := coverage.Build(lat, ref.Free, freeLabels, ref.Blocked, blockedLabels, cfg.Parts)
	if err != nil {
		return nil, fmt.Errorf("coverage: %w", err)
	}

	return &Result{
		Lattice:          lat,
		Free:             ref.Free,
		Blocked:          ref.Blocked,
		FreeLabels:       freeLabels,
		BlockedLabels:    blockedLabels,
		Coverage:         cov,
		SkippedObstacles: skipped,
	}, nil
}
