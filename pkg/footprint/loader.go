// Package footprint loads building footprint rings and reduces them to the
// obstacle boxes consumed by lattice refinement.
package footprint

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
)

// isBuilding returns true if the way carries a building footprint.
func isBuilding(tags osm.Tags) bool {
	b := tags.Find("building")
	return b != "" && b != "no"
}

// Load reads building footprints from an OSM PBF stream and returns one
// ring per closed building way, in file order. The reader is consumed
// twice (seeks back to start for the second pass), so it must implement
// io.ReadSeeker. Ways with unresolvable node references are skipped with
// a warning. Coordinates are passed through unprojected; callers wanting
// metric cell sizes should project the rings before refinement.
func Load(ctx context.Context, rs io.ReadSeeker) ([]orb.Ring, error) {
	// Pass 1: scan ways for closed building outlines, collecting the node
	// ids they reference.
	referenced := make(map[osm.NodeID]struct{})
	var ways [][]osm.NodeID

	scanner := osmpbf.New(ctx, rs, 1)
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		w, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		if !isBuilding(w.Tags) {
			continue
		}
		// A closed outline needs at least a triangle plus the closing node.
		if len(w.Nodes) < 4 || w.Nodes[0].ID != w.Nodes[len(w.Nodes)-1].ID {
			continue
		}

		nodeIDs := make([]osm.NodeID, len(w.Nodes))
		for i, wn := range w.Nodes {
			nodeIDs[i] = wn.ID
			referenced[wn.ID] = struct{}{}
		}
		ways = append(ways, nodeIDs)
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("pass 1 (ways): %w", err)
	}
	scanner.Close()

	log.Printf("footprint: pass 1 complete: %d building ways, %d referenced nodes", len(ways), len(referenced))

	// Pass 2: scan nodes to collect coordinates for referenced nodes only.
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek for pass 2: %w", err)
	}

	coords := make(map[osm.NodeID]orb.Point, len(referenced))

	scanner = osmpbf.New(ctx, rs, 1)
	scanner.SkipWays = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := referenced[n.ID]; !needed {
			continue
		}
		coords[n.ID] = orb.Point{n.Lon, n.Lat}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("pass 2 (nodes): %w", err)
	}
	scanner.Close()

	// Assemble rings.
	rings := make([]orb.Ring, 0, len(ways))
	var skipped int
	for _, nodeIDs := range ways {
		ring := make(orb.Ring, 0, len(nodeIDs))
		complete := true
		for _, id := range nodeIDs {
			p, ok := coords[id]
			if !ok {
				complete = false
				break
			}
			ring = append(ring, p)
		}
		if !complete {
			skipped++
			continue
		}
		rings = append(rings, ring)
	}
	if skipped > 0 {
		log.Printf("footprint: skipped %d ways with missing node coordinates", skipped)
	}
	log.Printf("footprint: loaded %d building rings", len(rings))
	return rings, nil
}
