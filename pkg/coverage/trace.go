package coverage

import (
	"github.com/paulmach/orb"

	"meshpart/pkg/cellgraph"
)

// Directions index the four axis-aligned half-edge orientations.
const (
	dirE = iota // +x
	dirN        // +y
	dirW        // -x
	dirS        // -y
)

var dirDelta = [4][2]int32{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

type vertexKey uint64

func vkey(x, y int32) vertexKey {
	return vertexKey(uint32(x))<<32 | vertexKey(uint32(y))
}

type halfEdge struct {
	x, y int32
	dir  uint8
}

// face is one simple region of the planar subdivision induced by the
// boundary segments. Ring vertices are in lattice coordinates,
// counterclockwise, closed (first == last). Rep is a point strictly inside
// the face: the center of the unit cell on the left of the first half-edge.
type face struct {
	Ring []orb.Point
	Rep  orb.Point
}

// traceFaces polygonizes the axis-aligned segment network into its bounded
// faces by half-edge walking: from each unvisited half-edge, repeatedly
// take the clockwise-most outgoing segment at each vertex. That traverses
// every bounded face exactly once counterclockwise with its interior on
// the left; the single unbounded face comes out clockwise and is dropped
// by its negative signed area. Collinear intermediate vertices are merged
// out of the rings.
func traceFaces(keys []cellgraph.EdgeKey) []face {
	// Outgoing-direction bitmask per lattice vertex.
	out := make(map[vertexKey]uint8, 2*len(keys))
	for _, key := range keys {
		x0, y0, x1, y1 := key.Endpoints()
		if key.Vertical {
			out[vkey(x0, y0)] |= 1 << dirN
			out[vkey(x1, y1)] |= 1 << dirS
		} else {
			out[vkey(x0, y0)] |= 1 << dirE
			out[vkey(x1, y1)] |= 1 << dirW
		}
	}

	visited := make(map[halfEdge]bool, 2*len(keys))
	var faces []face

	for _, key := range keys {
		x0, y0, x1, y1 := key.Endpoints()
		starts := [2]halfEdge{}
		if key.Vertical {
			starts[0] = halfEdge{x0, y0, dirN}
			starts[1] = halfEdge{x1, y1, dirS}
		} else {
			starts[0] = halfEdge{x0, y0, dirE}
			starts[1] = halfEdge{x1, y1, dirW}
		}
		for _, start := range starts {
			if visited[start] {
				continue
			}
			if f, ok := walk(start, out, visited); ok {
				faces = append(faces, f)
			}
		}
	}
	return faces
}

// walk follows one face loop starting at h. It returns false for the
// unbounded face and for degenerate zero-area loops.
func walk(h halfEdge, out map[vertexKey]uint8, visited map[halfEdge]bool) (face, bool) {
	var path []halfEdge
	cur := h
	for {
		visited[cur] = true
		path = append(path, cur)

		nx := cur.x + dirDelta[cur.dir][0]
		ny := cur.y + dirDelta[cur.dir][1]
		rev := (cur.dir + 2) % 4

		// Clockwise-most turn: first outgoing direction scanning clockwise
		// from the reversed arrival direction. A dead end falls back to the
		// U-turn.
		next := rev
		mask := out[vkey(nx, ny)]
		for _, off := range [3]uint8{3, 2, 1} {
			d := (rev + off) % 4
			if mask&(1<<d) != 0 {
				next = d
				break
			}
		}

		cur = halfEdge{nx, ny, next}
		if cur == h {
			break
		}
	}

	// Signed area via the shoelace sum over unit steps; negative or zero
	// means the unbounded face or a collapsed loop.
	var area2 int64
	for _, e := range path {
		nx := e.x + dirDelta[e.dir][0]
		ny := e.y + dirDelta[e.dir][1]
		area2 += int64(e.x)*int64(ny) - int64(nx)*int64(e.y)
	}
	if area2 <= 0 {
		return face{}, false
	}

	// Keep only turn vertices.
	ring := make([]orb.Point, 0, 8)
	for i, e := range path {
		prev := path[(i+len(path)-1)%len(path)]
		if prev.dir != e.dir {
			ring = append(ring, orb.Point{float64(e.x), float64(e.y)})
		}
	}
	ring = append(ring, ring[0])

	return face{Ring: ring, Rep: repPoint(h)}, true
}

// repPoint returns the center of the unit cell on the interior (left) side
// of a counterclockwise half-edge.
func repPoint(h halfEdge) orb.Point {
	x, y := float64(h.x), float64(h.y)
	switch h.dir {
	case dirE:
		return orb.Point{x + 0.5, y + 0.5}
	case dirN:
		return orb.Point{x - 0.5, y + 0.5}
	case dirW:
		return orb.Point{x - 0.5, y - 0.5}
	default: // dirS
		return orb.Point{x + 0.5, y - 0.5}
	}
}
