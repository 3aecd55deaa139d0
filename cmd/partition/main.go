package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"meshpart/pkg/footprint"
	"meshpart/pkg/pipeline"
)

func main() {
	input := flag.String("input", "", "Path to .osm.pbf file with building footprints")
	output := flag.String("output", "partitions.geojson", "Output GeoJSON file path")
	bounds := flag.String("bounds", "", "Domain rectangle x0,y0,x1,y1 (default: footprint bounds)")
	margin := flag.Float64("margin", 2.0, "Uniform margin around obstacle boxes")
	rootSize := flag.Float64("root-size", 200.0, "Target root cell size H")
	maxDepth := flag.Int("max-depth", 5, "Quadtree refinement depth D")
	minWorld := flag.Float64("min-world", 2.0, "Minimum world cell size W")
	k := flag.Int("k", 16, "Number of partitions")
	loadPenalty := flag.Float64("load-penalty", 0.0, "Hole assignment load penalty (>= 0)")
	leaves := flag.Bool("leaves", false, "Also export labeled leaf boxes")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: partition --input <file.osm.pbf> [--output partitions.geojson] [--k N] ...")
		os.Exit(1)
	}

	start := time.Now()

	log.Println("Opening OSM file...")
	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("Failed to open input file: %v", err)
	}
	defer f.Close()

	log.Println("Loading building footprints...")
	rings, err := footprint.Load(context.Background(), f)
	if err != nil {
		log.Fatalf("Failed to load footprints: %v", err)
	}

	cfg := pipeline.Config{
		Margin:      *margin,
		RootSize:    *rootSize,
		MaxDepth:    *maxDepth,
		MinWorld:    *minWorld,
		Parts:       *k,
		LoadPenalty: *loadPenalty,
	}

	if *bounds != "" {
		var x0, y0, x1, y1 float64
		if _, err := fmt.Sscanf(*bounds, "%f,%f,%f,%f", &x0, &y0, &x1, &y1); err != nil {
			log.Fatalf("Invalid bounds format (expected x0,y0,x1,y1): %v", err)
		}
		cfg.Bounds = orb.Bound{Min: orb.Point{x0, y0}, Max: orb.Point{x1, y1}}
		cfg.Obstacles = rings
	} else {
		cfg.Obstacles, cfg.Bounds = footprint.Normalize(rings)
		log.Printf("Normalized footprints; domain %.1f x %.1f",
			cfg.Bounds.Max[0]-cfg.Bounds.Min[0], cfg.Bounds.Max[1]-cfg.Bounds.Min[1])
	}

	log.Println("Running partition pipeline...")
	res, err := pipeline.Run(cfg)
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}
	if res.SkippedObstacles > 0 {
		log.Printf("Skipped %d malformed obstacle rings", res.SkippedObstacles)
	}

	fc := geojson.NewFeatureCollection()
	for p, polys := range res.Coverage {
		for _, ring := range polys {
			feat := geojson.NewFeature(orb.Polygon{ring})
			feat.Properties["partition"] = p
			fc.Append(feat)
		}
	}
	if *leaves {
		appendLeaves(fc, res, false)
		appendLeaves(fc, res, true)
	}

	data, err := json.Marshal(fc)
	if err != nil {
		log.Fatalf("Failed to encode GeoJSON: %v", err)
	}
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}

	log.Printf("Done in %s. %d free / %d blocked leaves, %d partitions, output: %s",
		time.Since(start).Round(time.Millisecond), len(res.Free), len(res.Blocked), *k, *output)
}

func appendLeaves(fc *geojson.FeatureCollection, res *pipeline.Result, blocked bool) {
	cells, labels, kind := res.Free, res.FreeLabels, "free"
	if blocked {
		cells, labels, kind = res.Blocked, res.BlockedLabels, "blocked"
	}
	for id, c := range cells {
		feat := geojson.NewFeature(res.Lattice.CellBound(c).ToPolygon())
		feat.Properties["partition"] = int(labels[id])
		feat.Properties["kind"] = kind
		fc.Append(feat)
	}
}
