package spatialindex

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/osmparser"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"go.uber.org/zap"
)

type scanner struct {
	osm.Scanner
	file *os.File
}

func (s *scanner) Close() error {
	s.Scanner.Close()
	return s.file.Close()
}

// openScanner. .osm.pbf through osmpbf, .osm.bz2 through bzip2 + osmxml, anything else as plain osm xml.
func openScanner(ctx context.Context, path string) (*scanner, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasSuffix(path, ".pbf"):
		sc := osmpbf.New(ctx, f, 1)
		sc.SkipRelations = true
		return &scanner{Scanner: sc, file: f}, nil
	case strings.HasSuffix(path, ".bz2"):
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &scanner{Scanner: osmxml.New(ctx, bz), file: f}, nil
	default:
		return &scanner{Scanner: osmxml.New(ctx, f), file: f}, nil
	}
}

/*
LoadExtract. reads the road ways of an osm extract into the index.

two passes, as nodes are only known to be needed once the ways are read: the first collects the
accepted highway ways and the node ids they reference, the second picks up the coordinates of
those nodes.
*/
func (wi *WayIndex) LoadExtract(ctx context.Context, path string) error {
	wi.log.Info("reading osm extract", zap.String("path", path))

	sc, err := openScanner(ctx, path)
	if err != nil {
		return fmt.Errorf("open osm extract %s: %w", path, err)
	}

	osmWays := make([]*osm.Way, 0)
	needed := make(map[osm.NodeID]geo.Coordinate)
	for sc.Scan() {
		way, ok := sc.Object().(*osm.Way)
		if !ok || !osmparser.AcceptOsmWay(way) {
			continue
		}
		osmWays = append(osmWays, way)
		for _, wn := range way.Nodes {
			needed[wn.ID] = geo.Coordinate{}
		}
		if len(osmWays)%50000 == 0 {
			wi.log.Sugar().Infof("reading openstreetmap ways: %d...", len(osmWays))
		}
	}
	if err := sc.Err(); err != nil {
		sc.Close()
		return fmt.Errorf("scan osm ways: %w", err)
	}
	sc.Close()

	sc, err = openScanner(ctx, path)
	if err != nil {
		return fmt.Errorf("open osm extract %s: %w", path, err)
	}
	defer sc.Close()

	coords := make(map[osm.NodeID]geo.Coordinate, len(needed))
	for sc.Scan() {
		node, ok := sc.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, want := needed[node.ID]; want {
			coords[node.ID] = geo.NewCoordinate(node.Lat, node.Lon)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("scan osm nodes: %w", err)
	}

	skipped := 0
	for _, osmWay := range osmWays {
		way, ok := osmparser.FromOsmWay(osmWay, coords)
		if !ok {
			// extracts clipped at the boundary keep ways whose nodes were cut off
			skipped++
			continue
		}
		wi.Insert(way)
	}

	wi.log.Info("osm extract indexed", zap.Int("ways", wi.Len()), zap.Int("nodes", len(coords)),
		zap.Int("skippedWays", skipped))
	return nil
}
