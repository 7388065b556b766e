package spatialindex

import (
	"context"
	"slices"

	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/osmparser"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"github.com/paulmach/orb"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

/*
WayIndex. road ways of an osm extract held in memory, with an r-tree over the bounding box of
every way. it answers the same FetchWays calls as the overpass client without network access.

read-only once loaded, FetchWays can be called from many goroutines.
*/
type WayIndex struct {
	tr    *rtree.RTreeG[int]
	ways  []osmparser.Way
	bound orb.Bound
	log   *zap.Logger
}

func NewWayIndex(log *zap.Logger) *WayIndex {
	var tr rtree.RTreeG[int]
	return &WayIndex{
		tr:    &tr,
		ways:  make([]osmparser.Way, 0),
		log:   log,
	}
}

func wayBound(way osmparser.Way) orb.Bound {
	b := orb.Bound{Min: orb.Point{way.Geometry[0].Lon, way.Geometry[0].Lat},
		Max: orb.Point{way.Geometry[0].Lon, way.Geometry[0].Lat}}
	for _, c := range way.Geometry[1:] {
		b = b.Extend(orb.Point{c.Lon, c.Lat})
	}
	return b
}

// Insert. adds a way to the index. ways without geometry are ignored.
func (wi *WayIndex) Insert(way osmparser.Way) {
	if len(way.Geometry) == 0 {
		return
	}
	b := wayBound(way)
	idx := len(wi.ways)
	wi.ways = append(wi.ways, way)
	wi.tr.Insert([2]float64{b.Min.Lon(), b.Min.Lat()}, [2]float64{b.Max.Lon(), b.Max.Lat()}, idx)

	if len(wi.ways) == 1 {
		wi.bound = b
	} else {
		wi.bound = wi.bound.Union(b)
	}
}

func (wi *WayIndex) Len() int {
	return len(wi.ways)
}

// Bound. box around every indexed way.
func (wi *WayIndex) Bound() orb.Bound {
	return wi.bound
}

// FetchWays. ways with at least one vertex inside region, in insertion order.
func (wi *WayIndex) FetchWays(ctx context.Context, region geo.Region) ([]osmparser.Way, error) {
	b := region.Bound()

	candidates := make([]int, 0, 64)
	wi.tr.Search([2]float64{b.Min.Lon(), b.Min.Lat()}, [2]float64{b.Max.Lon(), b.Max.Lat()},
		func(min, max [2]float64, idx int) bool {
			candidates = append(candidates, idx)
			return true
		})

	// rtree search order is not insertion order
	slices.Sort(candidates)

	ways := make([]osmparser.Way, 0, len(candidates))
	for i, idx := range candidates {
		if i%1024 == 0 && util.StopConcurrentOperation(ctx) {
			return nil, ctx.Err()
		}
		way := wi.ways[idx]
		for _, c := range way.Geometry {
			if region.Contains(c) {
				ways = append(ways, way)
				break
			}
		}
	}

	wi.log.Debug("ways fetched from extract index", zap.Int("candidates", len(candidates)),
		zap.Int("ways", len(ways)))
	return ways, nil
}
