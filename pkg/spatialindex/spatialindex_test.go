package spatialindex

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/osmparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const extractXML = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" lat="-7.7800" lon="110.3600"/>
  <node id="2" lat="-7.7800" lon="110.3610"/>
  <node id="3" lat="-7.7800" lon="110.3620"/>
  <node id="4" lat="-7.7500" lon="110.4000"/>
  <node id="5" lat="-7.7500" lon="110.4010"/>
  <way id="10">
    <nd ref="1"/>
    <nd ref="2"/>
    <nd ref="3"/>
    <tag k="highway" v="residential"/>
    <tag k="oneway" v="yes"/>
  </way>
  <way id="11">
    <nd ref="4"/>
    <nd ref="5"/>
    <tag k="highway" v="primary"/>
  </way>
  <way id="12">
    <nd ref="1"/>
    <nd ref="4"/>
    <tag k="highway" v="footway"/>
  </way>
  <way id="13">
    <nd ref="3"/>
    <nd ref="99"/>
    <tag k="highway" v="tertiary"/>
  </way>
</osm>`

func writeExtract(t *testing.T, name string, compress bool) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	if !compress {
		_, err = f.WriteString(extractXML)
		require.NoError(t, err)
		return path
	}

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	require.NoError(t, err)
	_, err = bz.Write([]byte(extractXML))
	require.NoError(t, err)
	require.NoError(t, bz.Close())
	return path
}

func TestLoadExtract(t *testing.T) {
	testCases := []struct {
		name     string
		file     string
		compress bool
	}{
		{name: "osm xml", file: "map.osm", compress: false},
		{name: "bzip2 osm xml", file: "map.osm.bz2", compress: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			wi := NewWayIndex(zap.NewNop())
			require.NoError(t, wi.LoadExtract(context.Background(), writeExtract(t, tt.file, tt.compress)))

			// footway is not routable, way 13 references a node outside the extract
			assert.Equal(t, 2, wi.Len())

			ways, err := wi.FetchWays(context.Background(), geo.NewCircle(geo.NewCoordinate(-7.78, 110.361), 500))
			require.NoError(t, err)
			require.Len(t, ways, 1)
			assert.Equal(t, int64(10), ways[0].ID)
			assert.Equal(t, []int64{1, 2, 3}, ways[0].Nodes)
			assert.True(t, ways[0].IsOneWay())
		})
	}
}

func TestLoadExtractMissingFile(t *testing.T) {
	wi := NewWayIndex(zap.NewNop())
	assert.Error(t, wi.LoadExtract(context.Background(), filepath.Join(t.TempDir(), "missing.osm.pbf")))
}

func TestFetchWays(t *testing.T) {
	wi := NewWayIndex(zap.NewNop())
	wi.Insert(osmparser.NewWay(1, []int64{1, 2}, []geo.Coordinate{geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.01)}, nil))
	wi.Insert(osmparser.NewWay(2, []int64{3, 4}, []geo.Coordinate{geo.NewCoordinate(0.02, 0), geo.NewCoordinate(0.02, 0.01)}, nil))
	// long diagonal way: its box covers the query point but no vertex is near it
	wi.Insert(osmparser.NewWay(3, []int64{5, 6}, []geo.Coordinate{geo.NewCoordinate(-0.5, -0.5), geo.NewCoordinate(0.5, 0.5)}, nil))
	wi.Insert(osmparser.NewWay(4, nil, nil, nil))

	assert.Equal(t, 3, wi.Len())

	testCases := []struct {
		name   string
		region geo.Region
		want   []int64
	}{
		{
			name:   "circle around the first way",
			region: geo.NewCircle(geo.NewCoordinate(0, 0.005), 1000),
			want:   []int64{1},
		},
		{
			name:   "circle covering both short ways",
			region: geo.NewCircle(geo.NewCoordinate(0.01, 0.005), 2000),
			want:   []int64{1, 2},
		},
		{
			name:   "corridor",
			region: geo.GenerateRectangle(geo.NewCoordinate(0.02, -0.01), geo.NewCoordinate(0.02, 0.02), 500, 0),
			want:   []int64{2},
		},
		{
			name:   "nothing nearby",
			region: geo.NewCircle(geo.NewCoordinate(10, 10), 1000),
			want:   []int64{},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			ways, err := wi.FetchWays(context.Background(), tt.region)
			require.NoError(t, err)

			ids := make([]int64, 0, len(ways))
			for _, w := range ways {
				ids = append(ids, w.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	b := wi.Bound()
	assert.Equal(t, -0.5, b.Min.Lat())
	assert.Equal(t, 0.5, b.Max.Lon())
}
