package datastructure

import (
	"errors"
	"testing"

	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineNodes() []Node {
	return []Node{
		NewNode(1, geo.NewCoordinate(0, 0)),
		NewNode(2, geo.NewCoordinate(0, 1)),
		NewNode(3, geo.NewCoordinate(0, 2)),
	}
}

func TestBuildGraph(t *testing.T) {
	testCases := []struct {
		name      string
		edges     []Edge
		oneWay    []bool
		wantEdges map[[2]int64]bool
		numEdges  int
	}{
		{
			name:   "two-way edges get both directions",
			edges:  []Edge{NewEdge(1, 2, 10), NewEdge(2, 3, 20)},
			oneWay: []bool{false, false},
			wantEdges: map[[2]int64]bool{
				{1, 2}: true, {2, 1}: true, {2, 3}: true, {3, 2}: true,
			},
			numEdges: 4,
		},
		{
			name:   "one-way edges keep the forward direction only",
			edges:  []Edge{NewEdge(1, 2, 10), NewEdge(2, 3, 20)},
			oneWay: []bool{true, true},
			wantEdges: map[[2]int64]bool{
				{1, 2}: true, {2, 1}: false, {2, 3}: true, {3, 2}: false,
			},
			numEdges: 2,
		},
		{
			name:   "mixed",
			edges:  []Edge{NewEdge(1, 2, 10), NewEdge(2, 3, 20)},
			oneWay: []bool{true, false},
			wantEdges: map[[2]int64]bool{
				{1, 2}: true, {2, 1}: false, {2, 3}: true, {3, 2}: true,
			},
			numEdges: 3,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g, err := BuildGraph(lineNodes(), tt.edges, tt.oneWay)
			require.NoError(t, err)

			assert.Equal(t, 3, g.NumberOfVertices())
			assert.Equal(t, tt.numEdges, g.NumberOfEdges())

			weights := map[[2]int64]float64{{1, 2}: 10, {2, 1}: 10, {2, 3}: 20, {3, 2}: 20}
			for uv, want := range tt.wantEdges {
				assert.Equal(t, want, g.HasEdge(uv[0], uv[1], weights[uv]), "edge %d -> %d", uv[0], uv[1])
			}
		})
	}
}

func TestBuildGraphKeepsIsolatedNodes(t *testing.T) {
	nodes := append(lineNodes(), NewNode(99, geo.NewCoordinate(5, 5)))

	g, err := BuildGraph(nodes, []Edge{NewEdge(1, 2, 1)}, []bool{false})
	require.NoError(t, err)

	assert.True(t, g.HasVertex(99))
	assert.Equal(t, 0, g.GetOutDegree(99))
	assert.Equal(t, []int64{1, 2, 3, 99}, g.GetVertices())
}

func TestBuildGraphInvalidInput(t *testing.T) {
	testCases := []struct {
		name   string
		edges  []Edge
		oneWay []bool
	}{
		{
			name:   "unregistered to node",
			edges:  []Edge{NewEdge(1, 2, 1), NewEdge(2, 42, 1)},
			oneWay: []bool{false, false},
		},
		{
			name:   "unregistered from node",
			edges:  []Edge{NewEdge(42, 1, 1)},
			oneWay: []bool{true},
		},
		{
			name:   "flag count mismatch",
			edges:  []Edge{NewEdge(1, 2, 1), NewEdge(2, 3, 1)},
			oneWay: []bool{false},
		},
		{
			name:   "negative weight",
			edges:  []Edge{NewEdge(1, 2, -1)},
			oneWay: []bool{false},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g, err := BuildGraph(lineNodes(), tt.edges, tt.oneWay)
			require.Error(t, err)
			assert.Nil(t, g)
			assert.True(t, errors.Is(err, util.ErrInvalidInput))
		})
	}
}

func TestGraphAddEdgeUnregistered(t *testing.T) {
	g := NewGraph()
	g.AddNode(1)

	err := g.AddEdge(1, 2, 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrInvalidInput))
	assert.False(t, g.HasVertex(2), "edge insertion must not create nodes")
	assert.Equal(t, 0, g.NumberOfEdges())
}

func TestPathResult(t *testing.T) {
	unreachable := NewUnreachablePathResult()
	assert.False(t, unreachable.Found())
	assert.Empty(t, unreachable.GetPath())

	p := NewPathResult([]int64{7}, []geo.Coordinate{geo.NewCoordinate(1, 1)}, 0)
	assert.True(t, p.Found())
	assert.Equal(t, []int64{7}, p.GetNodePath())

	// returned slices are copies
	path := p.GetPath()
	path[0] = geo.NewCoordinate(9, 9)
	assert.Equal(t, geo.NewCoordinate(1, 1), p.GetPath()[0])
}
