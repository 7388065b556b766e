package datastructure

import (
	"github.com/lintang-b-s/osmroute/pkg/util"
)

/*
BuildGraph. registers every node (degree zero included), then for each edge i inserts the forward
entry and, unless oneWay[i], the reverse entry with the same weight.

oneWay must be as long as edges and every edge endpoint must be one of nodes. both are checked
before anything is inserted, a violation returns util.ErrInvalidInput and no graph.
*/
func BuildGraph(nodes []Node, edges []Edge, oneWay []bool) (*Graph, error) {
	if len(oneWay) != len(edges) {
		return nil, util.NewErrorf(util.ErrInvalidInput,
			"got %d one-way flags for %d edges", len(oneWay), len(edges))
	}

	known := make(map[int64]struct{}, len(nodes))
	for _, n := range nodes {
		known[n.ID] = struct{}{}
	}
	for i, e := range edges {
		if _, ok := known[e.From]; !ok {
			return nil, util.NewErrorf(util.ErrInvalidInput, "edge %d: from node %d is not registered", i, e.From)
		}
		if _, ok := known[e.To]; !ok {
			return nil, util.NewErrorf(util.ErrInvalidInput, "edge %d: to node %d is not registered", i, e.To)
		}
		if e.Weight < 0 {
			return nil, util.NewErrorf(util.ErrInvalidInput, "edge %d: negative weight %f", i, e.Weight)
		}
	}

	graph := NewGraphWithSize(len(nodes))
	for _, n := range nodes {
		graph.AddNode(n.ID)
	}

	for i, e := range edges {
		// endpoints were validated above
		_ = graph.AddEdge(e.From, e.To, e.Weight)
		if !oneWay[i] {
			_ = graph.AddEdge(e.To, e.From, e.Weight)
		}
	}

	return graph, nil
}
