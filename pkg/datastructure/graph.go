package datastructure

import (
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/util"
)

type Node struct {
	ID    int64          `json:"id"`
	Coord geo.Coordinate `json:"coord"`
}

func NewNode(id int64, coord geo.Coordinate) Node {
	return Node{ID: id, Coord: coord}
}

// Edge. directed, weight is ground distance in meters.
type Edge struct {
	From   int64   `json:"from"`
	To     int64   `json:"to"`
	Weight float64 `json:"weight"`
}

func NewEdge(from, to int64, weight float64) Edge {
	return Edge{From: from, To: to, Weight: weight}
}

type OutEdge struct {
	to     int64
	weight float64
}

func (e OutEdge) GetHead() int64 {
	return e.to
}

func (e OutEdge) GetWeight() float64 {
	return e.weight
}

// CoordinateIndex. node id -> coordinate, used to turn node paths back into coordinates.
type CoordinateIndex map[int64]geo.Coordinate

/*
Graph. adjacency lists keyed by node id.

a graph belongs to the single query that built it and is append-only while it is being built:
nodes are registered first, and an edge can only be added between registered nodes.
vertices keeps registration order so iteration over the graph is deterministic.
*/
type Graph struct {
	adjacencyList map[int64][]OutEdge
	vertices      []int64
	numEdges      int
}

func NewGraph() *Graph {
	return &Graph{
		adjacencyList: make(map[int64][]OutEdge),
		vertices:      make([]int64, 0),
	}
}

func NewGraphWithSize(numV int) *Graph {
	return &Graph{
		adjacencyList: make(map[int64][]OutEdge, numV),
		vertices:      make([]int64, 0, numV),
	}
}

// AddNode. registers id, a no-op when it is already registered.
func (g *Graph) AddNode(id int64) {
	if _, ok := g.adjacencyList[id]; ok {
		return
	}
	g.adjacencyList[id] = make([]OutEdge, 0)
	g.vertices = append(g.vertices, id)
}

// AddEdge. appends the directed edge from -> to. both endpoints must be registered.
func (g *Graph) AddEdge(from, to int64, weight float64) error {
	if !g.HasVertex(from) || !g.HasVertex(to) {
		return util.NewErrorf(util.ErrInvalidInput, "edge %d -> %d references an unregistered node", from, to)
	}
	if weight < 0 {
		return util.NewErrorf(util.ErrInvalidInput, "edge %d -> %d has negative weight %f", from, to, weight)
	}
	g.adjacencyList[from] = append(g.adjacencyList[from], OutEdge{to: to, weight: weight})
	g.numEdges++
	return nil
}

func (g *Graph) HasVertex(id int64) bool {
	_, ok := g.adjacencyList[id]
	return ok
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices)
}

func (g *Graph) NumberOfEdges() int {
	return g.numEdges
}

// GetVertices. node ids in registration order.
func (g *Graph) GetVertices() []int64 {
	return g.vertices
}

func (g *Graph) GetOutDegree(u int64) int {
	return len(g.adjacencyList[u])
}

func (g *Graph) GetOutEdges(u int64) []OutEdge {
	return g.adjacencyList[u]
}

func (g *Graph) ForOutEdgesOf(u int64, handle func(e OutEdge)) {
	for _, e := range g.adjacencyList[u] {
		handle(e)
	}
}

// HasEdge. whether a directed u -> v edge with the given weight exists.
func (g *Graph) HasEdge(u, v int64, weight float64) bool {
	for _, e := range g.adjacencyList[u] {
		if e.to == v && Eq(e.weight, weight) {
			return true
		}
	}
	return false
}
