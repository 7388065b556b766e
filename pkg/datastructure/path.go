package datastructure

import (
	"math"

	"github.com/lintang-b-s/osmroute/pkg/geo"
)

// PathResult. shortest path from source to destination, both inclusive.
// an unreachable destination is an empty path with +Inf distance.
type PathResult struct {
	nodePath []int64
	path     []geo.Coordinate
	distance float64
}

func NewPathResult(nodePath []int64, path []geo.Coordinate, distance float64) PathResult {
	return PathResult{
		nodePath: nodePath,
		path:     path,
		distance: distance,
	}
}

func NewUnreachablePathResult() PathResult {
	return PathResult{
		nodePath: []int64{},
		path:     []geo.Coordinate{},
		distance: math.Inf(1),
	}
}

func (p PathResult) Found() bool {
	return !math.IsInf(p.distance, 1)
}

func (p PathResult) GetDistance() float64 {
	return p.distance
}

// GetPath. copy of the coordinate path.
func (p PathResult) GetPath() []geo.Coordinate {
	path := make([]geo.Coordinate, len(p.path))
	copy(path, p.path)
	return path
}

func (p PathResult) GetNodePath() []int64 {
	nodePath := make([]int64, len(p.nodePath))
	copy(nodePath, p.nodePath)
	return nodePath
}
