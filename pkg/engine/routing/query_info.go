package routing

import (
	"github.com/lintang-b-s/osmroute/pkg"
)

const noParent int64 = -1 << 63

// vertexInfo. tentative distance + predecessor of a labelled vertex.
type vertexInfo struct {
	dist      float64
	parent    int64
	finalized bool
}

func newVertexInfo(dist float64, parent int64) *vertexInfo {
	return &vertexInfo{
		dist:   dist,
		parent: parent,
	}
}

func (vi *vertexInfo) GetDistance() float64 {
	return vi.dist
}

func (vi *vertexInfo) GetParent() int64 {
	return vi.parent
}

func (vi *vertexInfo) hasParent() bool {
	return vi.parent != noParent
}

func (vi *vertexInfo) update(dist float64, parent int64) {
	vi.dist = dist
	vi.parent = parent
}

// unlabelled vertices have +Inf distance
func distanceOf(info map[int64]*vertexInfo, v int64) float64 {
	if vi, ok := info[v]; ok {
		return vi.dist
	}
	return pkg.INF_WEIGHT
}
