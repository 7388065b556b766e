package controllers

import (
	"github.com/lintang-b-s/osmroute/pkg/geo"
)

type shortestPathRequest struct {
	OriginLat      float64 `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"min=-180,max=180"`
}

type waypoint struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

type multiStopRequest struct {
	ID        string     `json:"id,omitempty"`
	Waypoints []waypoint `json:"waypoints" validate:"required,min=2,max=5,dive"`
}

func (r multiStopRequest) coordinates() []geo.Coordinate {
	coords := make([]geo.Coordinate, 0, len(r.Waypoints))
	for _, wp := range r.Waypoints {
		coords = append(coords, geo.NewCoordinate(wp.Lat, wp.Lon))
	}
	return coords
}

type corridorRequest struct {
	shortestPathRequest
	Width   *float64 `json:"width" validate:"omitempty,min=0,max=50000"`
	Padding *float64 `json:"padding" validate:"omitempty,min=0,max=50000"`
}

type shortestPathResponse struct {
	Path   string           `json:"path"`
	Points []geo.Coordinate `json:"points"`
	Dist   float64          `json:"distance"`
}

func NewShortestPathResponse(dist float64, path string, points []geo.Coordinate) shortestPathResponse {
	return shortestPathResponse{
		Path:   path,
		Points: points,
		Dist:   dist,
	}
}

type multiStopResponse struct {
	ID     string           `json:"id,omitempty"`
	Order  []int            `json:"order"`
	Path   string           `json:"path"`
	Points []geo.Coordinate `json:"points"`
	Dist   float64          `json:"distance"`
}

func NewMultiStopResponse(id string, order []int, dist float64, path string, points []geo.Coordinate) multiStopResponse {
	return multiStopResponse{
		ID:     id,
		Order:  order,
		Path:   path,
		Points: points,
		Dist:   dist,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
