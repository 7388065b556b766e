package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	helper "github.com/lintang-b-s/osmroute/pkg/http/router/routerhelper"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routingService: routingService,
		log:            log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/computeRoutes", api.shortestPath)
	group.POST("/computeMultiStopRoutes", api.multiStop)
	group.GET("/corridor", api.corridor)
}

func parseOrigDest(r *http.Request) (shortestPathRequest, error) {
	var (
		request shortestPathRequest
		err     error
	)
	query := r.URL.Query()

	request.OriginLat, err = strconv.ParseFloat(query.Get("origin_lat"), 64)
	if err != nil {
		return request, errors.New("origin_lat is required and must be a valid float")
	}
	request.OriginLon, err = strconv.ParseFloat(query.Get("origin_lon"), 64)
	if err != nil {
		return request, errors.New("origin_lon is required and must be a valid float")
	}
	request.DestinationLat, err = strconv.ParseFloat(query.Get("destination_lat"), 64)
	if err != nil {
		return request, errors.New("destination_lat is required and must be a valid float")
	}
	request.DestinationLon, err = strconv.ParseFloat(query.Get("destination_lon"), 64)
	if err != nil {
		return request, errors.New("destination_lon is required and must be a valid float")
	}
	return request, nil
}

// shortestPath
//
//	@Summary		shortest path between origin and destination
//	@Tags			routing
//	@Produce		json
//	@Param			origin_lat		query	number	true	"origin latitude"
//	@Param			origin_lon		query	number	true	"origin longitude"
//	@Param			destination_lat	query	number	true	"destination latitude"
//	@Param			destination_lon	query	number	true	"destination longitude"
//	@Router			/computeRoutes [get]
func (api *routingAPI) shortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request, err := parseOrigDest(r)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	dist, pathPolyline, points, err := api.routingService.ShortestPath(r.Context(),
		geo.NewCoordinate(request.OriginLat, request.OriginLon),
		geo.NewCoordinate(request.DestinationLat, request.DestinationLon))
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewShortestPathResponse(dist, pathPolyline, points)},
		headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// multiStop
//
//	@Summary		best visiting order of 2 to 5 waypoints, first and last fixed
//	@Tags			routing
//	@Accept			json
//	@Produce		json
//	@Router			/computeMultiStopRoutes [post]
func (api *routingAPI) multiStop(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request multiStopRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	order, dist, pathPolyline, points, err := api.routingService.MultiStop(r.Context(), request.coordinates())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewMultiStopResponse(request.ID, order, dist,
		pathPolyline, points)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// corridor
//
//	@Summary		padded rectangle between origin and destination as a geojson polygon feature
//	@Tags			routing
//	@Produce		json
//	@Param			width	query	number	false	"rectangle width in meters"
//	@Param			padding	query	number	false	"extension past both endpoints in meters"
//	@Router			/corridor [get]
func (api *routingAPI) corridor(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	orig, err := parseOrigDest(r)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	request := corridorRequest{shortestPathRequest: orig}

	query := r.URL.Query()
	for name, dst := range map[string]**float64{"width": &request.Width, "padding": &request.Padding} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New(name+" must be a valid float"))
			return
		}
		*dst = &v
	}

	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	corridor, err := api.routingService.Corridor(geo.NewCoordinate(request.OriginLat, request.OriginLon),
		geo.NewCoordinate(request.DestinationLat, request.DestinationLon), request.Width, request.Padding)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	feature := geojson.NewFeature(corridor.Polygon())
	feature.Properties["origin"] = []float64{request.OriginLat, request.OriginLon}
	feature.Properties["destination"] = []float64{request.DestinationLat, request.DestinationLon}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": feature}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
