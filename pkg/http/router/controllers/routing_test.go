package controllers

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gobwas/ws/wsutil"
	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	helper "github.com/lintang-b-s/osmroute/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRoutingService struct {
	err       error
	waypoints []geo.Coordinate
	width     *float64
}

func (f *fakeRoutingService) ShortestPath(ctx context.Context, orig, dst geo.Coordinate) (float64, string,
	[]geo.Coordinate, error) {
	if f.err != nil {
		return 0, "", nil, f.err
	}
	points := []geo.Coordinate{orig, dst}
	return 1234.5, geo.PolylineFromCoords(points), points, nil
}

func (f *fakeRoutingService) MultiStop(ctx context.Context, waypoints []geo.Coordinate) ([]int, float64, string,
	[]geo.Coordinate, error) {
	f.waypoints = waypoints
	if f.err != nil {
		return nil, 0, "", nil, f.err
	}
	order := make([]int, len(waypoints))
	for i := range order {
		order[i] = i
	}
	return order, 42, geo.PolylineFromCoords(waypoints), waypoints, nil
}

func (f *fakeRoutingService) Corridor(orig, dst geo.Coordinate, width, padding *float64) (geo.Corridor, error) {
	f.width = width
	if f.err != nil {
		return geo.Corridor{}, f.err
	}
	w := 2000.0
	if width != nil {
		w = *width
	}
	return geo.GenerateRectangle(orig, dst, w, 0), nil
}

func newTestRouter(svc RoutingService) http.Handler {
	router := httprouter.New()
	New(svc, zap.NewNop()).Routes(helper.NewRouteGroup(router, "/api"))
	return router
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	return rec, decoded
}

const routeQuery = "/api/computeRoutes?origin_lat=-7.78&origin_lon=110.36&destination_lat=-7.77&destination_lon=110.37"

func TestShortestPathHandler(t *testing.T) {
	rec, body := doRequest(t, newTestRouter(&fakeRoutingService{}), http.MethodGet, routeQuery, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, 1234.5, data["distance"])
	assert.NotEmpty(t, data["path"])
	assert.Len(t, data["points"], 2)
}

func TestShortestPathHandlerBadRequest(t *testing.T) {
	testCases := []struct {
		name  string
		query string
	}{
		{name: "missing destination", query: "/api/computeRoutes?origin_lat=1&origin_lon=2"},
		{name: "not a number", query: "/api/computeRoutes?origin_lat=x&origin_lon=2&destination_lat=1&destination_lon=1"},
		{name: "latitude out of range", query: "/api/computeRoutes?origin_lat=95&origin_lon=2&destination_lat=1&destination_lon=1"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := doRequest(t, newTestRouter(&fakeRoutingService{}), http.MethodGet, tt.query, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, body, "error")
		})
	}
}

func TestShortestPathHandlerStatusMapping(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid input", err: util.NewErrorf(util.ErrInvalidInput, "bad"), wantStatus: http.StatusBadRequest},
		{name: "no roads", err: util.NewErrorf(util.ErrNotFound, "empty region"), wantStatus: http.StatusNotFound},
		{name: "unreachable", err: util.NewErrorf(util.ErrUnreachable, "no path"), wantStatus: http.StatusUnprocessableEntity},
		{name: "upstream", err: util.NewErrorf(util.ErrUpstream, "overpass down"), wantStatus: http.StatusBadGateway},
		{name: "unknown", err: assert.AnError, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := doRequest(t, newTestRouter(&fakeRoutingService{err: tt.err}), http.MethodGet, routeQuery, "")
			assert.Equal(t, tt.wantStatus, rec.Code)

			errBody := body["error"].(map[string]any)
			assert.Equal(t, http.StatusText(tt.wantStatus), errBody["code"])
			if tt.wantStatus == http.StatusInternalServerError {
				assert.Equal(t, util.MessageInternalServerError, errBody["message"])
			}
		})
	}
}

func TestMultiStopHandler(t *testing.T) {
	svc := &fakeRoutingService{}
	payload := `{"id":"trip-1","waypoints":[{"lat":0,"lon":0},{"lat":0,"lon":0.01},{"lat":0.01,"lon":0.01}]}`

	rec, body := doRequest(t, newTestRouter(svc), http.MethodPost, "/api/computeMultiStopRoutes", payload)

	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "trip-1", data["id"])
	assert.Equal(t, []any{0.0, 1.0, 2.0}, data["order"])
	assert.Equal(t, 42.0, data["distance"])
	assert.Equal(t, []geo.Coordinate{geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.01), geo.NewCoordinate(0.01, 0.01)},
		svc.waypoints)
}

func TestMultiStopHandlerValidation(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
	}{
		{name: "one waypoint", payload: `{"waypoints":[{"lat":0,"lon":0}]}`},
		{name: "six waypoints", payload: `{"waypoints":[{"lat":0,"lon":0},{"lat":0,"lon":0},{"lat":0,"lon":0},{"lat":0,"lon":0},{"lat":0,"lon":0},{"lat":0,"lon":0}]}`},
		{name: "bad longitude", payload: `{"waypoints":[{"lat":0,"lon":0},{"lat":0,"lon":200}]}`},
		{name: "malformed json", payload: `{"waypoints":`},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeRoutingService{}
			rec, _ := doRequest(t, newTestRouter(svc), http.MethodPost, "/api/computeMultiStopRoutes", tt.payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, svc.waypoints, "service must not be called")
		})
	}
}

func TestCorridorHandler(t *testing.T) {
	svc := &fakeRoutingService{}
	rec, body := doRequest(t, newTestRouter(svc), http.MethodGet,
		"/api/corridor?origin_lat=0&origin_lon=0&destination_lat=0&destination_lon=0.1&width=1000", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.width)
	assert.Equal(t, 1000.0, *svc.width)

	feature := body["data"].(map[string]any)
	assert.Equal(t, "Feature", feature["type"])
	geometry := feature["geometry"].(map[string]any)
	assert.Equal(t, "Polygon", geometry["type"])
	rings := geometry["coordinates"].([]any)
	require.Len(t, rings, 1)
	assert.Len(t, rings[0], 5)

	rec, _ = doRequest(t, newTestRouter(svc), http.MethodGet,
		"/api/corridor?origin_lat=0&origin_lon=0&destination_lat=0&destination_lon=0.1&padding=-5", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHubMultiStop(t *testing.T) {
	hub := NewHub(&fakeRoutingService{})
	server, client := net.Pipe()
	user := hub.Register(server)
	assert.Equal(t, 1, hub.NumUsers())

	exchange := func(payload string) map[string]any {
		got := make(chan []byte, 1)
		go func() {
			_ = wsutil.WriteClientText(client, []byte(payload))
			data, _ := wsutil.ReadServerText(client)
			got <- data
		}()
		require.NoError(t, user.MultiStop(context.Background()))

		var resp map[string]any
		require.NoError(t, json.Unmarshal(<-got, &resp))
		return resp
	}

	resp := exchange(`{"id":"a","waypoints":[{"lat":0,"lon":0},{"lat":0,"lon":0.01}]}`)
	data := resp["data"].(map[string]any)
	assert.Equal(t, "a", data["id"])
	assert.Equal(t, []any{0.0, 1.0}, data["order"])

	resp = exchange(`{"id":"b","waypoints":[{"lat":0,"lon":0}]}`)
	assert.Equal(t, "b", resp["id"])
	assert.Equal(t, http.StatusText(http.StatusBadRequest), resp["error"].(map[string]any)["code"])

	hub.RemoveAllUser()
	assert.Equal(t, 0, hub.NumUsers())
}
