package router

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/lintang-b-s/osmroute/pkg/concurrent"
	"github.com/lintang-b-s/osmroute/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/osmroute/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/osmroute/pkg/http/server"
	"github.com/mailru/easygo/netpoll"
	"github.com/rs/cors"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	httpSwagger "github.com/swaggo/http-swagger"
)

type API struct {
	log    *zap.Logger
	hub    *controllers.Hub
	poller netpoll.Poller
	pool   *concurrent.Pool
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

func newCors() *cors.Cors {
	return cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", requestIDHeader},
		ExposedHeaders:   []string{"Link", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})
}

// Handler. api routes under /api plus /doc, wrapped in the middleware chain.
func (api *API) Handler(config http_server.Config, useRateLimit bool,
	routingService controllers.RoutingService) http.Handler {
	router := httprouter.New()

	router.GET("/doc/*any", swaggerHandler)

	group := router_helper.NewRouteGroup(router, "/api")
	controllers.New(routingService, api.log).Routes(group)

	mwChain := []alice.Constructor{newCors().Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Labels, Heartbeat("healthz"), Logger(api.log)}
	if useRateLimit {
		mwChain = append(mwChain, Limit(config.RateLimitRPS))
	}
	return alice.New(mwChain...).Then(router)
}

//	@title			osmroute API
//	@version		1.0
//	@description	shortest path, multi-stop and corridor queries over openstreetmap roads fetched on demand.

//	@license.name	BSD License
//	@license.url	https://opensource.org/license/bsd-2-clause

// @host		localhost
// @BasePath	/api
func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	log *zap.Logger,

	useRateLimit bool,
	routingService controllers.RoutingService,
) error {
	log.Info("Run httprouter API")

	var (
		errChan      = make(chan error, 1)
		errProxyChan = make(chan error, 1)
	)

	go func() {
		if err := api.handleWebsocket(ctx, config, routingService); err != nil {
			errChan <- err
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", api.upstream("multi-stop websocket", "tcp", "localhost:"+strconv.Itoa(config.WebsocketPort)))
	wsProxy := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.ProxyPort),
		Handler: mux,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
		ReadHeaderTimeout: viper.GetDuration("HTTP_SERVER_READ_HEADER_TIMEOUT"),
	}
	go func() {
		api.log.Info(fmt.Sprintf("WebSocket proxy running on port %d", config.ProxyPort))
		if err := wsProxy.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errProxyChan <- err
		}
	}()

	srv := http_server.New(ctx, api.Handler(config, useRateLimit, routingService), config, false)
	log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	shutdown := func() {
		_ = http_server.GracefulShutdown(srv, config.Timeout)
		_ = http_server.GracefulShutdown(wsProxy, config.Timeout)
	}

	select {
	case err := <-errChan:
		log.Error("Websocket error, shutting down server", zap.Error(err))
		shutdown()
		return err
	case err := <-errProxyChan:
		log.Error("Websocket proxy error, shutting down server", zap.Error(err))
		shutdown()
		return err
	case err := <-serverErr:
		log.Info("HTTP server stopped", zap.Error(err))
		_ = http_server.GracefulShutdown(wsProxy, config.Timeout)
		return err
	case <-ctx.Done():
		log.Info("Context canceled, shutting down server")
		shutdown()
		return nil
	}
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, p httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
