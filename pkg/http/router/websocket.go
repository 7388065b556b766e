package router

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/gobwas/ws"
	"github.com/lintang-b-s/osmroute/pkg/concurrent"
	"github.com/lintang-b-s/osmroute/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/osmroute/pkg/http/server"
	"github.com/mailru/easygo/netpoll"
	"go.uber.org/zap"
)

const (
	wsPoolSize      = 64
	wsPoolQueueSize = 16
	wsPoolSpawn     = 8
	acceptTimeout   = time.Second
	acceptCooldown  = 5 * time.Millisecond
)

/*
handleWebsocket. multi-stop requests over websocket. one goroutine per request instead of one per
connection: netpoll (epoll/kqueue) reports readable connections and a request is read and answered
on a pool goroutine. ref: https://sergey.kamardin.org/articles/million-websocket-and-go/

runs until ctx is done.
*/
func (api *API) handleWebsocket(ctx context.Context, config http_server.Config,
	routingService controllers.RoutingService) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", config.WebsocketPort))
	if err != nil {
		return err
	}
	api.log.Info(fmt.Sprintf("multi-stop websocket API run on port %d", config.WebsocketPort))

	acceptDesc, err := netpoll.HandleListener(ln, netpoll.EventRead|netpoll.EventOneShot)
	if err != nil {
		ln.Close()
		return err
	}

	api.poller, err = netpoll.New(nil)
	if err != nil {
		ln.Close()
		return err
	}

	api.pool = concurrent.NewPool(wsPoolSize, wsPoolQueueSize)
	api.pool.Spawn(wsPoolSpawn)
	api.hub = controllers.NewHub(routingService)

	// accept is a channel to signal about next incoming connection Accept() results.
	accept := make(chan error, 1)

	err = api.poller.Start(acceptDesc, func(ev netpoll.Event) {
		defer api.poller.Resume(acceptDesc)

		err := api.pool.ScheduleTimeout(acceptTimeout, func() {
			conn, err := ln.Accept()
			if err != nil {
				accept <- err
				return
			}

			accept <- nil
			api.handle(ctx, conn)
		})
		if err == nil {
			err = <-accept
		}
		if err == nil {
			return
		}

		var ne net.Error
		switch {
		case errors.Is(err, concurrent.ErrScheduleTimeout), errors.As(err, &ne) && ne.Timeout():
			// pool saturated, cool down before the next accept
			api.log.Sugar().Infof("accept error: %v; retrying in %s", err, acceptCooldown)
			time.Sleep(acceptCooldown)
		case errors.Is(err, net.ErrClosed):
		default:
			api.log.Error("accept error", zap.Error(err))
		}
	})
	if err != nil {
		ln.Close()
		return err
	}

	<-ctx.Done()

	api.poller.Stop(acceptDesc)
	ln.Close()
	api.hub.RemoveAllUser()
	api.pool.Close()

	api.log.Info("websocket server stopped")
	return nil
}

// handle. upgrades conn and registers it with the poller. every readable event is one request frame.
func (api *API) handle(ctx context.Context, conn net.Conn) {
	br := bufio.NewReader(conn)

	rw := struct {
		io.Reader
		io.Writer
	}{br, conn}

	hs, err := ws.Upgrade(rw)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("connection", nameConn(conn)))
		conn.Close()
		return
	}

	api.log.Info("established websocket connection", zap.String("connection", nameConn(conn)),
		zap.String("protocol", hs.Protocol))

	user := api.hub.Register(conn)

	desc, err := netpoll.HandleRead(conn)
	if err != nil {
		api.log.Error("netpoll handle error", zap.Error(err))
		api.hub.Remove(user)
		return
	}

	err = api.poller.Start(desc, func(ev netpoll.Event) {
		if ev&(netpoll.EventReadHup|netpoll.EventHup) != 0 {
			// peer closed its end
			api.log.Info("user disconnected from websocket server", zap.String("connection", nameConn(conn)))
			api.poller.Stop(desc)
			api.hub.Remove(user)
			return
		}

		api.pool.Schedule(func() {
			if err := user.MultiStop(ctx); err != nil {
				api.log.Info("websocket connection closed", zap.Error(err))
				api.poller.Stop(desc)
				api.hub.Remove(user)
			}
		})
	})
	if err != nil {
		api.log.Error("netpoll start error", zap.Error(err))
		api.hub.Remove(user)
	}
}

func nameConn(conn net.Conn) string {
	return conn.LocalAddr().String() + " > " + conn.RemoteAddr().String()
}
