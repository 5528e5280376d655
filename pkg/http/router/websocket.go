package router

import (
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/http/router/controllers"
	"go.uber.org/zap"
)

// serveWebsocket. upgrade and serve nearest facility queries on the connection until the client leaves.
func (api *API) serveWebsocket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, _, hs, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("remote", r.RemoteAddr))
		return
	}
	// drop the read/write deadlines of the http server, the connection is long lived
	_ = conn.SetDeadline(time.Time{})

	api.log.Info("established websocket connection", zap.String("connection name", nameConn(conn)),
		zap.String("protocol", hs.Protocol))

	user := api.hub.Register(conn)
	go api.handle(user, nameConn(conn))
}

func (api *API) handle(user *controllers.User, name string) {
	defer api.hub.Remove(user)
	defer user.Close()
	for {
		err := user.NearestFacility()
		if err == nil {
			continue
		}

		var closed wsutil.ClosedError
		if errors.As(err, &closed) || errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
			api.log.Info("user disconnected from websocket server", zap.String("connection name", name))
		} else {
			api.log.Error("error serving websocket query", zap.Error(err), zap.String("connection name", name))
		}
		return
	}
}

func nameConn(conn net.Conn) string {
	return conn.LocalAddr().String() + " > " + conn.RemoteAddr().String()
}
