package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

type Config struct {
	Port    int
	Timeout time.Duration
}

// New. hijacked websocket connections must reset the deadlines the server puts on them.
func New(ctx context.Context, handler http.Handler, config Config) *http.Server {
	return &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Port),
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
		ReadTimeout:       config.Timeout,
		WriteTimeout:      config.Timeout + time.Second,
		IdleTimeout:       2 * config.Timeout,
		ReadHeaderTimeout: config.Timeout,
	}
}
