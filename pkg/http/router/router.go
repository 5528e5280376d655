package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/lintang-b-s/navigatorx-emergency/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/navigatorx-emergency/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/navigatorx-emergency/pkg/http/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/rs/cors"
	"go.uber.org/zap"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "net/http/pprof"
)

type API struct {
	log      *zap.Logger
	hub      *controllers.Hub
	registry *prometheus.Registry
	metrics  *Metrics
}

func NewAPI(log *zap.Logger) *API {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &API{
		log:      log,
		registry: reg,
		metrics:  NewMetrics(reg),
	}
}

// Handler. router plus the full middleware chain. rateLimitRPS is only used when useRateLimit is set.
func (api *API) Handler(useRateLimit bool, rateLimitRPS float64, routingService controllers.RoutingService) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	router.GET("/doc/*any", swaggerHandler)
	router.Handler(http.MethodGet, "/debug/pprof/*item", http.DefaultServeMux)
	router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(api.registry, promhttp.HandlerOpts{}))

	api.hub = controllers.NewHub(routingService)
	router.GET("/ws", api.serveWebsocket)

	group := router_helper.NewRouteGroup(router, "/api")
	navigatorRoutes := controllers.New(routingService, api.log)
	navigatorRoutes.Routes(group)

	mwChain := []alice.Constructor{corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(api.log), PromHTTPMiddleware(api.metrics)}
	if useRateLimit {
		mwChain = append(mwChain, Limit(rateLimitRPS))
	}
	return alice.New(mwChain...).Then(router)
}

//	@title			Emergency Navigatorx API
//	@version		1.0
//	@description	Nearest emergency facility routing on an openstreetmap road network.

//	@contact.name	Lintang Birda Saputra
//	@contact.url	_
//	@contact.email	lintang.birda.saputra@mail.ugm.ac.id

//	@license.name	BSD License
//	@license.url	https://opensource.org/license/bsd-2-clause

// @host		localhost
// @BasePath	/api
func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	useRateLimit bool,
	rateLimitRPS float64,
	routingService controllers.RoutingService,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(useRateLimit, rateLimitRPS, routingService), config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		api.log.Info("HTTP server stopped", zap.Error(err))
		api.hub.RemoveAllUser()
		return err
	case <-ctx.Done():
		api.log.Info("Context canceled, shutting down server")
		err := srv.Shutdown(context.Background())
		api.hub.RemoveAllUser()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, p httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
