package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/nightcap/bar-directory-api/internal/core/ports"
	customMiddleware "github.com/nightcap/bar-directory-api/internal/infrastructure/httpserver/middleware"
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TLSCertFile  string
	TLSKeyFile   string
}

type ServerDeps struct {
	BarService         ports.BarService
	DrinkService       ports.DrinkService
	LikeService        ports.LikeService
	CacheAdminService  ports.CacheAdminService
	RateLimiterService ports.RateLimiterService
	HealthCheckers     []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	barSvc         ports.BarService
	drinkSvc       ports.DrinkService
	likeSvc        ports.LikeService
	cacheAdminSvc  ports.CacheAdminService
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, clearCacheSecret string, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		barSvc:         deps.BarService,
		drinkSvc:       deps.DrinkService,
		likeSvc:        deps.LikeService,
		cacheAdminSvc:  deps.CacheAdminService,
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.RateLimiterService,
			logger,
			clearCacheSecret,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
