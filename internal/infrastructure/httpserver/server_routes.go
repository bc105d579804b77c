package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	s.echo.GET("/bars", s.listBars)
	s.echo.GET("/drinks", s.listDrinks)

	s.echo.POST("/likes", s.toggleLike)
	s.echo.GET("/likes", s.getLikes)

	admin := s.echo.Group("/admin")
	admin.GET("/clear-cache", s.clearCacheStatus)
	admin.POST("/clear-cache", s.clearCache, s.middleware.Admin.RequireSharedSecret())
}
