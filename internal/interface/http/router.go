package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/tennis-playability/internal/infra/config"
)

const apiPrefix = "/api/v1"

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, sessions *SessionManager, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	routerLogger := logger.With("component", "http.router")
	router := gin.New()
	router.SetHTMLTemplate(parseTemplates())
	router.Use(
		gin.Recovery(),
		requestLogger(routerLogger),
		errorHandlingMiddleware(routerLogger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		rateLimitMiddleware(cfg.HTTP.RateLimit, routerLogger),
	)

	router.GET("/healthz", handler.Health)

	form := router.Group("/", sessions.Middleware())
	{
		form.GET("/", handler.ShowForm)
		form.POST("/select", handler.SelectConditions)
		form.POST("/validate", handler.ValidateConditions)
		form.POST("/check", handler.CheckPlayability)
	}

	api := router.Group(apiPrefix)
	{
		api.GET("/fields", handler.ListFields)
		api.POST("/predictions", handler.Predict)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
