package server

import (
	"net/http"
	"time"

	ginhandler "user-directory-service/internal/adapter/gin/handler"
	ginrouter "user-directory-service/internal/adapter/gin/router"

	"go.uber.org/zap"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(
	handler *ginhandler.UserHandler,
	db ginrouter.Pinger,
	serviceName string,
	ginAddr string,
	l *zap.Logger,
) *http.Server {
	router := ginrouter.SetupRouter(handler, db, serviceName, l)

	l.Info("Gin REST API configured",
		zap.String("address", ginAddr),
		zap.String("swagger", "/swagger/index.html"),
	)

	return &http.Server{
		Addr:              ginAddr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
