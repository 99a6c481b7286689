package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salesmlstack/revenue-predictor/internal/config"
	"github.com/salesmlstack/revenue-predictor/internal/predictor"
	"github.com/salesmlstack/revenue-predictor/pkg/logger"
)

// New builds the gin router around the pipeline handle. The handle is the
// only state the handlers touch; everything behind it is read-only after
// load, so the router needs no further synchronization.
func New(conf *config.Configs, svc *predictor.Service) *gin.Engine {
	if conf.ApplicationEnv == "prod" || conf.ApplicationEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(RecoveryMiddleware())
	router.Use(gin.Logger())
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware(conf.CorsAllowedOrigins))

	router.GET("/health/self", func(c *gin.Context) {
		c.String(http.StatusOK, "true")
	})

	RegisterRoutes(router, svc)
	return router
}

// Run serves until the listener fails.
func Run(router *gin.Engine, port int) error {
	address := fmt.Sprintf(":%d", port)
	logger.Info(fmt.Sprintf("revenue-predictor started on port %s", address))
	return router.Run(address)
}
