package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/navalha-app/navalha-api/internal/config"
	dbpkg "github.com/navalha-app/navalha-api/internal/db"
	"github.com/navalha-app/navalha-api/internal/logging"
	"github.com/navalha-app/navalha-api/internal/middleware"
	"github.com/navalha-app/navalha-api/internal/routes"
)

func main() {

	cfg := config.Load()

	log := logging.New(cfg.Env)
	defer log.Sync()

	db := dbpkg.NewDB(cfg, log)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
