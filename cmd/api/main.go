package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ciadabeleza/salon-scheduler/internal/config"
	"github.com/ciadabeleza/salon-scheduler/internal/db"
	"github.com/ciadabeleza/salon-scheduler/internal/middleware"
	"github.com/ciadabeleza/salon-scheduler/internal/routes"
)

func main() {
	cfg := config.Load()

	database := db.NewDB(cfg)

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	notifier := routes.RegisterRoutes(r, database, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := notifier.Run(ctx); err != nil && err != context.Canceled {
			log.Printf("notifier encerrou: %v", err)
		}
	}()

	log.Printf("API ouvindo em %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
