package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/config"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/database"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/realtime"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/router"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/services"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}
	utils.InitLogger()
}

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clients, err := database.InitFirebase(ctx, cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("firebase init failed: %v", err)
	}
	defer clients.Close()

	hub := realtime.NewHub()

	listeners := services.NewListenerService(clients.Firestore, hub)
	listeners.Start(ctx)
	defer listeners.Stop()

	r := router.SetupRouter(cfg, clients, hub)

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.ErrorLogger.Printf("set trusted proxies: %v", err)
	}

	utils.InfoLogger.Printf("server listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatalf("server stopped: %v", err)
	}
}
