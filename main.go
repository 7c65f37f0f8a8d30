package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	log.SetPrefix("lg/nutriai-go-api: ")
	log.SetFlags(log.LstdFlags)

	// .env is optional in deployed environments where vars come from the platform.
	if err := godotenv.Load(); err != nil {
		log.Printf("[main] no .env loaded: %v", err)
	}

	cfg := loadConfig()
	printStartupBanner(cfg)
	validateConfig(cfg)

	if cfg.isProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	pool := getDBPool(cfg.DBURL)
	defer pool.Close()

	h := newHandler(pool, cfg)
	router := h.newRouter()

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Server running on %s", addr)
	log.Printf("Health check: http://localhost%s/api/health", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("[main] server stopped: %v", err)
	}
}
