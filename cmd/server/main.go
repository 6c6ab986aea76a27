package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/greenmartialarts/shopshift-api/pkg/auth"
	"github.com/greenmartialarts/shopshift-api/pkg/database"
	"github.com/greenmartialarts/shopshift-api/pkg/handlers"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.InitDB()
	_ = auth.EnsureAdminExists(db)
	h := &handlers.Handler{DB: db}

	cfg := handlers.RouterConfig{}
	if v := os.Getenv("RATE_LIMIT_PER_SEC"); v != "" {
		cfg.RateLimitPerSec, _ = strconv.ParseFloat(v, 64)
	}
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		secs, _ := strconv.Atoi(v)
		cfg.CacheTTL = time.Duration(secs) * time.Second
	}

	r := handlers.NewRouter(h, cfg)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
