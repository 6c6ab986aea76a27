package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/greenmartialarts/shopshift-api/pkg/auth"
	"github.com/greenmartialarts/shopshift-api/pkg/database"
	"github.com/greenmartialarts/shopshift-api/pkg/handlers"
)

var r *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	db := database.InitDB()
	_ = auth.EnsureAdminExists(db)
	h := &handlers.Handler{DB: db}

	gin.SetMode(gin.ReleaseMode)
	// No rate limiting or caching here; the platform fronts the function.
	r = handlers.NewRouter(h, handlers.RouterConfig{})
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
