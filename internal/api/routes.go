package api

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rawblock/muling-graph-engine/internal/engine"
	"github.com/rawblock/muling-graph-engine/internal/history"
)

// APIHandler bundles the dependencies the thin HTTP surface needs.
type APIHandler struct {
	engine       *engine.Engine
	historyStore *history.Store
	wsHub        *Hub
}

// SetupRouter wires the upload/health/stream/runs surface described in
// SPEC_FULL.md §4.10. historyStore and wsHub may be nil — both features
// degrade gracefully when unconfigured.
func SetupRouter(eng *engine.Engine, historyStore *history.Store, wsHub *Hub) *gin.Engine {
	r := gin.Default()

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowedOrigins == "" || allowedOrigins == "*" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowed := range strings.Split(allowedOrigins, ",") {
				if strings.TrimSpace(allowed) == origin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					break
				}
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	handler := &APIHandler{
		engine:       eng,
		historyStore: historyStore,
		wsHub:        wsHub,
	}

	pub := r.Group("/api/v1")
	{
		pub.GET("/health", handler.handleHealth)
		if wsHub != nil {
			pub.GET("/stream", wsHub.Subscribe)
		}
	}

	// Upload runs the 15-second-worst-case pipeline; rate-limit it
	// per-IP the same way the teacher rate-limits its heavier routes.
	protected := r.Group("/api/v1")
	protected.Use(AuthMiddleware())
	protected.Use(NewRateLimiter(30, 5).Middleware())
	{
		protected.POST("/analyze", handler.handleAnalyze)
		protected.GET("/runs/:id", handler.handleGetRun)
	}

	return r
}
