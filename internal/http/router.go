package api

import (
	"database/sql"
	"log"
	stdhttp "net/http"

	"bestiary/internal/config"
	h "bestiary/internal/http/handlers"
	"bestiary/internal/http/middleware"
	"bestiary/internal/repositories"

	"github.com/gin-gonic/gin"
)

// NewRouter is the composition root: repository and handlers are constructed
// here and passed down, never reached through shared state.
func NewRouter(env config.Env, db *sql.DB) *gin.Engine {
	_ = env

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	creatures := h.CreatureHandler{Repo: repositories.CreatureRepository{DB: db}}
	system := h.SystemHandler{DB: db}

	api := r.Group("/api")
	{
		api.GET("/health", system.Health)
		api.GET("/db-check", system.DBCheck)

		cr := api.Group("/creatures")
		cr.GET("", creatures.List)
		cr.POST("", creatures.Create)
		cr.PUT("/:id", creatures.Update)
	}

	return r
}
