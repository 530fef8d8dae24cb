package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pathsapp/backend/internal/config"
	"github.com/pathsapp/backend/internal/db"
	"github.com/pathsapp/backend/internal/http/api"
	authapi "github.com/pathsapp/backend/internal/http/api/auth/endpoints"
	pathapi "github.com/pathsapp/backend/internal/http/api/paths/endpoints"
	"github.com/pathsapp/backend/internal/http/middleware"
	"github.com/pathsapp/backend/internal/mail"
)

// RegisterRoutes sets up all application routes.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, store db.Store, mailer mail.Mailer) {
	r.Use(middleware.RequestLogger(log.Logger))
	r.Use(gin.Recovery())

	// CORS: credentials must be allowed because the session rides on a cookie.
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
		},
		AllowCredentials: true,
	}))

	r.Use(sessions.Sessions(middleware.SessionName, middleware.NewSessionStore(cfg.CookieSecret, cfg.BaseURL)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.MountGroup(r, api.GroupConfig{},
		authapi.PublicModule(store, mailer),
	)

	api.MountGroup(r, api.GroupConfig{
		Auth:  true,
		Store: store,
	},
		authapi.SessionModule(store),
		pathapi.Module(store),
	)
}
