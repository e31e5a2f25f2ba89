package config

import (
	"airhotel-web/middleware"
	"airhotel-web/services/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

// InitApp builds the router, the websocket hub and the scheduler
func InitApp(cfg Config, log logger.Logger) (*gin.Engine, *melody.Melody, *cron.Cron) {
	router := gin.Default()
	router.Use(cors.New(corsConfig(cfg)))
	router.Use(middleware.RequestID(), middleware.ErrorHandler(log))
	router.SetTrustedProxies(nil)

	m := melody.New()
	c := cron.New()

	return router, m, c
}

func corsConfig(cfg Config) cors.Config {
	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders(middleware.RequestIDHeader)
	configCors.AddExposeHeaders(middleware.RequestIDHeader)
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	if len(cfg.AllowedOrigins) > 0 {
		configCors.AllowOrigins = cfg.AllowedOrigins
	} else {
		configCors.AllowOriginFunc = func(origin string) bool {
			return true
		}
	}
	return configCors
}
