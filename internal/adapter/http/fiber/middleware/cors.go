package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	fibercors "github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/seu-repo/campus-assistant/pkg/config"
)

// The assistant is consumed by a browser chat widget, so CORS stays wide
// open by default and narrows only through configuration.
const (
	defaultMethods = "GET,POST,PUT,DELETE,OPTIONS"
	defaultHeaders = "Origin,Content-Type,Accept,X-Request-ID"
	defaultExpose  = "Content-Length"
	defaultMaxAge  = 86400
)

func NewCORS(cfg config.CORSConfig) fiber.Handler {
	c := fibercors.Config{
		AllowOrigins:     "*",
		AllowMethods:     defaultMethods,
		AllowHeaders:     defaultHeaders,
		ExposeHeaders:    defaultExpose,
		AllowCredentials: cfg.Credentials,
		MaxAge:           defaultMaxAge,
	}
	if len(cfg.AllowedOrigins) > 0 {
		c.AllowOrigins = strings.Join(cfg.AllowedOrigins, ",")
	}
	if len(cfg.AllowedMethods) > 0 {
		c.AllowMethods = strings.Join(cfg.AllowedMethods, ",")
	}
	if len(cfg.AllowedHeaders) > 0 {
		c.AllowHeaders = strings.Join(cfg.AllowedHeaders, ",")
	}
	if len(cfg.ExposeHeaders) > 0 {
		c.ExposeHeaders = strings.Join(cfg.ExposeHeaders, ",")
	}
	if cfg.MaxAge > 0 {
		c.MaxAge = cfg.MaxAge
	}
	return fibercors.New(c)
}

// DefaultCORS is the permissive development policy used when the cors
// config section is disabled.
func DefaultCORS() fiber.Handler {
	return NewCORS(config.CORSConfig{})
}
