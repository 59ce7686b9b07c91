// Package gin provides the HTTP server scaffolding for the email classifier:
// middleware order, health endpoints, request body limits and graceful shutdown.
package gin

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Default values for HTTP server configuration.
const (
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultCORSMaxAge      = 12 * time.Hour
	DefaultInternalError   = "Internal server error"
)

// Config holds the HTTP server configuration.
type Config struct {
	// Port is the port number to listen on.
	Port int

	// Debug switches Gin to debug mode.
	Debug bool

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// MaxBodyBytes caps request bodies. Zero disables the limit.
	MaxBodyBytes int64

	// BodyTooLargeMessage is returned with 413 when MaxBodyBytes is exceeded.
	BodyTooLargeMessage string

	// InternalErrorMessage is the only detail a client sees after a recovered panic.
	InternalErrorMessage string

	CORS CORSConfig

	// ServiceName and ServiceVersion appear in health responses.
	ServiceName    string
	ServiceVersion string

	// Middleware runs after the standard chain, before any route handler.
	Middleware []gin.HandlerFunc
}

// CORSConfig holds the CORS middleware configuration.
type CORSConfig struct {
	Enabled bool

	// AllowedOrigins lists origins allowed to call the API. "*" allows all.
	AllowedOrigins []string

	AllowedMethods []string
	AllowedHeaders []string

	AllowCredentials bool

	// MaxAge is how long browsers may cache a preflight response.
	MaxAge time.Duration
}

// SetDefaults applies default values to the config where values are not set.
func (c *Config) SetDefaults() {
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = DefaultIdleTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "1.0.0"
	}
	if c.InternalErrorMessage == "" {
		c.InternalErrorMessage = DefaultInternalError
	}
	if c.BodyTooLargeMessage == "" {
		c.BodyTooLargeMessage = "Request body too large"
	}

	c.CORS.SetDefaults()
}

// SetDefaults applies default values to the CORS config where values are not set.
func (c *CORSConfig) SetDefaults() {
	if !c.Enabled && len(c.AllowedOrigins) == 0 {
		c.Enabled = true
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if len(c.AllowedMethods) == 0 {
		c.AllowedMethods = []string{"GET", "POST", "HEAD", "OPTIONS"}
	}
	if len(c.AllowedHeaders) == 0 {
		c.AllowedHeaders = []string{
			"Origin",
			"Content-Type",
			"Content-Length",
			"Accept",
			"Authorization",
			"X-Request-ID",
		}
	}
	if c.MaxAge == 0 {
		c.MaxAge = DefaultCORSMaxAge
	}
}

// NewConfig creates a Config with defaults applied.
func NewConfig(serviceName string, port int) *Config {
	cfg := &Config{
		Port:        port,
		ServiceName: serviceName,
		CORS:        CORSConfig{Enabled: true},
	}
	cfg.SetDefaults()
	return cfg
}
