package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Mammutor/NINA/middleware"
	"github.com/Mammutor/NINA/services"
)

// maxBodySize bounds route request bodies.
const maxBodySize = 1 << 20

// RouterDeps holds everything the public router needs.
type RouterDeps struct {
	Log         *logrus.Logger
	Service     *services.RoutingService
	CORSOrigins []string
	RateLimit   float64
	RateBurst   int
}

// NewRouter builds the public gin engine. The rate limiter's cleanup
// goroutine stops when ctx ends.
func NewRouter(ctx context.Context, deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(middleware.Logger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(deps.CORSOrigins))
	r.Use(limitBody(maxBodySize))
	if deps.RateLimit > 0 {
		r.Use(middleware.NewRateLimiter(ctx, deps.RateLimit, deps.RateBurst).Handler())
	}
	r.Use(middleware.Prometheus())

	NewRoutingHandler(deps.Service, deps.Log).RegisterRoutes(r)
	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	return cors.New(config)
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
