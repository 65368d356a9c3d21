package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Mammutor/NINA/utils"
)

// Logger writes one structured line per request.
func Logger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}
		if rid := utils.RequestID(c); rid != "" {
			fields["request_id"] = rid
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}
		log.WithFields(fields).Info("request")
	}
}
