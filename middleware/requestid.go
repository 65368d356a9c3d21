// Package middleware provides gin middleware for the routing API.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Mammutor/NINA/utils"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// newRequestID is swapped out in tests.
var newRequestID = func() string { return uuid.NewString() }

// RequestID tags each request with a fresh id, stored under
// utils.RequestIDKey and echoed in the response header. Route queries and
// error envelopes report this id. An id sent by the client is kept under
// utils.ClientRequestIDKey for correlation but never replaces ours.
func RequestID(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := newRequestID()
		c.Set(utils.RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		if theirs := c.GetHeader(RequestIDHeader); theirs != "" {
			c.Set(utils.ClientRequestIDKey, theirs)
			log.WithFields(logrus.Fields{
				"request_id":        id,
				"client_request_id": theirs,
			}).Debug("request id assigned")
		}

		c.Next()
	}
}
