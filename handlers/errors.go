package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mammutor/NINA/metrics"
	"github.com/Mammutor/NINA/routing"
	"github.com/Mammutor/NINA/services"
	"github.com/Mammutor/NINA/utils"
)

// Error code constants for API responses.
const (
	ErrCodeInvalidInput  = "invalid_input"
	ErrCodeNoRoute       = "no_route"
	ErrCodeNotFound      = "not_found"
	ErrCodeSuperseded    = "superseded"
	ErrCodeCanceled      = "canceled"
	ErrCodeTimeout       = "timeout"
	ErrCodeInternalError = "internal_error"
)

// StatusClientClosedRequest is sent when the client went away before the
// search finished.
const StatusClientClosedRequest = 499

func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	utils.RespondError(c, status, code, message)
}

// respondServiceError maps a routing service error to its status and code.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, routing.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, ErrCodeInvalidInput, err.Error())
	case errors.Is(err, routing.ErrNoRoute):
		respondError(c, http.StatusNotFound, ErrCodeNoRoute, "no route between start and end within the abort distance")
	case errors.Is(err, services.ErrSuperseded):
		respondError(c, http.StatusConflict, ErrCodeSuperseded, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		respondError(c, http.StatusGatewayTimeout, ErrCodeTimeout, "route search timed out")
	case errors.Is(err, context.Canceled):
		respondError(c, StatusClientClosedRequest, ErrCodeCanceled, "route search canceled")
	default:
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
	}
}
