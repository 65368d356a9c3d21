// Package handlers exposes the routing service over HTTP.
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Mammutor/NINA/addressbook"
	"github.com/Mammutor/NINA/models"
	"github.com/Mammutor/NINA/services"
	"github.com/Mammutor/NINA/utils"
)

// APIVersion is reported in response metadata.
const APIVersion = "v1"

const (
	defaultSuggestions = 10
	maxSuggestions     = 100
)

type RoutingHandler struct {
	routingService *services.RoutingService
	log            *logrus.Logger
}

func NewRoutingHandler(routingService *services.RoutingService, log *logrus.Logger) *RoutingHandler {
	return &RoutingHandler{
		routingService: routingService,
		log:            log,
	}
}

func (h *RoutingHandler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/api/routes", h.CalculateRoute)
	r.GET("/api/preferences", h.GetPreferences)
	r.GET("/api/addresses", h.SuggestAddresses)
	r.GET("/api/addresses/destinations", h.GetDestinations)
	r.GET("/health", h.Health)
}

// CalculateRoute handles POST /api/routes.
func (h *RoutingHandler) CalculateRoute(c *gin.Context) {
	began := time.Now()

	var req models.RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidInput, "invalid request body")
		return
	}

	route, err := h.routingService.CalculateRoute(c.Request.Context(), req)
	if err != nil {
		h.log.WithError(err).WithField("request_id", utils.RequestID(c)).Debug("route request failed")
		respondServiceError(c, err)
		return
	}

	count := 1
	utils.RespondOK(c, http.StatusOK, route, &models.MetaData{
		ProcessTime: processTime(began),
		ApiVersion:  APIVersion,
		ResultCount: &count,
	})
}

// GetPreferences lists the selectable weighting profiles.
func (h *RoutingHandler) GetPreferences(c *gin.Context) {
	utils.RespondOK(c, http.StatusOK, models.PreferenceList(h.routingService.Weights()), nil)
}

// SuggestAddresses handles GET /api/addresses?q=&limit=.
func (h *RoutingHandler) SuggestAddresses(c *gin.Context) {
	book := h.book(c)
	if book == nil {
		return
	}
	limit := utils.ParseLimit(c.Query("limit"), defaultSuggestions, maxSuggestions)
	names := book.Suggest(c.Query("q"), limit)
	utils.RespondOK(c, http.StatusOK, models.AddressList{Addresses: names, Count: len(names)}, nil)
}

// GetDestinations handles GET /api/addresses/destinations?start=.
func (h *RoutingHandler) GetDestinations(c *gin.Context) {
	book := h.book(c)
	if book == nil {
		return
	}
	start := c.Query("start")
	if start == "" {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidInput, "start is required")
		return
	}
	names, err := book.Destinations(start)
	if err != nil {
		respondError(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
		return
	}
	utils.RespondOK(c, http.StatusOK, models.AddressList{Addresses: names, Count: len(names)}, nil)
}

func (h *RoutingHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *RoutingHandler) book(c *gin.Context) *addressbook.Book {
	book := h.routingService.Book()
	if book == nil {
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "no address data loaded")
	}
	return book
}

func processTime(began time.Time) string {
	return fmt.Sprintf("%.2f", float64(time.Since(began).Microseconds())/1000)
}
