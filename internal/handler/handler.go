package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/heartiecodes/Social-Coding-DevOps/internal/geocode"
	"github.com/heartiecodes/Social-Coding-DevOps/internal/routing"
	"github.com/heartiecodes/Social-Coding-DevOps/internal/service"
)

// Handler holds the domain dependencies for all HTTP handlers.
// A single Handler is shared across all routes; individual methods are
// registered as gin handler functions.
type Handler struct {
	geocoder geocode.Geocoder
	router   routing.Router
	planner  *service.Planner
}

// New creates a Handler with the given dependencies.
func New(geocoder geocode.Geocoder, router routing.Router, planner *service.Planner) *Handler {
	return &Handler{
		geocoder: geocoder,
		router:   router,
		planner:  planner,
	}
}

// requireQuery fetches a required query parameter, writing a 400 and
// returning ok=false when it is missing.
func requireQuery(c *gin.Context, name string) (string, bool) {
	v := c.Query(name)
	if v == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " query parameter is required"})
		return "", false
	}
	return v, true
}
