package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/heartiecodes/Social-Coding-DevOps/internal/geocode"
)

// Geocode handles GET /api/v1/geocode
//
// Query params:
//   - q (required) string: free-text place name
//
// Response 200:
//
//	{"name":"London","lat":51.5074,"lng":-0.1278}
//
// Response 400: missing query parameter.
// Response 404: the place name produced no hits.
// Response 502: the geocoding service failed or answered with an unexpected
// payload.
func (h *Handler) Geocode(c *gin.Context) {
	query, ok := requireQuery(c, "q")
	if !ok {
		return
	}

	place, err := h.geocoder.Geocode(c.Request.Context(), query)
	if err != nil {
		var nf *geocode.NotFoundError
		if errors.As(err, &nf) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no results for " + nf.Query})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "geocoding failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name": place.Name,
		"lat":  place.Point.Lat,
		"lng":  place.Point.Lng,
	})
}
