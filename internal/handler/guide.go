package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (h *Handler) HandleGuide(c *gin.Context) {
	place := strings.TrimSpace(c.Query("place"))
	if place == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "place query parameter is required"})
		return
	}

	guide, err := h.guideService.GetGuide(c.Request.Context(), place)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, guide)
}
