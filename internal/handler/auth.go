package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wayplan/wayplan/internal/config"
	"github.com/wayplan/wayplan/internal/middleware"
)

func (h *Handler) HandleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := middleware.NewToken(h.cfg.JWTSecret, user.ID, config.TokenTTL)
	if err != nil {
		slog.Error("issue token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}

	c.JSON(http.StatusCreated, tokenResponse{Token: token, Email: user.Email, Name: user.Name})
}

func (h *Handler) HandleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := middleware.NewToken(h.cfg.JWTSecret, user.ID, config.TokenTTL)
	if err != nil {
		slog.Error("issue token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token, Email: user.Email, Name: user.Name})
}
