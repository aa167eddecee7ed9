package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wayplan/wayplan/internal/domain"
	"github.com/wayplan/wayplan/internal/middleware"
)

// HandleChat runs one conversational planning turn. The client owns the
// history and appends this turn before the next call.
func (h *Handler) HandleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	history := make([]domain.ChatMessage, len(req.History))
	for i, m := range req.History {
		history[i] = domain.ChatMessage{Role: m.Role, Content: m.Content}
	}

	result, err := h.planner.Chat(c.Request.Context(), req.Message, req.Parameters.toDomain(), history)
	if err != nil {
		slog.Error("chat turn failed", "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, chatResponse{Reply: result.Reply, CommandDetected: result.CommandDetected})
}

// HandleGeneratePlan generates a verified plan and materializes it into
// the trip's destinations. Materialization is sequential with no
// rollback; the response reports how many activities were persisted.
func (h *Handler) HandleGeneratePlan(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip ID"})
		return
	}

	var req generatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// Confirm ownership before spending an upstream call.
	if _, err := h.tripService.Get(c.Request.Context(), userID, tripID); err != nil {
		respondError(c, err)
		return
	}

	plan, err := h.generator.GeneratePlan(c.Request.Context(), req.Parameters.toDomain(), req.Context)
	if err != nil {
		slog.Error("plan generation failed", "error", err, "trip_id", tripID)
		respondError(c, err)
		return
	}

	count, err := h.materializer.Materialize(c.Request.Context(), plan, tripID)
	if err != nil {
		// Partial completion: some destinations may already be saved.
		slog.Error("materialization incomplete", "error", err, "trip_id", tripID, "materialized", count)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":        err.Error(),
			"materialized": count,
		})
		return
	}

	c.JSON(http.StatusOK, generatePlanResponse{Plan: plan, Materialized: count})
}
