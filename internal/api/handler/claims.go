package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateClaim posts a new claim as the authenticated actor.
func (h *Handler) CreateClaim(c *gin.Context) {
	var req struct {
		Text      string `json:"text"`
		ClaimType string `json:"claim_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	claim, err := h.Board.CreateClaim(actorID(c), req.Text, req.ClaimType)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, claim)
}

// ListClaims returns every claim, newest first. Public.
func (h *Handler) ListClaims(c *gin.Context) {
	claims, err := h.Board.ListClaims()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, claims)
}

// GetClaim returns one claim with its replies. Public.
func (h *Handler) GetClaim(c *gin.Context) {
	claim, err := h.Board.GetClaim(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, claim)
}

// DeleteClaim removes the actor's claim, cascading to replies, threads,
// and messages.
func (h *Handler) DeleteClaim(c *gin.Context) {
	if err := h.Board.DeleteClaim(actorID(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateReply attaches a reply to a claim. The private thread is
// provisioned in the same unit of work and returned alongside.
func (h *Handler) CreateReply(c *gin.Context) {
	var req struct {
		Text   string `json:"text"`
		Stance string `json:"stance"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reply, thread, err := h.Board.CreateReply(actorID(c), c.Param("id"), req.Text, req.Stance)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"reply": reply, "thread": thread})
}

// AcceptReply resolves a reply as accepted. Claim author only.
func (h *Handler) AcceptReply(c *gin.Context) {
	reply, err := h.Board.AcceptReply(actorID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// RejectReply resolves a reply as rejected with an optional public
// reason. Claim author only.
func (h *Handler) RejectReply(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	// Body is optional; a bare reject carries no reason.
	_ = c.ShouldBindJSON(&req)

	reply, err := h.Board.RejectReply(actorID(c), c.Param("id"), req.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}
