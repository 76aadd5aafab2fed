// Package handler exposes the board over HTTP and WebSocket using gin.
package handler

import (
	"errors"
	"net/http"

	"claimboard/backend/internal/board"
	"claimboard/backend/internal/logger"
	"claimboard/backend/internal/moderation"
	"claimboard/backend/internal/storage"
	"claimboard/backend/internal/threadhub"

	"github.com/gin-gonic/gin"
)

// Handler bundles the services the HTTP surface needs.
type Handler struct {
	Board      *board.Service
	Moderation *moderation.Service
	Hub        *threadhub.ManagerService
	Storage    storage.Storage

	jwtSecret []byte
	log       *logger.Logger
}

func NewHandler(b *board.Service, m *moderation.Service, hub *threadhub.ManagerService, s storage.Storage, jwtSecret string, log *logger.Logger) *Handler {
	return &Handler{
		Board:      b,
		Moderation: m,
		Hub:        hub,
		Storage:    s,
		jwtSecret:  []byte(jwtSecret),
		log:        log.With("service", "Handler"),
	}
}

// RegisterRoutes attaches every route to the router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/auth/signup", h.Signup)
	r.POST("/auth/signin", h.Signin)
	r.GET("/ws", h.ServeWebSocket)

	r.GET("/claims", h.ListClaims)
	r.GET("/claims/:id", h.GetClaim)

	auth := r.Group("/", h.RequireAuth())
	{
		auth.GET("/me", h.Me)
		auth.POST("/claims", h.CreateClaim)
		auth.DELETE("/claims/:id", h.DeleteClaim)
		auth.POST("/claims/:id/replies", h.CreateReply)
		auth.POST("/replies/:id/accept", h.AcceptReply)
		auth.POST("/replies/:id/reject", h.RejectReply)
		auth.GET("/threads/:id/messages", h.ListThreadMessages)
		auth.POST("/threads/:id/messages", h.SendThreadMessage)
		auth.POST("/reports", h.CreateReport)
	}
}

// respondError maps the board taxonomy onto HTTP statuses. Anything
// outside the taxonomy is an opaque 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, board.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, board.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, board.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, board.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error("Request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
