package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListThreadMessages returns a thread's full history, oldest first.
// Participants only.
func (h *Handler) ListThreadMessages(c *gin.Context) {
	messages, err := h.Board.ThreadMessages(actorID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// SendThreadMessage appends a message to the thread as the actor. The
// stored message comes back in the response; the other participant gets
// it over the live feed.
func (h *Handler) SendThreadMessage(c *gin.Context) {
	var req struct {
		Body string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	msg, err := h.Board.SendMessage(actorID(c), c.Param("id"), req.Body)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// CreateReport files a report against a reply's author.
func (h *Handler) CreateReport(c *gin.Context) {
	var req struct {
		ReplyID string `json:"reply_id"`
		Reason  string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ReplyID == "" || req.Reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reply_id and reason are required"})
		return
	}

	report, err := h.Moderation.FileReport(actorID(c), req.ReplyID, req.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}
