package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/suPer8Hu/study-assistant/internal/chat"
	"github.com/suPer8Hu/study-assistant/internal/common"
)

type sendMessageReq struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"max=4000"`
}

// SendChatMessage always answers 200: an empty message gets a clarifying
// reply and store failures only cost the session id.
func (h *Handler) SendChatMessage(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}

	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	res := h.ChatSvc.ProcessMessage(c.Request.Context(), uid, req.Message, req.SessionID)
	common.OK(c, res)
}

func (h *Handler) ListChatSessions(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	sessions, err := h.ChatSvc.Sessions(c.Request.Context(), uid, queryLimit(c))
	if err != nil {
		h.internalError(c, 50002, "failed to list sessions", err)
		return
	}
	common.OK(c, gin.H{"sessions": sessions})
}

func (h *Handler) EndChatSession(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	sessionID := c.Param("session_id")
	if err := h.ChatSvc.EndSession(c.Request.Context(), uid, sessionID); err != nil {
		if errors.Is(err, chat.ErrSessionNotFound) {
			common.Fail(c, http.StatusNotFound, 40004, "session not found")
			return
		}
		h.internalError(c, 50003, "failed to end session", err)
		return
	}
	common.OK(c, gin.H{"session_id": sessionID, "ended": true})
}

func (h *Handler) ChatHistory(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	turns, err := h.ChatSvc.History(c.Request.Context(), uid, c.Query("session_id"), queryLimit(c))
	if err != nil {
		h.internalError(c, 50004, "failed to load history", err)
		return
	}
	common.OK(c, gin.H{"turns": turns})
}

func (h *Handler) SearchChat(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	turns, err := h.ChatSvc.Search(c.Request.Context(), uid, c.Query("q"), queryLimit(c))
	if err != nil {
		h.internalError(c, 50005, "failed to search history", err)
		return
	}
	common.OK(c, gin.H{"turns": turns})
}

func (h *Handler) ChatSuggestion(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	s, err := h.ChatSvc.Suggestion(c.Request.Context(), uid)
	if err != nil {
		h.internalError(c, 50006, "failed to build suggestion", err)
		return
	}
	common.OK(c, gin.H{"suggestion": s})
}

// StudySuggestions suggests topics from the subjects of the user's recent
// schedules.
func (h *Handler) StudySuggestions(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	out, err := h.KBSvc.StudySuggestions(c.Request.Context(), uid)
	if err != nil {
		h.internalError(c, 50007, "failed to retrieve suggestions", err)
		return
	}
	common.OK(c, gin.H{"suggestions": out})
}
