package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/suPer8Hu/study-assistant/internal/common"
	"github.com/suPer8Hu/study-assistant/internal/knowledge"
)

func (h *Handler) SearchKnowledge(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		common.Fail(c, http.StatusBadRequest, 10010, "q required")
		return
	}
	entries, err := h.KBSvc.Search(c.Request.Context(), q, c.Query("subject"), queryLimit(c))
	if err != nil {
		h.internalError(c, 50010, "knowledge search failed", err)
		return
	}
	common.OK(c, gin.H{"entries": entries})
}

func (h *Handler) ListSubjects(c *gin.Context) {
	subjects, err := h.KBSvc.Subjects(c.Request.Context())
	if err != nil {
		h.internalError(c, 50011, "failed to list subjects", err)
		return
	}
	common.OK(c, gin.H{"subjects": subjects})
}

func (h *Handler) ListTopics(c *gin.Context) {
	topics, err := h.KBSvc.Topics(c.Request.Context(), c.Param("subject"))
	if err != nil {
		h.internalError(c, 50012, "failed to list topics", err)
		return
	}
	common.OK(c, gin.H{"subject": c.Param("subject"), "topics": topics})
}

func (h *Handler) SubjectOverview(c *gin.Context) {
	ov, err := h.KBSvc.Overview(c.Request.Context(), c.Param("subject"))
	if err != nil {
		h.internalError(c, 50013, "failed to build overview", err)
		return
	}
	if ov == nil {
		common.Fail(c, http.StatusNotFound, 40410, "subject not found")
		return
	}
	common.OK(c, ov)
}

func (h *Handler) LearningPath(c *gin.Context) {
	level := knowledge.Difficulty(strings.ToLower(c.DefaultQuery("level", string(knowledge.Beginner))))
	lp, err := h.KBSvc.LearningPath(c.Request.Context(), c.Param("subject"), level)
	if err != nil {
		h.internalError(c, 50014, "failed to build learning path", err)
		return
	}
	if lp == nil {
		common.Fail(c, http.StatusNotFound, 40410, "subject not found")
		return
	}
	common.OK(c, lp)
}

func (h *Handler) Materials(c *gin.Context) {
	subject := strings.TrimSpace(c.Query("subject"))
	if subject == "" {
		common.Fail(c, http.StatusBadRequest, 10011, "subject required")
		return
	}
	diff := knowledge.Difficulty(strings.ToLower(c.Query("difficulty")))
	if diff != "" && !diff.Valid() {
		common.Fail(c, http.StatusBadRequest, 10012, "difficulty must be beginner, intermediate or advanced")
		return
	}
	entries, err := h.KBSvc.Materials(c.Request.Context(), subject, c.Query("topic"), diff)
	if err != nil {
		h.internalError(c, 50015, "failed to load materials", err)
		return
	}
	common.OK(c, gin.H{"entries": entries})
}
