package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/suPer8Hu/study-assistant/internal/common"
	"github.com/suPer8Hu/study-assistant/internal/study"
)

func (h *Handler) CreateSchedule(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	var in study.ScheduleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	sched, err := h.StudySvc.CreateSchedule(c.Request.Context(), uid, in)
	if err != nil {
		h.studyError(c, err)
		return
	}
	common.Created(c, sched)
}

func (h *Handler) ListSchedules(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	upcoming := c.Query("upcoming") == "true"
	items, err := h.StudySvc.Schedules(c.Request.Context(), uid, upcoming, queryLimit(c))
	if err != nil {
		h.internalError(c, 50020, "failed to list schedules", err)
		return
	}
	common.OK(c, gin.H{"schedules": items})
}

func (h *Handler) CompleteSchedule(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.StudySvc.CompleteSchedule(c.Request.Context(), uid, id); err != nil {
		h.studyError(c, err)
		return
	}
	common.OK(c, gin.H{"id": id, "status": study.StatusCompleted})
}

func (h *Handler) CreateReminder(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	var in study.ReminderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	rem, err := h.StudySvc.CreateReminder(c.Request.Context(), uid, in)
	if err != nil {
		h.studyError(c, err)
		return
	}
	common.Created(c, rem)
}

func (h *Handler) ListReminders(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	pending := c.Query("pending") == "true"
	items, err := h.StudySvc.Reminders(c.Request.Context(), uid, pending, queryLimit(c))
	if err != nil {
		h.internalError(c, 50021, "failed to list reminders", err)
		return
	}
	common.OK(c, gin.H{"reminders": items})
}

func (h *Handler) CompleteReminder(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.StudySvc.CompleteReminder(c.Request.Context(), uid, id); err != nil {
		h.studyError(c, err)
		return
	}
	common.OK(c, gin.H{"id": id, "is_completed": true})
}

func (h *Handler) CreateNote(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	var in study.NoteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	note, err := h.StudySvc.CreateNote(c.Request.Context(), uid, in)
	if err != nil {
		h.studyError(c, err)
		return
	}
	common.Created(c, note)
}

func (h *Handler) ListNotes(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	notes, err := h.StudySvc.Notes(c.Request.Context(), uid, c.Query("subject"), c.Query("q"), queryLimit(c))
	if err != nil {
		h.internalError(c, 50022, "failed to list notes", err)
		return
	}
	common.OK(c, gin.H{"notes": notes})
}

func pathID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, 10004, "invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) studyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, study.ErrInvalidSchedule),
		errors.Is(err, study.ErrInvalidReminder),
		errors.Is(err, study.ErrInvalidNote):
		common.Fail(c, http.StatusBadRequest, 10020, err.Error())
	case errors.Is(err, study.ErrNotFound):
		common.Fail(c, http.StatusNotFound, 40420, "record not found")
	default:
		h.internalError(c, 50023, "study store error", err)
	}
}
