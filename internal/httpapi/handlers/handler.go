package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/suPer8Hu/study-assistant/internal/app"
	"github.com/suPer8Hu/study-assistant/internal/chat"
	"github.com/suPer8Hu/study-assistant/internal/common"
	"github.com/suPer8Hu/study-assistant/internal/config"
	"github.com/suPer8Hu/study-assistant/internal/httpapi/middleware"
	"github.com/suPer8Hu/study-assistant/internal/knowledge"
	"github.com/suPer8Hu/study-assistant/internal/logger"
	"github.com/suPer8Hu/study-assistant/internal/nlp"
	"github.com/suPer8Hu/study-assistant/internal/study"
)

type Handler struct {
	DB  *gorm.DB
	Cfg config.Config
	Log *logrus.Logger

	Analyzer *nlp.Analyzer
	ChatSvc  *chat.Service
	KBSvc    *knowledge.Service
	StudySvc *study.Service
}

func NewHandler(a *app.App) *Handler {
	return &Handler{
		DB:       a.DB,
		Cfg:      a.Cfg,
		Log:      a.Log,
		Analyzer: a.Analyzer,
		ChatSvc:  a.Chat,
		KBSvc:    a.Knowledge,
		StudySvc: a.Study,
	}
}

func (h *Handler) Ping(c *gin.Context) {
	common.OK(c, gin.H{"pong": true, "advanced_nlp": h.Analyzer.Advanced()})
}

func userIDFromContext(c *gin.Context) (uint64, bool) {
	return middleware.UserID(c)
}

// mustUser writes a 401 and returns false when the request carries no user.
func mustUser(c *gin.Context) (uint64, bool) {
	uid, ok := userIDFromContext(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
	}
	return uid, ok
}

func queryLimit(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil || n < 0 {
		return 0
	}
	if n > 200 {
		return 200
	}
	return n
}

func (h *Handler) internalError(c *gin.Context, code int, msg string, err error) {
	logger.WithRequestID(h.Log, c.Request.Context()).WithFields(logrus.Fields{
		"path":  c.FullPath(),
		"error": err.Error(),
	}).Error(msg)
	common.Fail(c, http.StatusInternalServerError, code, msg)
}
