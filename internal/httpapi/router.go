package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/suPer8Hu/study-assistant/internal/app"
	"github.com/suPer8Hu/study-assistant/internal/common"
	"github.com/suPer8Hu/study-assistant/internal/httpapi/handlers"
	"github.com/suPer8Hu/study-assistant/internal/httpapi/middleware"
)

func NewRouter(a *app.App) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.Recovery(a.Log))

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(a.Log))

	h := handlers.NewHandler(a)

	r.GET("/ping", h.Ping)

	// users
	r.POST("/users", h.CreateUser)
	r.POST("/login", h.Login)

	// public NLP and knowledge browsing
	r.POST("/nlp/analyze", h.Analyze)
	kb := r.Group("/knowledge")
	kb.GET("/search", h.SearchKnowledge)
	kb.GET("/materials", h.Materials)
	kb.GET("/subjects", h.ListSubjects)
	kb.GET("/subjects/:subject/topics", h.ListTopics)
	kb.GET("/subjects/:subject/overview", h.SubjectOverview)
	kb.GET("/subjects/:subject/path", h.LearningPath)

	authGroup := r.Group("/")
	authGroup.Use(middleware.AuthRequired(a.Cfg.JWTSecret))
	authGroup.GET("/me", h.Me)
	authGroup.GET("/users/:id", h.GetUserByID)

	// chat (JWT required)
	authGroup.POST("/chat/messages", h.SendChatMessage)
	authGroup.GET("/chat/sessions", h.ListChatSessions)
	authGroup.POST("/chat/sessions/:session_id/end", h.EndChatSession)
	authGroup.GET("/chat/history", h.ChatHistory)
	authGroup.GET("/chat/search", h.SearchChat)
	authGroup.GET("/chat/suggestions", h.ChatSuggestion)
	authGroup.GET("/chat/study-suggestions", h.StudySuggestions)

	// study planner
	authGroup.POST("/study/schedules", h.CreateSchedule)
	authGroup.GET("/study/schedules", h.ListSchedules)
	authGroup.POST("/study/schedules/:id/complete", h.CompleteSchedule)
	authGroup.POST("/study/reminders", h.CreateReminder)
	authGroup.GET("/study/reminders", h.ListReminders)
	authGroup.POST("/study/reminders/:id/complete", h.CompleteReminder)
	authGroup.POST("/study/notes", h.CreateNote)
	authGroup.GET("/study/notes", h.ListNotes)
	return r
}
