package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/suPer8Hu/study-assistant/internal/common"
	"github.com/suPer8Hu/study-assistant/internal/nlp"
)

type analyzeReq struct {
	Text string `json:"text" binding:"max=4000"`
}

type analyzeResp struct {
	nlp.AnalysisResult
	IsQuestion    bool         `json:"is_question"`
	DateTime      nlp.DateTime `json:"datetime"`
	StudyMinutes  int          `json:"study_minutes"`
	ReplyKeywords []string     `json:"response_keywords"`
	Advanced      bool         `json:"advanced"`
}

func (h *Handler) Analyze(c *gin.Context) {
	var req analyzeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	a := h.Analyzer.Analyze(c.Request.Context(), req.Text)
	common.OK(c, analyzeResp{
		AnalysisResult: a,
		IsQuestion:     nlp.IsQuestion(req.Text),
		DateTime:       nlp.ExtractDateTime(req.Text),
		StudyMinutes:   nlp.ExtractStudyDuration(req.Text),
		ReplyKeywords:  h.Analyzer.Subjects().ResponseKeywords(a.Keywords, a.Subject),
		Advanced:       h.Analyzer.Advanced(),
	})
}
