package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/suPer8Hu/study-assistant/internal/knowledge"
	"github.com/suPer8Hu/study-assistant/internal/logger"
	"github.com/suPer8Hu/study-assistant/internal/nlp"
	"github.com/suPer8Hu/study-assistant/internal/study"
)

const (
	keywordSearchLimit  = 10
	subjectLookupLimit  = 20
	subjectPreviewCount = 3
	previewRunes        = 100
	contentSearchLimit  = 15
	upcomingLimit       = 5
	suggestedSubjects   = 5
)

type KnowledgeSource interface {
	SearchByKeywords(ctx context.Context, terms string, limit int) ([]knowledge.Entry, error)
	GetBySubject(ctx context.Context, subject string, limit int) ([]knowledge.Entry, error)
	SearchContent(ctx context.Context, term string, limit int) ([]knowledge.Entry, error)
	ListSubjects(ctx context.Context) ([]string, error)
}

type ScheduleSource interface {
	Upcoming(ctx context.Context, userID uint64, limit int) ([]study.Schedule, error)
}

// Responder turns an analysis into reply text. Store failures degrade to
// the next fallback instead of failing the reply.
type Responder struct {
	knowledge KnowledgeSource
	schedules ScheduleSource
	picker    *Picker
	log       *logrus.Logger
}

func NewResponder(kb KnowledgeSource, schedules ScheduleSource, picker *Picker, log *logrus.Logger) *Responder {
	return &Responder{knowledge: kb, schedules: schedules, picker: picker, log: log}
}

func (r *Responder) Respond(ctx context.Context, a nlp.AnalysisResult, userID uint64) string {
	switch a.Intent {
	case nlp.IntentGreeting:
		return r.picker.Pick(greetingReplies)
	case nlp.IntentGoodbye:
		return r.picker.Pick(goodbyeReplies)
	case nlp.IntentQuestion:
		return r.question(ctx, a)
	case nlp.IntentStudyTip:
		return r.studyTip(a)
	case nlp.IntentReminder:
		return reminder(a)
	case nlp.IntentSchedule:
		return r.schedule(ctx, a, userID)
	case nlp.IntentNote:
		return noteGuide
	case nlp.IntentUnknown:
		return askForQuestion
	case nlp.IntentGeneral:
		return r.general(ctx, a)
	case nlp.IntentError:
		return apologyReply
	default:
		return r.general(ctx, a)
	}
}

func (r *Responder) question(ctx context.Context, a nlp.AnalysisResult) string {
	if len(a.Keywords) == 0 {
		return askForQuestion
	}

	entries, err := r.knowledge.SearchByKeywords(ctx, strings.Join(a.Keywords, " "), keywordSearchLimit)
	if err != nil {
		r.warn(ctx, err, "knowledge keyword search failed")
	}
	if len(entries) > 0 {
		best := entries[0]
		reply := fmt.Sprintf(questionMatchFormat, best.Topic, best.Content)
		if len(entries) > 1 {
			reply += fmt.Sprintf(questionMoreFormat, len(entries))
		}
		return reply
	}

	if a.Subject != "" {
		entries, err := r.knowledge.GetBySubject(ctx, a.Subject.String(), subjectLookupLimit)
		if err != nil {
			r.warn(ctx, err, "knowledge subject lookup failed")
		}
		if len(entries) > 0 {
			var b strings.Builder
			fmt.Fprintf(&b, subjectIntroFormat, a.Subject)
			for i, e := range entries {
				if i == subjectPreviewCount {
					break
				}
				fmt.Fprintf(&b, subjectEntryFormat, e.Topic, knowledge.Preview(e.Content, previewRunes))
			}
			b.WriteString(subjectOutro)
			return b.String()
		}
	}
	return noInformation
}

func (r *Responder) studyTip(a nlp.AnalysisResult) string {
	if pool, ok := subjectStudyTips[a.Subject]; ok {
		return fmt.Sprintf(subjectTipFormat, a.Subject, r.picker.Pick(pool))
	}
	return fmt.Sprintf(generalTipFormat, r.picker.Pick(generalStudyTips))
}

func reminder(a nlp.AnalysisResult) string {
	if !nlp.ExtractDateTime(a.OriginalMessage).Empty() {
		return reminderGuide
	}
	return reminderPrompt
}

func (r *Responder) schedule(ctx context.Context, a nlp.AnalysisResult, userID uint64) string {
	lower := strings.ToLower(a.OriginalMessage)
	if strings.Contains(lower, "create") || strings.Contains(lower, "make") {
		return scheduleGuide
	}

	sessions, err := r.schedules.Upcoming(ctx, userID, upcomingLimit)
	if err != nil {
		r.warn(ctx, err, "upcoming schedule lookup failed")
	}
	if len(sessions) == 0 {
		return scheduleEmpty
	}

	var b strings.Builder
	b.WriteString(scheduleListIntro)
	for _, s := range sessions {
		fmt.Fprintf(&b, scheduleEntryFormat, s.Subject, s.Topic, s.ScheduledDate, s.ScheduledTime, s.DurationMinutes)
	}
	b.WriteString(scheduleListOutro)
	return b.String()
}

func (r *Responder) general(ctx context.Context, a nlp.AnalysisResult) string {
	if len(a.Keywords) > 0 {
		entries, err := r.knowledge.SearchContent(ctx, strings.Join(a.Keywords, " "), contentSearchLimit)
		if err != nil {
			r.warn(ctx, err, "knowledge content search failed")
		}
		if len(entries) > 0 {
			return fmt.Sprintf(generalMatchFormat, entries[0].Topic, entries[0].Content)
		}
	}

	reply := r.picker.Pick(fallbackReplies)
	subjects, err := r.knowledge.ListSubjects(ctx)
	if err != nil {
		r.warn(ctx, err, "knowledge subject listing failed")
	}
	if len(subjects) > 0 {
		shown := subjects
		if len(shown) > suggestedSubjects {
			shown = shown[:suggestedSubjects]
		}
		reply += fmt.Sprintf(subjectsSuffix, strings.Join(shown, ", "))
		if len(subjects) > suggestedSubjects {
			reply += moreSubjects
		}
	}
	return reply
}

func (r *Responder) warn(ctx context.Context, err error, msg string) {
	logger.WithRequestID(r.log, ctx).WithField("error", err.Error()).Warn(msg)
}
