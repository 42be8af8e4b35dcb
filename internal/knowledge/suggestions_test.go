package knowledge

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suPer8Hu/study-assistant/internal/study"
)

type fakeSchedules struct {
	subjects  []string
	err       error
	lastLimit int
}

func (f *fakeSchedules) ListSchedules(_ context.Context, _ uint64, limit int) ([]study.Schedule, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	out := make([]study.Schedule, 0, len(f.subjects))
	for _, s := range f.subjects {
		out = append(out, study.Schedule{Subject: s})
	}
	return out, nil
}

func TestStudySuggestions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.catalog.(*Repo).Create(ctx, &Entry{
		Subject: "general", Topic: "Study habits", Content: "Short daily sessions beat cramming.",
		Keywords: "study tips", Difficulty: Beginner, IsActive: true,
	}))

	lister := &fakeSchedules{subjects: []string{"mathematics", "history", "Mathematics", "underwater basket weaving"}}
	svc.WithSchedules(lister)

	got, err := svc.StudySuggestions(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, lister.lastLimit)
	require.Len(t, got, 3)

	assert.Equal(t, Suggestion{Subject: "mathematics", Type: SuggestionRelatedTopics, Topics: []string{"Algebra", "Algebra", "Calculus"}}, got[0])
	assert.Equal(t, Suggestion{Subject: "history", Type: SuggestionRelatedTopics, Topics: []string{"Ancient civilizations", "Modern history"}}, got[1])
	assert.Equal(t, Suggestion{Subject: "Study Tips", Type: SuggestionTips, Content: []string{"Short daily sessions beat cramming."}}, got[2])
}

func TestStudySuggestions_NothingToSuggest(t *testing.T) {
	svc := newTestService(t)

	got, err := svc.StudySuggestions(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	svc.WithSchedules(&fakeSchedules{})
	got, err = svc.StudySuggestions(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStudySuggestions_ScheduleStoreDown(t *testing.T) {
	svc := newTestService(t).WithSchedules(&fakeSchedules{err: errors.New("connection refused")})

	_, err := svc.StudySuggestions(context.Background(), 1)
	assert.Error(t, err)
}
