package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultClassifier(t *testing.T) *IntentClassifier {
	t.Helper()
	c, err := DefaultTables().IntentClassifier()
	require.NoError(t, err)
	return c
}

func TestClassify(t *testing.T) {
	c := defaultClassifier(t)

	cases := []struct {
		name string
		in   string
		want Intent
	}{
		{"empty", "", IntentUnknown},
		{"whitespace", "   \t\n", IntentUnknown},
		{"question beats greeting", "Hello, how are you?", IntentQuestion},
		{"plain greeting", "hey there", IntentGreeting},
		{"greeting upper case", "HELLO", IntentGreeting},
		{"question mark", "photosynthesis?", IntentQuestion},
		{"polite request is a question", "Can you remind me tomorrow", IntentQuestion},
		{"study tip", "give me some study tips", IntentStudyTip},
		{"reminder", "remind me tomorrow at 3pm", IntentReminder},
		{"schedule word goes to reminder first", "schedule my week", IntentReminder},
		{"schedule", "make a timetable for finals", IntentSchedule},
		{"note", "take notes on photosynthesis", IntentNote},
		{"goodbye", "bye", IntentGoodbye},
		{"thanks is goodbye", "thanks", IntentGoodbye},
		{"no pattern", "photosynthesis", IntentGeneral},
		{"word boundary", "history", IntentGeneral},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.Classify(tc.in))
		})
	}
}

func TestIntentValid(t *testing.T) {
	for _, i := range Intents() {
		assert.True(t, i.Valid(), i)
	}
	assert.False(t, Intent("chitchat").Valid())
	assert.Len(t, Intents(), 10)
}
