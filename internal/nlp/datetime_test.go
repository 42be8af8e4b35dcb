package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDateTime(t *testing.T) {
	cases := []struct {
		in    string
		dates []string
		times []string
	}{
		{"remind me tomorrow at 3pm", []string{"tomorrow"}, []string{"3pm"}},
		{"Remind me to study chemistry tomorrow at 2 PM", []string{"tomorrow"}, []string{"2 PM"}},
		{"exam on 12/25/2024 at 3:00 pm, Monday", []string{"12/25/2024", "Monday"}, []string{"3:00 pm"}},
		{"at 3:00 tomorrow", []string{"tomorrow"}, []string{"3:00"}},
		{"3:30pm", []string{}, []string{"3:30pm"}},
		{"see you next week in the evening", []string{"next week"}, []string{"evening"}},
		{"today and yesterday", []string{"today", "yesterday"}, []string{}},
		{"nothing to see", []string{}, []string{}},
		{"", []string{}, []string{}},
	}
	for _, tc := range cases {
		got := ExtractDateTime(tc.in)
		assert.Equal(t, tc.dates, got.Dates, tc.in)
		assert.Equal(t, tc.times, got.Times, tc.in)
	}
	assert.True(t, ExtractDateTime("hello").Empty())
	assert.False(t, ExtractDateTime("tomorrow").Empty())
}
