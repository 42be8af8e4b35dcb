package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	kw := func(n int) []string { return make([]string, n) }

	assert.Equal(t, 0.0, Score(IntentUnknown, "", nil))
	assert.InDelta(t, 0.3, Score(IntentQuestion, "", nil), 1e-9)
	assert.InDelta(t, 0.75, Score(IntentQuestion, SubjectScience, kw(3)), 1e-9)
	assert.InDelta(t, 1.0, Score(IntentQuestion, SubjectScience, kw(8)), 1e-9)
	assert.InDelta(t, 1.0, Score(IntentGeneral, SubjectHistory, kw(10)), 1e-9)
	assert.InDelta(t, 0.7, Score(IntentUnknown, SubjectHistory, kw(20)), 1e-9)
}

func TestScore_Bounds(t *testing.T) {
	for _, i := range Intents() {
		for _, s := range []Subject{"", SubjectEnglish} {
			for n := 0; n <= 12; n++ {
				c := Score(i, s, make([]string, n))
				assert.GreaterOrEqual(t, c, 0.0)
				assert.LessOrEqual(t, c, 1.0)
			}
		}
	}
}
