package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsQuestion(t *testing.T) {
	assert.True(t, IsQuestion("gravity?"))
	assert.True(t, IsQuestion("Why is the sky blue"))
	assert.True(t, IsQuestion("do you know algebra"))
	assert.True(t, IsQuestion("Is it raining?"))
	assert.False(t, IsQuestion("I like history"))
	assert.False(t, IsQuestion(""))
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 0.5, Similarity("a b c", "b c d"), 1e-9)
	assert.InDelta(t, 1.0, Similarity("Study Math", "study math"), 1e-9)
	assert.Equal(t, 0.0, Similarity("", ""))
	assert.Equal(t, 0.0, Similarity("one", "two"))
}
