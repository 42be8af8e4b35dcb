package rabbitmq

import (
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suPer8Hu/study-assistant/internal/chat"
)

func TestTurnCodec(t *testing.T) {
	at := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	in := &chat.Turn{
		ID:         "01HSESSIONTURN0000000000001",
		SessionID:  "01HSESSION0000000000000001",
		UserID:     7,
		Message:    "What is gravity?",
		Response:   "**Physics**\n\nNewton...",
		Intent:     "question",
		Confidence: 0.75,
		CreatedAt:  at,
	}
	body, err := EncodeTurn(in)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"turn_id":"01HSESSIONTURN0000000000001"`)

	out, err := DecodeTurn(body)
	require.NoError(t, err)
	assert.True(t, at.Equal(out.CreatedAt))
	out.CreatedAt = in.CreatedAt
	assert.Equal(t, in, out)
}

func TestDecodeTurn_Rejects(t *testing.T) {
	_, err := DecodeTurn([]byte(`{`))
	assert.Error(t, err)

	_, err = DecodeTurn([]byte(`{"turn_id":"x"}`))
	assert.Error(t, err)
}

func TestQueueNames(t *testing.T) {
	assert.Equal(t, "chat_turns.retry", RetryQueue("chat_turns"))
	assert.Equal(t, "chat_turns.dlq", DeadLetterQueue("chat_turns"))
}

func TestAttempts(t *testing.T) {
	assert.Equal(t, 1, Attempts(nil))
	assert.Equal(t, 1, Attempts(amqp.Table{AttemptHeader: "two"}))
	assert.Equal(t, 2, Attempts(amqp.Table{AttemptHeader: int32(2)}))
	assert.Equal(t, 4, Attempts(amqp.Table{AttemptHeader: int64(4)}))
}

func TestRetryPublishing(t *testing.T) {
	d := amqp.Delivery{
		Headers:     amqp.Table{"trace": "abc"},
		ContentType: "application/json",
		MessageId:   "01HSESSIONTURN0000000000001",
		Body:        []byte(`{"turn_id":"01HSESSIONTURN0000000000001"}`),
	}

	first := RetryPublishing(d, 1500*time.Millisecond)
	assert.Equal(t, "1500", first.Expiration)
	assert.Equal(t, int32(2), first.Headers[AttemptHeader])
	assert.Equal(t, "abc", first.Headers["trace"])
	assert.Equal(t, d.Body, first.Body)
	assert.Equal(t, d.MessageId, first.MessageId)
	assert.Equal(t, uint8(amqp.Persistent), first.DeliveryMode)
	assert.Nil(t, d.Headers[AttemptHeader])

	d.Headers = first.Headers
	second := RetryPublishing(d, -time.Second)
	assert.Equal(t, "0", second.Expiration)
	assert.Equal(t, 3, Attempts(second.Headers))
}
