package rabbitmq

import (
	"context"
	"strconv"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AttemptHeader counts how many times a turn message has been retried.
const AttemptHeader = "x-attempt"

func RetryQueue(queue string) string { return queue + ".retry" }

func DeadLetterQueue(queue string) string { return queue + ".dlq" }

// Attempts returns the delivery count recorded in headers, 1 for a message
// that was never retried.
func Attempts(headers amqp.Table) int {
	switch v := headers[AttemptHeader].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	}
	return 1
}

// RetryPublishing copies d for the retry queue. The queue has no TTL of its
// own; Expiration holds the message there for delay before it dead-letters
// back to the main queue.
func RetryPublishing(d amqp.Delivery, delay time.Duration) amqp.Publishing {
	headers := amqp.Table{}
	for k, v := range d.Headers {
		headers[k] = v
	}
	headers[AttemptHeader] = int32(Attempts(d.Headers) + 1)

	if delay < 0 {
		delay = 0
	}
	return amqp.Publishing{
		Headers:      headers,
		ContentType:  d.ContentType,
		DeliveryMode: amqp.Persistent,
		MessageId:    d.MessageId,
		Expiration:   strconv.FormatInt(delay.Milliseconds(), 10),
		Timestamp:    time.Now(),
		Body:         d.Body,
	}
}

// Retrier republishes failed deliveries to the retry queue of queue.
type Retrier struct {
	ch    *amqp.Channel
	queue string
	delay time.Duration
}

func NewRetrier(ch *amqp.Channel, queue string, delay time.Duration) *Retrier {
	return &Retrier{ch: ch, queue: queue, delay: delay}
}

func (r *Retrier) Retry(ctx context.Context, d amqp.Delivery) error {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.ch.PublishWithContext(cctx,
		"",
		RetryQueue(r.queue),
		false,
		false,
		RetryPublishing(d, r.delay),
	)
}
