package worker

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/suPer8Hu/study-assistant/internal/chat"
	"github.com/suPer8Hu/study-assistant/internal/store/rabbitmq"
)

type TurnStore interface {
	Persist(ctx context.Context, t *chat.Turn) error
}

type Retrier interface {
	Retry(ctx context.Context, d amqp.Delivery) error
}

// TurnHandler stores queued chat turns and settles their deliveries.
// A failed turn is sent to the retry queue until MaxAttempts, then
// dead-lettered. Without a Retrier failures dead-letter at once.
type TurnHandler struct {
	Store       TurnStore
	Retrier     Retrier
	MaxAttempts int
	Timeout     time.Duration
	Log         logrus.FieldLogger
}

// Handle runs under a context detached from ctx's cancellation: turns still
// queued when the worker shuts down are stored, not dead-lettered.
func (h *TurnHandler) Handle(ctx context.Context, d amqp.Delivery, t *chat.Turn) {
	start := time.Now()
	fields := logrus.Fields{"turn_id": t.ID, "session_id": t.SessionID}

	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := h.Store.Persist(pctx, t); err != nil {
		attempt := rabbitmq.Attempts(d.Headers)
		fields["error"] = err.Error()
		fields["attempt"] = attempt
		fields["cost"] = time.Since(start).String()

		if h.Retrier != nil && attempt < h.MaxAttempts {
			rerr := h.Retrier.Retry(pctx, d)
			if rerr == nil {
				h.Log.WithFields(fields).Warn("persist turn failed, retrying")
				_ = d.Ack(false)
				return
			}
			fields["retry_error"] = rerr.Error()
		}
		h.Log.WithFields(fields).Error("persist turn failed, dead-lettering")
		_ = d.Nack(false, false)
		return
	}

	if err := d.Ack(false); err != nil {
		fields["error"] = err.Error()
		h.Log.WithFields(fields).Warn("ack failed")
		return
	}
	if cost := time.Since(start); cost > 500*time.Millisecond {
		fields["cost"] = cost.String()
		h.Log.WithFields(fields).Info("slow turn persist")
	}
}
