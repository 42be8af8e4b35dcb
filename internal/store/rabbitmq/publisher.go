package rabbitmq

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/suPer8Hu/study-assistant/internal/chat"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Publisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// TurnMessage is the wire form of a chat turn waiting to be persisted.
type TurnMessage struct {
	TurnID     string    `json:"turn_id"`
	SessionID  string    `json:"session_id"`
	UserID     uint64    `json:"user_id"`
	Message    string    `json:"message"`
	Response   string    `json:"response"`
	Intent     string    `json:"intent"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

func EncodeTurn(t *chat.Turn) ([]byte, error) {
	return json.Marshal(TurnMessage{
		TurnID:     t.ID,
		SessionID:  t.SessionID,
		UserID:     t.UserID,
		Message:    t.Message,
		Response:   t.Response,
		Intent:     t.Intent,
		Confidence: t.Confidence,
		CreatedAt:  t.CreatedAt,
	})
}

func DecodeTurn(body []byte) (*chat.Turn, error) {
	var m TurnMessage
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, err
	}
	if m.TurnID == "" || m.SessionID == "" {
		return nil, fmt.Errorf("turn message missing ids")
	}
	return &chat.Turn{
		ID:         m.TurnID,
		SessionID:  m.SessionID,
		UserID:     m.UserID,
		Message:    m.Message,
		Response:   m.Response,
		Intent:     m.Intent,
		Confidence: m.Confidence,
		CreatedAt:  m.CreatedAt,
	}, nil
}

// DeclareTopology declares the main queue with its retry and dead-letter
// queues. Publisher and worker must agree on these arguments.
func DeclareTopology(ch *amqp.Channel, queue string) error {
	mainQ := queue
	retryQ := RetryQueue(queue)
	dlqQ := DeadLetterQueue(queue)

	// DLQ
	if _, err := ch.QueueDeclare(
		dlqQ,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false,
		nil,
	); err != nil {
		return fmt.Errorf("declare %s: %w", dlqQ, err)
	}

	// Retry queue: message TTL -> dead-letter back to main queue
	if _, err := ch.QueueDeclare(
		retryQ,
		true,
		false,
		false,
		false,
		amqp.Table{
			"x-dead-letter-exchange":    "",
			"x-dead-letter-routing-key": mainQ,
		},
	); err != nil {
		return fmt.Errorf("declare %s: %w", retryQ, err)
	}

	// Main queue: dead-letter to DLQ on reject/nack(requeue=false)
	if _, err := ch.QueueDeclare(
		mainQ,
		true,
		false,
		false,
		false,
		amqp.Table{
			"x-dead-letter-exchange":    "",
			"x-dead-letter-routing-key": dlqQ,
		},
	); err != nil {
		return fmt.Errorf("declare %s: %w", mainQ, err)
	}
	return nil
}

func NewPublisher(url, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := DeclareTopology(ch, queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch, queue: queue}, nil
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// PublishTurn implements chat.TurnPublisher.
func (p *Publisher) PublishTurn(ctx context.Context, t *chat.Turn) error {
	body, err := EncodeTurn(t)
	if err != nil {
		return err
	}

	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(cctx,
		"",      // default exchange
		p.queue, // routing key = queue
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    t.ID,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
}
