package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/suPer8Hu/study-assistant/internal/app"
	"github.com/suPer8Hu/study-assistant/internal/config"
	"github.com/suPer8Hu/study-assistant/internal/logger"
	"github.com/suPer8Hu/study-assistant/internal/store/rabbitmq"
	"github.com/suPer8Hu/study-assistant/internal/worker"
)

// The worker drains the turn queue written by the API when ASYNC_TURNS is
// on. Turns of one session are handled by one goroutine so they are stored
// in the order they were produced.
func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Level: cfg.LogLevel, AppEnv: cfg.AppEnv})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.WithField("error", err.Error()).Fatal("startup failed")
	}
	defer a.Close()

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		log.WithField("error", err.Error()).Fatal("rabbit dial")
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.WithField("error", err.Error()).Fatal("rabbit channel")
	}
	defer ch.Close()

	if err := rabbitmq.DeclareTopology(ch, cfg.RabbitQueue); err != nil {
		log.WithField("error", err.Error()).Fatal("declare queues")
	}

	//  strict concurrency control
	concurrency := cfg.WorkerConcurrency
	if err := ch.Qos(concurrency*2, 0, false); err != nil {
		log.WithField("error", err.Error()).Fatal("qos")
	}

	// retries are published on their own channel
	pubCh, err := conn.Channel()
	if err != nil {
		log.WithField("error", err.Error()).Fatal("rabbit retry channel")
	}
	defer pubCh.Close()

	handler := &worker.TurnHandler{
		Store:       a.Dialogue,
		Retrier:     rabbitmq.NewRetrier(pubCh, cfg.RabbitQueue, cfg.WorkerRetryDelay),
		MaxAttempts: cfg.WorkerMaxAttempts,
		Timeout:     cfg.WorkerTurnTimeout,
		Log:         log,
	}

	msgs, err := ch.Consume(cfg.RabbitQueue, "", false, false, false, false, nil)
	if err != nil {
		log.WithField("error", err.Error()).Fatal("consume")
	}

	log.WithFields(logrus.Fields{
		"queue":       cfg.RabbitQueue,
		"concurrency": concurrency,
		"attempts":    cfg.WorkerMaxAttempts,
	}).Info("worker started")

	pool := worker.New(concurrency, concurrency*2)
	defer pool.Close()

	// dispatcher
	for {
		select {
		case <-ctx.Done():
			log.Info("worker shutting down")
			return

		case d, ok := <-msgs:
			if !ok {
				log.Warn("delivery channel closed")
				return
			}
			turn, err := rabbitmq.DecodeTurn(d.Body)
			if err != nil {
				log.WithField("error", err.Error()).Warn("bad turn message")
				_ = d.Nack(false, false)
				continue
			}
			if err := pool.Submit(ctx, turn.SessionID, func() { handler.Handle(ctx, d, turn) }); err != nil {
				_ = d.Nack(false, true)
			}
		}
	}
}
