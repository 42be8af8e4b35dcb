package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/suPer8Hu/study-assistant/internal/chat"
	"github.com/suPer8Hu/study-assistant/internal/config"
	"github.com/suPer8Hu/study-assistant/internal/db"
	"github.com/suPer8Hu/study-assistant/internal/knowledge"
	"github.com/suPer8Hu/study-assistant/internal/linguistic"
	"github.com/suPer8Hu/study-assistant/internal/nlp"
	"github.com/suPer8Hu/study-assistant/internal/store/rabbitmq"
	"github.com/suPer8Hu/study-assistant/internal/store/redisstore"
	"github.com/suPer8Hu/study-assistant/internal/study"
)

// App holds the services every binary shares.
type App struct {
	Cfg config.Config
	Log *logrus.Logger
	DB  *gorm.DB

	Analyzer  *nlp.Analyzer
	Chat      *chat.Service
	Dialogue  *chat.DialogueManager
	Knowledge *knowledge.Service
	Study     *study.Service

	redis     *redisstore.Store
	publisher *rabbitmq.Publisher
}

type Option func(*options)

type options struct {
	publishTurns bool
}

// WithTurnPublishing makes chat turns go through the turn queue when
// cfg.AsyncTurns is set. Only the API server enables it; the worker is the
// consumer of that queue.
func WithTurnPublishing() Option {
	return func(o *options) { o.publishTurns = true }
}

// New connects the stores, migrates, seeds the knowledge base and wires the
// services. Redis, RabbitMQ and the linguistic backend are optional: when one
// is not configured or not reachable the app runs without it.
func New(ctx context.Context, cfg config.Config, log *logrus.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	a := &App{Cfg: cfg, Log: log, DB: gdb}
	if err := db.Migrate(gdb); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	kbRepo := knowledge.NewRepo(gdb)
	if n, err := knowledge.Seed(ctx, kbRepo); err != nil {
		log.WithField("error", err.Error()).Warn("seed knowledge base failed")
	} else if n > 0 {
		log.WithField("entries", n).Info("knowledge base seeded")
	}

	analyzer, err := a.buildAnalyzer(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Analyzer = analyzer

	var kbSource chat.KnowledgeSource = kbRepo
	if cfg.RedisAddr != "" {
		rds := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rds.Ping(ctx); err != nil {
			log.WithFields(logrus.Fields{"addr": cfg.RedisAddr, "error": err.Error()}).
				Warn("redis unavailable, knowledge cache disabled")
			_ = rds.Close()
		} else {
			a.redis = rds
			kbSource = knowledge.NewCachedSource(kbRepo, rds, cfg.KnowledgeCacheTTL, log)
		}
	}

	studyRepo := study.NewRepo(gdb)
	chatRepo := chat.NewRepo(gdb)

	a.Dialogue = chat.NewDialogueManager(chatRepo, chatRepo, log)
	if o.publishTurns && cfg.AsyncTurns {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
		if err != nil {
			log.WithField("error", err.Error()).Warn("rabbitmq unavailable, turns are written inline")
		} else {
			a.publisher = pub
			a.Dialogue.WithPublisher(pub)
		}
	}

	responder := chat.NewResponder(kbSource, studyRepo, chat.NewPicker(cfg.RandomSeed), log)
	a.Chat = chat.NewService(analyzer, responder, a.Dialogue, chatRepo, log)
	a.Knowledge = knowledge.NewService(kbRepo, analyzer, log).WithSchedules(studyRepo)
	a.Study = study.NewService(studyRepo, log)
	return a, nil
}

func (a *App) buildAnalyzer(ctx context.Context) (*nlp.Analyzer, error) {
	tables, err := nlp.LoadTables(a.Cfg.NLPTablesPath)
	if err != nil {
		return nil, err
	}

	parser, err := linguistic.DefaultRegistry().Get(ctx, a.Cfg.NLPBackend, linguistic.Settings{
		BaseURL: a.Cfg.NLPBackendURL,
		Timeout: a.Cfg.NLPBackendTimeout,
	})
	if err != nil {
		a.Log.WithField("error", err.Error()).Warn("linguistic backend not available")
		parser = nil
	}

	extractor := nlp.NewExtractor(ctx, parser, tables.StopwordSet(), a.Log)
	return nlp.NewAnalyzerFromTables(tables, extractor)
}

func (a *App) Close() error {
	if a.publisher != nil {
		_ = a.publisher.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			return sqlDB.Close()
		}
	}
	return nil
}
