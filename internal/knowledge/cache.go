package knowledge

import (
	"context"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Source is the read side of the knowledge base.
type Source interface {
	SearchByKeywords(ctx context.Context, terms string, limit int) ([]Entry, error)
	GetBySubject(ctx context.Context, subject string, limit int) ([]Entry, error)
	SearchContent(ctx context.Context, term string, limit int) ([]Entry, error)
	ListSubjects(ctx context.Context) ([]string, error)
}

// Cache is a byte store with expiry. Any Get error counts as a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// CachedSource caches the subject listings, which change only when the
// knowledge base is reseeded. Searches always go to the store.
type CachedSource struct {
	Source
	cache Cache
	ttl   time.Duration
	log   logrus.FieldLogger
}

func NewCachedSource(src Source, cache Cache, ttl time.Duration, log logrus.FieldLogger) *CachedSource {
	return &CachedSource{Source: src, cache: cache, ttl: ttl, log: log}
}

func (c *CachedSource) ListSubjects(ctx context.Context) ([]string, error) {
	key := "kb:subjects"
	var out []string
	if c.load(ctx, key, &out) {
		return out, nil
	}
	out, err := c.Source.ListSubjects(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, out)
	return out, nil
}

func (c *CachedSource) GetBySubject(ctx context.Context, subject string, limit int) ([]Entry, error) {
	key := fmt.Sprintf("kb:subject:%s:%d", strings.ToLower(subject), limit)
	var out []Entry
	if c.load(ctx, key, &out) {
		return out, nil
	}
	out, err := c.Source.GetBySubject(ctx, subject, limit)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, out)
	return out, nil
}

func (c *CachedSource) load(ctx context.Context, key string, v any) bool {
	b, err := c.cache.Get(ctx, key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		c.log.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("drop undecodable cache entry")
		return false
	}
	return true
}

func (c *CachedSource) store(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, b, c.ttl); err != nil {
		c.log.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("knowledge cache write failed")
	}
}
