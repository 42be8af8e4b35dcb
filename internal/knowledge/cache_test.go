package knowledge

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suPer8Hu/study-assistant/internal/logger"
)

type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	failSet bool
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return nil, errors.New("miss")
	}
	return b, nil
}

func (m *memCache) Set(_ context.Context, key string, val []byte, _ time.Duration) error {
	if m.failSet {
		return errors.New("read only")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = val
	return nil
}

type countingSource struct {
	Source
	subjects int
	bySubj   int
}

func (c *countingSource) ListSubjects(ctx context.Context) ([]string, error) {
	c.subjects++
	return c.Source.ListSubjects(ctx)
}

func (c *countingSource) GetBySubject(ctx context.Context, subject string, limit int) ([]Entry, error) {
	c.bySubj++
	return c.Source.GetBySubject(ctx, subject, limit)
}

func TestCachedSource_HitsCache(t *testing.T) {
	src := &countingSource{Source: seededRepo(t)}
	cache := &memCache{data: map[string][]byte{}}
	cs := NewCachedSource(src, cache, time.Minute, logger.Discard())
	ctx := context.Background()

	first, err := cs.ListSubjects(ctx)
	require.NoError(t, err)
	second, err := cs.ListSubjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.subjects)

	a, err := cs.GetBySubject(ctx, "Science", 20)
	require.NoError(t, err)
	b, err := cs.GetBySubject(ctx, "science", 20)
	require.NoError(t, err)
	assert.Equal(t, topics(a), topics(b))
	assert.Equal(t, 1, src.bySubj)

	_, err = cs.GetBySubject(ctx, "science", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, src.bySubj)
}

func TestCachedSource_CacheFailuresPassThrough(t *testing.T) {
	src := &countingSource{Source: seededRepo(t)}
	cache := &memCache{data: map[string][]byte{"kb:subjects": []byte("not json")}, failSet: true}
	cs := NewCachedSource(src, cache, time.Minute, logger.Discard())

	got, err := cs.ListSubjects(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 5)
	assert.Equal(t, 1, src.subjects)
}
