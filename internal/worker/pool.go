package worker

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
)

var ErrClosed = errors.New("worker pool closed")

// Pool runs jobs on a fixed set of goroutines. Jobs submitted with the same
// key always land on the same goroutine, so they run one at a time and in
// submission order.
type Pool struct {
	shards []chan func()
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// New starts n workers, each with a queue of depth buffered jobs.
func New(n, depth int) *Pool {
	if n <= 0 {
		n = 1
	}
	if depth < 0 {
		depth = 0
	}
	p := &Pool{shards: make([]chan func(), n)}
	p.wg.Add(n)
	for i := range p.shards {
		jobs := make(chan func(), depth)
		p.shards[i] = jobs
		go func() {
			defer p.wg.Done()
			for job := range jobs {
				job()
			}
		}()
	}
	return p
}

func (p *Pool) Size() int { return len(p.shards) }

// Submit queues job on the worker owning key. It blocks while that worker's
// queue is full, until ctx is done.
func (p *Pool) Submit(ctx context.Context, key string, job func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.shards[p.shard(key)] <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) shard(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(p.shards)))
}

// Close stops accepting jobs and waits for queued ones to finish.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	for _, jobs := range p.shards {
		close(jobs)
	}
	p.mu.Unlock()
	p.wg.Wait()
}
