package chat

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Picker chooses template variants. It is safe for concurrent use.
type Picker struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewPicker returns a deterministic picker for a non-zero seed and a
// clock-seeded one for seed 0.
func NewPicker(seed int64) *Picker {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Picker{rnd: rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))}
}

func (p *Picker) Pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	p.mu.Lock()
	i := p.rnd.IntN(len(pool))
	p.mu.Unlock()
	return pool[i]
}
