package noticesvc

import (
	"context"
	"sync"
	"time"

	"github.com/classportal/backend/core"
)

type notice struct {
	msg string
	gen uint64
}

// MemoryNotifier keeps notices in process and clears each one after its TTL.
type MemoryNotifier struct {
	mu      sync.Mutex
	ttl     time.Duration
	gen     uint64
	notices map[string]notice
}

var _ core.Notifier = (*MemoryNotifier)(nil)

func NewMemoryNotifier(ttl time.Duration) *MemoryNotifier {
	return &MemoryNotifier{ttl: ttl, notices: make(map[string]notice)}
}

func (n *MemoryNotifier) Notify(_ context.Context, key, msg string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.gen++
	gen := n.gen
	n.notices[key] = notice{msg: msg, gen: gen}
	time.AfterFunc(n.ttl, func() { n.clear(key, gen) })
	return nil
}

// clear drops the notice of `key` unless it was replaced since.
func (n *MemoryNotifier) clear(key string, gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if cur, ok := n.notices[key]; ok && cur.gen == gen {
		delete(n.notices, key)
	}
}

func (n *MemoryNotifier) Current(_ context.Context, key string) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.notices[key].msg, nil
}
