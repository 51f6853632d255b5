package cache

import (
	"context"
	"sync"
	"time"
)

// defaultSweepEvery bounds how many writes may pass between sweeps.
const defaultSweepEvery = 256

type entry struct {
	b   []byte
	exp time.Time
}

// TTLCache is an in-process BytesCache. Expired entries are dropped on read,
// every sweepEvery writes and, when an interval is set, by a janitor
// goroutine that runs until Close.
type TTLCache struct {
	mu         sync.RWMutex
	m          map[string]entry
	now        func() time.Time
	writes     int
	sweepEvery int

	interval  time.Duration
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

type TTLOption func(*TTLCache)

// WithSweepInterval starts a janitor that sweeps on every tick.
func WithSweepInterval(d time.Duration) TTLOption {
	return func(c *TTLCache) { c.interval = d }
}

// WithNow replaces the clock.
func WithNow(now func() time.Time) TTLOption {
	return func(c *TTLCache) {
		if now != nil {
			c.now = now
		}
	}
}

func NewTTLCache(opts ...TTLOption) *TTLCache {
	c := &TTLCache{
		m:          make(map[string]entry),
		now:        time.Now,
		sweepEvery: defaultSweepEvery,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.interval > 0 {
		c.stop = make(chan struct{})
		c.done = make(chan struct{})
		go c.janitor()
	}
	return c
}

func (c *TTLCache) janitor() {
	defer close(c.done)
	t := time.NewTicker(c.interval)
	defer t.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-t.C:
			c.Sweep()
		}
	}
}

// Close stops the janitor. It is safe to call more than once.
func (c *TTLCache) Close() error {
	c.closeOnce.Do(func() {
		if c.stop != nil {
			close(c.stop)
			<-c.done
		}
	})
	return nil
}

func (c *TTLCache) GetBytes(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.exp.IsZero() && c.now().After(e.exp) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	out := make([]byte, len(e.b))
	copy(out, e.b)
	return out, true, nil
}

// SetBytes stores a copy of value. A non-positive ttl never expires.
func (c *TTLCache) SetBytes(_ context.Context, key string, value []byte, ttl time.Duration) error {
	now := c.now()
	var exp time.Time
	if ttl > 0 {
		exp = now.Add(ttl)
	}
	b := make([]byte, len(value))
	copy(b, value)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes++
	if c.sweepEvery > 0 && c.writes%c.sweepEvery == 0 {
		c.sweepLocked(now)
	}
	c.m[key] = entry{b: b, exp: exp}
	return nil
}

// Sweep removes expired entries and returns how many were dropped.
func (c *TTLCache) Sweep() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sweepLocked(now)
}

func (c *TTLCache) sweepLocked(now time.Time) int {
	n := 0
	for k, e := range c.m {
		if !e.exp.IsZero() && now.After(e.exp) {
			delete(c.m, k)
			n++
		}
	}
	return n
}

func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
