// Package screenshot provides the shared single-slot screen capture cache.
//
// The cascade's OCR tier and the vision tier's background pre-fetch share one
// slot. Writers build a complete Capture and swap a single pointer, so a
// concurrent reader sees either the old capture or a fully new one, never a
// torn value.
package screenshot

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/screenpilot-dev/screenpilot/pkg/core"
	"github.com/screenpilot-dev/screenpilot/pkg/logger"
)

// DefaultTTL is how long a capture stays fresh. Matches the latency of one
// tier attempt, so repeated resolutions reuse one device round trip.
const DefaultTTL = 3 * time.Second

// CaptureFunc produces a fresh PNG screenshot.
type CaptureFunc func() ([]byte, error)

// Capture is one immutable screenshot slot value.
type Capture struct {
	PNG   []byte
	Taken time.Time
}

// Cache holds the most recent capture for a TTL window.
type Cache struct {
	capture CaptureFunc
	ttl     time.Duration

	slot atomic.Pointer[Capture]
	mu   sync.Mutex // serializes device round trips, not reads

	watchStop chan struct{}
	watchWG   sync.WaitGroup
}

// NewCache creates a Cache around the capture function. A non-positive ttl
// falls back to DefaultTTL.
func NewCache(fn CaptureFunc, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{capture: fn, ttl: ttl}
}

// Get returns the cached capture when it is within the TTL, otherwise (or
// when force is set) performs exactly one new capture and swaps the slot.
func (c *Cache) Get(force bool) (*Capture, error) {
	if !force {
		if cap := c.slot.Load(); cap != nil && time.Since(cap.Taken) < c.ttl {
			return cap, nil
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock
	if !force {
		if cap := c.slot.Load(); cap != nil && time.Since(cap.Taken) < c.ttl {
			return cap, nil
		}
	}

	return c.refresh()
}

// Peek returns the current slot regardless of age, without a device round
// trip. Nil when nothing has been captured yet.
func (c *Cache) Peek() *Capture {
	return c.slot.Load()
}

// refresh captures and swaps the slot. Caller holds c.mu.
func (c *Cache) refresh() (*Capture, error) {
	png, err := c.capture()
	if err != nil {
		return nil, core.ErrScreenshotFailed.WithCause(err)
	}
	cap := &Capture{PNG: png, Taken: time.Now()}
	c.slot.Store(cap)
	return cap, nil
}

// StartWatcher begins refreshing the slot in the background so the vision
// tier finds a pre-warmed capture. A non-positive interval defaults to half
// the TTL. No-op if already watching.
func (c *Cache) StartWatcher(interval time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.watchStop != nil {
		return
	}
	if interval <= 0 {
		interval = c.ttl / 2
	}

	stop := make(chan struct{})
	c.watchStop = stop
	c.watchWG.Add(1)

	go func() {
		defer c.watchWG.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				c.mu.Lock()
				if _, err := c.refresh(); err != nil {
					logger.Warn("background capture failed: %v", err)
				}
				c.mu.Unlock()
			}
		}
	}()
}

// StopWatcher stops the background refresh loop and waits for it to exit.
func (c *Cache) StopWatcher() {
	c.mu.Lock()
	stop := c.watchStop
	c.watchStop = nil
	c.mu.Unlock()

	if stop != nil {
		close(stop)
		c.watchWG.Wait()
	}
}
