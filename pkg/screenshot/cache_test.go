package screenshot

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func countingCapture(calls *atomic.Int32) CaptureFunc {
	return func() ([]byte, error) {
		n := calls.Add(1)
		return []byte(fmt.Sprintf("png-%d", n)), nil
	}
}

func TestCache_IdempotentWithinTTL(t *testing.T) {
	var calls atomic.Int32
	c := NewCache(countingCapture(&calls), time.Minute)

	first, err := c.Get(false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.Get(false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls.Load() != 1 {
		t.Errorf("expected exactly 1 capture, got %d", calls.Load())
	}
	if first != second {
		t.Error("expected identical capture within TTL")
	}
	if string(first.PNG) != "png-1" {
		t.Errorf("unexpected capture bytes: %s", first.PNG)
	}
}

func TestCache_RefreshAfterTTL(t *testing.T) {
	var calls atomic.Int32
	c := NewCache(countingCapture(&calls), 10*time.Millisecond)

	first, _ := c.Get(false)
	time.Sleep(20 * time.Millisecond)
	second, err := c.Get(false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls.Load() != 2 {
		t.Errorf("expected exactly 2 captures, got %d", calls.Load())
	}
	if !second.Taken.After(first.Taken) {
		t.Error("expected the second capture to be newer")
	}
}

func TestCache_ForceBypassesTTL(t *testing.T) {
	var calls atomic.Int32
	c := NewCache(countingCapture(&calls), time.Minute)

	c.Get(false)
	c.Get(true)

	if calls.Load() != 2 {
		t.Errorf("expected force to trigger a new capture, got %d calls", calls.Load())
	}
}

func TestCache_CaptureFailure(t *testing.T) {
	c := NewCache(func() ([]byte, error) {
		return nil, fmt.Errorf("device offline")
	}, time.Minute)

	if _, err := c.Get(false); err == nil {
		t.Fatal("expected error from failing capture")
	}
	if c.Peek() != nil {
		t.Error("failed capture must not populate the slot")
	}
}

func TestCache_PeekDoesNotCapture(t *testing.T) {
	var calls atomic.Int32
	c := NewCache(countingCapture(&calls), time.Minute)

	if c.Peek() != nil {
		t.Error("expected nil before any capture")
	}
	if calls.Load() != 0 {
		t.Errorf("Peek must not trigger a capture, got %d calls", calls.Load())
	}
}

func TestCache_Watcher(t *testing.T) {
	var calls atomic.Int32
	c := NewCache(countingCapture(&calls), time.Minute)

	c.StartWatcher(5 * time.Millisecond)
	defer c.StopWatcher()

	deadline := time.Now().Add(time.Second)
	for c.Peek() == nil && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	if c.Peek() == nil {
		t.Fatal("watcher never produced a capture")
	}

	c.StopWatcher()
	after := calls.Load()
	time.Sleep(20 * time.Millisecond)
	if calls.Load() != after {
		t.Error("watcher kept capturing after stop")
	}
}

func TestCache_WatcherStartIsIdempotent(t *testing.T) {
	var calls atomic.Int32
	c := NewCache(countingCapture(&calls), time.Minute)

	c.StartWatcher(time.Hour)
	c.StartWatcher(time.Hour) // second start must not spawn another loop
	c.StopWatcher()
	c.StopWatcher() // double stop must not panic
}
