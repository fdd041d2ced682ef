package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestKeyedRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name  string
		burst int
		keys  []string
		want  []bool
	}{
		{"burst passes", 3, []string{"10.0.0.1", "10.0.0.1", "10.0.0.1"}, []bool{true, true, true}},
		{"over burst is limited", 2, []string{"10.0.0.1", "10.0.0.1", "10.0.0.1", "10.0.0.1"}, []bool{true, true, false, false}},
		{"keys have separate buckets", 1, []string{"10.0.0.1", "10.0.0.1", "10.0.0.2"}, []bool{true, false, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := New(1, tt.burst)
			defer rl.Stop()

			for i, key := range tt.keys {
				if got := rl.Allow(key); got != tt.want[i] {
					t.Errorf("call %d Allow(%q) = %v, want %v", i, key, got, tt.want[i])
				}
			}
		})
	}
}

func TestKeyedRateLimiter_Wait(t *testing.T) {
	rl := New(20, 1)
	defer rl.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	start := time.Now()
	if err := rl.Wait(ctx, "10.0.0.1"); err != nil {
		t.Fatalf("Wait() with a full bucket: %v", err)
	}
	if d := time.Since(start); d > 40*time.Millisecond {
		t.Errorf("Wait() with a full bucket blocked for %v", d)
	}

	// The next token arrives after 1/20s.
	start = time.Now()
	if err := rl.Wait(ctx, "10.0.0.1"); err != nil {
		t.Fatalf("Wait() for refill: %v", err)
	}
	if d := time.Since(start); d < 30*time.Millisecond || d > 150*time.Millisecond {
		t.Errorf("Wait() for refill took %v, want about 50ms", d)
	}
}

func TestKeyedRateLimiter_WaitHonoursContext(t *testing.T) {
	rl := PerMinute(1, 1)
	defer rl.Stop()
	rl.Allow("10.0.0.1")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	if err := rl.Wait(ctx, "10.0.0.1"); err == nil {
		t.Error("Wait() returned nil although the deadline is shorter than the refill")
	}
}

func TestKeyedRateLimiter_EvictIdle(t *testing.T) {
	rl := NewWithTTL(1, 1, time.Minute)
	defer rl.Stop()

	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }

	rl.Allow("10.0.0.1")
	clock = clock.Add(30 * time.Second)
	rl.Allow("10.0.0.2")

	if n := rl.Len(); n != 2 {
		t.Fatalf("Len() = %d, want 2", n)
	}

	if evicted := rl.evictIdle(clock.Add(45 * time.Second)); evicted != 1 {
		t.Errorf("evictIdle() = %d, want 1", evicted)
	}
	if n := rl.Len(); n != 1 {
		t.Errorf("Len() after eviction = %d, want 1", n)
	}

	// An evicted key starts with a fresh bucket.
	clock = clock.Add(45 * time.Second)
	if !rl.Allow("10.0.0.1") {
		t.Error("evicted key should get a fresh burst")
	}
}

func TestPerMinute(t *testing.T) {
	rl := PerMinute(20, 2)
	defer rl.Stop()

	if !rl.Allow("ip") || !rl.Allow("ip") {
		t.Fatal("burst of 2 should pass")
	}
	if rl.Allow("ip") {
		t.Error("third immediate request should be limited")
	}
	if got := rl.RetryAfter(); got != 3*time.Second {
		t.Errorf("RetryAfter() = %v, want 3s", got)
	}
}

func TestStop_Idempotent(t *testing.T) {
	rl := New(1, 1)
	rl.Stop()
	rl.Stop()
}
