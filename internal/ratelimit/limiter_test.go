package ratelimit

import (
	"context"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestWait_UnknownAPI(t *testing.T) {
	l := New()

	if err := l.Wait(context.Background(), API("nonexistent")); err != nil {
		t.Errorf("Wait() for unknown API returned error: %v", err)
	}
}

func TestAllow_Unlimited(t *testing.T) {
	l := NewUnlimited()

	for i := 0; i < 100; i++ {
		if !l.Allow(APIEastmoney) {
			t.Fatalf("Allow() = false on request %d with unlimited limiter", i)
		}
	}
}

func TestWait_ContextCancelled(t *testing.T) {
	l := New()
	// A limit that cannot be satisfied promptly.
	l.Set(APIEastmoney, rate.Limit(0.001), 1)
	if !l.Allow(APIEastmoney) {
		t.Fatal("first request should consume the burst")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, APIEastmoney); err == nil {
		t.Error("Wait() expected error when context expires before permit")
	}
}
