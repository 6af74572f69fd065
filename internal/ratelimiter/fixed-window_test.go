package ratelimiter

import (
	"testing"
	"time"
)

func TestAllowWithinLimit(t *testing.T) {
	rl := NewFixedWindowLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, _ := rl.Allow("10.0.0.1")
		if !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	ok, retryAfter := rl.Allow("10.0.0.1")
	if ok {
		t.Fatal("fourth request should be rejected")
	}
	if retryAfter != time.Minute {
		t.Errorf("retryAfter = %s, want %s", retryAfter, time.Minute)
	}
}

func TestClientsAreIndependent(t *testing.T) {
	rl := NewFixedWindowLimiter(1, time.Minute)

	if ok, _ := rl.Allow("10.0.0.1"); !ok {
		t.Fatal("first client's first request should pass")
	}
	if ok, _ := rl.Allow("10.0.0.2"); !ok {
		t.Error("second client must have its own budget")
	}
	if ok, _ := rl.Allow("10.0.0.1"); ok {
		t.Error("first client should be over its budget")
	}
}
