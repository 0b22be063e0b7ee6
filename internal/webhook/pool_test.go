package webhook

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_RunsAllTasks(t *testing.T) {
	p := NewPool(4, 64)
	var n int64
	for i := 0; i < 50; i++ {
		if !p.Submit(func() { atomic.AddInt64(&n, 1) }) {
			t.Fatalf("submit %d rejected", i)
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if got := atomic.LoadInt64(&n); got != 50 {
		t.Fatalf("ran %d tasks, want 50", got)
	}
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	p := NewPool(1, 1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := p.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if p.Submit(func() {}) {
		t.Fatalf("submit after shutdown must be rejected")
	}
}

func TestPool_SaturatedQueueRejects(t *testing.T) {
	p := NewPool(1, 1)
	block := make(chan struct{})
	// occupy the single worker
	p.Submit(func() { <-block })
	// give the worker time to pick the task up
	time.Sleep(50 * time.Millisecond)
	// fill the single queue slot
	if !p.Submit(func() {}) {
		t.Fatalf("queue slot should accept one task")
	}
	if p.Submit(func() {}) {
		t.Fatalf("saturated queue must reject")
	}
	close(block)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := p.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestPool_RecoversPanics(t *testing.T) {
	p := NewPool(1, 4)
	var ran int64
	p.Submit(func() { panic("boom") })
	p.Submit(func() { atomic.AddInt64(&ran, 1) })
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := p.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if atomic.LoadInt64(&ran) != 1 {
		t.Fatalf("task after panic did not run")
	}
}
