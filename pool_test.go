package roadnet

import "testing"

func TestPoolAcquireRelease(t *testing.T) {
	pool := NewPool[Chunk](func() *Chunk { return &Chunk{} }, resetChunk)
	first := pool.Acquire()
	if pool.Outstanding() != 1 {
		t.Errorf("Outstanding must be 1, but got %d", pool.Outstanding())
	}
	if err := pool.Release(first); err != nil {
		t.Errorf("Release must succeed, but got %v", err)
	}
	if pool.Outstanding() != 0 {
		t.Errorf("Outstanding must be 0 after release, but got %d", pool.Outstanding())
	}
	second := pool.Acquire()
	if second != first {
		t.Errorf("Pool must reuse released objects")
	}
}

func TestPoolDoubleRelease(t *testing.T) {
	pool := NewPool[Cap](func() *Cap { return &Cap{} }, resetCap)
	obj := pool.Acquire()
	if err := pool.Release(obj); err != nil {
		t.Errorf("First release must succeed, but got %v", err)
	}
	if err := pool.Release(obj); err == nil {
		t.Errorf("Second release of the same object must fail")
	}
}

func TestPoolResetOnRelease(t *testing.T) {
	pool := NewPool[Chunk](func() *Chunk { return &Chunk{} }, resetChunk)
	chunk := pool.Acquire()
	chunk.owner = 42
	pool.Release(chunk)
	if chunk.owner != 0 {
		t.Errorf("Release must reset per-owner state, owner still %d", chunk.owner)
	}
}
