package roadnet

import "github.com/pkg/errors"

// ErrDoubleRelease is returned when an object is returned to a pool it does not belong to anymore
var ErrDoubleRelease = errors.New("object released twice")

// Pool is a shared free list for chunk and cap objects.
// Ownership transfers to exactly one caller on Acquire and must come back exactly once
type Pool[T any] struct {
	free        []*T
	factory     func() *T
	reset       func(*T)
	outstanding int
}

// NewPool creates a pool producing objects via factory and cleaning them via reset on release.
// reset may be nil
func NewPool[T any](factory func() *T, reset func(*T)) *Pool[T] {
	return &Pool[T]{
		factory: factory,
		reset:   reset,
	}
}

// Acquire takes an object from the free list or makes a fresh one
func (pool *Pool[T]) Acquire() *T {
	pool.outstanding++
	if n := len(pool.free); n > 0 {
		obj := pool.free[n-1]
		pool.free = pool.free[:n-1]
		return obj
	}
	return pool.factory()
}

// Release returns an object to the free list
func (pool *Pool[T]) Release(obj *T) error {
	if obj == nil {
		return errors.Wrap(ErrDoubleRelease, "nil object")
	}
	if pool.outstanding == 0 {
		return ErrDoubleRelease
	}
	for i := range pool.free {
		if pool.free[i] == obj {
			return ErrDoubleRelease
		}
	}
	if pool.reset != nil {
		pool.reset(obj)
	}
	pool.outstanding--
	pool.free = append(pool.free, obj)
	return nil
}

// Outstanding returns the number of acquired objects not yet released.
// Non-zero value at teardown means a leak
func (pool *Pool[T]) Outstanding() int {
	return pool.outstanding
}

// FreeCount returns the current free list size
func (pool *Pool[T]) FreeCount() int {
	return len(pool.free)
}
