package builder

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// Pool sizing bounds for parallel exports.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize matches the variant count: an export-all run renders
	// one artifact per variant, so additional browsers would sit idle.
	MaxPoolSize = 3

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// ServicePool bounds the number of live browser-backed Services and
// hands them out for parallel variant exports. Services are created
// lazily on first acquire and reused after release.
type ServicePool struct {
	capacity int
	opts     []Option

	mu       sync.Mutex
	services []*Service
	idle     chan *Service
	created  int
	closed   bool
}

// NewServicePool creates a pool with capacity for n Service instances,
// each configured with the given options.
func NewServicePool(n int, opts ...Option) *ServicePool {
	if n < MinPoolSize {
		n = MinPoolSize
	}

	return &ServicePool{
		capacity: n,
		opts:     opts,
		services: make([]*Service, 0, n),
		idle:     make(chan *Service, n),
	}
}

// Acquire returns an idle Service, creating one while the pool is below
// capacity. At capacity it blocks until a Service is released, the
// context is cancelled, or the pool is closed.
func (p *ServicePool) Acquire(ctx context.Context) (*Service, error) {
	select {
	case svc, ok := <-p.idle:
		if !ok {
			return nil, ErrPoolClosed
		}
		return svc, nil
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.created < p.capacity {
		p.created++
		p.mu.Unlock()

		// Browser-backed construction happens outside the lock.
		svc := New(p.opts...)

		p.mu.Lock()
		p.services = append(p.services, svc)
		p.mu.Unlock()
		return svc, nil
	}
	p.mu.Unlock()

	select {
	case svc, ok := <-p.idle:
		if !ok {
			return nil, ErrPoolClosed
		}
		return svc, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a Service to the idle set. Releasing into a closed
// pool is a no-op. The send happens under the pool lock; the channel
// has one slot per possible Service, so it never blocks there.
func (p *ServicePool) Release(svc *Service) {
	if svc == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.idle <- svc
}

// Close shuts the pool and releases every Service's browser. Safe to
// call more than once; pending and future Acquire calls fail with
// ErrPoolClosed.
func (p *ServicePool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.idle)
	services := p.services
	p.mu.Unlock()

	var errs []error
	for _, svc := range services {
		if err := svc.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *ServicePool) Size() int {
	return p.capacity
}

// ResolvePoolSize picks the worker count for export-all. An explicit
// worker flag wins; otherwise the size follows GOMAXPROCS (adjusted by
// automaxprocs in main), divided for Chrome headroom and clamped to the
// variant count.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
