package pool

import "sync"

// Pool runs submitted funcs on a fixed number of goroutines.
type Pool struct {
	jobs      chan func()
	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
	closeCh   chan struct{}
	closeOnce sync.Once
}

func New(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{
		jobs:    make(chan func(), n*2),
		closeCh: make(chan struct{}),
	}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for f := range p.jobs {
				if f != nil {
					f()
				}
			}
		}()
	}
	return p
}

// Submit queues f. It reports false when the pool is already closed.
func (p *Pool) Submit(f func()) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.jobs <- f:
		return true
	case <-p.closeCh:
		return false
	}
}

// Close stops accepting work; queued jobs still run.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.closeCh)
		p.mu.Lock()
		p.closed = true
		close(p.jobs)
		p.mu.Unlock()
	})
}

func (p *Pool) Wait() {
	p.wg.Wait()
}
