package task

import (
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("executor closed")

// Executor runs submitted functions one at a time, in submission order, on a
// single background goroutine.
type Executor struct {
	mx     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool
	done   chan struct{}
	log    *zap.Logger
}

// New starts an executor. A task that panics is logged and the worker keeps
// running.
func New(log *zap.Logger) *Executor {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Executor{
		done: make(chan struct{}),
		log:  log,
	}
	e.cond = sync.NewCond(&e.mx)
	go e.run()
	return e
}

// Submit queues fn.
func (e *Executor) Submit(fn func()) error {
	e.mx.Lock()
	defer e.mx.Unlock()
	if e.closed {
		return ErrClosed
	}
	e.queue = append(e.queue, fn)
	e.cond.Signal()
	return nil
}

// Pending returns the number of queued tasks not yet started.
func (e *Executor) Pending() int {
	e.mx.Lock()
	defer e.mx.Unlock()
	return len(e.queue)
}

// Close rejects new tasks, waits for every queued task to finish and stops
// the worker. Calling it again is a no-op.
func (e *Executor) Close() {
	e.mx.Lock()
	if e.closed {
		e.mx.Unlock()
		<-e.done
		return
	}
	e.closed = true
	e.cond.Broadcast()
	e.mx.Unlock()
	<-e.done
}

func (e *Executor) run() {
	defer close(e.done)
	for {
		e.mx.Lock()
		for len(e.queue) == 0 && !e.closed {
			e.cond.Wait()
		}
		if len(e.queue) == 0 {
			e.mx.Unlock()
			return
		}
		fn := e.queue[0]
		e.queue[0] = nil
		e.queue = e.queue[1:]
		e.mx.Unlock()

		e.exec(fn)
	}
}

func (e *Executor) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("task panicked", zap.Any("panic", r))
		}
	}()
	fn()
}
