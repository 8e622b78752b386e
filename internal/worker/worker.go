package worker

import (
	"sync"

	"github.com/pkg/errors"
)

var ErrWorkerStopped = errors.New("worker is shut down")

// Worker runs submitted tasks one at a time, in submission order, on a single
// goroutine. The queue has no depth limit.
type Worker struct {
	mu       sync.Mutex
	cond     *sync.Cond
	queue    []func()
	shutdown bool
	wg       sync.WaitGroup
}

func New() *Worker {
	w := &Worker{queue: make([]func(), 0)}
	w.cond = sync.NewCond(&w.mu)

	w.wg.Add(1)
	go w.run()

	return w
}

// Submit appends a task to the queue. It fails once Shutdown was called.
func (w *Worker) Submit(task func()) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.shutdown {
		return ErrWorkerStopped
	}

	w.queue = append(w.queue, task)
	w.cond.Signal()

	return nil
}

// Shutdown stops accepting tasks. Tasks already queued still run.
func (w *Worker) Shutdown() {
	w.mu.Lock()
	w.shutdown = true
	w.cond.Signal()
	w.mu.Unlock()
}

// Wait blocks until the worker goroutine has drained the queue and exited.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.queue)
}

func (w *Worker) run() {
	defer w.wg.Done()

	for {
		w.mu.Lock()
		for len(w.queue) == 0 && !w.shutdown {
			w.cond.Wait()
		}

		if len(w.queue) == 0 {
			w.mu.Unlock()
			return
		}

		task := w.queue[0]
		w.queue[0] = nil
		w.queue = w.queue[1:]
		w.mu.Unlock()

		task()
	}
}
