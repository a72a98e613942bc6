// Package shutdownqueue collects cleanup tasks during startup and
// drains them in LIFO order at the end of main:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//	defer shutdownqueue.Shutdown(ctx)
//
// Tasks run once; Shutdown is idempotent and aggregates task errors
// with errors.Join. Panicking tasks are recovered so one bad task
// cannot skip the rest.
package shutdownqueue

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Task is a shutdown function. It should honor ctx and return an error
// if it cannot finish in time.
type Task func(ctx context.Context) error

var (
	mu     sync.Mutex
	tasks  []Task
	closed bool
)

// Add registers a task, safe from any goroutine. Nil tasks and tasks
// added after shutdown started are dropped.
func Add(t Task) {
	if t == nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	if closed {
		return
	}

	tasks = append(tasks, t)
}

// Shutdown drains all registered tasks in reverse registration order.
// If ctx expires mid-drain, remaining tasks are abandoned and the
// context error is included in the joined result.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	closed = true
	pending := tasks
	tasks = nil
	mu.Unlock()

	var errs []error

	for i := len(pending) - 1; i >= 0; i-- {
		select {
		case <-ctx.Done():
			errs = append(errs, fmt.Errorf("shutdown canceled: %w", ctx.Err()))
			return errors.Join(errs...)
		default:
		}

		errs = append(errs, runTask(ctx, pending[i]))
	}

	return errors.Join(errs...)
}

func runTask(ctx context.Context, t Task) (err error) {
	defer func() {
		r := recover()
		if r != nil {
			err = fmt.Errorf("panic in shutdown task: %v", r)
		}
	}()

	return t(ctx)
}
