// Package schedule runs timer callbacks that belong to an owner with a
// lifecycle. Stopping a task cancels it and waits until its goroutine is gone,
// so no callback fires after Stop returns.
package schedule

import (
	"context"
	"sync"
	"time"
)

type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Every calls fn on each tick of interval until ctx is done or Stop is called.
func Every(ctx context.Context, interval time.Duration, fn func(context.Context)) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(t.done)
		tk := time.NewTicker(interval)
		defer tk.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tk.C:
				fn(ctx)
			}
		}
	}()
	return t
}

// After calls fn once after delay unless the task is stopped first.
func After(ctx context.Context, delay time.Duration, fn func(context.Context)) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(t.done)
		tm := time.NewTimer(delay)
		defer tm.Stop()
		select {
		case <-ctx.Done():
		case <-tm.C:
			fn(ctx)
		}
	}()
	return t
}

func (t *Task) Stop() {
	if t == nil {
		return
	}
	t.once.Do(t.cancel)
	<-t.done
}

// Done is closed once the task's goroutine has exited.
func (t *Task) Done() <-chan struct{} { return t.done }

// Group stops a set of tasks together on teardown.
type Group struct {
	mu    sync.Mutex
	tasks []*Task
}

func (g *Group) Add(t *Task) *Task {
	g.mu.Lock()
	g.tasks = append(g.tasks, t)
	g.mu.Unlock()
	return t
}

func (g *Group) Stop() {
	g.mu.Lock()
	tasks := g.tasks
	g.tasks = nil
	g.mu.Unlock()
	for _, t := range tasks {
		t.Stop()
	}
}
