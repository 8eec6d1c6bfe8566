package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryRunsUntilStopped(t *testing.T) {
	var n atomic.Int32
	task := Every(context.Background(), 5*time.Millisecond, func(context.Context) { n.Add(1) })

	require.Eventually(t, func() bool { return n.Load() >= 3 }, time.Second, time.Millisecond)
	task.Stop()

	after := n.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, n.Load(), "no ticks after Stop returns")
}

func TestAfterCancelledBeforeFiring(t *testing.T) {
	var fired atomic.Bool
	task := After(context.Background(), 50*time.Millisecond, func(context.Context) { fired.Store(true) })
	task.Stop()

	time.Sleep(80 * time.Millisecond)
	assert.False(t, fired.Load())
}

func TestAfterFires(t *testing.T) {
	var fired atomic.Bool
	task := After(context.Background(), time.Millisecond, func(context.Context) { fired.Store(true) })
	select {
	case <-task.Done():
	case <-time.After(time.Second):
		t.Fatal("task did not finish")
	}
	assert.True(t, fired.Load())
	task.Stop() // idempotent after completion
}

func TestParentContextCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	task := Every(ctx, time.Hour, func(context.Context) {})
	cancel()
	select {
	case <-task.Done():
	case <-time.After(time.Second):
		t.Fatal("task ignored parent cancellation")
	}
}

func TestGroupStopsAll(t *testing.T) {
	var g Group
	a := g.Add(Every(context.Background(), time.Hour, func(context.Context) {}))
	b := g.Add(After(context.Background(), time.Hour, func(context.Context) {}))
	g.Stop()

	for _, task := range []*Task{a, b} {
		select {
		case <-task.Done():
		default:
			t.Fatal("task still running after Group.Stop")
		}
	}
	g.Stop()
}
