package participant

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRpcsCompletes(t *testing.T) {
	rpcs := NewRpcs()
	h := rpcs.Prepare()
	require.NotEqual(t, InvalidHandle, h)

	done := make(chan struct{})
	rpcs.RegisterAndStart(h, time.Second, func(ctx context.Context) {
		rpcs.Unregister(h)
		close(done)
	})
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("rpc never ran")
	}
}

func TestRpcsAbortWaitsForCompletion(t *testing.T) {
	rpcs := NewRpcs()
	h := rpcs.Prepare()

	var completed int32
	started := make(chan struct{})
	rpcs.RegisterAndStart(h, time.Minute, func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		// Completion work that Abort must wait for.
		time.Sleep(10 * time.Millisecond)
		rpcs.Unregister(h)
		atomic.StoreInt32(&completed, 1)
	})
	<-started
	rpcs.Abort(h)
	assert.Equal(t, int32(1), atomic.LoadInt32(&completed))
}

func TestRpcsAbortIgnoresInvalidHandles(t *testing.T) {
	rpcs := NewRpcs()
	rpcs.Abort(InvalidHandle, Handle(12345))
}

func TestRpcsShutdownAbortsAll(t *testing.T) {
	rpcs := NewRpcs()
	var completed int32
	for i := 0; i < 3; i++ {
		h := rpcs.Prepare()
		started := make(chan struct{})
		rpcs.RegisterAndStart(h, time.Minute, func(ctx context.Context) {
			close(started)
			<-ctx.Done()
			rpcs.Unregister(h)
			atomic.AddInt32(&completed, 1)
		})
		<-started
	}
	rpcs.Shutdown()
	assert.Equal(t, int32(3), atomic.LoadInt32(&completed))

	// New registrations are refused.
	assert.Equal(t, InvalidHandle, rpcs.Prepare())
}

func TestRpcsStartAfterShutdownRunsCancelled(t *testing.T) {
	rpcs := NewRpcs()
	h := rpcs.Prepare()
	rpcs.Shutdown()

	ran := false
	rpcs.RegisterAndStart(h, time.Minute, func(ctx context.Context) {
		ran = true
		assert.NotNil(t, ctx.Err())
		rpcs.Unregister(h)
	})
	assert.True(t, ran)
}

func TestRpcsDeadline(t *testing.T) {
	rpcs := NewRpcs()
	h := rpcs.Prepare()
	expired := make(chan struct{})
	rpcs.RegisterAndStart(h, 10*time.Millisecond, func(ctx context.Context) {
		<-ctx.Done()
		rpcs.Unregister(h)
		close(expired)
	})
	select {
	case <-expired:
	case <-time.After(5 * time.Second):
		t.Fatal("deadline never fired")
	}
}
