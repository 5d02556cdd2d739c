package rcrclient

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestPollerRefreshesOnInterval(t *testing.T) {
	var calls atomic.Int32
	poller := NewPoller(10*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		return nil
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after cancellation")
	}
}

func TestPollerStopsRefreshingAfterCancel(t *testing.T) {
	var calls atomic.Int32
	poller := NewPoller(5*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		return nil
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, time.Millisecond)
	cancel()
	<-done

	observed := calls.Load()
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, observed, calls.Load())
}

func TestPollerContinuesPastFailedTick(t *testing.T) {
	var calls atomic.Int32
	poller := NewPoller(5*time.Millisecond, func(context.Context) error {
		if calls.Add(1) == 1 {
			return context.DeadlineExceeded
		}
		return nil
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go poller.Run(ctx)

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)
}

func TestSessionStoreNotifiesSubscribers(t *testing.T) {
	store := NewSessionStore()

	var lastSession Session
	var lastActive bool
	unsubscribe := store.Subscribe(func(session Session, active bool) {
		lastSession = session
		lastActive = active
	})

	store.Set(Session{UserID: 3, Role: "educator"})
	require.True(t, lastActive)
	require.Equal(t, uint(3), lastSession.UserID)

	current, active := store.Current()
	require.True(t, active)
	require.Equal(t, "educator", current.Role)

	store.Clear()
	require.False(t, lastActive)
	_, active = store.Current()
	require.False(t, active)

	unsubscribe()
	store.Set(Session{UserID: 9})
	require.False(t, lastActive)
}
