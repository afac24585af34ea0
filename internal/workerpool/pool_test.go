package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPool_RunAll(t *testing.T) {
	p := New(4)
	defer p.Close()

	var sum int64
	err := p.Run(context.Background(), 1000, func(_ context.Context, i int) error {
		atomic.AddInt64(&sum, int64(i))
		return nil
	})
	require.NoError(t, err)
	require.EqualValues(t, 999*1000/2, sum)
}

func TestPool_DefaultSize(t *testing.T) {
	p := New(0)
	defer p.Close()
	require.Positive(t, p.Size())
}

func TestPool_FirstErrorWins(t *testing.T) {
	p := New(2)
	defer p.Close()

	boom := errors.New("boom")
	err := p.Run(context.Background(), 100, func(_ context.Context, i int) error {
		if i == 10 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
}

func TestPool_Stop(t *testing.T) {
	p := New(2)
	defer p.Close()

	err := p.Run(context.Background(), 100, func(_ context.Context, i int) error {
		if i == 3 {
			return ErrStop
		}
		return nil
	})
	require.NoError(t, err)
}

func TestPool_Cancelled(t *testing.T) {
	p := New(2)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran int64
	err := p.Run(ctx, 100, func(_ context.Context, _ int) error {
		atomic.AddInt64(&ran, 1)
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, atomic.LoadInt64(&ran))
}

func TestPool_Reusable(t *testing.T) {
	p := New(3)
	defer p.Close()

	for batch := 0; batch < 3; batch++ {
		var n int64
		require.NoError(t, p.Run(context.Background(), 50, func(_ context.Context, _ int) error {
			atomic.AddInt64(&n, 1)
			return nil
		}))
		require.EqualValues(t, 50, n)
	}
}

func TestPool_Closed(t *testing.T) {
	p := New(1)
	p.Close()
	p.Close()

	err := p.Run(context.Background(), 1, func(_ context.Context, _ int) error { return nil })
	require.ErrorIs(t, err, ErrClosed)
}
