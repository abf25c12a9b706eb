package handlers_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/on-the-ground/memo_ive_go/effects/internal/handlers"
	effectmodel "github.com/on-the-ground/memo_ive_go/effects/model"
	"github.com/stretchr/testify/assert"
)

func TestFireAndForgetHandler_BasicExecution(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan string, 1)

	handler := handlers.NewFireAndForgetHandler(
		ctx,
		10,
		func(ctx context.Context, msg string) {
			received <- msg
		},
		func() {}, // no-op teardown
	)
	defer handler.Close()

	assert.NoError(t, handler.FireAndForgetEffect(ctx, "hello"))

	select {
	case msg := <-received:
		assert.Equal(t, "hello", msg)
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for handler")
	}
}

func TestFireAndForgetHandler_ClosedHandlerRejects(t *testing.T) {
	ctx := context.Background()
	tornDown := 0

	handler := handlers.NewFireAndForgetHandler(
		ctx,
		10,
		func(ctx context.Context, msg string) {
			t.Errorf("handler should not have been called with %q", msg)
		},
		func() { tornDown++ },
	)
	handler.Close()
	handler.Close()

	err := handler.FireAndForgetEffect(ctx, "should-not-send")
	assert.True(t, errors.Is(err, effectmodel.ErrHandlerClosed), "got %v", err)
	assert.Equal(t, 1, tornDown)
}

type keyed string

func (k keyed) PartitionKey() string { return string(k) }

func TestResumableHandler_ReturnsResult(t *testing.T) {
	ctx := context.Background()
	handler := handlers.NewPartitionableResumableHandler(
		ctx,
		effectmodel.NewEffectScopeConfig(4, 3),
		func(_ context.Context, k keyed) (int, error) {
			if k == "" {
				return 0, errors.New("empty key")
			}
			return len(k), nil
		},
		func() {},
	)
	defer handler.Close()

	res := <-handler.PerformEffect(ctx, "abcd")
	assert.NoError(t, res.Err)
	assert.Equal(t, 4, res.Value)

	res = <-handler.PerformEffect(ctx, "")
	assert.EqualError(t, res.Err, "empty key")
}

func TestResumableHandler_CanceledPerformer(t *testing.T) {
	handler := handlers.NewResumableHandler(
		context.Background(),
		1,
		func(_ context.Context, s string) (string, error) { return s, nil },
		func() {},
	)
	defer handler.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// either the send or the cancellation may win; both must resolve the channel
	select {
	case res := <-handler.PerformEffect(ctx, "x"):
		if res.Err != nil {
			assert.ErrorIs(t, res.Err, context.Canceled)
		} else {
			assert.Equal(t, "x", res.Value)
		}
	case <-time.After(time.Second):
		t.Fatal("result channel never resolved")
	}
}

func TestResumableHandler_ClosedHandler(t *testing.T) {
	handler := handlers.NewResumableHandler(
		context.Background(),
		1,
		func(_ context.Context, s string) (string, error) { return s, nil },
		func() {},
	)
	handler.Close()

	res := <-handler.PerformEffect(context.Background(), "x")
	assert.ErrorIs(t, res.Err, effectmodel.ErrHandlerClosed)
}

func TestResumableHandler_QueuedEffectAnsweredOnClose(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	handler := handlers.NewResumableHandler(
		context.Background(),
		4,
		func(_ context.Context, s string) (string, error) {
			if s == "first" {
				close(entered)
				<-release
			}
			return s, nil
		},
		func() {},
	)

	first := handler.PerformEffect(context.Background(), "first")
	<-entered
	queued := handler.PerformEffect(context.Background(), "queued")

	handler.Close()
	close(release)

	select {
	case res := <-queued:
		assert.ErrorIs(t, res.Err, effectmodel.ErrHandlerClosed)
	case <-time.After(time.Second):
		t.Fatal("queued effect was never answered")
	}
	select {
	case res := <-first:
		assert.NoError(t, res.Err)
		assert.Equal(t, "first", res.Value)
	case <-time.After(time.Second):
		t.Fatal("running effect was never answered")
	}
}
