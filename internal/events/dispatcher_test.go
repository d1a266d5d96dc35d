package events

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDispatcher_PublishReachesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []EventType
	d.Subscribe(EventProductCreated, func(_ context.Context, e Event) error {
		got = append(got, e.Type)
		return nil
	})
	d.Subscribe(EventProductCreated, func(_ context.Context, e Event) error {
		got = append(got, e.Type)
		return nil
	})

	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventProductCreated}))
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventProductDeleted}))
	assert.Equal(t, []EventType{EventProductCreated, EventProductCreated}, got)
}

func TestDispatcher_HandlerErrorsAreJoined(t *testing.T) {
	d := NewInMemoryDispatcher()
	first := errors.New("first")
	called := false
	d.Subscribe(EventLoginFailed, func(context.Context, Event) error { return first })
	d.Subscribe(EventLoginFailed, func(context.Context, Event) error {
		called = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventLoginFailed})
	assert.ErrorIs(t, err, first)
	assert.True(t, called, "later handlers still run")
}

func TestDispatcher_ConcurrentUse(t *testing.T) {
	d := NewInMemoryDispatcher()
	var (
		mu    sync.Mutex
		count int
	)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			d.Subscribe(EventUserCreated, func(context.Context, Event) error {
				mu.Lock()
				count++
				mu.Unlock()
				return nil
			})
		}()
		go func() {
			defer wg.Done()
			_ = d.Publish(context.Background(), Event{Type: EventUserCreated})
		}()
	}
	wg.Wait()

	mu.Lock()
	before := count
	mu.Unlock()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventUserCreated}))
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, before+20, count)
}

func TestNoopDispatcher(t *testing.T) {
	d := NewNoopDispatcher()
	d.Subscribe(EventUserCreated, func(context.Context, Event) error { return errors.New("never") })
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventUserCreated}))
}
