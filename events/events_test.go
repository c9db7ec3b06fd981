package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBus_EmitReachesSubscribers(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	var received []Event
	done := make(chan struct{})

	bus.Subscribe(EventTypeShiftClosed, func(ctx context.Context, e Event) {
		mu.Lock()
		received = append(received, e)
		mu.Unlock()
		close(done)
	})

	bus.Emit(context.Background(), ShiftClosedEvent{TargetID: 42, Earnings: 500})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler was not invoked")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, received, 1)
	assert.Equal(t, EventTypeShiftClosed, received[0].Type())
}

func TestBus_EmitIgnoresOtherTypes(t *testing.T) {
	bus := NewBus()

	called := make(chan struct{}, 1)
	bus.Subscribe(EventTypeShopChanged, func(ctx context.Context, e Event) {
		called <- struct{}{}
	})

	bus.Emit(context.Background(), ShiftClosedEvent{TargetID: 1})

	select {
	case <-called:
		t.Fatal("handler for unrelated event type was invoked")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTransactionalBus_FlushAndDiscard(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	count := 0
	delivered := make(chan struct{}, 2)
	bus.Subscribe(EventTypeBalanceAdjusted, func(ctx context.Context, e Event) {
		mu.Lock()
		count++
		mu.Unlock()
		delivered <- struct{}{}
	})

	txBus := NewTransactionalBus(bus)
	txBus.Publish(BalanceAdjustedEvent{TargetID: 1})
	txBus.Publish(BalanceAdjustedEvent{TargetID: 2})

	// Nothing is emitted before flush
	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, 0, count)
	mu.Unlock()

	assert.NoError(t, txBus.Flush(context.Background()))
	for i := 0; i < 2; i++ {
		select {
		case <-delivered:
		case <-time.After(time.Second):
			t.Fatal("flushed event not delivered")
		}
	}

	// Discard drops pending events
	txBus.Publish(BalanceAdjustedEvent{TargetID: 3})
	txBus.Discard()
	assert.NoError(t, txBus.Flush(context.Background()))

	select {
	case <-delivered:
		t.Fatal("discarded event was delivered")
	case <-time.After(50 * time.Millisecond):
	}
}
