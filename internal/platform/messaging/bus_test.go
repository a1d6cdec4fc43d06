package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	eventsv1 "peerraise/contracts/events/v1"
)

func TestBusDeliversToSubscribers(t *testing.T) {
	bus := NewBus(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan eventsv1.Envelope, 1)
	if err := bus.Subscribe(ctx, eventsv1.LedgerTopic, "test-cg", func(_ context.Context, event eventsv1.Envelope) error {
		received <- event
		return nil
	}); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	if err := bus.Publish(ctx, eventsv1.LedgerTopic, eventsv1.Envelope{EventID: "evt-1"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case event := <-received:
		if event.EventID != "evt-1" {
			t.Fatalf("unexpected event %+v", event)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("event was not delivered")
	}
}

func TestBusIgnoresOtherTopics(t *testing.T) {
	bus := NewBus(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan struct{}, 1)
	_ = bus.Subscribe(ctx, "other.topic", "test-cg", func(context.Context, eventsv1.Envelope) error {
		received <- struct{}{}
		return nil
	})
	_ = bus.Publish(ctx, eventsv1.LedgerTopic, eventsv1.Envelope{EventID: "evt-1"})

	select {
	case <-received:
		t.Fatalf("subscriber on another topic received the event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBusHandlerErrorKeepsSubscription(t *testing.T) {
	bus := NewBus(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan string, 2)
	_ = bus.Subscribe(ctx, eventsv1.LedgerTopic, "test-cg", func(_ context.Context, event eventsv1.Envelope) error {
		calls <- event.EventID
		return errors.New("boom")
	})
	_ = bus.Publish(ctx, eventsv1.LedgerTopic, eventsv1.Envelope{EventID: "evt-1"})
	_ = bus.Publish(ctx, eventsv1.LedgerTopic, eventsv1.Envelope{EventID: "evt-2"})

	for _, want := range []string{"evt-1", "evt-2"} {
		select {
		case got := <-calls:
			if got != want {
				t.Fatalf("expected %s, got %s", want, got)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("expected delivery of %s", want)
		}
	}
}

func TestBusRemovesSubscriberOnCancel(t *testing.T) {
	bus := NewBus(nil)
	ctx, cancel := context.WithCancel(context.Background())

	_ = bus.Subscribe(ctx, eventsv1.LedgerTopic, "test-cg", func(context.Context, eventsv1.Envelope) error { return nil })
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		bus.mu.RLock()
		n := len(bus.subscribers[eventsv1.LedgerTopic])
		bus.mu.RUnlock()
		if n == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("subscriber was not removed after cancellation")
}
