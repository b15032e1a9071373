package eventbus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testType EventType = "test.event"

func TestEventBus_PublishReachesAllSubscribers(t *testing.T) {
	bus := NewEventBus()
	var firstSeen, secondSeen any
	bus.Subscribe(testType, func(e Event) error {
		firstSeen = e.Data
		return nil
	})
	bus.Subscribe(testType, func(e Event) error {
		secondSeen = e.Data
		return nil
	})
	bus.Subscribe("other.event", func(e Event) error {
		t.Error("handler for a different type must not fire")
		return nil
	})

	err := bus.Publish(NewEvent(context.Background(), testType, "payload"))

	require.NoError(t, err)
	assert.Equal(t, "payload", firstSeen)
	assert.Equal(t, "payload", secondSeen)
}

func TestEventBus_FailingHandlerDoesNotStopOthers(t *testing.T) {
	bus := NewEventBus()
	var called bool
	bus.Subscribe(testType, func(e Event) error {
		return errors.New("boom")
	})
	bus.Subscribe(testType, func(e Event) error {
		called = true
		return nil
	})

	err := bus.Publish(NewEvent(context.Background(), testType, nil))

	assert.Error(t, err)
	assert.True(t, called)
}

func TestEventBus_PanickingHandlerIsRecovered(t *testing.T) {
	bus := NewEventBus()
	bus.Subscribe(testType, func(e Event) error {
		panic("unexpected")
	})

	err := bus.Publish(NewEvent(context.Background(), testType, nil))

	assert.Error(t, err)
}

func TestEventBus_CancelledContextSkipsHandlers(t *testing.T) {
	bus := NewEventBus()
	bus.Subscribe(testType, func(e Event) error {
		t.Error("handler must not run for a cancelled event")
		return nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := bus.Publish(NewEvent(ctx, testType, nil))

	assert.ErrorIs(t, err, context.Canceled)
}
