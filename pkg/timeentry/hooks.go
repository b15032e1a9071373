package timeentry

import (
	"context"

	"github.com/spenttime/spenttime/internal/eventbus"
)

// Hooks are the pluggable extension points around entry mutations. A failing
// post-create hook never rolls back the create; a pre-save hook may adjust
// the attributes before they are committed.
type Hooks interface {
	// OnEntryCreated notifies an external system about a new entry and may
	// return an external reference id.
	OnEntryCreated(ctx context.Context, entry TimeEntry) (string, error)
	// OnBeforeEntryUpdate runs before an update is committed and may mutate
	// the incoming changes.
	OnBeforeEntryUpdate(ctx context.Context, entry TimeEntry, changes UpdateInput) (UpdateInput, error)
}

// NoopHooks is the default Hooks implementation doing nothing.
type NoopHooks struct{}

func (NoopHooks) OnEntryCreated(ctx context.Context, entry TimeEntry) (string, error) {
	return "", nil
}

func (NoopHooks) OnBeforeEntryUpdate(ctx context.Context, entry TimeEntry, changes UpdateInput) (UpdateInput, error) {
	return changes, nil
}

// BusHooks publishes entry lifecycle events on the internal event bus so
// integrations can subscribe without the mutation service knowing them.
type BusHooks struct {
	bus *eventbus.EventBus
}

func NewBusHooks(bus *eventbus.EventBus) *BusHooks {
	return &BusHooks{bus: bus}
}

func (h *BusHooks) OnEntryCreated(ctx context.Context, entry TimeEntry) (string, error) {
	err := h.bus.Publish(eventbus.NewEvent(ctx, eventbus.TimeEntryCreatedType, eventbus.TimeEntryCreated{
		EntryId:   entry.Id,
		UserId:    entry.UserId,
		ProjectId: entry.ProjectId,
		IssueId:   entry.IssueId,
		Hours:     entry.Hours,
		SpentOn:   entry.SpentOn,
	}))
	return "", err
}

func (h *BusHooks) OnBeforeEntryUpdate(ctx context.Context, entry TimeEntry, changes UpdateInput) (UpdateInput, error) {
	return changes, nil
}
