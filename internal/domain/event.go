package domain

import (
	"context"
	"errors"
)

// Sentinel errors shared across layers.
var (
	ErrNotFound        = errors.New("not found")
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
	ErrInvalidInput    = errors.New("invalid input")
)

// Event is a scheduled calendar item belonging to exactly one owner.
// Date is the day bucket key (YYYY-MM-DD); Time is zero-padded HH:MM.
// swagger:model Event
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	OwnerID     string `json:"ownerId"`
}

// EventPatch carries a partial update for an event. Nil fields are left
// unchanged. ID and OwnerID are not patchable.
type EventPatch struct {
	Title       *string
	Description *string
	Date        *string
	Time        *string
}

// SnapshotRepository persists the full per-owner event list under a storage
// key. Save replaces the whole snapshot; Load returns ErrNotFound when the
// key has never been written and ErrCorruptSnapshot when the stored payload
// does not parse. Load never modifies the stored record.
type SnapshotRepository interface {
	Load(ctx context.Context, key string) ([]Event, error)
	Save(ctx context.Context, key string, events []Event) error
}

// EventStore is the authoritative in-memory event collection for the active
// owner, mirrored to a SnapshotRepository on every mutation. Every operation
// carries the caller's owner and is a silent no-op (nil/false/empty result,
// no error) when it does not match the active owner, when no owner is
// active, or when the target event belongs to another owner.
type EventStore interface {
	// SetOwner is the single reset entry point: it discards the in-memory
	// list and, for a non-empty owner, loads that owner's snapshot. An empty
	// owner means logged out and performs no persistence I/O.
	SetOwner(ownerID string)
	// Add stores a new event for the caller's owner. The id is generated and
	// the owner is forced regardless of draft values. Returns the stored
	// event, or nil when the caller is not the active owner.
	Add(ctx context.Context, ownerID string, draft Event) (*Event, error)
	// Update merges patch over the event with the given id if it belongs to
	// the caller's owner. Returns the updated event, or nil on no match.
	Update(ctx context.Context, ownerID, id string, patch EventPatch) (*Event, error)
	// Remove deletes the event with the given id if it belongs to the
	// caller's owner. Returns whether an event was removed.
	Remove(ctx context.Context, ownerID, id string) (bool, error)
	// QueryByDate returns the caller's events in the given day bucket.
	QueryByDate(ctx context.Context, ownerID, date string) []Event
	// Events returns the caller's full event list.
	Events(ctx context.Context, ownerID string) []Event
}
