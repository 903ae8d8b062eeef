package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"personalcalendar/internal/domain"
)

// storageKeyPrefix namespaces the per-owner snapshot records.
const storageKeyPrefix = "calendar-events-"

func storageKey(ownerID string) string {
	return storageKeyPrefix + ownerID
}

type eventStore struct {
	repo           domain.SnapshotRepository
	logger         *slog.Logger
	contextTimeout time.Duration

	mu     sync.Mutex
	owner  string
	events []domain.Event
}

// NewEventStore returns the EventStore for the active owner's events.
// Wire SetOwner as a subscriber of the identity provider so the collection
// is discarded and reloaded on every login/logout/switch.
func NewEventStore(repo domain.SnapshotRepository, logger *slog.Logger, timeout time.Duration) domain.EventStore {
	return &eventStore{
		repo:           repo,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *eventStore) SetOwner(ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ownerID == s.owner {
		return
	}
	s.owner = ownerID
	s.events = nil
	if ownerID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.contextTimeout)
	defer cancel()

	loaded, err := s.repo.Load(ctx, storageKey(ownerID))
	switch {
	case err == nil:
		s.events = loaded
	case errors.Is(err, domain.ErrNotFound):
		// First session for this owner; start empty.
	case errors.Is(err, domain.ErrCorruptSnapshot):
		// Fall back to empty without touching the durable record.
		s.logger.Error("failed to load event snapshot", "owner", ownerID, "err", err)
	default:
		s.logger.Error("failed to load event snapshot", "owner", ownerID, "err", err)
	}
}

// active reports whether ownerID names the currently active owner. Callers
// hold s.mu. Requests race with owner switches, so an operation whose caller
// no longer matches the active owner must not touch the loaded collection.
func (s *eventStore) active(ownerID string) bool {
	return ownerID != "" && ownerID == s.owner
}

func (s *eventStore) Add(ctx context.Context, ownerID string, draft domain.Event) (*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active(ownerID) {
		return nil, nil
	}

	ev := draft
	ev.ID = uuid.NewString()
	ev.OwnerID = s.owner
	s.events = append(s.events, ev)

	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (s *eventStore) Update(ctx context.Context, ownerID, id string, patch domain.EventPatch) (*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active(ownerID) {
		return nil, nil
	}

	for i := range s.events {
		if s.events[i].ID != id || s.events[i].OwnerID != s.owner {
			continue
		}
		if patch.Title != nil {
			s.events[i].Title = *patch.Title
		}
		if patch.Description != nil {
			s.events[i].Description = *patch.Description
		}
		if patch.Date != nil {
			s.events[i].Date = *patch.Date
		}
		if patch.Time != nil {
			s.events[i].Time = *patch.Time
		}
		if err := s.persist(ctx); err != nil {
			return nil, err
		}
		ev := s.events[i]
		return &ev, nil
	}
	return nil, nil
}

func (s *eventStore) Remove(ctx context.Context, ownerID, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active(ownerID) {
		return false, nil
	}

	for i := range s.events {
		if s.events[i].ID != id || s.events[i].OwnerID != s.owner {
			continue
		}
		s.events = append(s.events[:i], s.events[i+1:]...)
		if err := s.persist(ctx); err != nil {
			return true, err
		}
		return true, nil
	}
	return false, nil
}

func (s *eventStore) QueryByDate(ctx context.Context, ownerID, date string) []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active(ownerID) {
		return []domain.Event{}
	}
	out := []domain.Event{}
	for _, ev := range s.events {
		if ev.Date == date && ev.OwnerID == s.owner {
			out = append(out, ev)
		}
	}
	return out
}

func (s *eventStore) Events(ctx context.Context, ownerID string) []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active(ownerID) {
		return []domain.Event{}
	}
	out := make([]domain.Event, len(s.events))
	copy(out, s.events)
	return out
}

// persist writes the full current list under the active owner's key.
// Callers hold s.mu. The in-memory mutation is kept even when the write
// fails; the next successful mutation rewrites the whole snapshot anyway.
func (s *eventStore) persist(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	snapshot := make([]domain.Event, len(s.events))
	copy(snapshot, s.events)
	if err := s.repo.Save(ctx, storageKey(s.owner), snapshot); err != nil {
		s.logger.Error("failed to persist event snapshot", "owner", s.owner, "err", err)
		return fmt.Errorf("persist events: %w", err)
	}
	return nil
}
