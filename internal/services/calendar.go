package services

import (
	"context"
	"fmt"
	"time"

	"personalcalendar/internal/domain"
)

// dayKeyLayout is the day bucket key format shared with the event store.
const dayKeyLayout = "2006-01-02"

// maxVisibleEvents caps the per-day display list; the remainder is
// reported as MoreCount (the "+N more" affordance).
const maxVisibleEvents = 3

type calendarService struct {
	store domain.EventStore
	now   func() time.Time
}

// NewCalendarService returns the CalendarService backed by the given store.
func NewCalendarService(store domain.EventStore) domain.CalendarService {
	return &calendarService{
		store: store,
		now:   time.Now,
	}
}

// MonthGrid enumerates whole weeks (Sunday through Saturday) covering the
// given month, resolving each day's events through the store.
func (s *calendarService) MonthGrid(ctx context.Context, ownerID string, year int, month time.Month) (*domain.MonthGrid, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", domain.ErrInvalidInput)
	}
	if year < 1 || year > 9999 {
		return nil, fmt.Errorf("%w: year must be between 1 and 9999", domain.ErrInvalidInput)
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))
	gridEnd := monthEnd.AddDate(0, 0, int(time.Saturday-monthEnd.Weekday()))

	today := s.now().Format(dayKeyLayout)

	grid := &domain.MonthGrid{Year: year, Month: int(month)}
	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		key := d.Format(dayKeyLayout)
		events := s.store.QueryByDate(ctx, ownerID, key)

		more := 0
		if len(events) > maxVisibleEvents {
			more = len(events) - maxVisibleEvents
			events = events[:maxVisibleEvents]
		}

		grid.Days = append(grid.Days, domain.CalendarDay{
			Date:      key,
			InMonth:   d.Month() == month && d.Year() == year,
			IsToday:   key == today,
			Events:    events,
			MoreCount: more,
		})
	}
	return grid, nil
}
