package domain

import (
	"context"
	"time"
)

// CalendarDay is one cell of the month grid. Events holds at most the
// display limit; MoreCount is the number of hidden events beyond it.
// swagger:model CalendarDay
type CalendarDay struct {
	Date      string  `json:"date"`
	InMonth   bool    `json:"in_month"`
	IsToday   bool    `json:"is_today"`
	Events    []Event `json:"events"`
	MoreCount int     `json:"more_count"`
}

// MonthGrid is the ordered day sequence for a month view: whole weeks from
// the Sunday on/before the 1st through the Saturday on/after the last day.
// swagger:model MonthGrid
type MonthGrid struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Days  []CalendarDay `json:"days"`
}

// CalendarService builds month grids and exports the caller's events as an
// iCalendar document. The ownerID identifies the caller and is matched
// against the store's active owner.
type CalendarService interface {
	MonthGrid(ctx context.Context, ownerID string, year int, month time.Month) (*MonthGrid, error)
	ExportICS(ctx context.Context, ownerID string) (string, error)
}
