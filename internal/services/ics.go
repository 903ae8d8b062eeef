package services

import (
	"context"
	"time"

	ics "github.com/arran4/golang-ical"
)

const icsProductID = "-//personalcalendar//calendar export//EN"

// defaultEventDuration is used for DTEND; stored events carry a start time
// only.
const defaultEventDuration = time.Hour

// ExportICS renders the caller's events as an iCalendar document. Events
// whose date or time no longer parse are skipped rather than aborting the
// whole export.
func (s *calendarService) ExportICS(ctx context.Context, ownerID string) (string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)

	stamp := s.now().UTC()
	for _, ev := range s.store.Events(ctx, ownerID) {
		start, err := time.ParseInLocation(dayKeyLayout+" 15:04", ev.Date+" "+ev.Time, time.UTC)
		if err != nil {
			continue
		}
		vevent := cal.AddEvent(ev.ID)
		vevent.SetDtStampTime(stamp)
		vevent.SetStartAt(start)
		vevent.SetEndAt(start.Add(defaultEventDuration))
		vevent.SetSummary(ev.Title)
		if ev.Description != "" {
			vevent.SetDescription(ev.Description)
		}
	}
	return cal.Serialize(), nil
}
