// Package calendar shapes week-schedule assignments into calendar events.
// It anchors weekday/minute pairs to a concrete week-start date; pushing the
// events anywhere is the caller's business.
package calendar

import (
	"fmt"
	"time"

	"github.com/greenmartialarts/shopshift-api/pkg/models"
)

// Event is one shift in calendar-push-friendly shape.
type Event struct {
	Summary  string    `json:"summary"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Attendee string    `json:"attendee"`
}

// BuildEvents converts every assignment into an event. weekStart is
// normalized back to the Sunday of its week; names maps employee ids to
// display names (missing entries fall back to the id).
func BuildEvents(ws *models.WeekSchedule, weekStart time.Time, names map[string]string, shopName string) []Event {
	sunday := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, weekStart.Location())
	sunday = sunday.AddDate(0, 0, -int(sunday.Weekday()))

	events := make([]Event, 0, len(ws.Assignments))
	for _, a := range ws.Assignments {
		day := sunday.AddDate(0, 0, int(a.Weekday))
		name := names[a.EmployeeID]
		if name == "" {
			name = a.EmployeeID
		}
		summary := fmt.Sprintf("%s shift: %s", shopName, name)
		if !a.InAvailability {
			summary += " (incentive)"
		}
		events = append(events, Event{
			Summary:  summary,
			Start:    day.Add(time.Duration(a.Start) * time.Minute),
			End:      day.Add(time.Duration(a.End) * time.Minute),
			Attendee: a.EmployeeID,
		})
	}
	return events
}
