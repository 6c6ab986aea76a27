package calendar

import (
	"testing"
	"time"

	"github.com/greenmartialarts/shopshift-api/pkg/models"
)

func TestBuildEvents(t *testing.T) {
	ws := &models.WeekSchedule{
		Assignments: []models.ShiftAssignment{
			{Weekday: models.Monday, Start: 540, End: 1020, EmployeeID: "emp1", InAvailability: true},
			{Weekday: models.Friday, Start: 720, End: 900, EmployeeID: "emp2",
				IncentiveReason: models.IncentiveOutsideAvailability},
		},
	}
	// A Wednesday; must be normalized back to Sunday 2026-03-01.
	weekStart := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	events := BuildEvents(ws, weekStart, map[string]string{"emp1": "Alice"}, "Corner Deli")
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	mon := events[0]
	if !mon.Start.Equal(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("Monday event start = %v", mon.Start)
	}
	if !mon.End.Equal(time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)) {
		t.Errorf("Monday event end = %v", mon.End)
	}
	if mon.Summary != "Corner Deli shift: Alice" || mon.Attendee != "emp1" {
		t.Errorf("unexpected Monday event %+v", mon)
	}

	fri := events[1]
	if !fri.Start.Equal(time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("Friday event start = %v", fri.Start)
	}
	if fri.Summary != "Corner Deli shift: emp2 (incentive)" {
		t.Errorf("unexpected Friday summary %q", fri.Summary)
	}
}
