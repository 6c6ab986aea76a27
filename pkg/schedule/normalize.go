package schedule

import (
	"fmt"

	"github.com/greenmartialarts/shopshift-api/pkg/models"
)

// NormalizeAvailability converts raw per-weekday records into canonical
// availability: overlapping or adjacent windows for the same weekday are
// merged into maximal intervals sorted by start.
//
// It fails with a ValidationError when a record's weekday is outside 0-6,
// when a non-day-off record has start >= end, or when a weekday carries both
// a day-off record and an interval record (explicit conflict, not a silent
// override).
func NormalizeAvailability(records []models.RawAvailability) (models.EmployeeAvailability, error) {
	byDay := make(map[models.Weekday][]models.TimeInterval)
	dayOff := make(map[models.Weekday]bool)

	for _, rec := range records {
		field := fmt.Sprintf("availability[%s]", rec.Weekday)
		if !rec.Weekday.Valid() {
			return nil, validationErrorf("availability", "unknown weekday %d", int(rec.Weekday))
		}
		if rec.DayOff {
			dayOff[rec.Weekday] = true
			continue
		}
		iv := models.TimeInterval{Start: rec.Start, End: rec.End}
		if err := checkInterval(field, iv); err != nil {
			return nil, err
		}
		byDay[rec.Weekday] = append(byDay[rec.Weekday], iv)
	}

	for day := range dayOff {
		if len(byDay[day]) > 0 {
			return nil, validationErrorf(fmt.Sprintf("availability[%s]", day),
				"day marked off but interval records were also submitted")
		}
	}

	avail := make(models.EmployeeAvailability, len(byDay)+len(dayOff))
	for day, intervals := range byDay {
		avail[day] = models.DayAvailability{Intervals: MergeIntervals(intervals)}
	}
	for day := range dayOff {
		avail[day] = models.DayAvailability{DayOff: true}
	}
	return avail, nil
}

// checkAvailability validates an already-structured availability map, merging
// each day's intervals in place of the originals. Used by the engine so that
// callers handing it models.Employee values directly get the same guarantees
// as the record-based normalizer. Idempotent on normalized input.
func checkAvailability(employeeID string, avail models.EmployeeAvailability) (models.EmployeeAvailability, error) {
	out := make(models.EmployeeAvailability, len(avail))
	for day, da := range avail {
		field := fmt.Sprintf("employee %s availability[%s]", employeeID, day)
		if !day.Valid() {
			return nil, validationErrorf("employee "+employeeID+" availability",
				"unknown weekday %d", int(day))
		}
		if da.DayOff && len(da.Intervals) > 0 {
			return nil, validationErrorf(field, "day marked off but intervals were also submitted")
		}
		for _, iv := range da.Intervals {
			if err := checkInterval(field, iv); err != nil {
				return nil, err
			}
		}
		out[day] = models.DayAvailability{DayOff: da.DayOff, Intervals: MergeIntervals(da.Intervals)}
	}
	return out, nil
}
