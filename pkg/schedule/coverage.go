package schedule

import (
	"fmt"

	"github.com/greenmartialarts/shopshift-api/pkg/models"
)

// DayCoverage merges one weekday's operating hours into the sorted list of
// intervals that must be staffed. A closed day (no intervals) requires no
// coverage and yields an empty list.
func DayCoverage(hours models.OperatingHours, day models.Weekday) ([]models.TimeInterval, error) {
	if !day.Valid() {
		return nil, validationErrorf("operating_hours", "unknown weekday %d", int(day))
	}
	for _, iv := range hours[day] {
		if err := checkInterval(fmt.Sprintf("operating_hours[%s]", day), iv); err != nil {
			return nil, err
		}
	}
	return MergeIntervals(hours[day]), nil
}

// WeekCoverage computes required coverage for all seven weekdays. It also
// rejects operating hours keyed by an out-of-range weekday.
func WeekCoverage(hours models.OperatingHours) (map[models.Weekday][]models.TimeInterval, error) {
	for day := range hours {
		if !day.Valid() {
			return nil, validationErrorf("operating_hours", "unknown weekday %d", int(day))
		}
	}

	coverage := make(map[models.Weekday][]models.TimeInterval, 7)
	for day := models.Sunday; day <= models.Saturday; day++ {
		merged, err := DayCoverage(hours, day)
		if err != nil {
			return nil, err
		}
		if len(merged) > 0 {
			coverage[day] = merged
		}
	}
	return coverage, nil
}
