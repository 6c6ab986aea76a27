package schedule

import (
	"sort"

	"github.com/greenmartialarts/shopshift-api/pkg/models"
)

const minutesPerDay = 24 * 60

func checkInterval(field string, iv models.TimeInterval) error {
	if iv.Start < 0 || iv.End > minutesPerDay {
		return validationErrorf(field, "interval %s outside 00:00-24:00", iv)
	}
	if iv.Start >= iv.End {
		return validationErrorf(field, "interval start %s is not before end %s",
			models.FormatClock(iv.Start), models.FormatClock(iv.End))
	}
	return nil
}

// MergeIntervals collapses overlapping or adjacent intervals into the
// minimal sorted set of maximal non-overlapping intervals. The input is not
// modified. Merging an already-merged set returns an equal set.
func MergeIntervals(intervals []models.TimeInterval) []models.TimeInterval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]models.TimeInterval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	merged := sorted[:1]
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			// Overlapping or back-to-back: extend the current run.
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// subtractIntervals returns the parts of base not covered by any interval in
// covered. covered must be sorted and non-overlapping.
func subtractIntervals(base models.TimeInterval, covered []models.TimeInterval) []models.TimeInterval {
	var rest []models.TimeInterval
	cursor := base.Start
	for _, iv := range covered {
		if iv.End <= cursor {
			continue
		}
		if iv.Start >= base.End {
			break
		}
		if iv.Start > cursor {
			rest = append(rest, models.TimeInterval{Start: cursor, End: iv.Start})
		}
		if iv.End > cursor {
			cursor = iv.End
		}
	}
	if cursor < base.End {
		rest = append(rest, models.TimeInterval{Start: cursor, End: base.End})
	}
	return rest
}
