package schedule

import (
	"fmt"
	"sort"

	"github.com/greenmartialarts/shopshift-api/pkg/models"
)

// ViolationKind labels a distinct validator check.
type ViolationKind string

const (
	// ViolationFullCoverage: an operating-hours sub-interval has no
	// assignment covering it.
	ViolationFullCoverage ViolationKind = "full_coverage"
	// ViolationNoOverlap: one employee holds two overlapping assignments
	// on the same weekday.
	ViolationNoOverlap ViolationKind = "no_overlap"
	// ViolationBoundsExceeded: an employee's weekly minutes exceed their
	// hard maximum.
	ViolationBoundsExceeded ViolationKind = "bounds_exceeded"
	// ViolationAvailability: an assignment flagged in-availability is not
	// contained in the employee's declared availability.
	ViolationAvailability ViolationKind = "availability_consistency"
	// WarningMinimumUnmet: an employee finished below their weekly
	// minimum. Warning only; minimum hours are a soft goal.
	WarningMinimumUnmet ViolationKind = "minimum_hours_unmet"
)

// Violation is one broken check, with enough context to render a message.
type Violation struct {
	Kind       ViolationKind  `json:"kind"`
	Weekday    models.Weekday `json:"weekday,omitempty"`
	EmployeeID string         `json:"employee_id,omitempty"`
	Detail     string         `json:"detail"`
}

// Report is the validator verdict. Warnings never flip Valid to false.
type Report struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations,omitempty"`
	Warnings   []Violation `json:"warnings,omitempty"`
}

// Validate is the authoritative acceptance check for a week schedule. It is
// pure and independent of how the schedule was constructed, so it can be run
// against engine output in tests as well as against hand-edited schedules.
func Validate(ws *models.WeekSchedule, hours models.OperatingHours, employees []models.Employee, defaults models.Constraints) (Report, error) {
	coverage, err := WeekCoverage(hours)
	if err != nil {
		return Report{}, err
	}
	pool, err := buildPool(employees, defaults)
	if err != nil {
		return Report{}, err
	}
	byID := make(map[string]*candidate, len(pool))
	for _, c := range pool {
		byID[c.id] = c
	}

	var rep Report

	// FullCoverage: every required interval must be inside the union of
	// that weekday's assignments.
	perDay := make(map[models.Weekday][]models.TimeInterval)
	for _, a := range ws.Assignments {
		perDay[a.Weekday] = append(perDay[a.Weekday], a.Interval())
	}
	for day := models.Sunday; day <= models.Saturday; day++ {
		covered := MergeIntervals(perDay[day])
		for _, req := range coverage[day] {
			for _, missing := range subtractIntervals(req, covered) {
				rep.Violations = append(rep.Violations, Violation{
					Kind:    ViolationFullCoverage,
					Weekday: day,
					Detail:  fmt.Sprintf("%s %s is not covered", day, missing),
				})
			}
		}
	}

	// NoOverlap: per employee per weekday, sorted assignments must not
	// intersect.
	type empDay struct {
		id  string
		day models.Weekday
	}
	grouped := make(map[empDay][]models.TimeInterval)
	for _, a := range ws.Assignments {
		grouped[empDay{a.EmployeeID, a.Weekday}] = append(grouped[empDay{a.EmployeeID, a.Weekday}], a.Interval())
	}
	keys := make([]empDay, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].id != keys[j].id {
			return keys[i].id < keys[j].id
		}
		return keys[i].day < keys[j].day
	})
	for _, k := range keys {
		ivs := grouped[k]
		sort.Slice(ivs, func(i, j int) bool { return ivs[i].Start < ivs[j].Start })
		for i := 1; i < len(ivs); i++ {
			if ivs[i].Start < ivs[i-1].End {
				rep.Violations = append(rep.Violations, Violation{
					Kind:       ViolationNoOverlap,
					Weekday:    k.day,
					EmployeeID: k.id,
					Detail:     fmt.Sprintf("%s overlaps %s on %s", ivs[i-1], ivs[i], k.day),
				})
			}
		}
	}

	// BoundsRespected: max is hard, min is a warning.
	totals := make(map[string]int)
	for _, a := range ws.Assignments {
		totals[a.EmployeeID] += a.Interval().Minutes()
	}
	for _, c := range pool {
		total := totals[c.id]
		if total > c.max {
			rep.Violations = append(rep.Violations, Violation{
				Kind:       ViolationBoundsExceeded,
				EmployeeID: c.id,
				Detail:     fmt.Sprintf("assigned %d minutes, maximum is %d", total, c.max),
			})
		}
		if total < c.min {
			rep.Warnings = append(rep.Warnings, Violation{
				Kind:       WarningMinimumUnmet,
				EmployeeID: c.id,
				Detail:     fmt.Sprintf("assigned %d minutes, minimum is %d", total, c.min),
			})
		}
	}

	// AvailabilityConsistency: in-availability assignments must sit fully
	// inside a declared window.
	for _, a := range ws.Assignments {
		if !a.InAvailability {
			continue
		}
		c, ok := byID[a.EmployeeID]
		if !ok {
			rep.Violations = append(rep.Violations, Violation{
				Kind:       ViolationAvailability,
				Weekday:    a.Weekday,
				EmployeeID: a.EmployeeID,
				Detail:     "assignment references unknown employee",
			})
			continue
		}
		if !c.availableFor(a.Weekday, a.Interval()) {
			rep.Violations = append(rep.Violations, Violation{
				Kind:       ViolationAvailability,
				Weekday:    a.Weekday,
				EmployeeID: a.EmployeeID,
				Detail:     fmt.Sprintf("%s on %s is outside declared availability", a.Interval(), a.Weekday),
			})
		}
	}

	rep.Valid = len(rep.Violations) == 0
	return rep, nil
}
