package schedule

import (
	"math"
	"sort"

	"github.com/greenmartialarts/shopshift-api/pkg/models"
)

// candidate carries per-employee working state during a generation run.
type candidate struct {
	id       string
	min      int
	max      int
	assigned int
	avail    models.EmployeeAvailability
	// byDay holds the intervals already assigned to this employee per
	// weekday, kept sorted by start.
	byDay map[models.Weekday][]models.TimeInterval
}

func (c *candidate) remaining() int {
	return c.max - c.assigned
}

// deficit is the gap to the weekly minimum; negative once the minimum is
// met. Larger deficit means more under-served.
func (c *candidate) deficit() int {
	return c.min - c.assigned
}

// availableAt returns the availability interval containing minute m on day,
// if any. Intervals are normalized, so at most one can contain m.
func (c *candidate) availableAt(day models.Weekday, m int) (models.TimeInterval, bool) {
	da := c.avail[day]
	if da.DayOff {
		return models.TimeInterval{}, false
	}
	for _, iv := range da.Intervals {
		if iv.ContainsMinute(m) {
			return iv, true
		}
	}
	return models.TimeInterval{}, false
}

// availableFor reports whether the exact interval iv lies inside the
// employee's declared availability for day.
func (c *candidate) availableFor(day models.Weekday, iv models.TimeInterval) bool {
	da := c.avail[day]
	if da.DayOff {
		return false
	}
	for _, a := range da.Intervals {
		if a.Contains(iv) {
			return true
		}
	}
	return false
}

func (c *candidate) bookedOverlapping(day models.Weekday, iv models.TimeInterval) bool {
	for _, b := range c.byDay[day] {
		if b.Overlaps(iv) {
			return true
		}
	}
	return false
}

func (c *candidate) book(day models.Weekday, iv models.TimeInterval) {
	c.byDay[day] = append(c.byDay[day], iv)
	sort.Slice(c.byDay[day], func(i, j int) bool { return c.byDay[day][i].Start < c.byDay[day][j].Start })
	c.assigned += iv.Minutes()
}

func (c *candidate) unbook(day models.Weekday, iv models.TimeInterval) {
	booked := c.byDay[day]
	for i, b := range booked {
		if b == iv {
			c.byDay[day] = append(booked[:i], booked[i+1:]...)
			break
		}
	}
	c.assigned -= iv.Minutes()
}

// Generate builds a week schedule covering the shop's operating hours with
// the given employees. Bounds left at zero on an employee are filled from
// defaults. The returned schedule is a valid result even when coverage is
// infeasible: unresolved intervals are reported in Gaps, employees left
// below their minimum in Shortfalls. Only malformed input produces an error.
//
// The algorithm is deterministic: identical input yields identical output.
// GenerationID is left empty; callers that persist schedules stamp their own.
func Generate(hours models.OperatingHours, employees []models.Employee, defaults models.Constraints) (*models.WeekSchedule, error) {
	coverage, err := WeekCoverage(hours)
	if err != nil {
		return nil, err
	}

	pool, err := buildPool(employees, defaults)
	if err != nil {
		return nil, err
	}

	ws := &models.WeekSchedule{
		MinutesByEmployee: make(map[string]int, len(pool)),
	}

	for day := models.Sunday; day <= models.Saturday; day++ {
		for _, req := range coverage[day] {
			assignInterval(ws, pool, day, req)
		}
	}

	repairMinimums(ws, pool)

	for _, c := range pool {
		ws.MinutesByEmployee[c.id] = c.assigned
		if c.assigned < c.min {
			ws.Shortfalls = append(ws.Shortfalls, models.MinuteShortfall{
				EmployeeID:       c.id,
				AssignedMinutes:  c.assigned,
				MinWeeklyMinutes: c.min,
			})
		}
	}
	return ws, nil
}

func buildPool(employees []models.Employee, defaults models.Constraints) ([]*candidate, error) {
	if defaults.MinWeeklyMinutes < 0 || defaults.MinWeeklyMinutes > defaults.MaxWeeklyMinutes {
		return nil, validationErrorf("defaults", "min %d / max %d weekly minutes out of order",
			defaults.MinWeeklyMinutes, defaults.MaxWeeklyMinutes)
	}

	seen := make(map[string]bool, len(employees))
	pool := make([]*candidate, 0, len(employees))
	for _, emp := range employees {
		if emp.ID == "" {
			return nil, validationErrorf("employees", "employee with empty id")
		}
		if seen[emp.ID] {
			return nil, validationErrorf("employees", "duplicate employee id %q", emp.ID)
		}
		seen[emp.ID] = true

		min, max := emp.MinWeeklyMinutes, emp.MaxWeeklyMinutes
		if max == 0 {
			max = defaults.MaxWeeklyMinutes
			if min == 0 {
				min = defaults.MinWeeklyMinutes
			}
		}
		if min < 0 || min > max {
			return nil, validationErrorf("employee "+emp.ID,
				"min %d / max %d weekly minutes out of order", min, max)
		}

		avail, err := checkAvailability(emp.ID, emp.Availability)
		if err != nil {
			return nil, err
		}

		pool = append(pool, &candidate{
			id:    emp.ID,
			min:   min,
			max:   max,
			avail: avail,
			byDay: make(map[models.Weekday][]models.TimeInterval),
		})
	}

	// Lexicographic id order is the final tie-break; fixing it up front
	// makes every later scan deterministic.
	sort.Slice(pool, func(i, j int) bool { return pool[i].id < pool[j].id })
	return pool, nil
}

// assignInterval walks one coverage interval with a cursor, carving it into
// assignments until it is covered or recorded as a gap.
func assignInterval(ws *models.WeekSchedule, pool []*candidate, day models.Weekday, req models.TimeInterval) {
	cursor := req.Start
	for cursor < req.End {
		if c, av, ok := pickAvailable(pool, day, cursor, req.End); ok {
			end := minInt(req.End, av.End, cursor+c.remaining())
			iv := models.TimeInterval{Start: cursor, End: end}
			c.book(day, iv)
			ws.Assignments = append(ws.Assignments, models.ShiftAssignment{
				Weekday:        day,
				Start:          iv.Start,
				End:            iv.End,
				EmployeeID:     c.id,
				InAvailability: true,
			})
			cursor = end
			continue
		}

		// Nobody is available at the cursor. Fall back to an incentive
		// assignment, but only up to the next point where declared
		// availability resumes so in-availability candidates still get
		// the tail of the interval.
		segEnd := nextAvailabilityStart(pool, day, cursor, req.End)
		c := pickFallback(pool)
		if c == nil {
			ws.Gaps = append(ws.Gaps, models.CoverageGap{Weekday: day, Start: cursor, End: req.End})
			return
		}
		end := minInt(segEnd, cursor+c.remaining())
		iv := models.TimeInterval{Start: cursor, End: end}
		c.book(day, iv)
		ws.Assignments = append(ws.Assignments, models.ShiftAssignment{
			Weekday:         day,
			Start:           iv.Start,
			End:             iv.End,
			EmployeeID:      c.id,
			InAvailability:  false,
			IncentiveReason: models.IncentiveOutsideAvailability,
		})
		cursor = end
	}
}

// pickAvailable selects the best in-availability candidate whose declared
// window contains the cursor and who still has minute budget.
//
// Selection order: largest deficit against the weekly minimum first
// (under-served employees), then the window that most tightly bounds the
// required interval (least slack), then smallest id.
func pickAvailable(pool []*candidate, day models.Weekday, cursor, reqEnd int) (*candidate, models.TimeInterval, bool) {
	var best *candidate
	var bestAv models.TimeInterval
	bestSlack := math.MaxInt

	for _, c := range pool {
		if c.remaining() <= 0 {
			continue
		}
		av, ok := c.availableAt(day, cursor)
		if !ok {
			continue
		}
		slack := (cursor - av.Start) + maxInt(0, av.End-reqEnd)
		if best == nil ||
			c.deficit() > best.deficit() ||
			(c.deficit() == best.deficit() && slack < bestSlack) {
			best, bestAv, bestSlack = c, av, slack
		}
	}
	return best, bestAv, best != nil
}

// pickFallback selects the incentive candidate among all employees with
// remaining budget. Availability tightness is meaningless here, so the
// tie-break degenerates to deficit then id.
func pickFallback(pool []*candidate) *candidate {
	var best *candidate
	for _, c := range pool {
		if c.remaining() <= 0 {
			continue
		}
		if best == nil || c.deficit() > best.deficit() {
			best = c
		}
	}
	return best
}

// nextAvailabilityStart finds the earliest minute after cursor (and before
// limit) at which any budgeted employee's declared availability begins.
func nextAvailabilityStart(pool []*candidate, day models.Weekday, cursor, limit int) int {
	next := limit
	for _, c := range pool {
		if c.remaining() <= 0 {
			continue
		}
		for _, iv := range c.avail[day].Intervals {
			if iv.Start > cursor && iv.Start < next {
				next = iv.Start
			}
		}
	}
	return next
}

// repairMinimums is the best-effort pass moving in-availability shifts from
// donors comfortably above their minimum to employees still below theirs.
// A move is taken only when the recipient is available for the exact
// sub-interval, stays within their maximum and has no overlapping shift that
// day, and the donor does not drop below their own minimum; together those
// guarantee the aggregate deviation from minimums strictly shrinks. The pass
// may leave shortfalls, which are reported rather than hidden.
func repairMinimums(ws *models.WeekSchedule, pool []*candidate) {
	byID := make(map[string]*candidate, len(pool))
	for _, c := range pool {
		byID[c.id] = c
	}

	for _, under := range pool {
		for i := range ws.Assignments {
			if under.assigned >= under.min {
				break
			}
			a := &ws.Assignments[i]
			if a.EmployeeID == under.id || !a.InAvailability {
				continue
			}
			donor := byID[a.EmployeeID]
			iv := a.Interval()
			d := iv.Minutes()
			if donor.assigned-d < donor.min {
				continue
			}
			if under.assigned+d > under.max {
				continue
			}
			if !under.availableFor(a.Weekday, iv) || under.bookedOverlapping(a.Weekday, iv) {
				continue
			}

			donor.unbook(a.Weekday, iv)
			under.book(a.Weekday, iv)
			a.EmployeeID = under.id
		}
	}
}

// Fairness returns a 0-100 score for how evenly assigned minutes are spread
// across the pool; 100 means zero standard deviation.
func Fairness(ws *models.WeekSchedule) float64 {
	n := len(ws.MinutesByEmployee)
	if n == 0 {
		return 100.0
	}

	var sum float64
	for _, m := range ws.MinutesByEmployee {
		sum += float64(m)
	}
	if sum == 0 {
		return 100.0
	}
	mean := sum / float64(n)

	var varianceSum float64
	for _, m := range ws.MinutesByEmployee {
		diff := float64(m) - mean
		varianceSum += diff * diff
	}
	stdDev := math.Sqrt(varianceSum / float64(n))

	score := (1.0 - stdDev/mean) * 100.0
	if score < 0 {
		return 0.0
	}
	return score
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
