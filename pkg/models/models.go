package models

// Weekday indexes days Sunday=0 through Saturday=6.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Valid reports whether d is within the Sunday..Saturday range.
func (d Weekday) Valid() bool {
	return d >= Sunday && d <= Saturday
}

func (d Weekday) String() string {
	if !d.Valid() {
		return "InvalidWeekday"
	}
	return weekdayNames[d]
}

// TimeInterval is a half-open [Start, End) range in minutes since midnight.
// Well-formed intervals satisfy 0 <= Start < End <= 1440 and never wrap past
// midnight; a wrapping window must be split by the caller before it gets here.
type TimeInterval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Minutes returns the interval length.
func (iv TimeInterval) Minutes() int {
	return iv.End - iv.Start
}

// Overlaps reports whether iv and other share at least one minute.
func (iv TimeInterval) Overlaps(other TimeInterval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Contains reports whether other lies entirely within iv.
func (iv TimeInterval) Contains(other TimeInterval) bool {
	return iv.Start <= other.Start && other.End <= iv.End
}

// ContainsMinute reports whether minute m falls inside [Start, End).
func (iv TimeInterval) ContainsMinute(m int) bool {
	return iv.Start <= m && m < iv.End
}

func (iv TimeInterval) String() string {
	return FormatClock(iv.Start) + "-" + FormatClock(iv.End)
}

// OperatingHours maps each weekday to a shop's open sub-ranges. A missing or
// empty entry means the shop is closed that day.
type OperatingHours map[Weekday][]TimeInterval

// DayAvailability is one employee's declared availability for a single
// weekday. If DayOff is set, Intervals must be empty.
type DayAvailability struct {
	DayOff    bool           `json:"day_off"`
	Intervals []TimeInterval `json:"intervals,omitempty"`
}

// EmployeeAvailability maps weekdays to declared availability.
type EmployeeAvailability map[Weekday]DayAvailability

// RawAvailability is a single availability record as submitted by an
// employee, before normalization.
type RawAvailability struct {
	Weekday Weekday `json:"weekday"`
	Start   int     `json:"start"`
	End     int     `json:"end"`
	DayOff  bool    `json:"day_off"`
}

// Constraints carries the default weekly minute bounds applied to employees
// that do not override them.
type Constraints struct {
	MinWeeklyMinutes int `json:"min_weekly_minutes" yaml:"min_weekly_minutes"`
	MaxWeeklyMinutes int `json:"max_weekly_minutes" yaml:"max_weekly_minutes"`
}

// Employee is a schedulable worker. A zero MaxWeeklyMinutes means "use the
// shop default"; the engine resolves defaults before assigning.
type Employee struct {
	ID               string               `json:"id"`
	Name             string               `json:"name,omitempty"`
	MinWeeklyMinutes int                  `json:"min_weekly_minutes"`
	MaxWeeklyMinutes int                  `json:"max_weekly_minutes"`
	Availability     EmployeeAvailability `json:"availability"`
}

// IncentiveOutsideAvailability is the reason attached to assignments placed
// outside an employee's declared availability.
const IncentiveOutsideAvailability = "outside declared availability"

// ShiftAssignment is one employee's contiguous block of work on one weekday.
type ShiftAssignment struct {
	Weekday         Weekday `json:"weekday"`
	Start           int     `json:"start"`
	End             int     `json:"end"`
	EmployeeID      string  `json:"employee_id"`
	InAvailability  bool    `json:"in_availability"`
	IncentiveReason string  `json:"incentive_reason,omitempty"`
}

// Interval returns the assignment's time range.
func (a ShiftAssignment) Interval() TimeInterval {
	return TimeInterval{Start: a.Start, End: a.End}
}

// CoverageGap is a sub-interval of operating hours left with zero assigned
// employees.
type CoverageGap struct {
	Weekday Weekday `json:"weekday"`
	Start   int     `json:"start"`
	End     int     `json:"end"`
}

// MinuteShortfall reports an employee finishing the week below their
// minimum. Warning-level: it never blocks schedule acceptance.
type MinuteShortfall struct {
	EmployeeID       string `json:"employee_id"`
	AssignedMinutes  int    `json:"assigned_minutes"`
	MinWeeklyMinutes int    `json:"min_weekly_minutes"`
}

// WeekSchedule is the engine's result: assignments ordered by weekday then
// start time, plus per-employee accumulated minutes, unresolved gaps and
// minimum-hour shortfalls. Immutable once returned.
type WeekSchedule struct {
	GenerationID      string            `json:"generation_id"`
	Assignments       []ShiftAssignment `json:"assignments"`
	MinutesByEmployee map[string]int    `json:"minutes_by_employee"`
	Gaps              []CoverageGap     `json:"gaps"`
	Shortfalls        []MinuteShortfall `json:"shortfalls,omitempty"`
}

// FullyCovered reports whether the schedule left no coverage gaps.
func (ws *WeekSchedule) FullyCovered() bool {
	return len(ws.Gaps) == 0
}
