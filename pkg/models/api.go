package models

import "fmt"

// DayHoursInput is one open sub-range of a shop's week, HH:MM wire format.
type DayHoursInput struct {
	Weekday int    `json:"weekday"`
	Open    string `json:"open"`
	Close   string `json:"close"`
}

// AvailabilityInput is one raw availability record, HH:MM wire format.
// A day-off record carries no times.
type AvailabilityInput struct {
	Weekday int    `json:"weekday"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
	DayOff  bool   `json:"day_off,omitempty"`
}

// EmployeeInput is the wire form of an employee roster entry. Zero bounds
// fall back to the shop defaults.
type EmployeeInput struct {
	ID               string              `json:"id"`
	Name             string              `json:"name,omitempty"`
	MinWeeklyMinutes int                 `json:"min_weekly_minutes"`
	MaxWeeklyMinutes int                 `json:"max_weekly_minutes"`
	Availability     []AvailabilityInput `json:"availability"`
}

// ScheduleInput is the schedule-generation request body.
type ScheduleInput struct {
	ShopID         string          `json:"shop_id"`
	ShopName       string          `json:"shop_name,omitempty"`
	WeekStart      string          `json:"week_start,omitempty"` // YYYY-MM-DD, anchors calendar events
	OperatingHours []DayHoursInput `json:"operating_hours"`
	Employees      []EmployeeInput `json:"employees"`
	Defaults       Constraints     `json:"defaults"`
}

// Hours converts the wire operating hours into the domain mapping. Clock
// parse failures are reported; structural validation (ranges, weekday
// bounds) is left to the engine.
func (in ScheduleInput) Hours() (OperatingHours, error) {
	hours := make(OperatingHours)
	for _, dh := range in.OperatingHours {
		iv, err := ParseClockInterval(dh.Open, dh.Close)
		if err != nil {
			return nil, fmt.Errorf("operating hours weekday %d: %w", dh.Weekday, err)
		}
		day := Weekday(dh.Weekday)
		hours[day] = append(hours[day], iv)
	}
	return hours, nil
}

// Roster converts the wire employees into domain employees with structured
// availability.
func (in ScheduleInput) Roster() ([]Employee, error) {
	employees := make([]Employee, 0, len(in.Employees))
	for _, e := range in.Employees {
		avail := make(EmployeeAvailability)
		for _, a := range e.Availability {
			day := Weekday(a.Weekday)
			da := avail[day]
			if a.DayOff {
				da.DayOff = true
				avail[day] = da
				continue
			}
			iv, err := ParseClockInterval(a.Start, a.End)
			if err != nil {
				return nil, fmt.Errorf("employee %s weekday %d: %w", e.ID, a.Weekday, err)
			}
			da.Intervals = append(da.Intervals, iv)
			avail[day] = da
		}
		employees = append(employees, Employee{
			ID:               e.ID,
			Name:             e.Name,
			MinWeeklyMinutes: e.MinWeeklyMinutes,
			MaxWeeklyMinutes: e.MaxWeeklyMinutes,
			Availability:     avail,
		})
	}
	return employees, nil
}
