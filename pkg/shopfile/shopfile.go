// Package shopfile reads a shop roster definition from a YAML file. It is
// the file-backed form of the shop/employee data source the engine is fed
// from; the server's JSON API is the other form.
package shopfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/greenmartialarts/shopshift-api/pkg/models"
)

type hoursEntry struct {
	Weekday int    `yaml:"weekday"`
	Open    string `yaml:"open"`
	Close   string `yaml:"close"`
}

type availabilityEntry struct {
	Weekday int    `yaml:"weekday"`
	Start   string `yaml:"start"`
	End     string `yaml:"end"`
	DayOff  bool   `yaml:"day_off"`
}

type employeeEntry struct {
	ID               string              `yaml:"id"`
	Name             string              `yaml:"name"`
	MinWeeklyMinutes int                 `yaml:"min_weekly_minutes"`
	MaxWeeklyMinutes int                 `yaml:"max_weekly_minutes"`
	Availability     []availabilityEntry `yaml:"availability"`
}

// File is the on-disk shop definition.
type File struct {
	Shop struct {
		ID    string       `yaml:"id"`
		Name  string       `yaml:"name"`
		Hours []hoursEntry `yaml:"hours"`
	} `yaml:"shop"`
	Defaults  models.Constraints `yaml:"defaults"`
	Employees []employeeEntry    `yaml:"employees"`
}

// Load parses path into domain values ready for schedule.Generate.
func Load(path string) (*File, models.OperatingHours, []models.Employee, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, err
	}
	return parse(raw)
}

func parse(raw []byte) (*File, models.OperatingHours, []models.Employee, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, nil, nil, fmt.Errorf("parsing shop file: %w", err)
	}

	hours := make(models.OperatingHours)
	for _, h := range f.Shop.Hours {
		iv, err := models.ParseClockInterval(h.Open, h.Close)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("shop hours weekday %d: %w", h.Weekday, err)
		}
		day := models.Weekday(h.Weekday)
		hours[day] = append(hours[day], iv)
	}

	employees := make([]models.Employee, 0, len(f.Employees))
	for _, e := range f.Employees {
		avail := make(models.EmployeeAvailability)
		for _, a := range e.Availability {
			day := models.Weekday(a.Weekday)
			da := avail[day]
			if a.DayOff {
				da.DayOff = true
				avail[day] = da
				continue
			}
			iv, err := models.ParseClockInterval(a.Start, a.End)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("employee %s weekday %d: %w", e.ID, a.Weekday, err)
			}
			da.Intervals = append(da.Intervals, iv)
			avail[day] = da
		}
		employees = append(employees, models.Employee{
			ID:               e.ID,
			Name:             e.Name,
			MinWeeklyMinutes: e.MinWeeklyMinutes,
			MaxWeeklyMinutes: e.MaxWeeklyMinutes,
			Availability:     avail,
		})
	}

	return &f, hours, employees, nil
}
