package schedule

import (
	"testing"

	"github.com/greenmartialarts/shopshift-api/pkg/models"
)

func hasViolation(violations []Violation, kind ViolationKind) bool {
	for _, v := range violations {
		if v.Kind == kind {
			return true
		}
	}
	return false
}

func TestValidate_AcceptsEngineOutput(t *testing.T) {
	hours := models.OperatingHours{
		models.Monday:   {iv(540, 1020)},
		models.Thursday: {iv(600, 840)},
	}
	employees := []models.Employee{
		{ID: "emp1", MinWeeklyMinutes: 240, MaxWeeklyMinutes: 600, Availability: models.EmployeeAvailability{
			models.Monday:   {Intervals: []models.TimeInterval{iv(540, 1020)}},
			models.Thursday: {Intervals: []models.TimeInterval{iv(600, 840)}},
		}},
		{ID: "emp2", MinWeeklyMinutes: 120, MaxWeeklyMinutes: 480, Availability: models.EmployeeAvailability{
			models.Monday: {Intervals: []models.TimeInterval{iv(540, 1020)}},
		}},
	}

	ws, err := Generate(hours, employees, models.Constraints{})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	rep, err := Validate(ws, hours, employees, models.Constraints{})
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if !rep.Valid {
		t.Errorf("engine output rejected: %+v", rep.Violations)
	}
}

func TestValidate_FullCoverage(t *testing.T) {
	hours := models.OperatingHours{models.Monday: {iv(540, 1020)}}
	employees := []models.Employee{
		{ID: "emp1", MaxWeeklyMinutes: 480, Availability: avail(models.Monday, 540, 1020)},
	}
	ws := &models.WeekSchedule{
		Assignments: []models.ShiftAssignment{
			{Weekday: models.Monday, Start: 540, End: 720, EmployeeID: "emp1", InAvailability: true},
		},
	}

	rep, err := Validate(ws, hours, employees, models.Constraints{})
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if rep.Valid || !hasViolation(rep.Violations, ViolationFullCoverage) {
		t.Errorf("expected full-coverage violation, got %+v", rep)
	}
}

func TestValidate_NoOverlap(t *testing.T) {
	hours := models.OperatingHours{models.Monday: {iv(540, 780)}}
	employees := []models.Employee{
		{ID: "emp1", MaxWeeklyMinutes: 960, Availability: avail(models.Monday, 540, 1020)},
	}
	ws := &models.WeekSchedule{
		Assignments: []models.ShiftAssignment{
			{Weekday: models.Monday, Start: 540, End: 780, EmployeeID: "emp1", InAvailability: true},
			{Weekday: models.Monday, Start: 720, End: 900, EmployeeID: "emp1", InAvailability: true},
		},
	}

	rep, err := Validate(ws, hours, employees, models.Constraints{})
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if !hasViolation(rep.Violations, ViolationNoOverlap) {
		t.Errorf("expected no-overlap violation, got %+v", rep)
	}
}

func TestValidate_MaxBoundHard(t *testing.T) {
	hours := models.OperatingHours{models.Monday: {iv(540, 1020)}}
	employees := []models.Employee{
		{ID: "emp1", MaxWeeklyMinutes: 240, Availability: avail(models.Monday, 540, 1020)},
	}
	ws := &models.WeekSchedule{
		Assignments: []models.ShiftAssignment{
			{Weekday: models.Monday, Start: 540, End: 1020, EmployeeID: "emp1", InAvailability: true},
		},
	}

	rep, err := Validate(ws, hours, employees, models.Constraints{})
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if rep.Valid || !hasViolation(rep.Violations, ViolationBoundsExceeded) {
		t.Errorf("expected bounds violation, got %+v", rep)
	}
}

func TestValidate_MinBoundIsWarningOnly(t *testing.T) {
	hours := models.OperatingHours{models.Monday: {iv(540, 780)}}
	employees := []models.Employee{
		{ID: "emp1", MinWeeklyMinutes: 480, MaxWeeklyMinutes: 960, Availability: avail(models.Monday, 540, 1020)},
	}
	ws := &models.WeekSchedule{
		Assignments: []models.ShiftAssignment{
			{Weekday: models.Monday, Start: 540, End: 780, EmployeeID: "emp1", InAvailability: true},
		},
	}

	rep, err := Validate(ws, hours, employees, models.Constraints{})
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if !rep.Valid {
		t.Errorf("minimum shortfall must not invalidate the schedule: %+v", rep.Violations)
	}
	if !hasViolation(rep.Warnings, WarningMinimumUnmet) {
		t.Errorf("expected minimum-hours warning, got %+v", rep.Warnings)
	}
}

func TestValidate_AvailabilityConsistency(t *testing.T) {
	hours := models.OperatingHours{models.Monday: {iv(540, 780)}}
	employees := []models.Employee{
		{ID: "emp1", MaxWeeklyMinutes: 960, Availability: avail(models.Monday, 540, 720)},
	}
	ws := &models.WeekSchedule{
		Assignments: []models.ShiftAssignment{
			// Claims in-availability but runs past the declared window.
			{Weekday: models.Monday, Start: 540, End: 780, EmployeeID: "emp1", InAvailability: true},
		},
	}

	rep, err := Validate(ws, hours, employees, models.Constraints{})
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if !hasViolation(rep.Violations, ViolationAvailability) {
		t.Errorf("expected availability violation, got %+v", rep)
	}
}

func TestValidate_IncentiveAssignmentNeedsNoAvailability(t *testing.T) {
	hours := models.OperatingHours{models.Monday: {iv(540, 780)}}
	employees := []models.Employee{
		{ID: "emp1", MaxWeeklyMinutes: 960, Availability: models.EmployeeAvailability{}},
	}
	ws := &models.WeekSchedule{
		Assignments: []models.ShiftAssignment{
			{Weekday: models.Monday, Start: 540, End: 780, EmployeeID: "emp1",
				InAvailability: false, IncentiveReason: models.IncentiveOutsideAvailability},
		},
	}

	rep, err := Validate(ws, hours, employees, models.Constraints{})
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if !rep.Valid {
		t.Errorf("incentive assignment wrongly rejected: %+v", rep.Violations)
	}
}
