package schedule

import (
	"errors"
	"reflect"
	"testing"

	"github.com/greenmartialarts/shopshift-api/pkg/models"
)

func TestDayCoverage_MergesSubRanges(t *testing.T) {
	hours := models.OperatingHours{
		models.Monday: {iv(840, 1200), iv(540, 840)},
	}
	got, err := DayCoverage(hours, models.Monday)
	if err != nil {
		t.Fatalf("DayCoverage returned error: %v", err)
	}
	want := []models.TimeInterval{iv(540, 1200)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DayCoverage = %v, want %v", got, want)
	}
}

func TestDayCoverage_SplitDay(t *testing.T) {
	// Lunch-break closure stays split.
	hours := models.OperatingHours{
		models.Saturday: {iv(540, 780), iv(840, 1080)},
	}
	got, err := DayCoverage(hours, models.Saturday)
	if err != nil {
		t.Fatalf("DayCoverage returned error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected two coverage intervals, got %v", got)
	}
}

func TestDayCoverage_ClosedDay(t *testing.T) {
	got, err := DayCoverage(models.OperatingHours{}, models.Sunday)
	if err != nil {
		t.Fatalf("DayCoverage returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("closed day should need no coverage, got %v", got)
	}
}

func TestWeekCoverage_RejectsBadWeekday(t *testing.T) {
	_, err := WeekCoverage(models.OperatingHours{8: {iv(540, 720)}})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestWeekCoverage_RejectsBadInterval(t *testing.T) {
	_, err := WeekCoverage(models.OperatingHours{models.Monday: {iv(720, 540)}})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
