// schedgen generates a week schedule offline from a YAML shop file and
// prints it, for trying out rosters without running the API server.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/greenmartialarts/shopshift-api/pkg/calendar"
	"github.com/greenmartialarts/shopshift-api/pkg/models"
	"github.com/greenmartialarts/shopshift-api/pkg/schedule"
	"github.com/greenmartialarts/shopshift-api/pkg/shopfile"
)

func main() {
	var (
		path      = flag.String("file", "shop.yaml", "path to the shop definition file")
		csvOut    = flag.String("csv", "", "write assignments as CSV to this path")
		weekStart = flag.String("week-start", "", "week date (YYYY-MM-DD) to print calendar events for")
	)
	flag.Parse()

	f, hours, employees, err := shopfile.Load(*path)
	if err != nil {
		log.Fatalf("loading %s: %v", *path, err)
	}

	ws, err := schedule.Generate(hours, employees, f.Defaults)
	if err != nil {
		log.Fatalf("generating schedule: %v", err)
	}

	rep, err := schedule.Validate(ws, hours, employees, f.Defaults)
	if err != nil {
		log.Fatalf("validating schedule: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DAY\tSTART\tEND\tEMPLOYEE\tNOTE")
	for _, a := range ws.Assignments {
		note := ""
		if !a.InAvailability {
			note = a.IncentiveReason
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			a.Weekday, models.FormatClock(a.Start), models.FormatClock(a.End), a.EmployeeID, note)
	}
	w.Flush()

	for _, g := range ws.Gaps {
		fmt.Printf("GAP: %s %s-%s has no coverage\n", g.Weekday, models.FormatClock(g.Start), models.FormatClock(g.End))
	}
	for _, s := range ws.Shortfalls {
		fmt.Printf("SHORTFALL: %s assigned %d of %d minimum minutes\n",
			s.EmployeeID, s.AssignedMinutes, s.MinWeeklyMinutes)
	}
	fmt.Printf("fairness: %.1f%%, valid: %v\n", schedule.Fairness(ws), rep.Valid)
	for _, v := range rep.Violations {
		fmt.Printf("VIOLATION [%s]: %s\n", v.Kind, v.Detail)
	}

	if *weekStart != "" {
		start, err := time.Parse("2006-01-02", *weekStart)
		if err != nil {
			log.Fatalf("invalid -week-start: %v", err)
		}
		names := make(map[string]string, len(employees))
		for _, e := range employees {
			names[e.ID] = e.Name
		}
		for _, ev := range calendar.BuildEvents(ws, start, names, f.Shop.Name) {
			fmt.Printf("EVENT: %s | %s - %s | %s\n",
				ev.Summary, ev.Start.Format(time.RFC3339), ev.End.Format(time.RFC3339), ev.Attendee)
		}
	}

	if *csvOut != "" {
		if err := writeCSV(*csvOut, ws); err != nil {
			log.Fatalf("writing %s: %v", *csvOut, err)
		}
		fmt.Printf("wrote %s\n", *csvOut)
	}
}

func writeCSV(path string, ws *models.WeekSchedule) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	writer.Write([]string{"weekday", "day", "start", "end", "employee_id", "in_availability", "incentive_reason"})
	for _, a := range ws.Assignments {
		writer.Write([]string{
			strconv.Itoa(int(a.Weekday)),
			a.Weekday.String(),
			models.FormatClock(a.Start),
			models.FormatClock(a.End),
			a.EmployeeID,
			strconv.FormatBool(a.InAvailability),
			a.IncentiveReason,
		})
	}
	writer.Flush()
	return writer.Error()
}
