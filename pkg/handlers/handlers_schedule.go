package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/greenmartialarts/shopshift-api/pkg/calendar"
	"github.com/greenmartialarts/shopshift-api/pkg/database"
	"github.com/greenmartialarts/shopshift-api/pkg/models"
	"github.com/greenmartialarts/shopshift-api/pkg/schedule"
)

// AssignmentView is one shift in HH:MM wire format.
type AssignmentView struct {
	Weekday         int    `json:"weekday"`
	Day             string `json:"day"`
	Start           string `json:"start"`
	End             string `json:"end"`
	EmployeeID      string `json:"employee_id"`
	InAvailability  bool   `json:"in_availability"`
	IncentiveReason string `json:"incentive_reason,omitempty"`
}

// GapView is one uncovered sub-interval in HH:MM wire format.
type GapView struct {
	Weekday int    `json:"weekday"`
	Day     string `json:"day"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// ScheduleResponse is the schedule-generation result body.
type ScheduleResponse struct {
	GenerationID      string                   `json:"generation_id"`
	ShopID            string                   `json:"shop_id,omitempty"`
	Assignments       []AssignmentView         `json:"assignments"`
	Gaps              []GapView                `json:"gaps"`
	Shortfalls        []models.MinuteShortfall `json:"shortfalls,omitempty"`
	MinutesByEmployee map[string]int           `json:"minutes_by_employee"`
	FairnessScore     float64                  `json:"fairness_score"`
	Report            schedule.Report          `json:"report"`
	CalendarEvents    []calendar.Event         `json:"calendar_events,omitempty"`
}

func buildResponse(ws *models.WeekSchedule, rep schedule.Report, input models.ScheduleInput, employees []models.Employee) ScheduleResponse {
	resp := ScheduleResponse{
		GenerationID:      ws.GenerationID,
		ShopID:            input.ShopID,
		Assignments:       make([]AssignmentView, 0, len(ws.Assignments)),
		Gaps:              make([]GapView, 0, len(ws.Gaps)),
		Shortfalls:        ws.Shortfalls,
		MinutesByEmployee: ws.MinutesByEmployee,
		FairnessScore:     schedule.Fairness(ws),
		Report:            rep,
	}
	for _, a := range ws.Assignments {
		resp.Assignments = append(resp.Assignments, AssignmentView{
			Weekday:         int(a.Weekday),
			Day:             a.Weekday.String(),
			Start:           models.FormatClock(a.Start),
			End:             models.FormatClock(a.End),
			EmployeeID:      a.EmployeeID,
			InAvailability:  a.InAvailability,
			IncentiveReason: a.IncentiveReason,
		})
	}
	for _, g := range ws.Gaps {
		resp.Gaps = append(resp.Gaps, GapView{
			Weekday: int(g.Weekday),
			Day:     g.Weekday.String(),
			Start:   models.FormatClock(g.Start),
			End:     models.FormatClock(g.End),
		})
	}

	if input.WeekStart != "" {
		if weekStart, err := time.Parse("2006-01-02", input.WeekStart); err == nil {
			names := make(map[string]string, len(employees))
			for _, e := range employees {
				names[e.ID] = e.Name
			}
			shopName := input.ShopName
			if shopName == "" {
				shopName = input.ShopID
			}
			resp.CalendarEvents = calendar.BuildEvents(ws, weekStart, names, shopName)
		}
	}
	return resp
}

// GenerateSchedule handles the JSON schedule-generation request. Infeasible
// coverage is a 200 with gaps in the body, not an error; only malformed
// input produces a 400.
func (h *Handler) GenerateSchedule(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hours, err := input.Hours()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	employees, err := input.Roster()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws, err := schedule.Generate(hours, employees, input.Defaults)
	if err != nil {
		var verr *schedule.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ws.GenerationID = uuid.NewString()

	rep, err := schedule.Validate(ws, hours, employees, input.Defaults)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := buildResponse(ws, rep, input, employees)

	h.RecordUsage(c, len(employees), len(ws.Assignments))
	h.persistSchedule(input.ShopID, resp)

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) persistSchedule(shopID string, resp ScheduleResponse) {
	if h.DB == nil || shopID == "" {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}
	h.DB.Create(&database.ScheduleRecord{
		ShopID:       shopID,
		GenerationID: resp.GenerationID,
		GeneratedAt:  time.Now(),
		FullyCovered: len(resp.Gaps) == 0,
		Payload:      string(payload),
	})
}

// ScheduleCSV handles CSV uploads: an hours file, an employees file and an
// availability file, returning the generated assignments as CSV text.
//
// hours_file:        weekday,open,close
// employees_file:    id,name,min_weekly_minutes,max_weekly_minutes
// availability_file: employee_id,weekday,start,end,day_off
func (h *Handler) ScheduleCSV(c *gin.Context) {
	hoursFile, _ := c.FormFile("hours_file")
	employeesFile, _ := c.FormFile("employees_file")
	availabilityFile, _ := c.FormFile("availability_file")

	if hoursFile == nil || employeesFile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hours_file and employees_file are required"})
		return
	}

	input := models.ScheduleInput{ShopID: c.PostForm("shop_id")}

	if err := readCSVFile(hoursFile, func(cols map[string]int, record []string) error {
		weekday, err := strconv.Atoi(record[cols["weekday"]])
		if err != nil {
			return err
		}
		input.OperatingHours = append(input.OperatingHours, models.DayHoursInput{
			Weekday: weekday,
			Open:    record[cols["open"]],
			Close:   record[cols["close"]],
		})
		return nil
	}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hours_file: " + err.Error()})
		return
	}

	byID := make(map[string]*models.EmployeeInput)
	var order []string
	if err := readCSVFile(employeesFile, func(cols map[string]int, record []string) error {
		id := record[cols["id"]]
		min, _ := strconv.Atoi(record[cols["min_weekly_minutes"]])
		max, _ := strconv.Atoi(record[cols["max_weekly_minutes"]])
		byID[id] = &models.EmployeeInput{
			ID:               id,
			Name:             record[cols["name"]],
			MinWeeklyMinutes: min,
			MaxWeeklyMinutes: max,
		}
		order = append(order, id)
		return nil
	}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employees_file: " + err.Error()})
		return
	}

	if availabilityFile != nil {
		if err := readCSVFile(availabilityFile, func(cols map[string]int, record []string) error {
			emp, ok := byID[record[cols["employee_id"]]]
			if !ok {
				return nil // availability for an unlisted employee is ignored
			}
			weekday, err := strconv.Atoi(record[cols["weekday"]])
			if err != nil {
				return err
			}
			dayOff := false
			if i, ok := cols["day_off"]; ok {
				dayOff = record[i] == "true" || record[i] == "1"
			}
			emp.Availability = append(emp.Availability, models.AvailabilityInput{
				Weekday: weekday,
				Start:   record[cols["start"]],
				End:     record[cols["end"]],
				DayOff:  dayOff,
			})
			return nil
		}); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "availability_file: " + err.Error()})
			return
		}
	}
	for _, id := range order {
		input.Employees = append(input.Employees, *byID[id])
	}

	hours, err := input.Hours()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	employees, err := input.Roster()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws, err := schedule.Generate(hours, employees, input.Defaults)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ws.GenerationID = uuid.NewString()

	h.RecordUsage(c, len(employees), len(ws.Assignments))

	var out strings.Builder
	writer := csv.NewWriter(&out)
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

	gaps := make([]GapView, 0, len(ws.Gaps))
	for _, g := range ws.Gaps {
		gaps = append(gaps, GapView{
			Weekday: int(g.Weekday),
			Day:     g.Weekday.String(),
			Start:   models.FormatClock(g.Start),
			End:     models.FormatClock(g.End),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"generation_id": ws.GenerationID,
		"csv":           out.String(),
		"gaps":          gaps,
	})
}

type csvRowFunc func(cols map[string]int, record []string) error

func readCSVFile(file *multipart.FileHeader, row csvRowFunc) error {
	f, err := file.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return err
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := row(cols, record); err != nil {
			return err
		}
	}
}
