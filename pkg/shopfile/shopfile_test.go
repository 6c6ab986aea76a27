package shopfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenmartialarts/shopshift-api/pkg/models"
)

const sampleShop = `
shop:
  id: corner-deli
  name: Corner Deli
  hours:
    - {weekday: 1, open: "09:00", close: "17:00"}
    - {weekday: 6, open: "10:00", close: "14:00"}
defaults:
  min_weekly_minutes: 0
  max_weekly_minutes: 2400
employees:
  - id: alice
    name: Alice
    max_weekly_minutes: 480
    availability:
      - {weekday: 1, start: "09:00", end: "17:00"}
      - {weekday: 0, day_off: true}
  - id: bob
    name: Bob
    availability:
      - {weekday: 6, start: "10:00", end: "14:00"}
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleShop), 0o644))

	f, hours, employees, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "corner-deli", f.Shop.ID)
	assert.Equal(t, 2400, f.Defaults.MaxWeeklyMinutes)

	require.Len(t, hours[models.Monday], 1)
	assert.Equal(t, models.TimeInterval{Start: 540, End: 1020}, hours[models.Monday][0])

	require.Len(t, employees, 2)
	assert.Equal(t, "alice", employees[0].ID)
	assert.Equal(t, 480, employees[0].MaxWeeklyMinutes)
	assert.True(t, employees[0].Availability[models.Sunday].DayOff)
	require.Len(t, employees[1].Availability[models.Saturday].Intervals, 1)
}

func TestParse_RejectsBadClock(t *testing.T) {
	_, _, _, err := parse([]byte(`
shop:
  hours:
    - {weekday: 1, open: "9am", close: "17:00"}
`))
	assert.Error(t, err)
}
