package employee_test

import (
	"testing"
	"time"

	"go-worktrack/internal/employee"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return &t
}

func TestUpcomingCelebrations(t *testing.T) {
	today := time.Date(2026, time.December, 20, 15, 4, 0, 0, time.Local)
	sources := []employee.CelebrationSource{
		{ID: 1, FirstName: "Asha", DOB: date(1990, time.December, 20)},
		{ID: 2, FirstName: "Bala", DOB: date(1985, time.January, 5), DateOfJoining: date(2021, time.December, 28)},
		{ID: 3, FirstName: "Chen", DOB: date(1992, time.March, 1)},
		{ID: 4, FirstName: "Dana", DateOfJoining: date(2026, time.December, 22)},
		{ID: 5, FirstName: "Eli", DOB: date(1999, time.December, 19)},
	}

	got := employee.UpcomingCelebrations(sources, today, 30)

	assert.Len(t, got, 3)

	assert.Equal(t, int64(1), got[0].EmployeeID)
	assert.Equal(t, employee.CelebrationBirthday, got[0].Kind)
	assert.Equal(t, 0, got[0].DaysUntil)
	assert.Equal(t, 36, got[0].YearsCompleted)

	assert.Equal(t, employee.CelebrationAnniversary, got[1].Kind)
	assert.Equal(t, 8, got[1].DaysUntil)
	assert.Equal(t, 5, got[1].YearsCompleted)

	// birthday across the year boundary
	assert.Equal(t, "2027-01-05", got[2].Date)
	assert.Equal(t, 16, got[2].DaysUntil)
	assert.Equal(t, 42, got[2].YearsCompleted)
}

func TestUpcomingCelebrations_DefaultWindow(t *testing.T) {
	today := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.Local)
	got := employee.UpcomingCelebrations([]employee.CelebrationSource{
		{ID: 1, FirstName: "A", DOB: date(2000, time.July, 1)},
		{ID: 2, FirstName: "B", DOB: date(2000, time.July, 2)},
	}, today, 0)

	assert.Len(t, got, 1)
	assert.Equal(t, 30, got[0].DaysUntil)
}
