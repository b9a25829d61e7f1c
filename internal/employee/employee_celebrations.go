package employee

import (
	"sort"
	"strings"
	"time"

	"go-worktrack/internal/shared/dateutil"
)

const (
	CelebrationBirthday    = "birthday"
	CelebrationAnniversary = "anniversary"

	DefaultCelebrationDays = 30
)

// UpcomingCelebrations lists birthdays and work anniversaries falling within
// [today, today+days], nearest first.
func UpcomingCelebrations(sources []CelebrationSource, today time.Time, days int) []CelebrationResponse {
	if days <= 0 {
		days = DefaultCelebrationDays
	}
	today = dateutil.StartOfDay(today)

	out := make([]CelebrationResponse, 0)
	for _, src := range sources {
		name := strings.TrimSpace(src.FirstName + " " + src.LastName)
		if src.DOB != nil {
			if c, ok := nextOccurrence(*src.DOB, today, days); ok {
				c.EmployeeID, c.FullName, c.Kind = src.ID, name, CelebrationBirthday
				out = append(out, c)
			}
		}
		if src.DateOfJoining != nil {
			if c, ok := nextOccurrence(*src.DateOfJoining, today, days); ok && c.YearsCompleted > 0 {
				c.EmployeeID, c.FullName, c.Kind = src.ID, name, CelebrationAnniversary
				out = append(out, c)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DaysUntil != out[j].DaysUntil {
			return out[i].DaysUntil < out[j].DaysUntil
		}
		return out[i].FullName < out[j].FullName
	})
	return out
}

func nextOccurrence(origin, today time.Time, days int) (CelebrationResponse, bool) {
	next := time.Date(today.Year(), origin.Month(), origin.Day(), 0, 0, 0, 0, today.Location())
	if next.Before(today) {
		next = time.Date(today.Year()+1, origin.Month(), origin.Day(), 0, 0, 0, 0, today.Location())
	}
	until := dateutil.InclusiveDays(today, next) - 1
	if until > days {
		return CelebrationResponse{}, false
	}
	return CelebrationResponse{
		Date:           dateutil.Format(next),
		DaysUntil:      until,
		YearsCompleted: next.Year() - origin.Year(),
	}, true
}
