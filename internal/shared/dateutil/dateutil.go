package dateutil

import "time"

const Layout = "2006-01-02"

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(Layout, s, time.Local)
}

// ParseOptional returns nil for an empty string.
func ParseOptional(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(Layout)
}

func FormatPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return Format(*t)
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// InclusiveDays counts calendar days in [start, end].
func InclusiveDays(start, end time.Time) int {
	s := StartOfDay(start)
	e := StartOfDay(end)
	return int(e.Sub(s).Hours()/24+0.5) + 1
}
