// Package schedule evaluates the active-hours policy that suppresses autostop.
package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time within a day
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Minutes returns the minute of the day, 0-1439
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Valid reports whether hour and minute are in range
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

// Window is a recurring daily interval [Start, End) evaluated in Location
// on the listed ISO weekdays (1=Monday, 7=Sunday).
type Window struct {
	Start    TimeOfDay
	End      TimeOfDay
	Location *time.Location
	Days     []int
}

// Evaluation is the result of checking a point in time against a Window
type Evaluation struct {
	Within    bool
	ActiveDay bool
	Local     time.Time
	Reason    string
}

// NewWindow builds a validated Window
func NewWindow(start, end TimeOfDay, loc *time.Location, days []int) (Window, error) {
	w := Window{Start: start, End: end, Location: loc, Days: normalizeDays(days)}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

// Validate checks the window invariants. Windows crossing midnight are rejected.
func (w Window) Validate() error {
	if !w.Start.Valid() {
		return fmt.Errorf("start time %s out of range", w.Start)
	}
	if !w.End.Valid() {
		return fmt.Errorf("end time %s out of range", w.End)
	}
	if w.End.Minutes() <= w.Start.Minutes() {
		return fmt.Errorf("end %s must be after start %s (windows crossing midnight are not supported)", w.End, w.Start)
	}
	if w.Location == nil {
		return fmt.Errorf("timezone is required")
	}
	if len(w.Days) == 0 {
		return fmt.Errorf("at least one active day is required")
	}
	for _, d := range w.Days {
		if d < 1 || d > 7 {
			return fmt.Errorf("active day %d out of range 1-7", d)
		}
	}
	return nil
}

// Evaluate reports whether now falls inside the window
func (w Window) Evaluate(now time.Time) Evaluation {
	loc := w.Location
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	day := ISOWeekday(local)

	ev := Evaluation{Local: local, ActiveDay: w.hasDay(day)}
	if !ev.ActiveDay {
		ev.Reason = fmt.Sprintf("%s is not an active day", local.Weekday())
		return ev
	}

	minutes := local.Hour()*60 + local.Minute()
	if minutes >= w.Start.Minutes() && minutes < w.End.Minutes() {
		ev.Within = true
		ev.Reason = fmt.Sprintf("%s is within active hours %s", local.Format("15:04"), w)
		return ev
	}
	ev.Reason = fmt.Sprintf("%s is outside active hours %s", local.Format("15:04"), w)
	return ev
}

// Within is shorthand for Evaluate(now).Within
func (w Window) Within(now time.Time) bool {
	return w.Evaluate(now).Within
}

func (w Window) String() string {
	name := "UTC"
	if w.Location != nil {
		name = w.Location.String()
	}
	return fmt.Sprintf("%s-%s %s", w.Start, w.End, name)
}

func (w Window) hasDay(day int) bool {
	for _, d := range w.Days {
		if d == day {
			return true
		}
	}
	return false
}

// ISOWeekday converts a time's weekday to ISO numbering, Monday=1 and Sunday=7
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

var dayNames = map[string]int{
	"mon": 1, "monday": 1,
	"tue": 2, "tuesday": 2,
	"wed": 3, "wednesday": 3,
	"thu": 4, "thursday": 4,
	"fri": 5, "friday": 5,
	"sat": 6, "saturday": 6,
	"sun": 7, "sunday": 7,
}

// ParseDays parses a list of ISO weekday numbers or day names separated by
// commas or spaces, e.g. "1,2,3,4,5" or "mon tue wed".
func ParseDays(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("no active days given")
	}

	var days []int
	for _, f := range fields {
		f = strings.ToLower(strings.TrimSpace(f))
		if d, ok := dayNames[f]; ok {
			days = append(days, d)
			continue
		}
		if len(f) == 1 && f[0] >= '1' && f[0] <= '7' {
			days = append(days, int(f[0]-'0'))
			continue
		}
		return nil, fmt.Errorf("unknown day %q (use 1-7 or mon-sun)", f)
	}
	return normalizeDays(days), nil
}

func normalizeDays(days []int) []int {
	seen := make(map[int]bool, len(days))
	var out []int
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Ints(out)
	return out
}
