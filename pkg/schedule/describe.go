package schedule

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var dayNames = [...]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// Describe renders a human readable description of a cadence expression,
// e.g. "Every 5 minutes" for "*/5 * * * *". Invalid cadences produce an
// error, never a panic.
func Describe(cadence string) (string, error) {
	s, err := Parse(cadence)
	if err != nil {
		return "", errors.Wrap(err, "cannot describe cadence")
	}

	return s.Describe(), nil
}

// Describe renders a human readable description of the schedule.
func (s *Schedule) Describe() string {
	phrase := s.timePhrase()
	date := s.datePhrase()

	if date == "" {
		if strings.HasPrefix(phrase, "At ") {
			return phrase + " every day"
		}

		return phrase
	}

	return phrase + " " + date
}

// timePhrase describes the minute and hour fields.
func (s *Schedule) timePhrase() string {
	min, hour := s.Minute, s.Hour

	if !hour.restricted() {
		base := "Every hour"
		if hour.Step > 1 {
			base = fmt.Sprintf("Every %d hours", hour.Step)
		}

		switch {
		case min.Any, min.Step == 1:
			if hour.Step > 1 {
				return "Every minute of " + strings.ToLower(base)
			}

			return "Every minute"
		case min.Step > 1:
			if hour.Step > 1 {
				return fmt.Sprintf("Every %d minutes of %s", min.Step, strings.ToLower(base))
			}

			return fmt.Sprintf("Every %d minutes", min.Step)
		case len(min.Values) == 1 && min.Values[0] == 0:
			return base
		case len(min.Values) == 1:
			return fmt.Sprintf("%s at minute %d", base, min.Values[0])
		default:
			return fmt.Sprintf("%s at minutes %s", base, joinInts(min.Values))
		}
	}

	// Hour is a fixed list. Minute wildcards over fixed hours read as minute
	// ranges, fixed minutes read as clock times.
	if min.restricted() && len(min.Values) == 1 {
		times := make([]string, len(hour.Values))
		for i, h := range hour.Values {
			times[i] = fmt.Sprintf("%02d:%02d", h, min.Values[0])
		}

		return "At " + joinStrings(times)
	}

	hours := make([]string, len(hour.Values))
	for i, h := range hour.Values {
		hours[i] = fmt.Sprintf("%d", h)
	}

	every := "Every minute"
	if min.Step > 1 {
		every = fmt.Sprintf("Every %d minutes", min.Step)
	} else if min.restricted() {
		every = fmt.Sprintf("At minutes %s", joinInts(min.Values))
	}

	return fmt.Sprintf("%s of hour %s", every, joinStrings(hours))
}

// datePhrase describes the day-of-month, month and day-of-week fields.
// It returns "" when none of them restrict the schedule.
func (s *Schedule) datePhrase() string {
	var parts []string

	if dom := s.DayOfMonth; dom.restricted() {
		if len(dom.Values) == 1 {
			parts = append(parts, fmt.Sprintf("on day %d of the month", dom.Values[0]))
		} else {
			parts = append(parts, fmt.Sprintf("on days %s of the month", joinInts(dom.Values)))
		}
	} else if s.DayOfMonth.Step > 1 {
		parts = append(parts, fmt.Sprintf("every %d days", s.DayOfMonth.Step))
	}

	if dow := s.DayOfWeek; dow.restricted() {
		names := make([]string, len(dow.Values))
		for i, d := range dow.Values {
			names[i] = dayNames[d]
		}

		parts = append(parts, "on "+joinStrings(names))
	} else if dow.Step > 1 {
		// A stepped day-of-week matches a fixed set of days, so name them.
		var names []string
		for d := 0; d < len(dayNames); d += dow.Step {
			names = append(names, dayNames[d])
		}

		parts = append(parts, "on "+joinStrings(names))
	}

	if month := s.Month; month.restricted() {
		names := make([]string, len(month.Values))
		for i, m := range month.Values {
			names[i] = monthNames[m-1]
		}

		parts = append(parts, "in "+joinStrings(names))
	} else if s.Month.Step > 1 {
		parts = append(parts, fmt.Sprintf("every %d months", s.Month.Step))
	}

	return strings.Join(parts, " ")
}

func joinInts(values []int) string {
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = fmt.Sprintf("%d", v)
	}

	return joinStrings(strs)
}

// joinStrings joins values with commas and a final "and".
func joinStrings(values []string) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	case 2:
		return values[0] + " and " + values[1]
	default:
		return strings.Join(values[:len(values)-1], ", ") + " and " + values[len(values)-1]
	}
}
