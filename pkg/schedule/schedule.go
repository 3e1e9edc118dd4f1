package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
)

// DefaultCadence is the cadence offered to callers that do not specify one.
const DefaultCadence = "*/5 * * * *"

// fieldCount is the number of fields in a cadence expression.
const fieldCount = 5

// fieldSpecs defines the name and numeric domain of each cadence field, in
// positional order: minute, hour, day-of-month, month, day-of-week.
var fieldSpecs = [fieldCount]struct {
	name     string
	min, max int
}{
	{"minute", 0, 59},
	{"hour", 0, 23},
	{"day-of-month", 1, 31},
	{"month", 1, 12},
	{"day-of-week", 0, 6},
}

// ParseError is returned by Parse for a malformed cadence expression. Field
// is the zero-based index of the offending field, or -1 if the expression
// does not have exactly five fields.
type ParseError struct {
	Field  int
	Reason string
}

func (e *ParseError) Error() string {
	if e.Field < 0 {
		return fmt.Sprintf("invalid cadence: %s", e.Reason)
	}

	return fmt.Sprintf("invalid cadence field %d: %s", e.Field, e.Reason)
}

// Field is the normalized form of a single cadence field. Exactly one of the
// three shapes is set: Any for "*", Step > 0 for "*/N", or Values for a
// single integer or comma separated list.
type Field struct {
	Any    bool
	Step   int
	Values []int
}

// restricted returns true if the field limits when the schedule fires rather
// than matching every value of its domain.
func (f Field) restricted() bool {
	return !f.Any && f.Step == 0
}

// Schedule is a parsed cadence expression. It models when a check should
// occur; it never invokes anything itself.
type Schedule struct {
	Minute     Field
	Hour       Field
	DayOfMonth Field
	Month      Field
	DayOfWeek  Field

	expr string
	next cron.Schedule
}

// Parse parses a cron-style cadence expression with exactly five whitespace
// separated fields. Each field must be "*", a stepped range "*/N", a single
// integer, or a comma separated list of integers within the field's domain.
// Any violation yields a *ParseError.
func Parse(cadence string) (*Schedule, error) {
	parts := strings.Fields(cadence)
	if len(parts) != fieldCount {
		return nil, &ParseError{
			Field:  -1,
			Reason: fmt.Sprintf("expected %d fields, got %d", fieldCount, len(parts)),
		}
	}

	var parsed [fieldCount]Field

	for i, part := range parts {
		spec := fieldSpecs[i]

		field, err := parseField(part, spec.min, spec.max)
		if err != nil {
			return nil, &ParseError{
				Field:  i,
				Reason: fmt.Sprintf("%s %q: %s", spec.name, part, err),
			}
		}

		parsed[i] = field
	}

	expr := strings.Join(parts, " ")

	// The accepted grammar is a subset of the standard cron grammar, so this
	// only fails on a bug in the field validation above.
	next, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "cadence %q rejected by cron parser", expr)
	}

	return &Schedule{
		Minute:     parsed[0],
		Hour:       parsed[1],
		DayOfMonth: parsed[2],
		Month:      parsed[3],
		DayOfWeek:  parsed[4],
		expr:       expr,
		next:       next,
	}, nil
}

// Validate checks cadence for syntactic validity, discarding the parsed
// schedule.
func Validate(cadence string) error {
	_, err := Parse(cadence)
	return err
}

// Next returns the next time after t at which the schedule fires.
func (s *Schedule) Next(t time.Time) time.Time {
	return s.next.Next(t)
}

// String returns the normalized cadence expression.
func (s *Schedule) String() string {
	return s.expr
}

func parseField(s string, min, max int) (Field, error) {
	if s == "*" {
		return Field{Any: true}, nil
	}

	if rest, ok := strings.CutPrefix(s, "*/"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil {
			return Field{}, errors.Errorf("step is not a number")
		}

		if n < 1 || n > max {
			return Field{}, errors.Errorf("step %d out of range 1-%d", n, max)
		}

		return Field{Step: n}, nil
	}

	raw := strings.Split(s, ",")
	values := make([]int, 0, len(raw))

	for _, v := range raw {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Field{}, errors.Errorf("%q is not a number", v)
		}

		if n < min || n > max {
			return Field{}, errors.Errorf("%d out of range %d-%d", n, min, max)
		}

		values = append(values, n)
	}

	return Field{Values: values}, nil
}
