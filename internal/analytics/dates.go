package analytics

import (
	"regexp"
	"strings"
	"time"
)

// DateStrategy turns free-form text into a calendar time.
type DateStrategy interface {
	Parse(s string) (time.Time, bool)
}

type DateStrategyFunc func(s string) (time.Time, bool)

func (f DateStrategyFunc) Parse(s string) (time.Time, bool) {
	return f(s)
}

// FirstOf tries each strategy in order and returns the first success.
func FirstOf(strategies ...DateStrategy) DateStrategy {
	return DateStrategyFunc(func(s string) (time.Time, bool) {
		if s == "" {
			return time.Time{}, false
		}
		for _, st := range strategies {
			if t, ok := st.Parse(s); ok {
				return t, true
			}
		}
		return time.Time{}, false
	})
}

// NewDateParser is the default two-stage parser: ISO-style layouts first,
// then a positional day/month/year split.
func NewDateParser(loc *time.Location) DateStrategy {
	return FirstOf(ISOStrategy{Location: loc}, DayMonthYearStrategy{Location: loc})
}

// ISOLayouts are tried in order. Layouts without a zone are read in the
// strategy's location. Month and day may be one or two digits.
var ISOLayouts = []string{
	time.RFC3339Nano,
	"2006-1-2T15:04:05.999999999Z07:00",
	"2006-1-2T15:04:05.999999999",
	"2006-1-2T15:04",
	"2006-1-2 15:04:05.999999999",
	"2006-1-2 15:04:05Z07:00",
	"2006-1-2 15:04",
	"2006-1-2",
	"2006/1/2",
	"2006/1/2 15:04:05",
	"2006-1",
	"2006",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC850,
	time.ANSIC,
	time.UnixDate,
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Mon Jan 2 2006",
	"Mon, 2 Jan 2006",
}

type ISOStrategy struct {
	Location *time.Location
	Layouts  []string
}

func (st ISOStrategy) Parse(s string) (time.Time, bool) {
	loc := st.Location
	if loc == nil {
		loc = time.Local
	}
	layouts := st.Layouts
	if layouts == nil {
		layouts = ISOLayouts
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var dateSeparators = regexp.MustCompile(`[/\-.\s:]+`)

// DayMonthYearStrategy reads the first three separated numbers as day,
// month and year. Two-digit years land in the 1900s. Out-of-range days or
// months are rejected; "31/02/2024" is not read as 2 March.
type DayMonthYearStrategy struct {
	Location *time.Location
}

func (st DayMonthYearStrategy) Parse(s string) (time.Time, bool) {
	parts := dateSeparators.Split(s, -1)
	if len(parts) < 3 {
		return time.Time{}, false
	}
	day, ok := leadingInt(strings.TrimSpace(parts[0]))
	if !ok {
		return time.Time{}, false
	}
	month, ok := leadingInt(strings.TrimSpace(parts[1]))
	if !ok {
		return time.Time{}, false
	}
	year, ok := leadingInt(strings.TrimSpace(parts[2]))
	if !ok {
		return time.Time{}, false
	}
	if year >= 0 && year <= 99 {
		year += 1900
	}
	if month < 1 || month > 12 || day < 1 || year < 1 {
		return time.Time{}, false
	}
	loc := st.Location
	if loc == nil {
		loc = time.Local
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}
