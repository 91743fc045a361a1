// Package reltime computes calendar-aware differences between two instants
// and renders them as short, casual phrases such as "in 2 hours".
package reltime

import (
	"fmt"
	"strings"
	"time"
)

// Delta is a calendar-aware difference. Months and years are counted on the
// calendar, the remainder carries into days, hours, minutes and seconds.
// All non-zero components share the sign of the difference except
// Microseconds, which is always non-negative.
type Delta struct {
	Years        int
	Months       int
	Days         int
	Hours        int
	Minutes      int
	Seconds      int
	Microseconds int
}

// Between returns the difference to - from. Both instants are taken in UTC.
func Between(to, from time.Time) Delta {
	to, from = to.UTC(), from.UTC()

	var d Delta
	months := (to.Year()-from.Year())*12 + int(to.Month()-from.Month())
	d.setMonths(months)
	anchor := d.addMonths(from)

	// Step the month count back until the anchor no longer overshoots.
	increment := -1
	overshoots := func() bool { return to.Before(anchor) }
	if to.Before(from) {
		increment = 1
		overshoots = func() bool { return to.After(anchor) }
	}
	for overshoots() {
		months += increment
		d.setMonths(months)
		anchor = d.addMonths(from)
	}

	rest := to.Sub(anchor).Microseconds()
	d.Seconds = int(floorDiv(rest, 1_000_000))
	d.Microseconds = int(rest - floorDiv(rest, 1_000_000)*1_000_000)

	carry(&d.Seconds, &d.Minutes, 60)
	carry(&d.Minutes, &d.Hours, 60)
	carry(&d.Hours, &d.Days, 24)
	return d
}

// IsZero reports whether every component above seconds is zero.
func (d Delta) IsZero() bool {
	return d.Years == 0 && d.Months == 0 && d.Days == 0 && d.Hours == 0 && d.Minutes == 0
}

func (d *Delta) setMonths(months int) {
	d.Years = 0
	d.Months = months
	carry(&d.Months, &d.Years, 12)
}

// addMonths shifts t by the delta's years and months, clamping the day to
// the length of the target month.
func (d Delta) addMonths(t time.Time) time.Time {
	year := t.Year() + d.Years
	month := int(t.Month()) + d.Months
	if month > 12 {
		year++
		month -= 12
	} else if month < 1 {
		year--
		month += 12
	}
	day := t.Day()
	if last := daysIn(year, time.Month(month)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// carry moves whole multiples of base from *v into *next, truncating toward
// zero so both keep the sign of *v.
func carry(v, next *int, base int) {
	if *v < base && *v > -base {
		return
	}
	s := 1
	if *v < 0 {
		s = -1
	}
	abs := *v * s
	*next += abs / base * s
	*v = abs % base * s
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Casual renders d using its largest non-zero unit, ignoring seconds:
// "in 3 days", "in 1 hour", or "right now" when under a minute.
// Negative differences render as "5 minutes ago".
func Casual(d Delta) string {
	units := []struct {
		value int
		name  string
	}{
		{d.Years, "years"},
		{d.Months, "months"},
		{d.Days, "days"},
		{d.Hours, "hours"},
		{d.Minutes, "minutes"},
	}

	for _, u := range units {
		if u.value == 0 {
			continue
		}
		n, name := u.value, u.name
		past := n < 0
		if past {
			n = -n
		}
		if n == 1 {
			name = strings.TrimSuffix(name, "s")
		}
		if past {
			return fmt.Sprintf("%d %s ago", n, name)
		}
		return fmt.Sprintf("in %d %s", n, name)
	}

	return "right now"
}

// Until is shorthand for Casual(Between(t, now)).
func Until(t, now time.Time) string {
	return Casual(Between(t, now))
}
