// Package calendar provides the fixed Gregorian-ish calendar used by the
// simulation core: (year, month, day) with leap years every four years and a
// days-from-epoch mapping for interval arithmetic. See design doc Section 3.
package calendar

import (
	"fmt"
	"time"

	strftime "github.com/ncruces/go-strftime"
)

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Date is a single day in the simulation calendar.
type Date struct {
	Year  int32
	Month uint8 // 1..=12
	Day   uint8 // 1..=31
}

// GameStart is the default campaign start date (Nov 11, 1444).
var GameStart = Date{Year: 1444, Month: 11, Day: 11}

// IsLeapYear reports whether the given year has a Feb 29.
func IsLeapYear(year int32) bool {
	return year%4 == 0
}

func daysIn(year int32, month uint8) int {
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysInMonth[month-1]
}

// AddDays returns the date n days after d. n must be non-negative.
func (d Date) AddDays(n uint32) Date {
	year, month, day := d.Year, d.Month, int(d.Day)+int(n)
	for {
		max := daysIn(year, month)
		if day <= max {
			break
		}
		day -= max
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	return Date{Year: year, Month: month, Day: uint8(day)}
}

// DaysFromEpoch returns the number of days since year 1, Jan 1 (epoch),
// under the fixed leap-year-every-4-years calendar. Used for interval math.
func (d Date) DaysFromEpoch() int64 {
	years := int64(d.Year - 1)
	total := years*365 + years/4
	for m := uint8(1); m < d.Month; m++ {
		total += int64(daysIn(d.Year, m))
	}
	total += int64(d.Day - 1)
	return total
}

// DaysBetween returns b.DaysFromEpoch() - a.DaysFromEpoch().
func DaysBetween(a, b Date) int64 {
	return b.DaysFromEpoch() - a.DaysFromEpoch()
}

// Compare returns -1, 0, 1 as a is before, equal to, or after b.
func Compare(a, b Date) int {
	da, db := a.DaysFromEpoch(), b.DaysFromEpoch()
	switch {
	case da < db:
		return -1
	case da > db:
		return 1
	default:
		return 0
	}
}

// IsMonthStart reports whether d is the 1st of its month.
func (d Date) IsMonthStart() bool { return d.Day == 1 }

// IsYearStart reports whether d is Jan 1.
func (d Date) IsYearStart() bool { return d.Month == 1 && d.Day == 1 }

// String renders "YYYY.M.D", matching the teacher's SimTime-style compact log format.
func (d Date) String() string {
	return fmt.Sprintf("%d.%d.%d", d.Year, d.Month, d.Day)
}

// Format renders d using a strftime layout, for verifier reports and CLI output.
// Display only — never call from inside the tick loop.
func Format(d Date, layout string) string {
	t := time.Date(int(d.Year), time.Month(d.Month), int(d.Day), 0, 0, 0, 0, time.UTC)
	return strftime.Format(layout, t)
}
