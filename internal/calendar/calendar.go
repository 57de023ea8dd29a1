// Package calendar isolates epoch-seconds to Gregorian Y/M/D/H/M/S
// conversion (and back), used by internal/archive for timestamp suffixes.
// Kept independent of time.Format's output shape per the design note that
// archive timestamps must not depend on a formatting library's rendering.
package calendar

import "fmt"

func isLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

func daysInYear(year int) int {
	if isLeap(year) {
		return 366
	}
	return 365
}

var monthLengths = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func monthLength(year, month int) int {
	if month == 2 && isLeap(year) {
		return 29
	}
	return monthLengths[month-1]
}

// Parts is a decomposed point in time.
type Parts struct {
	Year, Month, Day       int
	Hour, Minute, Second   int
}

// FromEpochSeconds decomposes seconds-since-1970-01-01T00:00:00Z into a
// Gregorian date and time-of-day, walking whole days forward year by year
// and month by month using the leap-year rule
// (y%4==0 && y%100!=0) || y%400==0.
func FromEpochSeconds(totalSeconds int64) Parts {
	days := totalSeconds / 86400
	secOfDay := totalSeconds % 86400
	if secOfDay < 0 {
		secOfDay += 86400
		days--
	}

	year := 1970
	for days >= int64(daysInYear(year)) {
		days -= int64(daysInYear(year))
		year++
	}

	month := 1
	for days >= int64(monthLength(year, month)) {
		days -= int64(monthLength(year, month))
		month++
	}

	return Parts{
		Year:   year,
		Month:  month,
		Day:    int(days) + 1,
		Hour:   int(secOfDay / 3600),
		Minute: int((secOfDay % 3600) / 60),
		Second: int(secOfDay % 60),
	}
}

// ToEpochSeconds is the inverse of FromEpochSeconds.
func ToEpochSeconds(p Parts) int64 {
	var days int64
	for y := 1970; y < p.Year; y++ {
		days += int64(daysInYear(y))
	}
	for m := 1; m < p.Month; m++ {
		days += int64(monthLength(p.Year, m))
	}
	days += int64(p.Day - 1)
	return days*86400 + int64(p.Hour)*3600 + int64(p.Minute)*60 + int64(p.Second)
}

// FormatSuffix renders Parts as "YY_MM_DD_HH_MM_SS" with a 2-digit year
// (century 2000 assumed on parse), matching spec's archive filename
// suffix.
func FormatSuffix(p Parts) string {
	return fmt.Sprintf("%02d_%02d_%02d_%02d_%02d_%02d",
		p.Year%100, p.Month, p.Day, p.Hour, p.Minute, p.Second)
}

// FormatSuffixMicro renders the microsecond-disambiguated variant
// "YY_MM_DD_HH_MM_SS_UUUUUU".
func FormatSuffixMicro(p Parts, micros int) string {
	return fmt.Sprintf("%s_%06d", FormatSuffix(p), micros)
}

// ParseSuffix parses "YY_MM_DD_HH_MM_SS" back into Parts, assuming century
// 2000 for the 2-digit year.
func ParseSuffix(s string) (Parts, error) {
	var p Parts
	var year2 int
	n, err := fmt.Sscanf(s, "%02d_%02d_%02d_%02d_%02d_%02d",
		&year2, &p.Month, &p.Day, &p.Hour, &p.Minute, &p.Second)
	if err != nil || n != 6 {
		return Parts{}, fmt.Errorf("calendar: invalid suffix %q", s)
	}
	p.Year = 2000 + year2
	return p, nil
}
