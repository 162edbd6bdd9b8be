package calendar

import "time"

// Holiday rules below describe full market closures only; early-close
// sessions still count as trading days.

func usHolidays(year int) []time.Time {
	var hs []time.Time

	// New Year's Day. When Jan 1 falls on a Saturday the NYSE does not
	// observe it in the prior year, so an observance that rolls out of the
	// year is skipped.
	if obs := nearestWeekday(date(year, time.January, 1)); obs.Year() == year {
		hs = append(hs, obs)
	}
	if year >= 1998 {
		hs = append(hs, nthWeekday(year, time.January, time.Monday, 3)) // MLK Day
	}
	hs = append(hs,
		nthWeekday(year, time.February, time.Monday, 3), // Washington's Birthday
		easterSunday(year).AddDate(0, 0, -2),            // Good Friday
		lastWeekday(year, time.May, time.Monday),        // Memorial Day
	)
	if year >= 2022 {
		hs = append(hs, nearestWeekday(date(year, time.June, 19))) // Juneteenth
	}
	hs = append(hs,
		nearestWeekday(date(year, time.July, 4)),          // Independence Day
		nthWeekday(year, time.September, time.Monday, 1),  // Labor Day
		nthWeekday(year, time.November, time.Thursday, 4), // Thanksgiving
		nearestWeekday(date(year, time.December, 25)),     // Christmas
	)
	return hs
}

// cmeHolidays matches the US cash-equity closures. CME products trade
// shortened electronic sessions on several of these, but the daily bars the
// downloader consumes follow the cash calendar.
func cmeHolidays(year int) []time.Time {
	return usHolidays(year)
}

func ukHolidays(year int) []time.Time {
	easter := easterSunday(year)
	christmas, boxing := ukChristmas(year)
	return []time.Time{
		nextMonday(date(year, time.January, 1)),
		easter.AddDate(0, 0, -2), // Good Friday
		easter.AddDate(0, 0, 1),  // Easter Monday
		nthWeekday(year, time.May, time.Monday, 1), // Early May bank holiday
		lastWeekday(year, time.May, time.Monday),   // Spring bank holiday
		lastWeekday(year, time.August, time.Monday),
		christmas,
		boxing,
	}
}

func eurexHolidays(year int) []time.Time {
	easter := easterSunday(year)
	return []time.Time{
		date(year, time.January, 1),
		easter.AddDate(0, 0, -2),
		easter.AddDate(0, 0, 1),
		date(year, time.May, 1),
		date(year, time.December, 24),
		date(year, time.December, 25),
		date(year, time.December, 26),
		date(year, time.December, 31),
	}
}

func swissHolidays(year int) []time.Time {
	easter := easterSunday(year)
	return []time.Time{
		date(year, time.January, 1),
		date(year, time.January, 2), // Berchtoldstag
		easter.AddDate(0, 0, -2),
		easter.AddDate(0, 0, 1),
		date(year, time.May, 1),
		easter.AddDate(0, 0, 39), // Ascension Day
		easter.AddDate(0, 0, 50), // Whit Monday
		date(year, time.August, 1),
		date(year, time.December, 24),
		date(year, time.December, 25),
		date(year, time.December, 26),
		date(year, time.December, 31),
	}
}

func canadaHolidays(year int) []time.Time {
	easter := easterSunday(year)
	christmas, boxing := ukChristmas(year)

	// Victoria Day: the Monday on or before May 24.
	victoria := date(year, time.May, 24)
	for victoria.Weekday() != time.Monday {
		victoria = victoria.AddDate(0, 0, -1)
	}

	hs := []time.Time{nextMonday(date(year, time.January, 1))}
	if year >= 2008 {
		hs = append(hs, nthWeekday(year, time.February, time.Monday, 3)) // Family Day
	}
	hs = append(hs,
		easter.AddDate(0, 0, -2),
		victoria,
		nextMonday(date(year, time.July, 1)), // Canada Day
		nthWeekday(year, time.August, time.Monday, 1),
		nthWeekday(year, time.September, time.Monday, 1),
		nthWeekday(year, time.October, time.Monday, 2), // Thanksgiving
		christmas,
		boxing,
	)
	return hs
}

func brazilHolidays(year int) []time.Time {
	easter := easterSunday(year)
	return []time.Time{
		date(year, time.January, 1),
		easter.AddDate(0, 0, -48), // Carnival Monday
		easter.AddDate(0, 0, -47), // Carnival Tuesday
		easter.AddDate(0, 0, -2),
		date(year, time.April, 21), // Tiradentes
		date(year, time.May, 1),
		easter.AddDate(0, 0, 60), // Corpus Christi
		date(year, time.September, 7),
		date(year, time.October, 12),
		date(year, time.November, 2),
		date(year, time.November, 15),
		date(year, time.December, 24),
		date(year, time.December, 25),
		date(year, time.December, 31),
	}
}

func japanHolidays(year int) []time.Time {
	hs := []time.Time{
		date(year, time.January, 1),
		date(year, time.January, 2),
		date(year, time.January, 3),
		date(year, time.December, 31),
		date(year, time.February, 11), // National Foundation Day
		date(year, time.March, vernalEquinoxDay(year)),
		date(year, time.April, 29), // Showa Day
		date(year, time.May, 3),    // Constitution Day
		date(year, time.May, 4),    // Greenery Day
		date(year, time.May, 5),    // Children's Day
		date(year, time.September, autumnalEquinoxDay(year)),
		date(year, time.November, 3),  // Culture Day
		date(year, time.November, 23), // Labor Thanksgiving
	}
	if year >= 2000 {
		hs = append(hs,
			nthWeekday(year, time.January, time.Monday, 2),  // Coming of Age Day
			nthWeekday(year, time.October, time.Monday, 2),  // Sports Day
		)
	} else {
		hs = append(hs, date(year, time.January, 15), date(year, time.October, 10))
	}
	if year >= 2003 {
		hs = append(hs,
			nthWeekday(year, time.July, time.Monday, 3),      // Marine Day
			nthWeekday(year, time.September, time.Monday, 3), // Respect for the Aged
		)
	} else {
		if year >= 1996 {
			hs = append(hs, date(year, time.July, 20))
		}
		hs = append(hs, date(year, time.September, 15))
	}
	if year >= 2016 {
		hs = append(hs, date(year, time.August, 11)) // Mountain Day
	}
	if year >= 1989 && year <= 2018 {
		hs = append(hs, date(year, time.December, 23)) // Emperor's Birthday
	}

	// Furikae kyujitsu: a holiday falling on Sunday is observed the next day.
	for _, h := range hs {
		if h.Weekday() == time.Sunday {
			hs = append(hs, h.AddDate(0, 0, 1))
		}
	}
	return hs
}

func chinaHolidays(year int) []time.Time {
	hs := []time.Time{
		date(year, time.January, 1),
		date(year, time.April, 4), // Qingming
		date(year, time.May, 1),
		date(year, time.May, 2),
		date(year, time.May, 3),
	}
	if cny, ok := lunarNewYear[year]; ok {
		// Spring Festival golden week.
		for offset := 0; offset < 7; offset++ {
			hs = append(hs, cny.AddDate(0, 0, offset))
		}
	}
	// National Day golden week.
	for day := 1; day <= 7; day++ {
		hs = append(hs, date(year, time.October, day))
	}
	return hs
}

func hongKongHolidays(year int) []time.Time {
	easter := easterSunday(year)
	hs := []time.Time{
		date(year, time.April, 4), // Qingming
		easter.AddDate(0, 0, -2),
		easter.AddDate(0, 0, 1),
		date(year, time.December, 25),
		date(year, time.December, 26),
	}
	if cny, ok := lunarNewYear[year]; ok {
		hs = append(hs, cny, cny.AddDate(0, 0, 1), cny.AddDate(0, 0, 2))
	}
	for _, fixed := range []time.Time{
		date(year, time.January, 1),
		date(year, time.May, 1),
		date(year, time.July, 1),    // HKSAR Establishment Day
		date(year, time.October, 1), // National Day
	} {
		if fixed.Weekday() == time.Sunday {
			fixed = fixed.AddDate(0, 0, 1)
		}
		hs = append(hs, fixed)
	}
	return hs
}

// ukChristmas returns the observed Christmas and Boxing Day closures with
// UK-style substitute days.
func ukChristmas(year int) (christmas, boxing time.Time) {
	christmas = date(year, time.December, 25)
	boxing = date(year, time.December, 26)
	switch christmas.Weekday() {
	case time.Friday:
		boxing = date(year, time.December, 28)
	case time.Saturday:
		christmas = date(year, time.December, 27)
		boxing = date(year, time.December, 28)
	case time.Sunday:
		christmas = date(year, time.December, 27)
	}
	return christmas, boxing
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// nthWeekday returns the n-th (1-based) given weekday of the month.
func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	d := date(year, month, 1)
	for d.Weekday() != weekday {
		d = d.AddDate(0, 0, 1)
	}
	return d.AddDate(0, 0, 7*(n-1))
}

// lastWeekday returns the last given weekday of the month.
func lastWeekday(year int, month time.Month, weekday time.Weekday) time.Time {
	d := date(year, month+1, 1).AddDate(0, 0, -1)
	for d.Weekday() != weekday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// nearestWeekday shifts a Saturday holiday to Friday and a Sunday holiday to
// Monday (US observance rule).
func nearestWeekday(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, -1)
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	}
	return t
}

// nextMonday shifts a weekend holiday to the following Monday (UK substitute
// rule).
func nextMonday(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, 2)
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	}
	return t
}

// easterSunday computes Gregorian Easter via the anonymous computus.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return date(year, time.Month(month), day)
}

// Approximate equinox days, accurate for 1980-2099.
func vernalEquinoxDay(year int) int {
	return int(20.8431+0.242194*float64(year-1980)) - (year-1980)/4
}

func autumnalEquinoxDay(year int) int {
	return int(23.2488+0.242194*float64(year-1980)) - (year-1980)/4
}

// lunarNewYear maps a Gregorian year to the first day of the Chinese New
// Year. Years outside the table get no Spring Festival closure.
var lunarNewYear = map[int]time.Time{
	1990: date(1990, time.January, 27),
	1991: date(1991, time.February, 15),
	1992: date(1992, time.February, 4),
	1993: date(1993, time.January, 23),
	1994: date(1994, time.February, 10),
	1995: date(1995, time.January, 31),
	1996: date(1996, time.February, 19),
	1997: date(1997, time.February, 7),
	1998: date(1998, time.January, 28),
	1999: date(1999, time.February, 16),
	2000: date(2000, time.February, 5),
	2001: date(2001, time.January, 24),
	2002: date(2002, time.February, 12),
	2003: date(2003, time.February, 1),
	2004: date(2004, time.January, 22),
	2005: date(2005, time.February, 9),
	2006: date(2006, time.January, 29),
	2007: date(2007, time.February, 18),
	2008: date(2008, time.February, 7),
	2009: date(2009, time.January, 26),
	2010: date(2010, time.February, 14),
	2011: date(2011, time.February, 3),
	2012: date(2012, time.January, 23),
	2013: date(2013, time.February, 10),
	2014: date(2014, time.January, 31),
	2015: date(2015, time.February, 19),
	2016: date(2016, time.February, 8),
	2017: date(2017, time.January, 28),
	2018: date(2018, time.February, 16),
	2019: date(2019, time.February, 5),
	2020: date(2020, time.January, 25),
	2021: date(2021, time.February, 12),
	2022: date(2022, time.February, 1),
	2023: date(2023, time.January, 22),
	2024: date(2024, time.February, 10),
	2025: date(2025, time.January, 29),
	2026: date(2026, time.February, 17),
	2027: date(2027, time.February, 6),
	2028: date(2028, time.January, 26),
	2029: date(2029, time.February, 13),
	2030: date(2030, time.February, 3),
}
