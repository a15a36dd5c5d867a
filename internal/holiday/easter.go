package holiday

import (
	"time"

	"github.com/username/dias-uteis/pkg/dateutil"
)

// Easter returns Easter Sunday of the given Gregorian year using the anonymous
// Gregorian algorithm. Valid for year >= 1583.
func Easter(year int) time.Time {
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
	day := ((h + l - 7*m + 114) % 31) + 1

	return dateutil.Date(year, time.Month(month), day)
}

// GoodFriday returns Sexta-feira da Paixão, two days before Easter
func GoodFriday(year int) time.Time {
	return Easter(year).AddDate(0, 0, -2)
}

// CorpusChristi returns Corpus Christi, sixty days after Easter
func CorpusChristi(year int) time.Time {
	return Easter(year).AddDate(0, 0, 60)
}
