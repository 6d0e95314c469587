package calendar

import "time"

// EasterSunday returns the date of Easter Sunday in the Gregorian calendar
// as midnight UTC. It uses the anonymous Gregorian computus (Meeus/Jones/Butcher)
// with floored integer arithmetic, so it holds for any proleptic Gregorian
// year including year 0 and negative years.
func EasterSunday(year int) time.Time {
	a := floorMod(year, 19) // position in the Metonic cycle
	b := floorDiv(year, 100)
	c := floorMod(year, 100)
	d := floorDiv(b, 4)
	e := floorMod(b, 4)
	f := floorDiv(b+8, 25)
	g := floorDiv(b-f+1, 3)
	h := floorMod(19*a+b-d-g+15, 30) // epact
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7 // days to the following Sunday
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}
