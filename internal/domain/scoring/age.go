package scoring

import "time"

// AgeAt returns completed years between birthDate and now, comparing
// calendar dates as given. A birth date in the future yields 0.
func AgeAt(birthDate, now time.Time) int {
	age := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() || (now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}
	return max(0, age)
}
