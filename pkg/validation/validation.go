package validation

import (
	"regexp"
	"strings"
)

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	busLineRegex = regexp.MustCompile(`^[0-9A-Za-z]+(-[0-9A-Za-z]+)?$`)
)

func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	return email != "" && emailRegex.MatchString(email) && len(email) <= 200
}

func ValidateName(name string) bool {
	name = strings.TrimSpace(name)
	return len(name) >= 2 && len(name) <= 200
}

func ValidatePassword(password string) bool {
	return len(password) >= 6 && len(password) <= 100
}

// ValidateBusLine accepts line codes like "8000" or "1012-10".
func ValidateBusLine(line string) bool {
	line = strings.TrimSpace(line)
	return line != "" && busLineRegex.MatchString(line) && len(line) <= 50
}

// ValidateDirection accepts the two travel directions of a line.
func ValidateDirection(direction int) bool {
	return direction == 1 || direction == 2
}

func ValidateCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
