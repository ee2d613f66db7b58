package bracket

import (
	"fmt"
	"regexp"
	"strconv"
)

var digitsRe = regexp.MustCompile(`\d+`)

// RoundParseError is returned when an image name carries no usable round number
type RoundParseError struct {
	Name   string
	Reason string
}

func (e *RoundParseError) Error() string {
	return fmt.Sprintf("cannot derive round number from %q: %s", e.Name, e.Reason)
}

// ParseRound returns the number formed by the first run of decimal digits in name.
// Leading zeros are dropped: "round_07_final.png" is round 7.
func ParseRound(name string) (int, error) {
	digits := digitsRe.FindString(name)
	if digits == "" {
		return 0, &RoundParseError{Name: name, Reason: "no digits"}
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, &RoundParseError{Name: name, Reason: "number out of range"}
	}
	if n == 0 {
		return 0, &RoundParseError{Name: name, Reason: "round numbers start at 1"}
	}
	return n, nil
}
