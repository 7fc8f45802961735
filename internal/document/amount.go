package document

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Amount is a monetary value in centimes. No floats: the wire form
// "1500.50" parses to 150050 and round-trips exactly. At most 13
// integer digits and 2 fraction digits are accepted, matching the
// numeric(15,2) column the value is stored in.
type Amount int64

// ErrInvalidAmount reports a value that is not a plain decimal within
// the accepted precision.
var ErrInvalidAmount = errors.New("document: invalid amount")

const maxIntegerDigits = 13

// ParseAmount parses a decimal string into centimes.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if intPart == "" || len(intPart) > maxIntegerDigits || !isDigits(intPart) {
		return 0, ErrInvalidAmount
	}
	if hasFrac && (fracPart == "" || len(fracPart) > 2 || !isDigits(fracPart)) {
		return 0, ErrInvalidAmount
	}
	for len(fracPart) < 2 {
		fracPart += "0"
	}
	v, err := strconv.ParseInt(intPart+fracPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return Amount(v), nil
}

// IsPositive reports whether the amount is strictly greater than zero.
func (a Amount) IsPositive() bool { return a > 0 }

// String renders the amount back to its decimal wire form.
func (a Amount) String() string {
	sign := ""
	v := int64(a)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON emits the amount as an unquoted decimal number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts both a JSON number and a quoted decimal string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	parsed, err := ParseAmount(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
