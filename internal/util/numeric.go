package util

import (
	"strconv"
	"strings"
)

type numericKind int

const (
	numericNone numericKind = iota
	numericInt
	numericFloat
)

// Numeric is a scraped number that may be absent. Many fields on the source
// site are blank or "n/a"; absence is expected data, not an error.
type Numeric struct {
	kind numericKind
	i    int
	f    float64
}

func NoneNumeric() Numeric {
	return Numeric{}
}

func IntNumeric(v int) Numeric {
	return Numeric{kind: numericInt, i: v}
}

func FloatNumeric(v float64) Numeric {
	return Numeric{kind: numericFloat, f: v}
}

func (n Numeric) IsNone() bool {
	return n.kind == numericNone
}

// Int returns the value when it parsed as a plain integer.
func (n Numeric) Int() (int, bool) {
	return n.i, n.kind == numericInt
}

// Float returns either numeric kind as a float64.
func (n Numeric) Float() (float64, bool) {
	switch n.kind {
	case numericInt:
		return float64(n.i), true
	case numericFloat:
		return n.f, true
	}
	return 0, false
}

// String renders the value the way it appeared, or "" for none. Used
// directly for CSV cells.
func (n Numeric) String() string {
	switch n.kind {
	case numericInt:
		return strconv.Itoa(n.i)
	case numericFloat:
		return strconv.FormatFloat(n.f, 'f', -1, 64)
	}
	return ""
}

// ToNumeric converts scraped text to a number. "n/a" in any casing and
// anything that is not plain digits or digits.digits comes back none.
func ToNumeric(s string) Numeric {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "n/a") {
		return Numeric{}
	}
	if !digitsWithOptionalPoint(s) {
		return Numeric{}
	}
	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Numeric{}
		}
		return FloatNumeric(f)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return Numeric{}
	}
	return IntNumeric(v)
}

// ParseStartlistQuality reads the compound startlist quality field: blank,
// a bare score, or "score (rank)". The parenthesized rank is the value of
// interest when both are present.
func ParseStartlistQuality(s string) Numeric {
	fields := strings.Fields(s)
	switch len(fields) {
	case 0:
		return Numeric{}
	case 1:
		return ToNumeric(fields[0])
	case 2:
		return ToNumeric(strings.Trim(fields[1], "()"))
	}
	return Numeric{}
}

func digitsWithOptionalPoint(s string) bool {
	points := 0
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			points++
			if points > 1 {
				return false
			}
		default:
			return false
		}
	}
	return digits > 0
}
