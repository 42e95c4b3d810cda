package domain

import (
	"strings"
	"unicode"
)

// SplitName breaks the site's "SURNAME Firstname" display form apart. The
// surname is the run of leading all-uppercase tokens, title-cased ("DE
// GENDT" becomes "De Gendt"); everything from the first mixed-case token on
// is the given name. A fully uppercase display name yields an empty given
// name; that matches how such names have always been treated upstream and
// is deliberately not "fixed" here.
func SplitName(display string) (first, last string) {
	tokens := strings.Fields(display)
	surname := make([]string, 0, len(tokens))

	i := 0
	for ; i < len(tokens); i++ {
		if tokens[i] != strings.ToUpper(tokens[i]) {
			break
		}
		surname = append(surname, capitalize(tokens[i]))
	}

	return strings.Join(tokens[i:], " "), strings.Join(surname, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
