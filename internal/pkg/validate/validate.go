// Package validate holds the input format rules shared by the login and
// join forms.
package validate

import (
	"regexp"
	"strings"
)

var (
	usernamePattern = regexp.MustCompile(`\A\w{3,15}\z`)
	passwordPattern = regexp.MustCompile(`\A.{6,}\z`)
)

// Username accepts 3 to 15 ASCII word characters.
func Username(s string) bool {
	return usernamePattern.MatchString(s)
}

// Password accepts any line of at least 6 characters.
func Password(s string) bool {
	return passwordPattern.MatchString(s)
}

func Email(s string) bool {
	return strings.Contains(s, "@")
}
