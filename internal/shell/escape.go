// Package shell renders file paths as tokens that survive sh word splitting.
package shell

import (
	"regexp"
	"strings"
)

var (
	unsafeChar     = regexp.MustCompile(`[^\w/:=-]`)
	leadingQuotes  = regexp.MustCompile(`^(?:'')+`)
	trailingQuotes = regexp.MustCompile(`\\'''`)
)

// Escape returns arg unchanged when it consists only of word characters and
// "/:=-". Otherwise it is single-quoted, with embedded quotes written as '\''.
func Escape(arg string) string {
	if !unsafeChar.MatchString(arg) {
		return arg
	}
	quoted := "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
	quoted = leadingQuotes.ReplaceAllString(quoted, "")
	return trailingQuotes.ReplaceAllString(quoted, `\'`)
}

