//Utility functions

package i18n

import (
	"regexp"
	"strings"
)

// Conditional
func cond[T any](isTrue bool, ifTrue, ifFalse T) T {
	if isTrue {
		return ifTrue
	}
	return ifFalse
}

// replaceAllSubmatchFunc is regexp.ReplaceAllStringFunc with access to the submatches. The callback may fail, which stops the replacement.
func replaceAllSubmatchFunc(re *regexp.Regexp, str string, repl func(groups []string) (string, error)) (string, error) {
	var b strings.Builder
	lastIndex := 0
	for _, loc := range re.FindAllStringSubmatchIndex(str, -1) {
		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[i*2] != -1 {
				groups[i] = str[loc[i*2]:loc[i*2+1]]
			}
		}

		newStr, err := repl(groups)
		if err != nil {
			return "", err
		}
		b.WriteString(str[lastIndex:loc[0]])
		b.WriteString(newStr)
		lastIndex = loc[1]
	}
	b.WriteString(str[lastIndex:])

	return b.String(), nil
}
