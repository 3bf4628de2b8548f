//Translation post-processing

package i18n

import (
	"regexp"
	"strconv"
	"strings"
)

const rootTemplateID = 0

var (
	ppMultiValueRegex   = regexp.MustCompile(`\[(` + Marker + `.+?` + Marker + `?)\]`)
	ppPlaceholdersRegex = regexp.MustCompile(`\[(` + Marker + `.+?` + Marker + `?)\]|(` + Marker + `/?\*\d+:\d+` + Marker + `)`)
	ppIcuVarsRegex      = regexp.MustCompile(`(\{\s*)(VAR_(?:PLURAL|SELECT)(?:_\d+)?)(\s*,)`)
	ppIcuPHRegex        = regexp.MustCompile(`\{([A-Z0-9_]+)\}`)
	ppIcusRegex         = regexp.MustCompile(Marker + `I18N_EXP_(ICU(?:_\d+)?)` + Marker)
	ppTemplateIDRegex   = regexp.MustCompile(`\d+:(\d+)`)
)

type ppPlaceholder struct {
	templateID int
	isClose    bool
	value      string
}

// Postprocess resolves the multi-value placeholder groups of a message and applies replacements.
//
// A group “[a|b|c]” is replaced by the first of its values belonging to the current sub-template. Values are consumed
// in order, and every value of every group must be consumed. Replacements apply to:
//   - “VAR_PLURAL” and “VAR_SELECT” (optionally suffixed with “_N”) at the head of an ICU expression
//   - “{KEY}” ICU placeholders
//   - “�I18N_EXP_ICU�” (optionally suffixed with “_N”), which take the next value of their list
//
// Scalar replacements join their values with commas. Keys without a replacement are left as they are.
func Postprocess(message string, replacements map[string][]string) (string, error) {
	result := message

	//Resolve the multi-value groups
	if ppMultiValueRegex.MatchString(message) {
		matches := make(map[string][]ppPlaceholder)
		templateIDStack := []int{rootTemplateID}
		var err error
		result, err = replaceAllSubmatchFunc(ppPlaceholdersRegex, result, func(groups []string) (string, error) {
			content := cond(groups[1] != "", groups[1], groups[2])
			placeholders := matches[content]
			if len(placeholders) == 0 {
				for _, ph := range strings.Split(content, "|") {
					templateID := rootTemplateID
					if m := ppTemplateIDRegex.FindStringSubmatch(ph); m != nil {
						templateID, _ = strconv.Atoi(m[1])
					}
					placeholders = append(placeholders, ppPlaceholder{templateID, strings.Contains(ph, "/*"), ph})
				}
			}

			//Take the first value belonging to the current template
			currentTemplateID := templateIDStack[len(templateIDStack)-1]
			idx := 0
			for i, ph := range placeholders {
				if ph.templateID == currentTemplateID {
					idx = i
					break
				}
			}

			ph := placeholders[idx]
			if ph.isClose {
				if len(templateIDStack) > 1 {
					templateIDStack = templateIDStack[:len(templateIDStack)-1]
				}
			} else if ph.templateID != currentTemplateID {
				templateIDStack = append(templateIDStack, ph.templateID)
			}
			matches[content] = append(placeholders[:idx:idx], placeholders[idx+1:]...)
			return ph.value, nil
		})
		if err != nil {
			return "", err
		}

		for content, placeholders := range matches {
			if len(placeholders) != 0 {
				return "", newErr(ErrUnknownPlaceholder, content, "Postprocess has %d unmatched values", len(placeholders))
			}
		}
	}

	if len(replacements) == 0 {
		return result, nil
	}

	result = ppIcuVarsRegex.ReplaceAllStringFunc(result, func(match string) string {
		groups := ppIcuVarsRegex.FindStringSubmatch(match)
		if list, ok := replacements[groups[2]]; ok {
			return groups[1] + strings.Join(list, ",") + groups[3]
		}
		return match
	})
	result = ppIcuPHRegex.ReplaceAllStringFunc(result, func(match string) string {
		if list, ok := replacements[match[1:len(match)-1]]; ok {
			return strings.Join(list, ",")
		}
		return match
	})

	//ICU lists are consumed in order
	consumed := make(map[string]int)
	return replaceAllSubmatchFunc(ppIcusRegex, result, func(groups []string) (string, error) {
		key := groups[1]
		list, ok := replacements[key]
		if !ok {
			return groups[0], nil
		}
		if consumed[key] >= len(list) {
			return "", newErr(ErrUnknownPlaceholder, groups[0], "Postprocess has no ICU left for key “%s”", key)
		}
		consumed[key]++
		return list[consumed[key]-1], nil
	})
}
