//ICU expression parser
//go:build !i18nops_runtime_only

package i18n

import (
	"regexp"
	"slices"
	"strings"
)

var (
	icuBlockRegex = regexp.MustCompile(`^\s*(` + Marker + `\d+:?\d*` + Marker + `)\s*,\s*(select|plural)\s*,`)
	bindingRegex  = regexp.MustCompile(Marker + `(\d+)(?::\d+)?` + Marker)
)

// IcuExpression is a parsed (not yet compiled) ICU expression
type IcuExpression struct {
	Type        IcuType
	MainBinding int
	Cases       []string
	Values      [][]IcuValue //Per case
}

// IcuValue is either literal text or a nested ICU expression
type IcuValue struct {
	Text string
	Icu  *IcuExpression
}

// ParseIcu parses a full ICU expression including its outer braces, ex “{�0�, select, a {A} other {B}}”
func ParseIcu(text string) (*IcuExpression, error) {
	parts, err := splitBraces(text)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 || strings.TrimSpace(parts[0]) != "" || strings.TrimSpace(parts[2]) != "" || !icuBlockRegex.MatchString(parts[1]) {
		return nil, newErr(ErrMalformedMessage, "", "Not a single ICU expression: “%s”", text)
	}
	return parseIcuBlock(parts[1])
}

// Parses the content of an ICU expression (without its outer braces)
func parseIcuBlock(pattern string) (*IcuExpression, error) {
	//Read the head
	ret := &IcuExpression{Type: IT_Plural}
	head := icuBlockRegex.FindStringSubmatchIndex(pattern)
	if pattern[head[4]:head[5]] == "select" {
		ret.Type = IT_Select
	}
	mainMarker := pattern[head[2]:head[3]]
	if ph, err := ParsePlaceholder(strings.Trim(mainMarker, Marker)); err != nil {
		return nil, err
	} else {
		ret.MainBinding = ph.Index
	}

	//Read the (key {value})+ pairs
	parts, err := splitBraces(pattern[head[1]:])
	if err != nil {
		return nil, err
	}
	for pos := 0; pos+1 < len(parts); pos += 2 {
		key := strings.TrimSpace(parts[pos])
		if ret.Type == IT_Plural {
			key = strings.TrimSpace(strings.TrimPrefix(key, "="))
		}
		if key == "" {
			return nil, newErr(ErrMalformedMessage, mainMarker, "ICU case without a key in “%s”", pattern)
		}

		values, err := extractParts(parts[pos+1])
		if err != nil {
			return nil, err
		}
		ret.Cases = append(ret.Cases, key)
		ret.Values = append(ret.Values, values)
	}
	if trailing := strings.TrimSpace(parts[len(parts)-1]); trailing != "" {
		return nil, newErr(ErrMalformedMessage, trailing, "ICU case has no value in “%s”", pattern)
	}

	if !slices.Contains(ret.Cases, "other") {
		return nil, newErr(ErrMissingOtherCase, mainMarker, "Missing key “other” in ICU statement “%s”", pattern)
	}
	return ret, nil
}

// splitBraces splits a pattern on its top level braces. Odd entries are the content of the brace blocks.
func splitBraces(pattern string) ([]string, error) {
	var ret []string
	depth, prevPos := 0, 0
	for pos := 0; pos < len(pattern); pos++ {
		switch pattern[pos] {
		case '{':
			if depth == 0 {
				ret = append(ret, pattern[prevPos:pos])
				prevPos = pos + 1
			}
			depth++
		case '}':
			if depth == 0 {
				return nil, newErr(ErrMalformedMessage, "}", "Unexpected closing brace in “%s”", pattern)
			}
			depth--
			if depth == 0 {
				ret = append(ret, pattern[prevPos:pos])
				prevPos = pos + 1
			}
		}
	}
	if depth != 0 {
		return nil, newErr(ErrMalformedMessage, "{", "Unclosed brace in “%s”", pattern)
	}

	return append(ret, pattern[prevPos:]), nil
}

// extractParts splits a pattern into text and ICU expressions. Brace blocks that are not ICU expressions stay text.
func extractParts(pattern string) ([]IcuValue, error) {
	parts, err := splitBraces(pattern)
	if err != nil {
		return nil, err
	}

	var ret []IcuValue
	addText := func(text string) {
		if text == "" {
			return
		}
		if l := len(ret); l != 0 && ret[l-1].Icu == nil {
			ret[l-1].Text += text
		} else {
			ret = append(ret, IcuValue{Text: text})
		}
	}
	for i, p := range parts {
		switch {
		case i&1 == 0:
			addText(p)
		case icuBlockRegex.MatchString(p):
			if icu, err := parseIcuBlock(p); err != nil {
				return nil, err
			} else {
				ret = append(ret, IcuValue{Icu: icu})
			}
		default:
			addText("{" + p + "}")
		}
	}

	return ret, nil
}

// bindingMask returns the mask of every binding used by the expression, its cases and its nested expressions
func (e *IcuExpression) bindingMask() uint32 {
	mask := maskBit(e.MainBinding)
	for _, values := range e.Values {
		for _, v := range values {
			if v.Icu != nil {
				mask |= v.Icu.bindingMask()
			} else {
				_, m := splitBindings(v.Text)
				mask |= m
			}
		}
	}
	return mask
}
