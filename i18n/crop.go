//Sub-template cropper
//go:build !i18nops_runtime_only

package i18n

import (
	"regexp"
	"slices"
	"strconv"
)

var templateMarkerRegex = regexp.MustCompile(Marker + `(/?)\*(\d+):(\d+)` + Marker)

// A matched �*N:T� … �/*N:T� pair
type templateSpan struct {
	openStart, openEnd   int
	closeStart, closeEnd int
	depth                int //0 for top level spans
	subTemplate          int
}

// Crop returns the part of the message that belongs to the given sub-template. NoSubTemplate returns the root view of the message.
//
// The content of sub-templates nested inside the returned part is removed, leaving only their open and close markers.
func Crop(message string, subTemplate int) (string, error) {
	spans, err := findTemplateSpans(message)
	if err != nil {
		return "", err
	}

	if subTemplate == NoSubTemplate {
		return collapseTemplateSpans(message, spans, 0, len(message), 0), nil
	}
	for _, s := range spans {
		if s.subTemplate == subTemplate {
			return collapseTemplateSpans(message, spans, s.openEnd, s.closeStart, s.depth+1), nil
		}
	}
	return "", newErr(ErrMalformedMessage, "", "Sub-template %d not found in the translation “%s”", subTemplate, message)
}

// Returns the template spans ordered by their start position
func findTemplateSpans(message string) ([]templateSpan, error) {
	type openTag struct {
		start, end int
		id         string
	}
	var stack []openTag
	var spans []templateSpan

	for _, loc := range templateMarkerRegex.FindAllStringSubmatchIndex(message, -1) {
		tag := message[loc[0]:loc[1]]
		id := message[loc[4]:loc[7]]

		//Open tags go on the stack
		if loc[3] == loc[2] {
			stack = append(stack, openTag{loc[0], loc[1], id})
			continue
		}

		//Close tags must match the top of the stack
		if len(stack) == 0 {
			return nil, newErr(ErrMalformedMessage, tag, "Tag mismatch: unable to find the start of the sub-template in the translation “%s”", message)
		}
		top := stack[len(stack)-1]
		if top.id != id {
			return nil, newErr(ErrMalformedMessage, tag, "Tag mismatch: “%s” closes “%s” in the translation “%s”", tag, message[top.start:top.end], message)
		}
		stack = stack[:len(stack)-1]

		subTemplate, _ := strconv.Atoi(message[loc[6]:loc[7]])
		spans = append(spans, templateSpan{top.start, top.end, loc[0], loc[1], len(stack), subTemplate})
	}

	if len(stack) != 0 {
		top := stack[len(stack)-1]
		return nil, newErr(ErrMalformedMessage, message[top.start:top.end], "Tag mismatch: unable to find the end of the sub-template in the translation “%s”", message)
	}

	slices.SortFunc(spans, func(a, b templateSpan) int { return a.openStart - b.openStart })
	return spans, nil
}

// Returns message[start:end] with the content of the spans at the given depth removed
func collapseTemplateSpans(message string, spans []templateSpan, start, end, depth int) string {
	ret := make([]byte, 0, end-start)
	pos := start
	for _, s := range spans {
		if s.depth != depth || s.openStart < start || s.closeEnd > end {
			continue
		}
		ret = append(ret, message[pos:s.openEnd]...)
		pos = s.closeStart
	}
	ret = append(ret, message[pos:end]...)

	return string(ret)
}
