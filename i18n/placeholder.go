//Placeholder index: resolves placeholder markers to node or binding indexes

package i18n

import (
	"strconv"
	"strings"
)

// PlaceholderKind is the type of placeholder a marker encodes
type PlaceholderKind uint8

//goland:noinspection GoSnakeCaseUsage
const (
	PH_Expression PlaceholderKind = iota
	PH_Element
	PH_ElementClose
	PH_Template
	PH_TemplateClose
	PH_Projection
	PH_ProjectionClose
)

// Placeholder is a parsed placeholder marker
type Placeholder struct {
	Kind        PlaceholderKind
	Index       int //Node index for tags, binding ordinal for expressions
	SubTemplate int //NoSubTemplate when the marker has no “:T” suffix
}

// ParsePlaceholder parses the content between two markers, ex “#2”, “/*1:3” or “0:1”
func ParsePlaceholder(content string) (Placeholder, error) {
	ret := Placeholder{SubTemplate: NoSubTemplate}
	str := content

	//Closing marker
	isClose := strings.HasPrefix(str, "/")
	if isClose {
		str = str[1:]
	}

	//Tag type
	if len(str) == 0 {
		return ret, newErr(ErrMalformedMessage, content, "Empty placeholder")
	}
	switch str[0] {
	case '#':
		ret.Kind = cond(isClose, PH_ElementClose, PH_Element)
		str = str[1:]
	case '*':
		ret.Kind = cond(isClose, PH_TemplateClose, PH_Template)
		str = str[1:]
	case '!':
		ret.Kind = cond(isClose, PH_ProjectionClose, PH_Projection)
		str = str[1:]
	default:
		if isClose {
			return ret, newErr(ErrMalformedMessage, content, "Expressions cannot be closed")
		}
		ret.Kind = PH_Expression
	}

	//Index and sub-template
	indexStr, subStr, hasSub := strings.Cut(str, ":")
	if i, err := strconv.ParseUint(indexStr, 10, 31); err != nil {
		return ret, newErr(ErrMalformedMessage, content, "Invalid placeholder index")
	} else {
		ret.Index = int(i)
	}
	if hasSub {
		if i, err := strconv.ParseUint(subStr, 10, 31); err != nil {
			return ret, newErr(ErrMalformedMessage, content, "Invalid sub-template index")
		} else {
			ret.SubTemplate = int(i)
		}
	}

	return ret, nil
}

// IsClose returns if this is a closing tag
func (p Placeholder) IsClose() bool {
	return p.Kind == PH_ElementClose || p.Kind == PH_TemplateClose || p.Kind == PH_ProjectionClose
}

// Closes returns if p is the closing tag of open
func (p Placeholder) Closes(open Placeholder) bool {
	return p.IsClose() && p.Kind == open.Kind+1 && p.Index == open.Index && p.SubTemplate == open.SubTemplate
}

// String renders the placeholder back into its marker form
func (p Placeholder) String() string {
	var b strings.Builder
	b.WriteString(Marker)
	switch p.Kind {
	case PH_Element:
		b.WriteByte('#')
	case PH_ElementClose:
		b.WriteString("/#")
	case PH_Template:
		b.WriteByte('*')
	case PH_TemplateClose:
		b.WriteString("/*")
	case PH_Projection:
		b.WriteByte('!')
	case PH_ProjectionClose:
		b.WriteString("/!")
	}
	b.WriteString(strconv.Itoa(p.Index))
	if p.SubTemplate != NoSubTemplate {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(p.SubTemplate))
	}
	b.WriteString(Marker)
	return b.String()
}

// NodeIndex returns the node index of a tag placeholder. Expressions have no node.
func (p Placeholder) NodeIndex() (int, bool) {
	if p.Kind == PH_Expression {
		return NoNode, false
	}
	return p.Index, true
}

// BindingIndex returns the binding ordinal of an expression placeholder
func (p Placeholder) BindingIndex() (int, bool) {
	if p.Kind != PH_Expression {
		return NoBinding, false
	}
	return p.Index, true
}
