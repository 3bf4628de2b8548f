//Message parser
//go:build !i18nops_runtime_only

package i18n

import (
	"regexp"
)

// Matches element, template and projection placeholders. Expression placeholders stay inside text tokens.
var tagPlaceholderRegex = regexp.MustCompile(Marker + `(/?[#*!]\d+(?::\d+)?)` + Marker)

// TokenKind is the variant of a Token
type TokenKind uint8

//goland:noinspection GoSnakeCaseUsage
const (
	TK_Text TokenKind = iota
	TK_Placeholder
	TK_Icu
)

// Token is a piece of a tokenized message. Text tokens may contain expression placeholders.
type Token struct {
	Kind        TokenKind
	Text        string
	Placeholder Placeholder
	Icu         *IcuExpression
}

// TokenizeMessage splits a message into text, tag placeholders and ICU expressions.
//
// Element and template placeholders must be balanced. Projection close markers are optional and are not checked.
func TokenizeMessage(message string) ([]Token, error) {
	var tokens []Token
	var openTags []Placeholder

	addText := func(text string) error {
		parts, err := extractParts(text)
		if err != nil {
			return err
		}
		for _, p := range parts {
			if p.Icu != nil {
				tokens = append(tokens, Token{Kind: TK_Icu, Icu: p.Icu})
			} else {
				tokens = append(tokens, Token{Kind: TK_Text, Text: p.Text})
			}
		}
		return nil
	}

	pos := 0
	for _, loc := range tagPlaceholderRegex.FindAllStringSubmatchIndex(message, -1) {
		if err := addText(message[pos:loc[0]]); err != nil {
			return nil, err
		}
		pos = loc[1]

		ph, err := ParsePlaceholder(message[loc[2]:loc[3]])
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, Token{Kind: TK_Placeholder, Placeholder: ph})

		switch ph.Kind {
		case PH_Element, PH_Template:
			openTags = append(openTags, ph)
		case PH_ElementClose, PH_TemplateClose:
			if len(openTags) == 0 {
				return nil, newErr(ErrMalformedMessage, ph.String(), "Tag mismatch: “%s” has no opening tag in “%s”", ph, message)
			} else if top := openTags[len(openTags)-1]; !ph.Closes(top) {
				return nil, newErr(ErrMalformedMessage, ph.String(), "Tag mismatch: “%s” closes “%s” in “%s”", ph, top, message)
			}
			openTags = openTags[:len(openTags)-1]
		}
	}
	if err := addText(message[pos:]); err != nil {
		return nil, err
	}

	if len(openTags) != 0 {
		top := openTags[len(openTags)-1]
		return nil, newErr(ErrMalformedMessage, top.String(), "Tag mismatch: “%s” is never closed in “%s”", top, message)
	}
	return tokens, nil
}
