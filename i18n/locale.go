//Locale and plural category resolution

package i18n

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/lctime"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PluralCategory is a CLDR plural category name
type PluralCategory string

//goland:noinspection GoSnakeCaseUsage
const (
	PC_Zero  PluralCategory = "zero"
	PC_One   PluralCategory = "one"
	PC_Two   PluralCategory = "two"
	PC_Few   PluralCategory = "few"
	PC_Many  PluralCategory = "many"
	PC_Other PluralCategory = "other"
)

// PluralResolver maps a stringified number to its plural category for a language
type PluralResolver interface {
	PluralCategory(tag language.Tag, value string) PluralCategory
}

// CLDRPlurals resolves plural categories with the CLDR cardinal rules of golang.org/x/text
type CLDRPlurals struct{}

// PluralCategory returns PC_Other for values that are not decimal numbers
func (CLDRPlurals) PluralCategory(tag language.Tag, value string) PluralCategory {
	i, v, w, f, t, ok := pluralOperands(value)
	if !ok {
		return PC_Other
	}

	switch plural.Cardinal.MatchPlural(tag, i, v, w, f, t) {
	case plural.Zero:
		return PC_Zero
	case plural.One:
		return PC_One
	case plural.Two:
		return PC_Two
	case plural.Few:
		return PC_Few
	case plural.Many:
		return PC_Many
	default:
		return PC_Other
	}
}

// Largest number of digits kept from each side of the decimal point
const maxOperandDigits = 18

// pluralOperands computes the CLDR operands of a decimal string
//
//	i: Integer digits
//	v: Number of visible fraction digits
//	w: Number of visible fraction digits without trailing zeros
//	f: Visible fraction digits
//	t: Visible fraction digits without trailing zeros
func pluralOperands(value string) (i, v, w, f, t int, ok bool) {
	s := strings.TrimLeft(strings.TrimSpace(value), "+-")
	if strings.ContainsAny(s, "eE") {
		if fl, err := strconv.ParseFloat(s, 64); err != nil {
			return
		} else {
			s = strconv.FormatFloat(fl, 'f', -1, 64)
		}
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if (intPart == "" && fracPart == "") || !isDigits(intPart) || !isDigits(fracPart) {
		return
	}
	if len(intPart) > maxOperandDigits {
		intPart = intPart[len(intPart)-maxOperandDigits:]
	}
	if len(fracPart) > maxOperandDigits {
		fracPart = fracPart[:maxOperandDigits]
	}
	trimmedFrac := strings.TrimRight(fracPart, "0")

	i, _ = strconv.Atoi(cond(intPart == "", "0", intPart))
	f, _ = strconv.Atoi(cond(fracPart == "", "0", fracPart))
	t, _ = strconv.Atoi(cond(trimmedFrac == "", "0", trimmedFrac))
	return i, len(fracPart), len(trimmedFrac), f, t, true
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Locale is the language a view renders with. A Locale is not safe for concurrent use.
type Locale struct {
	identifier     string
	tag            language.Tag
	plurals        PluralResolver
	messagePrinter *message.Printer
	timeLocalizer  *lctime.Localizer
}

// NewLocale creates a locale from a BCP 47 identifier. A nil plurals uses CLDRPlurals.
func NewLocale(identifier string, plurals PluralResolver) (*Locale, error) {
	tag, err := language.Parse(identifier)
	if err != nil {
		return nil, fmt.Errorf("Locale identifier “%s” is not valid: %w", identifier, err)
	}
	return &Locale{
		identifier: identifier,
		tag:        tag,
		plurals:    cond[PluralResolver](plurals == nil, CLDRPlurals{}, plurals),
	}, nil
}

// DefaultLocale returns an en-US locale with CLDR plural rules
func DefaultLocale() *Locale {
	return &Locale{identifier: "en-US", tag: language.AmericanEnglish, plurals: CLDRPlurals{}}
}

// Identifier returns the identifier the locale was created with
func (l *Locale) Identifier() string {
	return l.identifier
}

// Tag returns the language tag
func (l *Locale) Tag() language.Tag {
	return l.tag
}

// PluralCase returns the plural category of a stringified number
func (l *Locale) PluralCase(value string) PluralCategory {
	return l.plurals.PluralCategory(l.tag, value)
}

// MessagePrinter returns the MessagePrinter
func (l *Locale) MessagePrinter() *message.Printer {
	//Make sure the message printer already exists
	if l.messagePrinter == nil {
		l.messagePrinter = message.NewPrinter(l.tag)
	}

	return l.messagePrinter
}

// TimeLocalizer returns the TimeLocalizer
func (l *Locale) TimeLocalizer() (*lctime.Localizer, error) {
	//Make sure the time localizer already exists
	if l.timeLocalizer == nil {
		if loc, err := lctime.NewLocalizer(strings.Replace(l.tag.String(), "-", "_", -1)); err != nil {
			return nil, err
		} else {
			l.timeLocalizer = &loc
		}
	}

	return l.timeLocalizer, nil
}

// Stringify converts a binding value to the text written into the view.
//
// Numbers are not grouped so they keep matching exact ICU case keys. Times are formatted with the locale’s “%c”.
func (l *Locale) Stringify(value any) string {
	switch val := value.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		if loc, err := l.TimeLocalizer(); err == nil {
			return (*loc).Strftime("%c", val)
		}
		return val.Format(time.RFC3339)
	case fmt.Stringer:
		return val.String()
	case error:
		return val.Error()
	default:
		return fmt.Sprint(val)
	}
}
