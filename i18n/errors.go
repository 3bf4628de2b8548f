//Error taxonomy

package i18n

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedMessage   = errors.New("Malformed message")
	ErrMissingOtherCase   = errors.New("Missing “other” case")
	ErrUnknownPlaceholder = errors.New("Unknown placeholder")
	ErrDesyncOpcode       = errors.New("Opcode stream out of sync")
	ErrIcuInAttribute     = errors.New("ICU expressions are not supported in attributes")
	ErrNodeIndexOverflow  = errors.New("Node index overflow")
	ErrUnknownNode        = errors.New("Unknown node")
)

// MessageError wraps one of the Err* sentinels with the offending tag and a description
type MessageError struct {
	Kind    error
	Tag     string //The offending placeholder or key. May be empty.
	Message string
}

func (e *MessageError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Message)
	}
	return fmt.Sprintf("%s: %s [tag “%s”]", e.Kind.Error(), e.Message, e.Tag)
}

func (e *MessageError) Unwrap() error {
	return e.Kind
}

func newErr(kind error, tag string, format string, args ...any) error {
	return &MessageError{kind, tag, fmt.Sprintf(format, args...)}
}
