// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"
)

// Op represents an operation that can fail.
type Op string

// Operation constants.
const (
	OpParseArgs   Op = "parse arguments"
	OpLoadConfig  Op = "load configuration"
	OpResolvePath Op = "resolve library path"
	OpSearch      Op = "search library"
	OpRender      Op = "render results"
	OpSync        Op = "sync library"
)

// ErrNotImplemented reports a command that exists but does nothing yet.
var ErrNotImplemented = errors.New("not implemented")

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
