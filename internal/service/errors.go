package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a service failure. The boundary layer alone decides
// which HTTP status a kind becomes.
type Kind string

const (
	KindNotFound         Kind = "NOT_FOUND"
	KindForbidden        Kind = "FORBIDDEN"
	KindConflict         Kind = "CONFLICT"
	KindInvalidOperation Kind = "INVALID_OPERATION"
	KindValidation       Kind = "VALIDATION"
)

// Error is a failure raised by a service rule. Fields is set only for
// KindValidation and maps each violated input field to its message.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NotFound(msg string) error         { return &Error{Kind: KindNotFound, Message: msg} }
func Forbidden(msg string) error        { return &Error{Kind: KindForbidden, Message: msg} }
func Conflict(msg string) error         { return &Error{Kind: KindConflict, Message: msg} }
func InvalidOperation(msg string) error { return &Error{Kind: KindInvalidOperation, Message: msg} }

// Invalid reports a single malformed input, such as an unparsable query
// parameter.
func Invalid(field, msg string) error {
	return &Error{Kind: KindValidation, Message: msg, Fields: map[string]string{field: msg}}
}

// KindOf returns the kind of err, or "" when err is not a service error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Messages shared by several operations.
const (
	msgUserNotFound    = "user not found"
	msgItemNotFound    = "item not found"
	msgRequestNotFound = "request not found"
	msgBookingNotFound = "booking not found"
)

// violations collects field problems during validation.
type violations map[string]string

func (v violations) add(field, msg string) {
	if _, ok := v[field]; !ok {
		v[field] = msg
	}
}

// err returns a validation error listing every violation, or nil.
func (v violations) err() error {
	if len(v) == 0 {
		return nil
	}
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k])
	}
	return &Error{Kind: KindValidation, Message: strings.Join(parts, "; "), Fields: v}
}
