package economy

import (
	"errors"

	"golang.org/x/text/language"
)

// Kind classifies an economy failure. A Kind is itself an error so that
// callers can match with errors.Is(err, economy.KindInsufficientFunds).
type Kind string

func (k Kind) Error() string {
	return string(k)
}

const (
	KindUnknownCurrency    Kind = "unknown-currency"
	KindInvalidCurrency    Kind = "invalid-currency"
	KindInsufficientFunds  Kind = "insufficient-funds"
	KindInvalidTransaction Kind = "invalid-transaction"
	KindParseFailure       Kind = "parse-failure"
	KindAccountNotFound    Kind = "account-not-found"
	KindAccountExists      Kind = "account-exists"
	KindDuplicateCurrency  Kind = "duplicate-currency"
	KindPrimaryCurrency    Kind = "primary-currency"
	KindTimeout            Kind = "timeout"
	KindCanceled           Kind = "canceled"
	KindStorage            Kind = "storage"
)

// MessageFunc produces the message for a locale. It reports false when it has
// no message for that locale.
type MessageFunc func(locale language.Tag) (string, bool)

// Error is the single failure type of the economy layer. It carries either a
// fixed message or a MessageFunc; an English message is always available
// through Error. No stack trace is captured.
type Error struct {
	kind     Kind
	message  string
	localize MessageFunc
	cause    error
}

// NewError returns an Error with a fixed, locale independent message.
func NewError(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// ErrNoEnglishMessage is returned by NewLocalizedError when the supplier cannot
// produce an English message.
var ErrNoEnglishMessage = errors.New("economy: message supplier has no english message")

// NewLocalizedError returns an Error whose message depends on the locale.
// fn must resolve language.English to a non-empty message.
func NewLocalizedError(kind Kind, fn MessageFunc) (*Error, error) {
	if fn == nil {
		return nil, ErrNoEnglishMessage
	}
	english, ok := fn(language.English)
	if !ok || english == "" {
		return nil, ErrNoEnglishMessage
	}
	return &Error{kind: kind, message: english, localize: fn}, nil
}

// MustLocalizedError is like NewLocalizedError but panics on a supplier
// without an English message.
func MustLocalizedError(kind Kind, fn MessageFunc) *Error {
	e, err := NewLocalizedError(kind, fn)
	if err != nil {
		panic(err)
	}
	return e
}

// Kind returns the failure kind.
func (e *Error) Kind() Kind {
	return e.kind
}

// Error returns the English message.
func (e *Error) Error() string {
	return e.message
}

// Message returns the message for locale. language.Und selects English.
// An error built from a MessageFunc may report false for locales the
// supplier does not cover.
func (e *Error) Message(locale language.Tag) (string, bool) {
	if e.localize == nil || locale == language.Und {
		return e.message, true
	}
	return e.localize(locale)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is the Kind of e.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.kind
}

// WithCause returns a copy of e wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	cp := *e
	cp.cause = cause
	return &cp
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.kind, true
	}
	return "", false
}

// AsError returns the first *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
