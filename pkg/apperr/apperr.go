package apperr

import (
	"errors"
	"fmt"
)

// Kind distinguishes the four failure classes callers are allowed to
// branch on. Authentication failures carry deliberately generic messages;
// authorization failures are kept distinct so callers can render different
// messaging.
type Kind int

const (
	KindAuthentication Kind = iota
	KindAuthorization
	KindValidation
	KindNotFound
	KindStore
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Authentication(msg string) *Error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

func Authorization(msg string) *Error {
	return &Error{Kind: KindAuthorization, Message: msg}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Store(msg string, err error) *Error {
	return &Error{Kind: KindStore, Message: msg, Err: err}
}

func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func IsAuthentication(err error) bool { return IsKind(err, KindAuthentication) }
func IsAuthorization(err error) bool  { return IsKind(err, KindAuthorization) }
func IsValidation(err error) bool     { return IsKind(err, KindValidation) }
func IsNotFound(err error) bool       { return IsKind(err, KindNotFound) }
func IsStore(err error) bool          { return IsKind(err, KindStore) }
