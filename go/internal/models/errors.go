package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures returned across package boundaries.
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindConflict    ErrorKind = "conflict"
	KindNotFound    ErrorKind = "not_found"
	KindPermission  ErrorKind = "permission"
	KindUnavailable ErrorKind = "unavailable"
	KindInternal    ErrorKind = "internal"
)

// Error is a typed failure with a machine-readable reason code.
type Error struct {
	Kind   ErrorKind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on kind and reason so wrapped copies compare equal to the sentinels below.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Reason == t.Reason
}

// Reasons.
const (
	ReasonInvalidInput         = "invalid_input"
	ReasonDisplayNameRequired  = "display_name_required"
	ReasonDisplayNameTooLong   = "display_name_too_long"
	ReasonRoomNameTooLong      = "room_name_too_long"
	ReasonRoomCodeRequired     = "room_code_required"
	ReasonCardSetInvalid       = "card_set_invalid"
	ReasonCustomCardsInvalid   = "custom_cards_invalid"
	ReasonTimerInvalid         = "timer_duration_invalid"
	ReasonCardValueRequired    = "card_value_required"
	ReasonDuplicateDisplayName = "duplicate_display_name"
	ReasonRoomNotFound         = "room_not_found"
	ReasonSessionNotFound      = "session_not_found"
	ReasonParticipantNotFound  = "participant_not_found"
	ReasonPermissionDenied     = "permission_denied"
	ReasonUnavailable          = "unavailable"
	ReasonInternal             = "internal"
)

var (
	ErrInvalidInput         = &Error{Kind: KindValidation, Reason: ReasonInvalidInput}
	ErrDisplayNameRequired  = &Error{Kind: KindValidation, Reason: ReasonDisplayNameRequired}
	ErrDisplayNameTooLong   = &Error{Kind: KindValidation, Reason: ReasonDisplayNameTooLong}
	ErrRoomNameTooLong      = &Error{Kind: KindValidation, Reason: ReasonRoomNameTooLong}
	ErrRoomCodeRequired     = &Error{Kind: KindValidation, Reason: ReasonRoomCodeRequired}
	ErrCardSetInvalid       = &Error{Kind: KindValidation, Reason: ReasonCardSetInvalid}
	ErrCustomCardsInvalid   = &Error{Kind: KindValidation, Reason: ReasonCustomCardsInvalid}
	ErrTimerInvalid         = &Error{Kind: KindValidation, Reason: ReasonTimerInvalid}
	ErrCardValueRequired    = &Error{Kind: KindValidation, Reason: ReasonCardValueRequired}
	ErrDuplicateDisplayName = &Error{Kind: KindConflict, Reason: ReasonDuplicateDisplayName}
	ErrRoomNotFound         = &Error{Kind: KindNotFound, Reason: ReasonRoomNotFound}
	ErrSessionNotFound      = &Error{Kind: KindNotFound, Reason: ReasonSessionNotFound}
	ErrParticipantNotFound  = &Error{Kind: KindNotFound, Reason: ReasonParticipantNotFound}
	ErrPermissionDenied     = &Error{Kind: KindPermission, Reason: ReasonPermissionDenied}
	ErrUnavailable          = &Error{Kind: KindUnavailable, Reason: ReasonUnavailable}
)

// Wrap attaches a cause to a sentinel error while keeping it comparable with errors.Is.
func Wrap(sentinel *Error, cause error) *Error {
	return &Error{Kind: sentinel.Kind, Reason: sentinel.Reason, Err: cause}
}

// KindOf returns the kind of err, or KindInternal for untyped errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// ReasonOf returns the reason code of err, or ReasonInternal for untyped errors.
func ReasonOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ReasonInternal
}
