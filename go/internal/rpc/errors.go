package rpc

import (
	"errors"

	"connectrpc.com/connect"
	"github.com/mcdev12/planpoker/go/internal/models"
)

// ReasonHeader carries the machine-readable reason code of a failed call.
const ReasonHeader = "Poker-Reason"

// ToConnectError maps a domain error to a connect error with its reason attached.
// Errors that are already connect errors pass through.
func ToConnectError(err error) error {
	if err == nil {
		return nil
	}
	var cerr *connect.Error
	if errors.As(err, &cerr) {
		return cerr
	}

	code := connect.CodeInternal
	switch models.KindOf(err) {
	case models.KindValidation:
		code = connect.CodeInvalidArgument
	case models.KindConflict:
		code = connect.CodeAlreadyExists
	case models.KindNotFound:
		code = connect.CodeNotFound
	case models.KindPermission:
		code = connect.CodePermissionDenied
	case models.KindUnavailable:
		code = connect.CodeUnavailable
	}

	cerr = connect.NewError(code, err)
	cerr.Meta().Set(ReasonHeader, models.ReasonOf(err))
	return cerr
}

// FromConnectError turns a failed call back into a typed domain error.
func FromConnectError(err error) error {
	if err == nil {
		return nil
	}
	var cerr *connect.Error
	if !errors.As(err, &cerr) {
		return models.Wrap(models.ErrUnavailable, err)
	}

	kind := kindFromCode(cerr.Code())
	reason := cerr.Meta().Get(ReasonHeader)
	if reason == "" {
		reason = defaultReason(kind)
	}
	return &models.Error{Kind: kind, Reason: reason, Err: errors.New(cerr.Message())}
}

func kindFromCode(code connect.Code) models.ErrorKind {
	switch code {
	case connect.CodeInvalidArgument, connect.CodeUnauthenticated:
		return models.KindValidation
	case connect.CodeAlreadyExists:
		return models.KindConflict
	case connect.CodeNotFound:
		return models.KindNotFound
	case connect.CodePermissionDenied:
		return models.KindPermission
	case connect.CodeUnavailable, connect.CodeDeadlineExceeded, connect.CodeCanceled, connect.CodeUnknown:
		return models.KindUnavailable
	default:
		return models.KindInternal
	}
}

func defaultReason(kind models.ErrorKind) string {
	switch kind {
	case models.KindValidation:
		return models.ReasonInvalidInput
	case models.KindNotFound:
		return models.ReasonRoomNotFound
	case models.KindPermission:
		return models.ReasonPermissionDenied
	case models.KindUnavailable:
		return models.ReasonUnavailable
	default:
		return models.ReasonInternal
	}
}
