package rpc

import (
	"context"
	"errors"
	"strings"

	"connectrpc.com/connect"
)

// UserIDHeader carries the caller's opaque user identifier. Identity is issued elsewhere.
const UserIDHeader = "X-User-Id"

var errMissingUser = errors.New("missing " + UserIDHeader + " header")

// NewUserInterceptor stamps every outgoing request with userID.
func NewUserInterceptor(userID string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				req.Header().Set(UserIDHeader, userID)
			}
			return next(ctx, req)
		}
	}
}

// CallerID returns the user identifier of an incoming request.
func CallerID(req connect.AnyRequest) (string, error) {
	userID := strings.TrimSpace(req.Header().Get(UserIDHeader))
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errMissingUser)
	}
	return userID, nil
}
