package domain

import (
	"errors"
	"fmt"
)

// Kind classifies every failure that can leave a service.
type Kind string

const (
	KindNotConfigured    Kind = "not_configured"
	KindInvalidAmount    Kind = "invalid_amount"
	KindMissingParameter Kind = "missing_parameter"
	KindInvalidRequest   Kind = "invalid_request"
	KindNotFound         Kind = "not_found"
	KindUnauthorized     Kind = "unauthorized"
	KindUpstream         Kind = "upstream_error"
	KindInternal         Kind = "internal_error"
)

// Error is the tagged error returned across service boundaries.
// Msg is safe to show to clients; Err keeps the cause for logs.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func NotConfigured(msg string) *Error {
	return &Error{Kind: KindNotConfigured, Msg: msg}
}

func InvalidAmount(msg string) *Error {
	return &Error{Kind: KindInvalidAmount, Msg: msg}
}

func MissingParameter(msg string) *Error {
	return &Error{Kind: KindMissingParameter, Msg: msg}
}

func InvalidRequest(msg string, err error) *Error {
	return &Error{Kind: KindInvalidRequest, Msg: msg, Err: err}
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf("%s not found", resource)}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

// Upstream wraps a failure of an external service. The provider message
// is passed through verbatim.
func Upstream(err error) *Error {
	if err == nil {
		return &Error{Kind: KindUpstream, Msg: "upstream service failed"}
	}
	return &Error{Kind: KindUpstream, Msg: err.Error(), Err: err}
}

// UpstreamMsg is Upstream with an explicit client-facing message.
func UpstreamMsg(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Msg: msg, Err: err}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Msg: "internal server error", Err: err}
}

// KindOf reports the kind of err. Untagged errors are internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
