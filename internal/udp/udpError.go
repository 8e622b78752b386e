package udp

import (
	"fmt"
	"net"
	"os"

	"github.com/pkg/errors"
)

type ErrorKind int

const (
	UnknownFailure ErrorKind = iota
	BindFailure
	SecurityFailure
	ChannelClosedFailure
	IOFailure
	StateFailure
	OverflowFailure
)

func (kind ErrorKind) String() string {
	switch kind {
	case BindFailure:
		return "bind failure"
	case SecurityFailure:
		return "security failure"
	case ChannelClosedFailure:
		return "channel closed"
	case IOFailure:
		return "i/o failure"
	case StateFailure:
		return "state failure"
	case OverflowFailure:
		return "buffer overflow"
	default:
		return "unknown failure"
	}
}

// ServiceError is reported by both services. Source is the underlying cause.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Source  error
}

func (e *ServiceError) Error() string {
	if e.Source == nil {
		return e.Message
	}

	return fmt.Sprintf("%s: %v", e.Message, e.Source)
}

func (e *ServiceError) Unwrap() error { return e.Source }

// Cause lets errors.Cause reach the socket error.
func (e *ServiceError) Cause() error { return e.Source }

func newServiceError(kind ErrorKind, source error, format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: kind, Message: fmt.Sprintf(format, args...), Source: source}
}

// KindOf returns the kind of the first ServiceError in err's chain.
func KindOf(err error) ErrorKind {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Kind
	}

	return UnknownFailure
}

func classifyOpenError(err error) ErrorKind {
	if errors.Is(err, os.ErrPermission) {
		return SecurityFailure
	}

	return BindFailure
}

func classifyTransferError(err error) ErrorKind {
	switch {
	case errors.Is(err, net.ErrClosed):
		return ChannelClosedFailure
	case errors.Is(err, os.ErrPermission):
		return SecurityFailure
	default:
		return IOFailure
	}
}

func openErrorMessage(kind ErrorKind, direction string) string {
	if kind == SecurityFailure {
		return fmt.Sprintf("%s channel was refused while opening", direction)
	}

	return fmt.Sprintf("cannot bind %s socket", direction)
}

func transferErrorMessage(kind ErrorKind, operation string) string {
	switch kind {
	case ChannelClosedFailure:
		return fmt.Sprintf("channel was closed by another goroutine during %s", operation)
	case SecurityFailure:
		return fmt.Sprintf("permission denied during %s", operation)
	default:
		return fmt.Sprintf("i/o error during %s", operation)
	}
}
