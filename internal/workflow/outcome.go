package workflow

import (
	"errors"

	"github.com/medidonate/medidonate/internal/api"
)

// NetworkErrorMessage is shown for every transport failure.
const NetworkErrorMessage = "Network error. Please try again."

// Kind classifies how an interaction ended.
type Kind int

const (
	// KindSuccess means the service accepted the action.
	KindSuccess Kind = iota
	// KindRejected means the service answered but declined on business
	// grounds, such as a donation failing validation.
	KindRejected
	// KindFailed means a transport or server failure.
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindRejected:
		return "rejected"
	default:
		return "failed"
	}
}

// Outcome is the interpreted result of one submission.
type Outcome struct {
	Kind    Kind
	Message string
	Err     error
}

// Completed reports whether the interaction reached a verdict. Completed
// interactions reset the form; failures keep the entered values.
func (o Outcome) Completed() bool {
	return o.Kind != KindFailed
}

// Success builds a success outcome.
func Success(message string) Outcome {
	return Outcome{Kind: KindSuccess, Message: message}
}

// Rejected builds a business-rejection outcome.
func Rejected(message string) Outcome {
	return Outcome{Kind: KindRejected, Message: message}
}

// Interpret maps a client error onto a failure outcome. Transport errors
// read as the network error message; server errors carry their "error"
// field when present and fall back to generic otherwise.
func Interpret(err error, generic string) Outcome {
	if err == nil {
		return Outcome{Kind: KindSuccess}
	}

	var transportErr *api.TransportError
	if errors.As(err, &transportErr) {
		return Outcome{Kind: KindFailed, Message: NetworkErrorMessage, Err: err}
	}

	var statusErr *api.StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return Outcome{Kind: KindFailed, Message: statusErr.Message, Err: err}
	}

	return Outcome{Kind: KindFailed, Message: generic, Err: err}
}
