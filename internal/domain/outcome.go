package domain

import "fmt"

// OutcomeStatus classifies the result of a single delivery attempt.
type OutcomeStatus int

const (
	OutcomeDelivered OutcomeStatus = iota
	OutcomeRejected
	OutcomeTransportFailure
	OutcomeAuthFailure
)

// String returns the status name used in logs and the journal.
func (s OutcomeStatus) String() string {
	switch s {
	case OutcomeDelivered:
		return "delivered"
	case OutcomeRejected:
		return "rejected"
	case OutcomeTransportFailure:
		return "transport-failure"
	case OutcomeAuthFailure:
		return "auth-failure"
	default:
		return "unknown"
	}
}

// ParseOutcomeStatus is the inverse of OutcomeStatus.String.
func ParseOutcomeStatus(s string) (OutcomeStatus, error) {
	switch s {
	case "delivered":
		return OutcomeDelivered, nil
	case "rejected":
		return OutcomeRejected, nil
	case "transport-failure":
		return OutcomeTransportFailure, nil
	case "auth-failure":
		return OutcomeAuthFailure, nil
	default:
		return 0, fmt.Errorf("unknown outcome status: %q", s)
	}
}

// Outcome is the result of one delivery attempt. Outcomes are values:
// they are returned and matched, never thrown, and never silently dropped.
type Outcome struct {
	Status     OutcomeStatus
	HTTPStatus int    // set when Status is OutcomeRejected
	Detail     string // response body or error detail
}

// Delivered reports a successful delivery.
func Delivered() Outcome {
	return Outcome{Status: OutcomeDelivered}
}

// Rejected reports that the endpoint answered but refused the entry.
func Rejected(httpStatus int, body string) Outcome {
	return Outcome{Status: OutcomeRejected, HTTPStatus: httpStatus, Detail: body}
}

// TransportFailure reports a network-level failure (connect, timeout, DNS).
func TransportFailure(err error) Outcome {
	return Outcome{Status: OutcomeTransportFailure, Detail: err.Error()}
}

// AuthFailure reports that no usable credential could be obtained.
func AuthFailure(err error) Outcome {
	return Outcome{Status: OutcomeAuthFailure, Detail: err.Error()}
}

// OK reports whether the entry was accepted by the endpoint.
func (o Outcome) OK() bool {
	return o.Status == OutcomeDelivered
}

// String renders the outcome for log lines.
func (o Outcome) String() string {
	switch o.Status {
	case OutcomeDelivered:
		return "delivered"
	case OutcomeRejected:
		return fmt.Sprintf("rejected (status=%d body=%s)", o.HTTPStatus, o.Detail)
	default:
		return fmt.Sprintf("%s: %s", o.Status, o.Detail)
	}
}
