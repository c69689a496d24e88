package integration

import "fmt"

// Status classifies the outcome of an adapter call.
type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
	StatusError   Status = "error"
)

// Result is the uniform outcome of every integration adapter call.
// A skipped result means the adapter's credential is unset and the input was
// echoed back; it is not a failure. Callers must branch on Status rather than
// assuming HTTP success implies the downstream action occurred.
type Result struct {
	Status  Status `json:"status"`
	Reason  string `json:"reason,omitempty"`
	Payload any    `json:"payload,omitempty"`

	// ProviderStatus and ProviderBody carry a failing provider's raw HTTP
	// response so the boundary can propagate it unmodified. Zero when the
	// failure was local (transport) or the call did not fail.
	ProviderStatus int    `json:"-"`
	ProviderBody   []byte `json:"-"`
}

// Skipped builds the credential-absent result: explicit reason, input echoed.
func Skipped(credential string, echo any) Result {
	return Result{
		Status:  StatusSkipped,
		Reason:  credential + " not set",
		Payload: echo,
	}
}

// OK builds a success result carrying the provider response or a stub payload.
func OK(payload any) Result {
	return Result{Status: StatusOK, Payload: payload}
}

// ProviderError builds an error result preserving the provider's raw
// status and body for unmodified propagation.
func ProviderError(status int, body []byte) Result {
	return Result{
		Status:         StatusError,
		Reason:         fmt.Sprintf("provider returned %d", status),
		ProviderStatus: status,
		ProviderBody:   body,
	}
}

// TransportError builds an error result for a failure before any provider
// response was received.
func TransportError(err error) Result {
	return Result{Status: StatusError, Reason: err.Error()}
}
