package client

import "fmt"

// TransportError is a network or HTTP-layer failure: the request never got a
// usable response (non-2xx status, timeout, DNS). It is terminal for the
// fetch attempt; nothing retries it automatically.
type TransportError struct {
	Operation  string
	Ticker     string
	StatusCode int // 0 when the request never reached the provider
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: provider returned status %d", e.Operation, e.Ticker, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: request failed: %v", e.Operation, e.Ticker, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProviderError is an HTTP-success response whose body carries a
// provider-signaled failure. Alpha Vantage reports bad symbols, rate limits,
// and plan restrictions inside a 200 JSON body via "Error Message" or
// "Note" fields, so the body must be inspected before it is trusted as data.
type ProviderError struct {
	Operation string
	Ticker    string
	Message   string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %s: provider error: %s", e.Operation, e.Ticker, e.Message)
}
