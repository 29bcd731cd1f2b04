package a2a

import (
	"fmt"
	"time"
)

// Error types for outbound calls to remote agents.
type (
	// ConnectionError represents a transport failure while reaching an agent.
	ConnectionError struct {
		URL string
		Err error
	}

	// StatusError represents a response with a status other than 200.
	StatusError struct {
		URL        string
		StatusCode int
	}

	// DecodingError represents a body that could not be decoded.
	DecodingError struct {
		Message string
		Err     error
	}

	// TimeoutError represents a call that exceeded its deadline.
	TimeoutError struct {
		URL     string
		Timeout time.Duration
	}
)

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("A2A call failed: %d", e.StatusCode)
}

func (e *DecodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to decode response: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("failed to decode response: %s", e.Message)
}

func (e *DecodingError) Unwrap() error {
	return e.Err
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out after %s", e.URL, e.Timeout)
}
