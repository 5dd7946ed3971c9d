package flutterwave

import (
	"errors"
	"fmt"
)

// GatewayError is a failed or unusable response from the Flutterwave API.
type GatewayError struct {
	Operation  string
	Message    string
	StatusCode int
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("flutterwave %s failed: %s (status: %d)", e.Operation, e.Message, e.StatusCode)
}

func IsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	ok := errors.As(err, &gwErr)
	return gwErr, ok
}
