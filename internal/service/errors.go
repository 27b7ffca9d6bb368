package service

import (
	"errors"
	"fmt"
)

// ErrServiceMisconfigured is returned by constructors given nil dependencies.
var ErrServiceMisconfigured = errors.New("service misconfigured")

// ServiceError adds the failing service and operation to an underlying error
// while keeping it reachable through errors.Is and errors.As.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err. A nil err yields nil.
func NewServiceError(service, operation, message string, err error) error {
	if err == nil {
		return nil
	}
	return &ServiceError{Service: service, Operation: operation, Message: message, Err: err}
}
