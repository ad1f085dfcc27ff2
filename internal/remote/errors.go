package remote

import (
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// ServiceError is returned when a remote describe or generate call fails:
// transport, authentication, timeout, or a response without usable content.
type ServiceError struct {
	Service    string
	StatusCode int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s service failed with status %d: %v", e.Service, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s service failed: %v", e.Service, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsServiceError checks if an error is a ServiceError.
func IsServiceError(err error) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr)
}

// ErrEmptyResponse is wrapped by ServiceError when a call succeeds but carries
// nothing to use.
var ErrEmptyResponse = errors.New("response has no usable content")

// Wrap converts an error from the OpenAI client into a ServiceError, keeping the
// HTTP status when the client reports one.
func Wrap(service string, err error) error {
	if err == nil {
		return nil
	}

	svcErr := &ServiceError{Service: service, Err: err}
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		svcErr.StatusCode = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		svcErr.StatusCode = reqErr.HTTPStatusCode
	}
	return svcErr
}
