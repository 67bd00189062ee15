package library

import (
	"fmt"

	apierrors "github.com/Apurer/go-gin-design-library/internal/shared/errors"
)

// TransportError means the request never produced an HTTP response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("library api %s: transport: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError is a response with a non-success status or a success:false envelope.
type ServerError struct {
	Op      string
	Status  int
	Problem *apierrors.ProblemDetail
}

func (e *ServerError) Error() string {
	if e.Problem != nil {
		return fmt.Sprintf("library api %s: status %d: %s", e.Op, e.Status, e.Problem.Error())
	}
	return fmt.Sprintf("library api %s: status %d", e.Op, e.Status)
}

func (e *ServerError) Unwrap() error {
	if e.Problem == nil {
		return nil
	}
	return *e.Problem
}

// ParseError means the body could not be decoded.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("library api %s: parse response: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
