package aicc

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind classifies why a call to the course-generation service failed
type Kind string

const (
	KindTimeout    Kind = "timeout"
	KindConnection Kind = "connection"
	KindStatus     Kind = "status"
	KindDecode     Kind = "decode"
)

// UpstreamError is returned for every failed call to the service
type UpstreamError struct {
	Kind       Kind
	Operation  string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *UpstreamError) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("aicc %s: unexpected status %d", e.Operation, e.StatusCode)
	case KindTimeout:
		return fmt.Sprintf("aicc %s: request timed out", e.Operation)
	default:
		return fmt.Sprintf("aicc %s: %s error: %v", e.Operation, e.Kind, e.Err)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err is an upstream timeout
func IsTimeout(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.Kind == KindTimeout
}

// IsConnection reports whether err is a transport failure other than a timeout
func IsConnection(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.Kind == KindConnection
}

func classify(operation string, err error) *UpstreamError {
	kind := KindConnection
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = KindTimeout
	}
	return &UpstreamError{Kind: kind, Operation: operation, Err: err}
}
