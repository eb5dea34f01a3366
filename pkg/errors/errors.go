package errors

import (
	"errors"
	"fmt"
)

// ResourceNotFoundError is returned when a tree, node or stored record is missing.
type ResourceNotFoundError struct {
	kind string
	id   string
}

func NewResourceNotFoundError(kind, id string) *ResourceNotFoundError {
	return &ResourceNotFoundError{kind: kind, id: id}
}

func NewNodeNotFoundError(path string) *ResourceNotFoundError {
	return NewResourceNotFoundError("node", path)
}

func NewTreeNotFoundError(name string) *ResourceNotFoundError {
	return NewResourceNotFoundError("tree", name)
}

func NewTreeStateNotFoundError(name string) *ResourceNotFoundError {
	return NewResourceNotFoundError("tree state", name)
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.kind, e.id)
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

// LoadFailureError wraps a failed fetch of node children.
type LoadFailureError struct {
	URL    string
	Status int
	err    error
}

func NewLoadFailureError(url string, status int, err error) *LoadFailureError {
	return &LoadFailureError{URL: url, Status: status, err: err}
}

func (e *LoadFailureError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("failed to load %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("failed to load %s: %v", e.URL, e.err)
}

func (e *LoadFailureError) Unwrap() error {
	return e.err
}

func IsLoadFailureError(err error) bool {
	var e *LoadFailureError
	return errors.As(err, &e)
}

// InvalidOperationError is returned for operations that make no sense for the
// current state of a node, e.g. adding under a path that does not belong to
// the given parent.
type InvalidOperationError struct {
	op     string
	reason string
}

func NewInvalidOperationError(op, reason string) *InvalidOperationError {
	return &InvalidOperationError{op: op, reason: reason}
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.op, e.reason)
}

func IsInvalidOperationError(err error) bool {
	var e *InvalidOperationError
	return errors.As(err, &e)
}

// UpstreamRejectionError wraps a failure reported by the rendering collaborator.
type UpstreamRejectionError struct {
	op  string
	err error
}

func NewUpstreamRejectionError(op string, err error) *UpstreamRejectionError {
	return &UpstreamRejectionError{op: op, err: err}
}

func (e *UpstreamRejectionError) Error() string {
	return fmt.Sprintf("renderer rejected %s: %v", e.op, e.err)
}

func (e *UpstreamRejectionError) Unwrap() error {
	return e.err
}

func IsUpstreamRejectionError(err error) bool {
	var e *UpstreamRejectionError
	return errors.As(err, &e)
}

// UnauthorizedError is returned by the node API client on 401 responses.
type UnauthorizedError struct{}

func NewUnauthorizedError() *UnauthorizedError {
	return &UnauthorizedError{}
}

func (e *UnauthorizedError) Error() string {
	return "node api rejected credentials"
}

func IsUnauthorizedError(err error) bool {
	var e *UnauthorizedError
	return errors.As(err, &e)
}
