// Package graphql provides a GraphQL HTTP client for the conference CMS
// backends.
package graphql

import (
	"context"
	"errors"
	"fmt"
)

// GraphQLError represents a single error returned in a GraphQL response.
type GraphQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Client defines the interface for executing GraphQL queries.
type Client interface {
	Execute(ctx context.Context, query string, variables map[string]any) ([]byte, error)
}

// Unconfigured is a Client for a backend whose endpoint is missing. Every
// Execute fails with ErrNotConfigured without touching the network.
type Unconfigured struct{}

// Execute returns ErrNotConfigured.
func (Unconfigured) Execute(ctx context.Context, query string, variables map[string]any) ([]byte, error) {
	return nil, ErrNotConfigured
}

var (
	// ErrRemoteAPI matches every *RemoteAPIError via errors.Is.
	ErrRemoteAPI = errors.New("graphql: remote API error")

	// ErrNotConfigured is returned by Execute when the backend has no token
	// or no endpoint.
	ErrNotConfigured = errors.New("graphql: backend is not configured")

	// ErrNoData is returned when a successful response carries no "data"
	// object, or a null one.
	ErrNoData = errors.New("graphql: response has no data")

	// ErrUnauthorized is returned when the backend answers HTTP 401.
	ErrUnauthorized = errors.New("graphql: authentication failed")
)

// RemoteAPIError reports a response whose envelope carried a non-empty
// "errors" array. The messages themselves are only written to the client's
// logger, tagged with CorrelationID.
type RemoteAPIError struct {
	Endpoint      string
	Count         int
	CorrelationID string
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("graphql: remote API error from %s (%d error(s), ref %s)", e.Endpoint, e.Count, e.CorrelationID)
}

// Is reports whether target is ErrRemoteAPI.
func (e *RemoteAPIError) Is(target error) bool {
	return target == ErrRemoteAPI
}
