package subgraph

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Common errors returned by the client.
var (
	// ErrMissingData is returned when a well-formed response lacks the
	// expected collections payload.
	ErrMissingData = errors.New("response missing collections data")
)

// HTTPError represents a non-success transport status on a page request.
type HTTPError struct {
	StatusCode int
	Status     string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("subgraph HTTP error (status %d): %s", e.StatusCode, e.Status)
}

// GraphQLError aggregates the application-level errors reported in a
// response body.
type GraphQLError struct {
	Messages []string
}

// Error implements the error interface.
func (e *GraphQLError) Error() string {
	return fmt.Sprintf("subgraph returned %d error(s): %s",
		len(e.Messages), strings.Join(e.Messages, "; "))
}

// classifyError categorizes an error for observability.
func classifyError(err error) ErrorClass {
	var httpErr *HTTPError
	var gqlErr *GraphQLError
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &httpErr):
		return ErrorClassHTTP
	case errors.As(err, &gqlErr):
		return ErrorClassGraphQL
	case errors.Is(err, ErrMissingData):
		return ErrorClassMissingData
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return ErrorClassDecode
	default:
		return ErrorClassNetwork
	}
}
