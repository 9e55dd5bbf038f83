package financia

import "github.com/pkg/errors"

// FallbackErrorMessage is surfaced for any failed API call whose response body
// does not carry a usable error field.
const FallbackErrorMessage = "unexpected error communicating with the FinancIA API"

// ErrNoSession is returned before any network call is made when an operation
// requires a bearer token and none is cached.
var ErrNoSession = errors.New("no session token is cached; sign in first")

// APIError represents any non-success response from the FinancIA API. The
// backend reports failures as {"error": "..."}; when that field is missing or
// the body isn't JSON at all, Message holds FallbackErrorMessage instead.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	return e.Message
}
