package webex

import "errors"

// Errors.
var (
	ErrUnauthorized = errors.New("webex API authentication failed")
	ErrNotFound     = errors.New("webex resource not found (404)")
	ErrRateLimited  = errors.New("webex API rate limit exceeded")
	ErrAPIError     = errors.New("webex API error")
	ErrNetworkError = errors.New("network error connecting to Webex")
)
