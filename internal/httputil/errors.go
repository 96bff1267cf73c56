package httputil

import "errors"

var (
	ErrInvalidBody      = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
	ErrInvalidID        = errors.New("the specified resource ID is not a valid unsigned integer")
	ErrInvalidTime      = errors.New("times must be formatted as RFC 3339, e.g. 2024-03-10T12:43:00Z")
	ErrInvalidBool      = errors.New("boolean query parameters must be either true or false")
	ErrInvalidOffset    = errors.New("the offset must be a 32 bit integer")
)
