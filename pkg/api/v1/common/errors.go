// Package common provides the request-shaping helpers shared by the v1
// API handlers: pagination windowing, power state mapping, href
// parsing, the metadata XML codec and the quota/feature guards.
package common

import "fmt"

// BadRequestError signals malformed or invalid request input. The HTTP
// layer translates it into a 400 response.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

// QuotaExceededError signals that a request asks for more items than
// the quota permits. The HTTP layer translates it into a 413 response
// with a Retry-After header.
type QuotaExceededError struct {
	Message string
	// RetryAfter is the Retry-After header value in seconds. Zero means
	// no fixed backoff is suggested.
	RetryAfter int
}

func (e *QuotaExceededError) Error() string {
	return e.Message
}

// MalformedXMLError signals a request body that is not well-formed XML.
type MalformedXMLError struct {
	Err error
}

func (e *MalformedXMLError) Error() string {
	return fmt.Sprintf("malformed XML request body: %v", e.Err)
}

func (e *MalformedXMLError) Unwrap() error {
	return e.Err
}

// UnknownPowerStateError signals a power state value with no status mapping.
type UnknownPowerStateError struct {
	State int
}

func (e *UnknownPowerStateError) Error() string {
	return fmt.Sprintf("unknown power state %d", e.State)
}

// InvalidHrefError signals an href from which no ID could be extracted.
type InvalidHrefError struct {
	Href string
}

func (e *InvalidHrefError) Error() string {
	return fmt.Sprintf("could not parse ID from href %q", e.Href)
}

// NoVersionInHrefError signals an href whose path carries no version segment.
type NoVersionInHrefError struct {
	Href string
}

func (e *NoVersionInHrefError) Error() string {
	return fmt.Sprintf("href %s does not contain version", e.Href)
}
