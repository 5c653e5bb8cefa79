// Package backend issues one-off smoke-test requests against the site's
// hosted database REST API and its serverless OTP endpoint.
package backend

import (
	"fmt"

	httputil "github.com/jmylchreest/sitekit/internal/util/http"
)

// StatusError is returned when an endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Reason     string
	Body       []byte
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d - %s", e.StatusCode, e.Reason)
}

func statusError(resp *httputil.Response) *StatusError {
	return &StatusError{
		StatusCode: resp.StatusCode,
		Reason:     resp.Reason(),
		Body:       resp.Body,
	}
}
