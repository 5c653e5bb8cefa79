package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-hclog"

	httputil "github.com/jmylchreest/sitekit/internal/util/http"
)

// OTPOutcome classifies the endpoint's JSON reply.
type OTPOutcome int

const (
	// OTPNotJSON means the body could not be parsed as JSON.
	OTPNotJSON OTPOutcome = iota
	// OTPSuccess means the body had "success": true.
	OTPSuccess
	// OTPFailure means the body was JSON without a true "success".
	OTPFailure
)

// OTPResult is the outcome of a request that received a 2xx response.
type OTPResult struct {
	StatusCode int
	Body       string
	Outcome    OTPOutcome
	// Error holds the endpoint's "error" field for OTPFailure.
	Error string
}

// OTPClient posts verification requests to the serverless OTP endpoint.
type OTPClient struct {
	url     string
	timeout time.Duration
	logger  hclog.Logger
}

// NewOTPClient creates a client for the endpoint at endpoint.
func NewOTPClient(endpoint string, timeout time.Duration, logger hclog.Logger) (*OTPClient, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("OTP URL is required (set otp.url or SITEKIT_OTP_URL)")
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("invalid OTP URL: %w", err)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &OTPClient{url: endpoint, timeout: timeout, logger: logger}, nil
}

// URL returns the endpoint URL.
func (c *OTPClient) URL() string {
	return c.url
}

// RequestCode asks the endpoint to send a verification code to email.
// Redirects are followed, so the reply may come from a different host.
func (c *OTPClient) RequestCode(ctx context.Context, email string) (*OTPResult, error) {
	payload, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	c.logger.Debug("posting OTP request", "url", c.url, "email", email)
	resp, err := httputil.Do(ctx, httputil.Request{
		Method: http.MethodPost,
		URL:    c.url,
		Body:   payload,
		Options: httputil.FetchOptions{
			Timeout: c.timeout,
			Headers: map[string]string{"Content-Type": "application/json"},
		},
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, statusError(resp)
	}

	return classify(resp.StatusCode, resp.Body), nil
}

func classify(status int, body []byte) *OTPResult {
	result := &OTPResult{StatusCode: status, Body: string(body)}

	var reply map[string]any
	if err := json.Unmarshal(body, &reply); err != nil || reply == nil {
		result.Outcome = OTPNotJSON
		return result
	}
	if truthy(reply["success"]) {
		result.Outcome = OTPSuccess
		return result
	}
	result.Outcome = OTPFailure
	result.Error = scalar(reply["error"])
	return result
}

// truthy treats false, zero, empty and null values as false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
