package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	httputil "github.com/jmylchreest/sitekit/internal/util/http"
)

// VerificationCode is one row of the verification codes table. Fields the
// check does not print are ignored.
type VerificationCode struct {
	CreatedAt string `json:"created_at"`
	Email     string `json:"email"`
	Code      string `json:"code"`
}

// UnmarshalJSON accepts codes stored as either strings or numbers.
func (v *VerificationCode) UnmarshalJSON(data []byte) error {
	var raw struct {
		CreatedAt any `json:"created_at"`
		Email     any `json:"email"`
		Code      any `json:"code"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v.CreatedAt = scalar(raw.CreatedAt)
	v.Email = scalar(raw.Email)
	v.Code = scalar(raw.Code)
	return nil
}

// scalar renders a decoded JSON value for display. Strings are shown
// without quotes; missing values render as "null".
func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		data, _ := json.Marshal(t)
		return string(data)
	}
}

// CodesResult is the outcome of a successful verification code query.
type CodesResult struct {
	StatusCode int
	Codes      []VerificationCode
}

// SupabaseClient queries the database REST API with a service key.
type SupabaseClient struct {
	baseURL string
	key     string
	timeout time.Duration
	logger  hclog.Logger
}

// NewSupabaseClient creates a client for the project at baseURL.
func NewSupabaseClient(baseURL, key string, timeout time.Duration, logger hclog.Logger) (*SupabaseClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("supabase URL is required (set supabase.url or SITEKIT_SUPABASE_URL)")
	}
	if key == "" {
		return nil, fmt.Errorf("supabase key is required (set supabase.key or SITEKIT_SUPABASE_KEY)")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid supabase URL: %w", err)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &SupabaseClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// CodesURL returns the REST URL selecting the newest limit rows of table.
func (c *SupabaseClient) CodesURL(table string, limit int) string {
	return fmt.Sprintf("%s/rest/v1/%s?select=*&order=created_at.desc&limit=%d",
		c.baseURL, url.PathEscape(table), limit)
}

// RecentCodes fetches the newest verification codes.
func (c *SupabaseClient) RecentCodes(ctx context.Context, table string, limit int) (*CodesResult, error) {
	target := c.CodesURL(table, limit)
	c.logger.Debug("querying table", "url", target)

	resp, err := httputil.Do(ctx, httputil.Request{
		Method: http.MethodGet,
		URL:    target,
		Options: httputil.FetchOptions{
			Timeout: c.timeout,
			Headers: map[string]string{
				"apikey":        c.key,
				"Authorization": "Bearer " + c.key,
				"Content-Type":  "application/json",
			},
		},
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, statusError(resp)
	}

	var codes []VerificationCode
	if err := json.Unmarshal(resp.Body, &codes); err != nil {
		return nil, fmt.Errorf("failed to decode rows: %w", err)
	}

	return &CodesResult{
		StatusCode: resp.StatusCode,
		Codes:      codes,
	}, nil
}
