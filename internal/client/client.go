// Package client talks to the locker rental API over HTTP and maps its
// error envelopes back onto the apperrors sentinels.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yigit/lockersys/internal/app/models/dto"
	"github.com/yigit/lockersys/internal/pkg/apperrors"
)

const apiPrefix = "/api/v1"

// TokenSource supplies the bearer token attached to each request
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource that always returns the same token
type StaticToken string

// Token returns the token itself
func (t StaticToken) Token() string { return string(t) }

// Client is an HTTP client for the locker rental API
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenSource sets where bearer tokens come from
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// New creates a client for the API served at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    json.RawMessage  `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

// do sends one request and decodes the envelope data into out, when out is not nil
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	target := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		return fmt.Errorf("%w: %s %s: %w", apperrors.ErrServiceFailure, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %w", apperrors.ErrServiceFailure, err)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			if resp.StatusCode >= http.StatusBadRequest {
				return statusError(resp.StatusCode, nil)
			}
			return fmt.Errorf("%w: malformed response: %w", apperrors.ErrServiceFailure, err)
		}
	}

	if resp.StatusCode >= http.StatusBadRequest || (len(raw) > 0 && !env.Success) {
		return statusError(resp.StatusCode, env.Error)
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: malformed response data: %w", apperrors.ErrServiceFailure, err)
	}
	return nil
}

var codeErrors = map[dto.ErrorCode]error{
	dto.ErrorCodeInvalidCredentials: apperrors.ErrInvalidCredentials,
	dto.ErrorCodeInvalidToken:       apperrors.ErrTokenInvalid,
	dto.ErrorCodeExpiredToken:       apperrors.ErrTokenExpired,
	dto.ErrorCodeRevokedToken:       apperrors.ErrTokenRevoked,
	dto.ErrorCodeUnauthorized:       apperrors.ErrUnauthenticated,
	dto.ErrorCodeForbidden:          apperrors.ErrForbidden,
	dto.ErrorCodeResourceNotFound:   apperrors.ErrResourceNotFound,
	dto.ErrorCodeConflict:           apperrors.ErrConflict,
	dto.ErrorCodeValidationFailed:   apperrors.ErrValidationFailed,
	dto.ErrorCodeInternalServer:     apperrors.ErrServiceFailure,
	dto.ErrorCodeDatabaseError:      apperrors.ErrServiceFailure,
}

// statusError rebuilds a classified error from a failed response
func statusError(status int, detail *dto.ErrorDetail) error {
	sentinel := sentinelForStatus(status)
	message := http.StatusText(status)
	if detail != nil {
		if e, ok := codeErrors[detail.Code]; ok {
			sentinel = e
		}
		if detail.Message != "" {
			message = detail.Message
		}
	}
	return apperrors.NewCustomError(sentinel, message).WithCode(strconv.Itoa(status))
}

func sentinelForStatus(status int) error {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.ErrValidationFailed
	case http.StatusUnauthorized:
		return apperrors.ErrUnauthenticated
	case http.StatusForbidden:
		return apperrors.ErrForbidden
	case http.StatusNotFound:
		return apperrors.ErrResourceNotFound
	case http.StatusConflict:
		return apperrors.ErrConflict
	default:
		return apperrors.ErrServiceFailure
	}
}
