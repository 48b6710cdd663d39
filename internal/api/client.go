// Package api is the HTTP client for the MediDonate service. Every call
// issues exactly one request: there are no retries and no client-side
// timeout, and cancellation only comes from the caller's context.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/medidonate/medidonate/internal/config"
	"github.com/medidonate/medidonate/internal/util"
)

// RequestIDHeader carries a per-request UUIDv7 for log correlation.
const RequestIDHeader = "X-Request-ID"

// Client is a resty-backed MediDonate API client. It is safe for
// concurrent use.
type Client struct {
	http    *resty.Client
	logger  *slog.Logger
	baseURL string
}

// New builds a client from the API configuration. A nil logger uses
// slog.Default.
func New(cfg config.APIConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "api")

	base := strings.TrimSuffix(cfg.BaseURL, "/")

	r := resty.New().
		SetBaseURL(base).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetLogger(restyLogger{logger: logger}).
		SetRetryCount(0)

	if cfg.UserAgent != "" {
		r.SetHeader("User-Agent", cfg.UserAgent)
	}

	r.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if req.Header.Get(RequestIDHeader) == "" {
			req.SetHeader(RequestIDHeader, util.NewID())
		}
		return nil
	})

	r.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug("api response",
			"method", resp.Request.Method,
			"url", resp.Request.URL,
			"status", resp.StatusCode(),
			"duration", resp.Time(),
			"request_id", resp.Request.Header.Get(RequestIDHeader),
		)
		return nil
	})

	r.OnError(func(req *resty.Request, err error) {
		logger.Warn("api request failed",
			"method", req.Method,
			"url", req.URL,
			"request_id", req.Header.Get(RequestIDHeader),
			"error", err,
		)
	})

	return &Client{http: r, logger: logger, baseURL: base}
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// call issues one request and maps the outcome onto the package's error
// types. On success it returns the raw body.
func (c *Client) call(ctx context.Context, op, method, path string, pathParams map[string]string, body any) ([]byte, error) {
	req := c.http.R().SetContext(ctx)

	if len(pathParams) > 0 {
		req.SetPathParams(pathParams)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	if !resp.IsSuccess() {
		return nil, &StatusError{
			Op:         op,
			StatusCode: resp.StatusCode(),
			Message:    errorField(resp.Body()),
		}
	}

	return resp.Body(), nil
}

// errorField extracts {"error": "..."} from a failure body. Bodies that are
// not JSON objects, or whose error is not a string, yield "".
func errorField(body []byte) string {
	var payload struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Error) == 0 {
		return ""
	}

	var msg string
	if err := json.Unmarshal(payload.Error, &msg); err != nil {
		return ""
	}
	return strings.TrimSpace(msg)
}

// decode unmarshals a success body into T. An empty body decodes to the
// zero value.
func decode[T any](op string, body []byte) (T, error) {
	var out T
	if len(bytes.TrimSpace(body)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, &DecodeError{Op: op, Err: err}
	}
	return out, nil
}

// validator is implemented by decoded entities that check their own
// invariants.
type validator interface {
	Validate() error
}

func validateAll[T any, P interface {
	*T
	validator
}](op string, items []T) error {
	for i := range items {
		if err := P(&items[i]).Validate(); err != nil {
			return &DecodeError{Op: op, Err: fmt.Errorf("item %d: %w", i, err)}
		}
	}
	return nil
}
