package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RequestTimeout bounds every call made through Client. On expiry the
// in-flight request is aborted and the failure is normalized to ErrTimeout.
const RequestTimeout = 30 * time.Second

// Client is a thin wrapper over net/http that talks to the MedXScan backend.
// It is the only layer allowed to return transport errors; everything above
// converts failures into envelopes or explicit return values. No call is
// ever retried.
type Client struct {
	baseURL string
	hc      *http.Client
	timeout time.Duration
}

// New creates a Client targeting the given backend base URL.
func New(baseURL string) *Client {
	return NewWithTimeout(baseURL, RequestTimeout)
}

// NewWithTimeout is New with an explicit per-request timeout. Tests use it
// to exercise the timeout path without waiting 30 seconds.
func NewWithTimeout(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{},
		timeout: timeout,
	}
}

// FileURL resolves a server-relative path into an absolute fetchable URL.
// Already-absolute URLs pass through unchanged.
func (c *Client) FileURL(path string) string {
	if strings.HasPrefix(path, "http") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// Get issues a GET for path and decodes the response envelope.
func Get[T any](ctx context.Context, c *Client, path string) (*Response[T], error) {
	return do[T](ctx, c, http.MethodGet, path, nil, "")
}

// Post issues a POST with a JSON body and decodes the response envelope.
func Post[T any](ctx context.Context, c *Client, path string, body any) (*Response[T], error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	return do[T](ctx, c, http.MethodPost, path, bytes.NewReader(b), "application/json")
}

// Upload issues a POST with a prebuilt multipart body and decodes the
// response envelope. contentType must be the multipart writer's
// FormDataContentType.
func Upload[T any](ctx context.Context, c *Client, path string, form io.Reader, contentType string) (*Response[T], error) {
	return do[T](ctx, c, http.MethodPost, path, form, contentType)
}

func do[T any](ctx context.Context, c *Client, method, path string, body io.Reader, contentType string) (*Response[T], error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, normalizeTransportError(err)
	}
	defer resp.Body.Close()

	var env Response[T]
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Error
		if decodeErr != nil || msg == "" {
			msg = genericStatusMessage(resp.StatusCode)
		}
		return nil, &StatusError{Status: resp.StatusCode, Message: msg}
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("decoding response: %w", decodeErr)
	}
	return &env, nil
}

// normalizeTransportError maps a deadline expiry to ErrTimeout and every
// other transport failure to a wrapped ErrUnavailable.
func normalizeTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// fetch issues a plain GET (no envelope decoding) against an absolute URL.
// The facade uses it for file downloads resolved via FileURL.
func (c *Client) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		cancel()
		return nil, normalizeTransportError(err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, &StatusError{Status: resp.StatusCode, Message: genericStatusMessage(resp.StatusCode)}
	}

	return &cancelReadCloser{rc: resp.Body, cancel: cancel}, nil
}

// cancelReadCloser releases the request context together with the body, so
// the download itself stays bounded by the client timeout.
type cancelReadCloser struct {
	rc     io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelReadCloser) Read(p []byte) (int, error) { return c.rc.Read(p) }

func (c *cancelReadCloser) Close() error {
	c.cancel()
	return c.rc.Close()
}
