package solr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const maxErrorBodyBytes = 8 * 1024

// httpError preserves the status code of a failed request so callers can
// branch on it (the schema API reports absence as 404).
type httpError struct {
	status int
	url    string
	body   string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("http %d for %s: %s", e.status, e.url, e.body)
}

func isHTTPStatus(err error, status int) bool {
	var he *httpError
	return errors.As(err, &he) && he.status == status
}

func newHTTPError(status int, url string, body io.Reader) *httpError {
	detail, _ := io.ReadAll(io.LimitReader(body, maxErrorBodyBytes))
	return &httpError{status: status, url: url, body: string(bytes.TrimSpace(detail))}
}

// getJSON fetches a URL and optionally decodes the response JSON into `out`.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return newHTTPError(resp.StatusCode, url, resp.Body)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	return nil
}

// postJSON sends an HTTP POST request to a Solr handler. It marshals the
// given body as JSON, handles HTTP error codes, and optionally decodes the
// response JSON into `out`.
func (c *Client) postJSON(ctx context.Context, url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return newHTTPError(resp.StatusCode, url, resp.Body)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	return nil
}
