package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/alexzk1/ed-fc-companion/pkg/version"
)

// Remote errors.
var (
	ErrNotFound  = errors.New("remote: not found")
	ErrEmptyName = errors.New("remote: empty name")
)

// maxErrorBody limits how much of an error response is kept in the error.
const maxErrorBody = 512

// NewHTTPClient returns the client used for remote calls. timeout is the
// only deadline a lookup gets besides the caller's context.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// userAgent identifies edfc to the services.
func userAgent() string {
	return "edfc/" + version.GetVersion()
}

// getJSON issues a GET for base+path?query with headers and decodes the
// JSON body into out.
func getJSON(
	ctx context.Context,
	client *http.Client,
	base, path string,
	query url.Values,
	headers map[string]string,
	out any,
) error {
	u, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("parsing base url %q: %w", base, err)
	}
	u = u.JoinPath(path)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent())
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("request %s failed with status %d: %s", u.Redacted(), resp.StatusCode, string(body))
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", u.Redacted(), err)
	}
	return nil
}
