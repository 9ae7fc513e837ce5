package httpcache

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// StatusError reports a non 200 HTTP response.
type StatusError struct {
	Code   int
	Status string
	URL    string // without query, it may hold an api key
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cannot http GET %v: %v", e.URL, e.Status)
}

// Get performs an HTTP GET request to addr and returns the body of the response.
// Any status other than 200 is returned as a *StatusError.
func Get(ctx context.Context, client *http.Client, addr string, header http.Header) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{
			Code:   resp.StatusCode,
			Status: resp.Status,
			URL:    req.URL.Host + req.URL.Path,
		}
	}
	return io.ReadAll(resp.Body)
}

// GetJSON performs an HTTP GET request to addr and unmarshals the
// JSON response body into data.
func GetJSON(ctx context.Context, client *http.Client, addr string, header http.Header, data any) error {
	body, err := Get(ctx, client, addr, header)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, data); err != nil {
		return fmt.Errorf("cannot decode json response: %w", err)
	}
	return nil
}
