// Package httpcache implements a disk cache for the HTTP GETs made to market-data providers.
//
// Entries are keyed by the request and by the identifier of the current period,
// so the cache expires at the end of each day (or week, month...).
package httpcache

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/etnz/drip/date"
)

// Transport implements a simple disk cache for HTTP responses.
type Transport struct {
	Base   http.RoundTripper // nil is http.DefaultTransport
	Dir    string            // "" is os.TempDir()
	Period date.Period       // zero value is Daily
	Today  func() date.Date  // nil is date.Today
}

// RoundTrip implements the http.RoundTripper interface. It checks for a cached
// response on disk first. If a fresh cached response is not found, it proceeds
// with the actual HTTP request and caches the new response if it's successful.
func (c *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return c.base().RoundTrip(req)
	}
	key := c.Key(req)
	if cached, err := c.get(key, req); err == nil {
		return cached, nil
	}

	resp, err := c.base().RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// Key returns the file name used to cache req.
func (c *Transport) Key(req *http.Request) string {
	today := date.Today
	if c.Today != nil {
		today = c.Today
	}
	rangeID := c.Period.Range(today()).Identifier()
	key := fmt.Sprintf("%s %s %s", rangeID, req.Method, req.URL.String())
	return fmt.Sprintf("drip-%s-%x", c.Period, sha1.Sum([]byte(key)))
}

func (c *Transport) base() http.RoundTripper {
	if c.Base == nil {
		return http.DefaultTransport
	}
	return c.Base
}

func (c *Transport) dir() string {
	if c.Dir == "" {
		return os.TempDir()
	}
	return c.Dir
}

// get retrieves a cached response from disk
func (c *Transport) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(c.dir(), key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

// put stores a response to disk cache. DumpResponse leaves resp.Body readable.
func (c *Transport) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir(), 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir(), key), content, 0o644)
}

// NewClient returns an http.Client whose GETs are cached in dir for the given period.
func NewClient(dir string, period date.Period) *http.Client {
	return &http.Client{Transport: &Transport{Dir: dir, Period: period}}
}
