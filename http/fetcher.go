// Package http provides a session-aware HTTP implementation of
// cardscan.Fetcher with request pacing and browser-like headers.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/awalczak/cardscan"
	"golang.org/x/time/rate"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultRequestsPerSecond paces outgoing requests.
const DefaultRequestsPerSecond = 1

// defaultUserAgents rotate every few requests to vary the session
// fingerprint.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
}

// Ensure Fetcher implements cardscan.Fetcher at compile time.
var _ cardscan.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML over plain HTTP. It maintains light session
// state: a rate limiter, a rotating User-Agent, and a Referer taken from
// the previously fetched URL.
type Fetcher struct {
	client     *http.Client
	limiter    *rate.Limiter
	timeout    time.Duration
	userAgents []string

	mu       sync.Mutex
	requests int
	uaIndex  int
	lastURL  string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRequestsPerSecond sets the request pacing rate.
func WithRequestsPerSecond(rps float64) Option {
	return func(f *Fetcher) {
		f.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithUserAgents replaces the rotating User-Agent list.
func WithUserAgents(agents []string) Option {
	return func(f *Fetcher) {
		if len(agents) > 0 {
			f.userAgents = agents
		}
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:    DefaultFetchTimeout,
		limiter:    rate.NewLimiter(DefaultRequestsPerSecond, 1),
		userAgents: defaultUserAgents,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL, pacing requests
// through the rate limiter.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	f.setHeaders(req, url)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// setHeaders applies browser-like headers, rotating the User-Agent every
// third request and carrying the previous URL as Referer.
func (f *Fetcher) setHeaders(req *http.Request, url string) {
	f.mu.Lock()
	if f.requests > 0 && f.requests%3 == 0 {
		f.uaIndex = (f.uaIndex + 1) % len(f.userAgents)
	}
	ua := f.userAgents[f.uaIndex]
	referer := f.lastURL
	f.requests++
	f.lastURL = url
	f.mu.Unlock()

	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
