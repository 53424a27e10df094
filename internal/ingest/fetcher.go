package ingest

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// HTTPFetcher fetches documents with per-domain rate limiting and retries.
// Private and loopback destinations are refused so a malicious notice link
// cannot be used to probe the internal network.
type HTTPFetcher struct {
	config FetchConfig
	client *http.Client

	mu     sync.Mutex
	nextAt map[string]time.Time
}

func NewHTTPFetcher(config FetchConfig) *HTTPFetcher {
	if config.TimeoutSeconds == 0 {
		config.TimeoutSeconds = 30
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}
	if config.RateLimitRPS == 0 {
		config.RateLimitRPS = 1.0
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           safeDialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &HTTPFetcher{
		config: config,
		client: &http.Client{
			Timeout:       time.Duration(config.TimeoutSeconds) * time.Second,
			Transport:     transport,
			CheckRedirect: safeCheckRedirect,
		},
		nextAt: make(map[string]time.Time),
	}
}

// waitForDomain spaces requests to one host at the configured rate. Each
// caller claims the host's next free slot under the lock and sleeps until it;
// the first request to a host goes out immediately.
func (f *HTTPFetcher) waitForDomain(rawURL string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return
	}

	interval := time.Duration(float64(time.Second) / f.config.RateLimitRPS)
	if interval <= 0 {
		interval = time.Second
	}

	f.mu.Lock()
	now := time.Now()
	slot := f.nextAt[u.Host]
	if slot.Before(now) {
		slot = now
	}
	f.nextAt[u.Host] = slot.Add(interval)
	f.mu.Unlock()

	time.Sleep(time.Until(slot))
}

// Fetch implements the Fetcher interface with retries and backoff.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*FetchedDocument, error) {
	f.waitForDomain(rawURL)

	var lastErr error
	for attempt := 0; attempt <= f.config.MaxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 0.5s, 1s, 2s + jitter
			backoff := time.Duration(500*(1<<uint(attempt-1))) * time.Millisecond
			jitter := time.Duration(rand.Intn(100)) * time.Millisecond
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff + jitter):
			}
		}

		req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,application/json;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.5")

		resp, err := f.client.Do(req)
		if err != nil {
			lastErr = err
			if shouldRetry(err, 0) {
				continue
			}
			return nil, fmt.Errorf("failed to execute request: %w", err)
		}

		if resp.StatusCode == http.StatusOK {
			return &FetchedDocument{
				URL:         rawURL,
				StatusCode:  resp.StatusCode,
				ContentType: resp.Header.Get("Content-Type"),
				Body:        resp.Body,
				FetchedAt:   time.Now(),
				Headers:     resp.Header,
			}, nil
		}

		resp.Body.Close()
		if shouldRetry(nil, resp.StatusCode) {
			lastErr = fmt.Errorf("status code %d", resp.StatusCode)
			continue
		}
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func shouldRetry(err error, statusCode int) bool {
	if err != nil {
		if netErr, ok := err.(interface{ Timeout() bool }); ok && netErr.Timeout() {
			return true
		}
		return false
	}

	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// safeDialContext wraps the default dialer to block private IPs.
func safeDialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	d := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}

	ips, err := net.LookupIP(host)
	if err != nil {
		return nil, err
	}
	for _, ip := range ips {
		if isPrivateIP(ip) {
			return nil, fmt.Errorf("blocked private IP: %s", ip)
		}
	}

	return d.DialContext(ctx, network, addr)
}

func isPrivateIP(ip net.IP) bool {
	if ip == nil {
		return true
	}
	return ip.IsLoopback() || ip.IsLinkLocalMulticast() || ip.IsLinkLocalUnicast() ||
		ip.IsMulticast() || ip.IsPrivate() || ip.IsUnspecified()
}

// safeCheckRedirect limits redirects and validates destinations.
func safeCheckRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= 10 {
		return fmt.Errorf("stopped after 10 redirects")
	}
	if req.URL == nil || (req.URL.Scheme != "http" && req.URL.Scheme != "https") {
		return fmt.Errorf("redirect scheme blocked")
	}

	host := req.URL.Hostname()
	if host == "" {
		return fmt.Errorf("redirect host missing")
	}
	if strings.EqualFold(host, "localhost") || strings.HasSuffix(strings.ToLower(host), ".local") {
		return fmt.Errorf("redirect to internal host blocked")
	}

	ips, err := net.LookupIP(host)
	if err != nil {
		return err
	}
	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("redirect to private IP blocked: %s", ip)
		}
	}

	return nil
}

func extractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}
