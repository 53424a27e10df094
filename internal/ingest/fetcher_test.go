package ingest

import (
	"net"
	"testing"
	"time"
)

func TestWaitForDomainSpacing(t *testing.T) {
	f := NewHTTPFetcher(FetchConfig{RateLimitRPS: 50}) // 20ms interval

	start := time.Now()
	f.waitForDomain("https://example.com/a")
	if d := time.Since(start); d > 15*time.Millisecond {
		t.Fatalf("first request to a host should not wait, waited %v", d)
	}

	f.waitForDomain("https://example.com/b")
	f.waitForDomain("https://example.com/c")
	if d := time.Since(start); d < 35*time.Millisecond {
		t.Fatalf("three requests finished in %v, want at least two intervals", d)
	}
}

func TestWaitForDomainSeparateHosts(t *testing.T) {
	f := NewHTTPFetcher(FetchConfig{RateLimitRPS: 2}) // 500ms interval

	start := time.Now()
	f.waitForDomain("https://a.example.com/")
	f.waitForDomain("https://b.example.com/")
	if d := time.Since(start); d > 100*time.Millisecond {
		t.Fatalf("different hosts should not share a rate limit, waited %v", d)
	}
}

func TestIsPrivateIP(t *testing.T) {
	private := []string{"127.0.0.1", "10.0.0.5", "192.168.1.1", "169.254.0.1", "0.0.0.0", "::1"}
	for _, s := range private {
		if !isPrivateIP(net.ParseIP(s)) {
			t.Errorf("isPrivateIP(%s) = false, want true", s)
		}
	}
	public := []string{"8.8.8.8", "93.184.216.34", "2606:2800:220:1:248:1893:25c8:1946"}
	for _, s := range public {
		if isPrivateIP(net.ParseIP(s)) {
			t.Errorf("isPrivateIP(%s) = true, want false", s)
		}
	}
}
