package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"strings"
	"time"
)

// DefaultProbeTimeout bounds each individual echo-service request.
const DefaultProbeTimeout = 5 * time.Second

// maxIPBody caps how much of an echo response is read. A well-behaved
// service answers with a bare address; anything larger is garbage.
const maxIPBody = 256

// ipServices are tried strictly in order; the first parseable answer wins.
var ipServices = []string{
	"https://api.ipify.org",
	"https://ifconfig.me/ip",
	"https://icanhazip.com",
	"https://ip.sslip.io",
	"https://api.ip.sb/ip",
}

// ErrAllServicesFailed reports that every echo service either failed at the
// transport level or returned an unparseable body.
var ErrAllServicesFailed = errors.New("all public IP detection services failed")

// IPErrorKind classifies a single echo-service failure.
type IPErrorKind int

const (
	// IPErrorNetwork is a transport-level failure (dial, TLS, timeout,
	// non-2xx status).
	IPErrorNetwork IPErrorKind = iota
	// IPErrorParse means the service answered but the body was not an IP
	// address.
	IPErrorParse
)

// IPServiceError describes why one particular echo service was skipped.
type IPServiceError struct {
	Kind    IPErrorKind
	Service string
	Err     error
}

func (e *IPServiceError) Error() string {
	switch e.Kind {
	case IPErrorParse:
		return fmt.Sprintf("parse response from %s: %v", e.Service, e.Err)
	default:
		return fmt.Sprintf("request %s: %v", e.Service, e.Err)
	}
}

func (e *IPServiceError) Unwrap() error { return e.Err }

// DetectPublicIP probes the echo services sequentially with
// DefaultProbeTimeout per request and returns the first address obtained.
// A failing service is skipped, never retried. When no service yields an
// address the returned error wraps ErrAllServicesFailed.
func DetectPublicIP(ctx context.Context) (netip.Addr, error) {
	return DetectPublicIPTimeout(ctx, DefaultProbeTimeout)
}

// DetectPublicIPTimeout is DetectPublicIP with an explicit per-request
// timeout.
func DetectPublicIPTimeout(ctx context.Context, timeout time.Duration) (netip.Addr, error) {
	client := &http.Client{Timeout: timeout}
	var lastErr error
	for _, service := range ipServices {
		ip, err := probeService(ctx, client, service)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}
		return ip, nil
	}
	return netip.Addr{}, fmt.Errorf("%w (last: %v)", ErrAllServicesFailed, lastErr)
}

func probeService(ctx context.Context, client *http.Client, service string) (netip.Addr, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, service, nil)
	if err != nil {
		return netip.Addr{}, &IPServiceError{Kind: IPErrorNetwork, Service: service, Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return netip.Addr{}, &IPServiceError{Kind: IPErrorNetwork, Service: service, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return netip.Addr{}, &IPServiceError{
			Kind:    IPErrorNetwork,
			Service: service,
			Err:     fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxIPBody))
	if err != nil {
		return netip.Addr{}, &IPServiceError{Kind: IPErrorNetwork, Service: service, Err: err}
	}

	ip, err := netip.ParseAddr(strings.TrimSpace(string(body)))
	if err != nil {
		return netip.Addr{}, &IPServiceError{Kind: IPErrorParse, Service: service, Err: err}
	}
	return ip, nil
}
