package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// IPExtractor returns the client IP of a request.
type IPExtractor interface {
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor uses the address of the TCP peer.
type RemoteAddrExtractor struct{}

func (RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	return extractIPFromAddr(r.RemoteAddr)
}

// TrustedProxyExtractor reads X-Forwarded-For, then X-Real-IP, but only when
// the TCP peer is one of the trusted proxies. Other peers are identified by
// their own address so clients cannot rotate their identity with headers.
type TrustedProxyExtractor struct {
	proxies []netip.Prefix
}

// ParseTrustedProxies accepts IPs and CIDR ranges. A bare IP is a /32 or /128.
func ParseTrustedProxies(entries []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if p, err := netip.ParsePrefix(e); err == nil {
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(e)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: want an IP or CIDR", e)
		}
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

func NewTrustedProxyExtractor(proxies []netip.Prefix) *TrustedProxyExtractor {
	return &TrustedProxyExtractor{proxies: proxies}
}

// NewIPExtractor returns a TrustedProxyExtractor when proxies are configured
// and a RemoteAddrExtractor otherwise.
func NewIPExtractor(trusted []string) (IPExtractor, error) {
	proxies, err := ParseTrustedProxies(trusted)
	if err != nil {
		return nil, err
	}
	if len(proxies) == 0 {
		return RemoteAddrExtractor{}, nil
	}
	return NewTrustedProxyExtractor(proxies), nil
}

func (e *TrustedProxyExtractor) ExtractIP(r *http.Request) (string, error) {
	peer, err := extractIPFromAddr(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	if !e.trusted(peer) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			slog.Warn("untrusted peer sent X-Forwarded-For",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_forwarded_for", xff))
		}
		return peer, nil
	}

	if ip := parseFirstIP(r.Header.Get("X-Forwarded-For")); ip != "" {
		return ip, nil
	}
	if ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); ip != nil {
		return ip.String(), nil
	}
	return peer, nil
}

func (e *TrustedProxyExtractor) trusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range e.proxies {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// extractIPFromAddr strips the port from "host:port". A bare IP is returned as is.
func extractIPFromAddr(addr string) (string, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		if ip := net.ParseIP(strings.Trim(addr, "[]")); ip != nil {
			return ip.String(), nil
		}
		return "", fmt.Errorf("invalid address format: %s", addr)
	}
	return host, nil
}

// parseFirstIP returns the first entry of an X-Forwarded-For list, or "" if
// it is not an IP.
func parseFirstIP(s string) string {
	first, _, _ := strings.Cut(s, ",")
	if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
		return ip.String()
	}
	return ""
}
