package httpapi

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

const unknownCountry = "ZZ"

var (
	clientIPHeaders      = []string{"Fly-Client-IP", "X-Forwarded-For", "X-Real-IP"}
	clientCountryHeaders = []string{"Fly-Client-Country", "CF-IPCountry", "X-Vercel-IP-Country", "CloudFront-Viewer-Country"}
)

// clientInfo is what the edge proxy tells us about the caller. Only used for
// request logs.
type clientInfo struct {
	IP      string
	Country string
}

func requestClient(r *http.Request) clientInfo {
	info := clientInfo{Country: unknownCountry}
	for _, header := range clientIPHeaders {
		if addr, ok := parseClientAddr(r.Header.Get(header)); ok {
			info.IP = addr.String()
			break
		}
	}
	if info.IP == "" {
		if addr, ok := parseClientAddr(r.RemoteAddr); ok {
			info.IP = addr.String()
		}
	}
	for _, header := range clientCountryHeaders {
		if code, ok := parseCountry(r.Header.Get(header)); ok {
			info.Country = code
			break
		}
	}
	return info
}

// parseClientAddr takes the first hop of a forwarded chain and drops any port.
func parseClientAddr(raw string) (netip.Addr, bool) {
	value, _, _ := strings.Cut(raw, ",")
	value = strings.TrimSpace(value)
	if value == "" {
		return netip.Addr{}, false
	}
	if host, _, err := net.SplitHostPort(value); err == nil {
		value = host
	}
	addr, err := netip.ParseAddr(value)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}

func parseCountry(raw string) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != 2 || code[0] < 'A' || code[0] > 'Z' || code[1] < 'A' || code[1] > 'Z' {
		return "", false
	}
	return code, true
}
