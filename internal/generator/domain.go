package generator

import (
	"fmt"
	"net/netip"
	"strings"
)

// SslipDomain returns the sslip.io wildcard-DNS name that resolves back to
// ip. IPv4 addresses use dash-separated octets ("203.0.113.1" ->
// "203-0-113-1.sslip.io"); IPv6 addresses use dash-joined lowercase hex
// 16-bit groups without zero compression.
func SslipDomain(ip netip.Addr) string {
	if ip.Is4() {
		o := ip.As4()
		return fmt.Sprintf("%d-%d-%d-%d.sslip.io", o[0], o[1], o[2], o[3])
	}
	b := ip.As16()
	groups := make([]string, 8)
	for i := 0; i < 8; i++ {
		groups[i] = fmt.Sprintf("%x", uint16(b[2*i])<<8|uint16(b[2*i+1]))
	}
	return strings.Join(groups, "-") + ".sslip.io"
}

// NipDomain returns the nip.io wildcard-DNS name for ip, using the plain
// dotted form ("203.0.113.1" -> "203.0.113.1.nip.io"). nip.io only supports
// IPv4 this way; callers with IPv6 addresses should prefer SslipDomain.
func NipDomain(ip netip.Addr) string {
	return ip.String() + ".nip.io"
}
