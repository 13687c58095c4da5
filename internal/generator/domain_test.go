package generator

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSslipDomainIPv4(t *testing.T) {
	ip := netip.MustParseAddr("203.0.113.1")
	assert.Equal(t, "203-0-113-1.sslip.io", SslipDomain(ip))
}

func TestSslipDomainIPv6(t *testing.T) {
	ip := netip.MustParseAddr("2001:db8::1")
	assert.Equal(t, "2001-db8-0-0-0-0-0-1.sslip.io", SslipDomain(ip))
}

func TestNipDomain(t *testing.T) {
	ip := netip.MustParseAddr("198.51.100.7")
	assert.Equal(t, "198.51.100.7.nip.io", NipDomain(ip))
}
