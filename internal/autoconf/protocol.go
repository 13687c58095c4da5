// Package autoconf synthesizes ready-to-run sing-box inbound configurations
// from minimal input. Each protocol has a one-shot fluent builder whose
// setters cannot fail; all validation, generation and public-IP detection
// happen in Build. A MultiProtocolBuilder fans one identity out across
// several protocols at once.
package autoconf

import "strings"

// Protocol identifies one of the supported inbound protocols.
type Protocol int

const (
	AnyTLS Protocol = iota
	Hysteria2
	TUIC
	VLESSReality
)

// String returns the canonical lowercase protocol name.
func (p Protocol) String() string {
	switch p {
	case AnyTLS:
		return "anytls"
	case Hysteria2:
		return "hysteria2"
	case TUIC:
		return "tuic"
	case VLESSReality:
		return "vless-reality"
	default:
		return "unknown"
	}
}

// Tag returns the default inbound tag for the protocol.
func (p Protocol) Tag() string {
	switch p {
	case AnyTLS:
		return "anytls-in"
	case Hysteria2:
		return "hy2-in"
	case TUIC:
		return "tuic-in"
	case VLESSReality:
		return "vless-in"
	default:
		return "unknown-in"
	}
}

// ParseProtocol resolves a protocol name, accepting the common short
// aliases ("hy2", "reality", "vless").
func ParseProtocol(s string) (Protocol, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "anytls":
		return AnyTLS, true
	case "hysteria2", "hy2":
		return Hysteria2, true
	case "tuic":
		return TUIC, true
	case "vless-reality", "vless", "reality":
		return VLESSReality, true
	default:
		return 0, false
	}
}

// DefaultPorts are the ports tried for protocols enabled without an
// explicit port, in order. All are ports HTTPS-adjacent middleboxes leave
// alone.
var DefaultPorts = [...]uint16{443, 2053, 2083, 2096, 8443, 993, 995}

// FallbackPort returns the i-th default port, or 443 when i is out of
// range.
func FallbackPort(i int) uint16 {
	if i < 0 || i >= len(DefaultPorts) {
		return DefaultPorts[0]
	}
	return DefaultPorts[i]
}

// Defaults applied when the caller specifies nothing.
const (
	DefaultListen          = "::"
	DefaultPort     uint16 = 443
	DefaultUserName        = "default"

	// DefaultHandshakeServer is the REALITY camouflage target.
	DefaultHandshakeServer        = "www.microsoft.com"
	DefaultHandshakePort   uint16 = 443
)
