package autoconf

import (
	"net/netip"

	"ezsingbox/internal/generator"
	"ezsingbox/internal/singbox"
)

type tlsKind int

const (
	tlsACME tlsKind = iota
	tlsCustom
	tlsDisabled
)

// TLSMode describes how an inbound obtains its certificate. The zero value
// is ACME with everything derived.
type TLSMode struct {
	kind       tlsKind
	domain     string
	email      string
	certPath   string
	keyPath    string
	serverName string
}

// TLSAuto is ACME with the domain derived from the public IP.
func TLSAuto() TLSMode { return TLSMode{} }

// TLSACMEDomain is ACME for an explicit domain.
func TLSACMEDomain(domain string) TLSMode {
	return TLSMode{kind: tlsACME, domain: domain}
}

// TLSACMEDomainEmail is ACME for an explicit domain with a contact email.
func TLSACMEDomainEmail(domain, email string) TLSMode {
	return TLSMode{kind: tlsACME, domain: domain, email: email}
}

// TLSCustom uses an existing certificate and key on disk.
func TLSCustom(certPath, keyPath string) TLSMode {
	return TLSMode{kind: tlsCustom, certPath: certPath, keyPath: keyPath}
}

// TLSCustomServerName is TLSCustom with an explicit SNI.
func TLSCustomServerName(certPath, keyPath, serverName string) TLSMode {
	return TLSMode{kind: tlsCustom, certPath: certPath, keyPath: keyPath, serverName: serverName}
}

// TLSOff disables TLS. Protocols that require TLS reject it at Build.
func TLSOff() TLSMode { return TLSMode{kind: tlsDisabled} }

// resolve turns the mode into an inbound TLS block and the domain clients
// should connect with. For ACME without an explicit domain a wildcard-DNS
// name is derived from ip; with neither the build cannot proceed.
func (m TLSMode) resolve(p Protocol, ip netip.Addr) (*singbox.InboundTLS, string, error) {
	switch m.kind {
	case tlsDisabled:
		if p == Hysteria2 || p == TUIC {
			return nil, "", invalidConfig(p, "%s must enable TLS", p)
		}
		return nil, "", nil
	case tlsCustom:
		return &singbox.InboundTLS{
			Enabled:         true,
			ServerName:      m.serverName,
			CertificatePath: m.certPath,
			KeyPath:         m.keyPath,
		}, m.serverName, nil
	default:
		domain := m.domain
		if domain == "" {
			if !ip.IsValid() {
				return nil, "", missingConfig(p, "ACME needs a domain or a public IP to derive one")
			}
			domain = generator.SslipDomain(ip)
		}
		return &singbox.InboundTLS{
			Enabled:    true,
			ServerName: domain,
			ACME: &singbox.ACME{
				Domain: []string{domain},
				Email:  m.email,
			},
		}, domain, nil
	}
}
