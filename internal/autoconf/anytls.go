package autoconf

import (
	"context"
	"fmt"
	"net/netip"

	"ezsingbox/internal/generator"
	"ezsingbox/internal/singbox"
)

// AnyTLSBuilder assembles an AnyTLS inbound. Setters never fail; Build
// validates, generates missing material and returns an immutable result.
// A builder is one-shot: discard it after Build.
type AnyTLSBuilder struct {
	port     uint16
	listen   string
	publicIP netip.Addr
	users    []userSpec
	tls      TLSMode
	tag      string
	padding  bool
	done     bool
}

// NewAnyTLS returns a builder with ACME TLS and the default padding scheme.
func NewAnyTLS() *AnyTLSBuilder {
	return &AnyTLSBuilder{padding: true}
}

// Port sets the listening port (default 443).
func (b *AnyTLSBuilder) Port(p uint16) *AnyTLSBuilder { b.port = p; return b }

// Listen sets the listen address (default "::").
func (b *AnyTLSBuilder) Listen(addr string) *AnyTLSBuilder { b.listen = addr; return b }

// PublicIP sets the address clients connect to and ACME domains derive
// from.
func (b *AnyTLSBuilder) PublicIP(ip netip.Addr) *AnyTLSBuilder { b.publicIP = ip; return b }

// AutoDetectIP probes the public echo services and stores the result as the
// builder's public IP.
func (b *AnyTLSBuilder) AutoDetectIP(ctx context.Context) error {
	ip, err := generator.DetectPublicIP(ctx)
	if err != nil {
		return fmt.Errorf("detect public ip: %w", err)
	}
	b.publicIP = ip
	return nil
}

// AddUser adds a user whose password is generated at Build.
func (b *AnyTLSBuilder) AddUser(name string) *AnyTLSBuilder {
	b.users = append(b.users, userSpec{name: name})
	return b
}

// AddUserWithPassword adds a user with a fixed password.
func (b *AnyTLSBuilder) AddUserWithPassword(name, password string) *AnyTLSBuilder {
	b.users = append(b.users, userSpec{name: name, password: password})
	return b
}

// Tag overrides the inbound tag (default "anytls-in").
func (b *AnyTLSBuilder) Tag(tag string) *AnyTLSBuilder { b.tag = tag; return b }

// TLS sets the TLS mode wholesale.
func (b *AnyTLSBuilder) TLS(mode TLSMode) *AnyTLSBuilder { b.tls = mode; return b }

// ACMEDomain switches to ACME for an explicit domain.
func (b *AnyTLSBuilder) ACMEDomain(domain string) *AnyTLSBuilder {
	return b.TLS(TLSACMEDomain(domain))
}

// ACMEDomainEmail switches to ACME for an explicit domain with a contact
// email.
func (b *AnyTLSBuilder) ACMEDomainEmail(domain, email string) *AnyTLSBuilder {
	return b.TLS(TLSACMEDomainEmail(domain, email))
}

// CustomTLS switches to an on-disk certificate.
func (b *AnyTLSBuilder) CustomTLS(certPath, keyPath string) *AnyTLSBuilder {
	return b.TLS(TLSCustom(certPath, keyPath))
}

// DisableTLS turns TLS off entirely.
func (b *AnyTLSBuilder) DisableTLS() *AnyTLSBuilder { return b.TLS(TLSOff()) }

// NoPadding drops the default padding scheme.
func (b *AnyTLSBuilder) NoPadding() *AnyTLSBuilder { b.padding = false; return b }

// AnyTLSResult is the outcome of a successful AnyTLS build.
type AnyTLSResult struct {
	Info       Info
	Inbound    *singbox.AnyTLSInbound
	Connection ConnectionInfo
}

// Build validates the accumulated state and produces the inbound. On error
// nothing was generated and the result is nil.
func (b *AnyTLSBuilder) Build() (*AnyTLSResult, error) {
	if b.done {
		return nil, ErrBuilderConsumed
	}
	b.done = true

	tls, domain, err := b.tls.resolve(AnyTLS, b.publicIP)
	if err != nil {
		return nil, err
	}

	port := b.port
	if port == 0 {
		port = DefaultPort
	}
	listen := b.listen
	if listen == "" {
		listen = DefaultListen
	}
	tag := b.tag
	if tag == "" {
		tag = AnyTLS.Tag()
	}

	users := materializeUsers(b.users, false)

	inbound := singbox.NewAnyTLSInbound(tag)
	inbound.Listen = listen
	inbound.ListenPort = port
	inbound.TLS = tls
	for _, u := range users {
		inbound.Users = append(inbound.Users, singbox.User{Name: u.Name, Password: u.Password})
	}
	if b.padding {
		inbound.PaddingScheme = singbox.DefaultPaddingScheme()
	}

	return &AnyTLSResult{
		Info: Info{
			PublicIP: b.publicIP,
			Domain:   domain,
			Port:     port,
			Users:    users,
		},
		Inbound:    inbound,
		Connection: connectionInfo(b.publicIP, domain, listen, port),
	}, nil
}
