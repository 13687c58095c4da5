package autoconf

import (
	"context"
	"fmt"
	"net/netip"

	"ezsingbox/internal/generator"
	"ezsingbox/internal/singbox"
)

// TUICBuilder assembles a TUIC inbound. Every user authenticates with a
// UUID and a password; missing credentials are generated. TLS cannot be
// disabled.
type TUICBuilder struct {
	port        uint16
	listen      string
	publicIP    netip.Addr
	users       []userSpec
	tls         TLSMode
	tag         string
	congestion  singbox.CongestionControl
	authTimeout *singbox.Duration
	heartbeat   *singbox.Duration
	zeroRTT     bool
	done        bool
}

// NewTUIC returns a builder with ACME TLS and cubic congestion control.
func NewTUIC() *TUICBuilder {
	return &TUICBuilder{congestion: singbox.CongestionCubic}
}

// Port sets the listening port (default 443).
func (b *TUICBuilder) Port(p uint16) *TUICBuilder { b.port = p; return b }

// Listen sets the listen address (default "::").
func (b *TUICBuilder) Listen(addr string) *TUICBuilder { b.listen = addr; return b }

// PublicIP sets the address clients connect to and ACME domains derive
// from.
func (b *TUICBuilder) PublicIP(ip netip.Addr) *TUICBuilder { b.publicIP = ip; return b }

// AutoDetectIP probes the public echo services and stores the result as the
// builder's public IP.
func (b *TUICBuilder) AutoDetectIP(ctx context.Context) error {
	ip, err := generator.DetectPublicIP(ctx)
	if err != nil {
		return fmt.Errorf("detect public ip: %w", err)
	}
	b.publicIP = ip
	return nil
}

// AddUser adds a user whose UUID and password are generated at Build.
func (b *TUICBuilder) AddUser(name string) *TUICBuilder {
	b.users = append(b.users, userSpec{name: name})
	return b
}

// AddUserWithUUID adds a user with a fixed UUID and a generated password.
func (b *TUICBuilder) AddUserWithUUID(name, uuid string) *TUICBuilder {
	b.users = append(b.users, userSpec{name: name, uuid: uuid})
	return b
}

// AddUserWithCredentials adds a fully specified user.
func (b *TUICBuilder) AddUserWithCredentials(name, uuid, password string) *TUICBuilder {
	b.users = append(b.users, userSpec{name: name, uuid: uuid, password: password})
	return b
}

// Tag overrides the inbound tag (default "tuic-in").
func (b *TUICBuilder) Tag(tag string) *TUICBuilder { b.tag = tag; return b }

// TLS sets the TLS mode wholesale.
func (b *TUICBuilder) TLS(mode TLSMode) *TUICBuilder { b.tls = mode; return b }

// ACMEDomain switches to ACME for an explicit domain.
func (b *TUICBuilder) ACMEDomain(domain string) *TUICBuilder {
	return b.TLS(TLSACMEDomain(domain))
}

// ACMEDomainEmail switches to ACME for an explicit domain with a contact
// email.
func (b *TUICBuilder) ACMEDomainEmail(domain, email string) *TUICBuilder {
	return b.TLS(TLSACMEDomainEmail(domain, email))
}

// CustomTLS switches to an on-disk certificate.
func (b *TUICBuilder) CustomTLS(certPath, keyPath string) *TUICBuilder {
	return b.TLS(TLSCustom(certPath, keyPath))
}

// DisableTLS requests no TLS; Build rejects it for TUIC.
func (b *TUICBuilder) DisableTLS() *TUICBuilder { return b.TLS(TLSOff()) }

// CongestionControl selects the congestion algorithm (default cubic).
func (b *TUICBuilder) CongestionControl(cc singbox.CongestionControl) *TUICBuilder {
	b.congestion = cc
	return b
}

// BBR selects bbr congestion control.
func (b *TUICBuilder) BBR() *TUICBuilder { return b.CongestionControl(singbox.CongestionBBR) }

// NewReno selects new_reno congestion control.
func (b *TUICBuilder) NewReno() *TUICBuilder { return b.CongestionControl(singbox.CongestionNewReno) }

// AuthTimeout bounds how long a connection may stay unauthenticated.
func (b *TUICBuilder) AuthTimeout(d singbox.Duration) *TUICBuilder {
	b.authTimeout = &d
	return b
}

// Heartbeat sets the keep-alive interval.
func (b *TUICBuilder) Heartbeat(d singbox.Duration) *TUICBuilder {
	b.heartbeat = &d
	return b
}

// ZeroRTTHandshake enables 0-RTT QUIC handshakes (off by default; weaker
// replay protection).
func (b *TUICBuilder) ZeroRTTHandshake() *TUICBuilder { b.zeroRTT = true; return b }

// TUICResult is the outcome of a successful TUIC build.
type TUICResult struct {
	Info       Info
	Inbound    *singbox.TUICInbound
	Connection ConnectionInfo
}

// Build validates the accumulated state and produces the inbound.
func (b *TUICBuilder) Build() (*TUICResult, error) {
	if b.done {
		return nil, ErrBuilderConsumed
	}
	b.done = true

	tls, domain, err := b.tls.resolve(TUIC, b.publicIP)
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
		tag = TUIC.Tag()
	}

	users := materializeUsers(b.users, true)

	inbound := singbox.NewTUICInbound(tag)
	inbound.Listen = listen
	inbound.ListenPort = port
	inbound.TLS = *tls
	inbound.CongestionControl = b.congestion
	inbound.AuthTimeout = b.authTimeout
	inbound.Heartbeat = b.heartbeat
	inbound.ZeroRTTHandshake = b.zeroRTT
	for _, u := range users {
		inbound.Users = append(inbound.Users, singbox.TUICUser{
			Name:     u.Name,
			UUID:     u.UUID,
			Password: u.Password,
		})
	}

	return &TUICResult{
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
