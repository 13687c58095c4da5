package autoconf

import (
	"context"
	"errors"
	"fmt"
	"net/netip"

	"ezsingbox/internal/generator"
	"ezsingbox/internal/singbox"
)

// MultiProtocolBuilder builds several protocols in one shot from a single
// identity: one public IP, one domain, one user list shared by every
// enabled inbound. The public IP is auto-detected during Build when not
// provided; the domain derives from the IP via sslip.io when not provided.
type MultiProtocolBuilder struct {
	publicIP  netip.Addr
	domain    string
	acmeEmail string
	users     []userSpec

	slots [4]protocolSlot

	hy2Up, hy2Down uint32
	hy2Obfs        bool

	tuicCC singbox.CongestionControl

	vlessHandshakeServer string
	vlessHandshakePort   uint16

	done bool
}

type protocolSlot struct {
	enabled bool
	port    uint16 // 0 picks the next free default port
}

// NewMultiProtocol returns a builder with no protocol enabled yet.
func NewMultiProtocol() *MultiProtocolBuilder {
	return &MultiProtocolBuilder{tuicCC: singbox.CongestionCubic}
}

// PublicIP sets the server address, skipping auto-detection.
func (b *MultiProtocolBuilder) PublicIP(ip netip.Addr) *MultiProtocolBuilder {
	b.publicIP = ip
	return b
}

// Domain sets the ACME domain shared by the TLS-terminating protocols,
// skipping sslip.io derivation.
func (b *MultiProtocolBuilder) Domain(domain string) *MultiProtocolBuilder {
	b.domain = domain
	return b
}

// ACMEEmail sets the ACME contact email.
func (b *MultiProtocolBuilder) ACMEEmail(email string) *MultiProtocolBuilder {
	b.acmeEmail = email
	return b
}

// AddUser adds a shared user; password and UUID are generated at Build.
func (b *MultiProtocolBuilder) AddUser(name string) *MultiProtocolBuilder {
	b.users = append(b.users, userSpec{name: name})
	return b
}

// AddUserWithPassword adds a shared user with a fixed password; the UUID is
// still generated.
func (b *MultiProtocolBuilder) AddUserWithPassword(name, password string) *MultiProtocolBuilder {
	b.users = append(b.users, userSpec{name: name, password: password})
	return b
}

// EnableAnyTLS enables AnyTLS; port 0 picks the next free default port.
func (b *MultiProtocolBuilder) EnableAnyTLS(port uint16) *MultiProtocolBuilder {
	b.slots[AnyTLS] = protocolSlot{enabled: true, port: port}
	return b
}

// EnableHysteria2 enables Hysteria2; port 0 picks the next free default
// port.
func (b *MultiProtocolBuilder) EnableHysteria2(port uint16) *MultiProtocolBuilder {
	b.slots[Hysteria2] = protocolSlot{enabled: true, port: port}
	return b
}

// EnableTUIC enables TUIC; port 0 picks the next free default port.
func (b *MultiProtocolBuilder) EnableTUIC(port uint16) *MultiProtocolBuilder {
	b.slots[TUIC] = protocolSlot{enabled: true, port: port}
	return b
}

// EnableVLESSReality enables VLESS+REALITY; port 0 picks the next free
// default port.
func (b *MultiProtocolBuilder) EnableVLESSReality(port uint16) *MultiProtocolBuilder {
	b.slots[VLESSReality] = protocolSlot{enabled: true, port: port}
	return b
}

// EnableAll enables every protocol on the default ports: AnyTLS 443,
// Hysteria2 2053, TUIC 2083, VLESS+REALITY 2096.
func (b *MultiProtocolBuilder) EnableAll() *MultiProtocolBuilder {
	return b.EnableAnyTLS(0).EnableHysteria2(0).EnableTUIC(0).EnableVLESSReality(0)
}

// HY2Bandwidth advertises Hysteria2 up/down rates in Mbps.
func (b *MultiProtocolBuilder) HY2Bandwidth(upMbps, downMbps uint32) *MultiProtocolBuilder {
	b.hy2Up, b.hy2Down = upMbps, downMbps
	return b
}

// HY2Obfs enables salamander obfuscation with a generated password.
func (b *MultiProtocolBuilder) HY2Obfs() *MultiProtocolBuilder {
	b.hy2Obfs = true
	return b
}

// TUICCongestion selects the TUIC congestion algorithm (default cubic).
func (b *MultiProtocolBuilder) TUICCongestion(cc singbox.CongestionControl) *MultiProtocolBuilder {
	b.tuicCC = cc
	return b
}

// VLESSHandshake overrides the REALITY camouflage target.
func (b *MultiProtocolBuilder) VLESSHandshake(server string, port uint16) *MultiProtocolBuilder {
	b.vlessHandshakeServer = server
	b.vlessHandshakePort = port
	return b
}

// MultiProtocolResult is the outcome of a successful multi-protocol build.
// Only enabled protocols have a result; a failed sub-build fails the whole
// build with no partial result.
type MultiProtocolResult struct {
	PublicIP netip.Addr
	Domain   string
	Users    []GeneratedUser

	AnyTLS       *AnyTLSResult
	Hysteria2    *Hysteria2Result
	TUIC         *TUICResult
	VLESSReality *VLESSRealityResult
}

// Inbounds returns the enabled inbounds in protocol order, ready for a
// server document.
func (r *MultiProtocolResult) Inbounds() []any {
	var out []any
	if r.AnyTLS != nil {
		out = append(out, r.AnyTLS.Inbound)
	}
	if r.Hysteria2 != nil {
		out = append(out, r.Hysteria2.Inbound)
	}
	if r.TUIC != nil {
		out = append(out, r.TUIC.Inbound)
	}
	if r.VLESSReality != nil {
		out = append(out, r.VLESSReality.Inbound)
	}
	return out
}

// Build resolves the shared identity (detecting the public IP when needed),
// assigns ports, replays the identity into each enabled protocol and builds
// them all. ctx bounds the IP detection.
func (b *MultiProtocolBuilder) Build(ctx context.Context) (*MultiProtocolResult, error) {
	if b.done {
		return nil, ErrBuilderConsumed
	}
	b.done = true

	enabled := false
	for _, s := range b.slots {
		enabled = enabled || s.enabled
	}
	if !enabled {
		return nil, errors.New("no protocol enabled")
	}

	ip := b.publicIP
	if !ip.IsValid() {
		detected, err := generator.DetectPublicIP(ctx)
		if err != nil {
			return nil, fmt.Errorf("detect public ip: %w", err)
		}
		ip = detected
	}

	domain := b.domain
	if domain == "" {
		domain = generator.SslipDomain(ip)
	}

	ports, err := b.assignPorts()
	if err != nil {
		return nil, err
	}

	// Shared users always carry a UUID: any enabled protocol may need one.
	users := materializeUsers(b.users, true)

	result := &MultiProtocolResult{PublicIP: ip, Domain: domain, Users: users}

	if b.slots[AnyTLS].enabled {
		ab := NewAnyTLS().PublicIP(ip).Port(ports[AnyTLS]).ACMEDomainEmail(domain, b.acmeEmail)
		for _, u := range users {
			ab.AddUserWithPassword(u.Name, u.Password)
		}
		result.AnyTLS, err = ab.Build()
		if err != nil {
			return nil, err
		}
	}

	if b.slots[Hysteria2].enabled {
		hb := NewHysteria2().PublicIP(ip).Port(ports[Hysteria2]).ACMEDomainEmail(domain, b.acmeEmail)
		for _, u := range users {
			hb.AddUserWithPassword(u.Name, u.Password)
		}
		if b.hy2Up > 0 && b.hy2Down > 0 {
			hb.Bandwidth(b.hy2Up, b.hy2Down)
		}
		if b.hy2Obfs {
			hb.Obfs()
		}
		result.Hysteria2, err = hb.Build()
		if err != nil {
			return nil, err
		}
	}

	if b.slots[TUIC].enabled {
		tb := NewTUIC().PublicIP(ip).Port(ports[TUIC]).ACMEDomainEmail(domain, b.acmeEmail)
		tb.CongestionControl(b.tuicCC)
		for _, u := range users {
			tb.AddUserWithCredentials(u.Name, u.UUID, u.Password)
		}
		result.TUIC, err = tb.Build()
		if err != nil {
			return nil, err
		}
	}

	if b.slots[VLESSReality].enabled {
		vb := NewVLESSReality().PublicIP(ip).Port(ports[VLESSReality])
		if b.vlessHandshakeServer != "" || b.vlessHandshakePort != 0 {
			vb.Handshake(b.vlessHandshakeServer, b.vlessHandshakePort)
		}
		for _, u := range users {
			vb.AddUserWithUUID(u.Name, u.UUID)
		}
		result.VLESSReality, err = vb.Build()
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// assignPorts honors explicit ports first, then hands each remaining
// enabled protocol the next default port nobody claimed.
func (b *MultiProtocolBuilder) assignPorts() ([4]uint16, error) {
	var ports [4]uint16
	used := make(map[uint16]bool)
	for p, s := range b.slots {
		if s.enabled && s.port != 0 {
			ports[p] = s.port
			used[s.port] = true
		}
	}
	for p, s := range b.slots {
		if !s.enabled || s.port != 0 {
			continue
		}
		assigned := false
		for _, candidate := range DefaultPorts {
			if !used[candidate] {
				ports[p] = candidate
				used[candidate] = true
				assigned = true
				break
			}
		}
		if !assigned {
			return ports, fmt.Errorf("%w for %s", ErrNoAvailablePort, Protocol(p))
		}
	}
	return ports, nil
}
