package autoconf

import (
	"context"
	"fmt"
	"net/netip"

	"ezsingbox/internal/generator"
	"ezsingbox/internal/singbox"
)

// VLESSRealityBuilder assembles a VLESS inbound with REALITY. REALITY
// borrows a real site's certificate, so there is no TLS mode to choose and
// no domain to own: clients connect straight to the public IP. A fresh
// X25519 keypair and short ID are minted on every Build.
type VLESSRealityBuilder struct {
	port            uint16
	listen          string
	publicIP        netip.Addr
	users           []userSpec
	tag             string
	handshakeServer string
	handshakePort   uint16
	serverName      string
	done            bool
}

// NewVLESSReality returns a builder camouflaging against
// www.microsoft.com:443.
func NewVLESSReality() *VLESSRealityBuilder {
	return &VLESSRealityBuilder{}
}

// Port sets the listening port (default 443).
func (b *VLESSRealityBuilder) Port(p uint16) *VLESSRealityBuilder { b.port = p; return b }

// Listen sets the listen address (default "::").
func (b *VLESSRealityBuilder) Listen(addr string) *VLESSRealityBuilder { b.listen = addr; return b }

// PublicIP sets the address clients connect to. Required: REALITY has no
// domain to fall back on.
func (b *VLESSRealityBuilder) PublicIP(ip netip.Addr) *VLESSRealityBuilder {
	b.publicIP = ip
	return b
}

// AutoDetectIP probes the public echo services and stores the result as the
// builder's public IP.
func (b *VLESSRealityBuilder) AutoDetectIP(ctx context.Context) error {
	ip, err := generator.DetectPublicIP(ctx)
	if err != nil {
		return fmt.Errorf("detect public ip: %w", err)
	}
	b.publicIP = ip
	return nil
}

// AddUser adds a user whose UUID is generated at Build.
func (b *VLESSRealityBuilder) AddUser(name string) *VLESSRealityBuilder {
	b.users = append(b.users, userSpec{name: name})
	return b
}

// AddUserWithUUID adds a user with a fixed UUID.
func (b *VLESSRealityBuilder) AddUserWithUUID(name, uuid string) *VLESSRealityBuilder {
	b.users = append(b.users, userSpec{name: name, uuid: uuid})
	return b
}

// Tag overrides the inbound tag (default "vless-in").
func (b *VLESSRealityBuilder) Tag(tag string) *VLESSRealityBuilder { b.tag = tag; return b }

// Handshake overrides the camouflage target.
func (b *VLESSRealityBuilder) Handshake(server string, port uint16) *VLESSRealityBuilder {
	b.handshakeServer = server
	b.handshakePort = port
	return b
}

// ServerName overrides the SNI, which otherwise follows the handshake
// server.
func (b *VLESSRealityBuilder) ServerName(sni string) *VLESSRealityBuilder {
	b.serverName = sni
	return b
}

// VLESSRealityResult is the outcome of a successful build, including the
// key material clients need.
type VLESSRealityResult struct {
	Info    Info
	Inbound *singbox.VLESSInbound

	PrivateKey      string
	PublicKey       string
	ShortID         string
	HandshakeServer string
	HandshakePort   uint16

	Connection ConnectionInfo
}

// Build validates the accumulated state, mints the REALITY material and
// produces the inbound.
func (b *VLESSRealityBuilder) Build() (*VLESSRealityResult, error) {
	if b.done {
		return nil, ErrBuilderConsumed
	}
	b.done = true

	if !b.publicIP.IsValid() {
		return nil, missingConfig(VLESSReality, "REALITY needs a public IP (set one or call AutoDetectIP)")
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
		tag = VLESSReality.Tag()
	}
	handshakeServer := b.handshakeServer
	if handshakeServer == "" {
		handshakeServer = DefaultHandshakeServer
	}
	handshakePort := b.handshakePort
	if handshakePort == 0 {
		handshakePort = DefaultHandshakePort
	}
	sni := b.serverName
	if sni == "" {
		sni = handshakeServer
	}

	users := materializeUsers(b.users, true)
	keys := generator.NewRealityKeyPair()
	shortID := generator.ShortID()

	inbound := singbox.NewVLESSInbound(tag)
	inbound.Listen = listen
	inbound.ListenPort = port
	for _, u := range users {
		inbound.Users = append(inbound.Users, singbox.VLESSUser{
			Name: u.Name,
			UUID: u.UUID,
			Flow: singbox.FlowVision,
		})
	}
	inbound.TLS = &singbox.InboundTLS{
		Enabled:    true,
		ServerName: sni,
		Reality: &singbox.InboundReality{
			Enabled: true,
			Handshake: &singbox.RealityHandshake{
				Server:     handshakeServer,
				ServerPort: handshakePort,
			},
			PrivateKey: keys.PrivateKey,
			ShortID:    []string{shortID},
		},
	}

	ipStr := b.publicIP.String()
	return &VLESSRealityResult{
		Info: Info{
			PublicIP: b.publicIP,
			Domain:   ipStr,
			Port:     port,
			Users:    users,
		},
		Inbound:         inbound,
		PrivateKey:      keys.PrivateKey,
		PublicKey:       keys.PublicKey,
		ShortID:         shortID,
		HandshakeServer: handshakeServer,
		HandshakePort:   handshakePort,
		Connection: ConnectionInfo{
			Server:     ipStr,
			Port:       port,
			ServerName: sni,
		},
	}, nil
}
