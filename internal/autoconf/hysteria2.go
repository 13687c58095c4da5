package autoconf

import (
	"context"
	"fmt"
	"net/netip"

	"ezsingbox/internal/generator"
	"ezsingbox/internal/singbox"
)

// Hysteria2Builder assembles a Hysteria2 inbound. TLS cannot be disabled
// for this protocol.
type Hysteria2Builder struct {
	port       uint16
	listen     string
	publicIP   netip.Addr
	users      []userSpec
	tls        TLSMode
	tag        string
	upMbps     uint32
	downMbps   uint32
	obfs       bool
	obfsPass   string
	masquerade *singbox.Masquerade
	ignoreBW   bool
	done       bool
}

// NewHysteria2 returns a builder with ACME TLS.
func NewHysteria2() *Hysteria2Builder {
	return &Hysteria2Builder{}
}

// Port sets the listening port (default 443).
func (b *Hysteria2Builder) Port(p uint16) *Hysteria2Builder { b.port = p; return b }

// Listen sets the listen address (default "::").
func (b *Hysteria2Builder) Listen(addr string) *Hysteria2Builder { b.listen = addr; return b }

// PublicIP sets the address clients connect to and ACME domains derive
// from.
func (b *Hysteria2Builder) PublicIP(ip netip.Addr) *Hysteria2Builder { b.publicIP = ip; return b }

// AutoDetectIP probes the public echo services and stores the result as the
// builder's public IP.
func (b *Hysteria2Builder) AutoDetectIP(ctx context.Context) error {
	ip, err := generator.DetectPublicIP(ctx)
	if err != nil {
		return fmt.Errorf("detect public ip: %w", err)
	}
	b.publicIP = ip
	return nil
}

// AddUser adds a user whose password is generated at Build.
func (b *Hysteria2Builder) AddUser(name string) *Hysteria2Builder {
	b.users = append(b.users, userSpec{name: name})
	return b
}

// AddUserWithPassword adds a user with a fixed password.
func (b *Hysteria2Builder) AddUserWithPassword(name, password string) *Hysteria2Builder {
	b.users = append(b.users, userSpec{name: name, password: password})
	return b
}

// Tag overrides the inbound tag (default "hy2-in").
func (b *Hysteria2Builder) Tag(tag string) *Hysteria2Builder { b.tag = tag; return b }

// TLS sets the TLS mode wholesale.
func (b *Hysteria2Builder) TLS(mode TLSMode) *Hysteria2Builder { b.tls = mode; return b }

// ACMEDomain switches to ACME for an explicit domain.
func (b *Hysteria2Builder) ACMEDomain(domain string) *Hysteria2Builder {
	return b.TLS(TLSACMEDomain(domain))
}

// ACMEDomainEmail switches to ACME for an explicit domain with a contact
// email.
func (b *Hysteria2Builder) ACMEDomainEmail(domain, email string) *Hysteria2Builder {
	return b.TLS(TLSACMEDomainEmail(domain, email))
}

// CustomTLS switches to an on-disk certificate.
func (b *Hysteria2Builder) CustomTLS(certPath, keyPath string) *Hysteria2Builder {
	return b.TLS(TLSCustom(certPath, keyPath))
}

// DisableTLS requests no TLS; Build rejects it for Hysteria2.
func (b *Hysteria2Builder) DisableTLS() *Hysteria2Builder { return b.TLS(TLSOff()) }

// Bandwidth advertises the server's up/down rates in Mbps. Both directions
// are set together; the inbound carries bandwidth only when both are known.
func (b *Hysteria2Builder) Bandwidth(upMbps, downMbps uint32) *Hysteria2Builder {
	b.upMbps, b.downMbps = upMbps, downMbps
	return b
}

// UpMbps sets only the upload rate.
func (b *Hysteria2Builder) UpMbps(mbps uint32) *Hysteria2Builder { b.upMbps = mbps; return b }

// DownMbps sets only the download rate.
func (b *Hysteria2Builder) DownMbps(mbps uint32) *Hysteria2Builder { b.downMbps = mbps; return b }

// Obfs enables salamander obfuscation with a generated password.
func (b *Hysteria2Builder) Obfs() *Hysteria2Builder { b.obfs = true; return b }

// ObfsPassword enables salamander obfuscation with a fixed password.
func (b *Hysteria2Builder) ObfsPassword(password string) *Hysteria2Builder {
	b.obfs = true
	b.obfsPass = password
	return b
}

// Masquerade serves the given URL to unauthenticated probes.
func (b *Hysteria2Builder) Masquerade(url string) *Hysteria2Builder {
	b.masquerade = singbox.MasqueradeURL(url)
	return b
}

// MasqueradeConfig sets a structured masquerade target.
func (b *Hysteria2Builder) MasqueradeConfig(cfg singbox.MasqueradeConfig) *Hysteria2Builder {
	b.masquerade = &singbox.Masquerade{Config: &cfg}
	return b
}

// IgnoreClientBandwidth makes the server disregard client BBR hints.
func (b *Hysteria2Builder) IgnoreClientBandwidth() *Hysteria2Builder {
	b.ignoreBW = true
	return b
}

// Hysteria2Result is the outcome of a successful Hysteria2 build.
type Hysteria2Result struct {
	Info    Info
	Inbound *singbox.Hysteria2Inbound
	// ObfsPassword is set when obfuscation was enabled, whether provided or
	// generated.
	ObfsPassword string
	Connection   ConnectionInfo
}

// Build validates the accumulated state and produces the inbound.
func (b *Hysteria2Builder) Build() (*Hysteria2Result, error) {
	if b.done {
		return nil, ErrBuilderConsumed
	}
	b.done = true

	tls, domain, err := b.tls.resolve(Hysteria2, b.publicIP)
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
		tag = Hysteria2.Tag()
	}

	users := materializeUsers(b.users, false)

	inbound := singbox.NewHysteria2Inbound(tag)
	inbound.Listen = listen
	inbound.ListenPort = port
	inbound.TLS = *tls
	for _, u := range users {
		inbound.Users = append(inbound.Users, singbox.User{Name: u.Name, Password: u.Password})
	}
	if b.upMbps > 0 && b.downMbps > 0 {
		inbound.UpMbps = b.upMbps
		inbound.DownMbps = b.downMbps
	}
	var obfsPassword string
	if b.obfs {
		obfsPassword = b.obfsPass
		if obfsPassword == "" {
			obfsPassword = generator.Password()
		}
		inbound.Obfs = &singbox.Hysteria2Obfs{Type: singbox.ObfsSalamander, Password: obfsPassword}
	}
	inbound.IgnoreClientBandwidth = b.ignoreBW
	inbound.Masquerade = b.masquerade

	return &Hysteria2Result{
		Info: Info{
			PublicIP: b.publicIP,
			Domain:   domain,
			Port:     port,
			Users:    users,
		},
		Inbound:      inbound,
		ObfsPassword: obfsPassword,
		Connection:   connectionInfo(b.publicIP, domain, listen, port),
	}, nil
}
