// Package profile turns a loaded configuration into built server and
// client documents: it drives the multi-protocol builder from the
// environment and derives the client-side outbound for any enabled
// protocol.
package profile

import (
	"context"
	"fmt"
	"net/netip"

	"ezsingbox/internal/autoconf"
	"ezsingbox/internal/config"
	"ezsingbox/internal/singbox"
)

// Build assembles and runs the multi-protocol builder from cfg. The public
// IP is auto-detected when EZ_PUBLIC_IP is unset; ctx bounds that probe.
func Build(ctx context.Context, cfg *config.Config) (*autoconf.MultiProtocolResult, error) {
	b := autoconf.NewMultiProtocol()

	if cfg.PublicIP != "" {
		ip, err := netip.ParseAddr(cfg.PublicIP)
		if err != nil {
			return nil, fmt.Errorf("parse public ip %q: %w", cfg.PublicIP, err)
		}
		b.PublicIP(ip)
	}
	if cfg.Domain != "" {
		b.Domain(cfg.Domain)
	}
	if cfg.ACMEEmail != "" {
		b.ACMEEmail(cfg.ACMEEmail)
	}

	if cfg.Password != "" {
		b.AddUserWithPassword(cfg.User, cfg.Password)
	} else {
		b.AddUser(cfg.User)
	}

	if cfg.EnableAnyTLS {
		b.EnableAnyTLS(cfg.AnyTLSPort)
	}
	if cfg.EnableHysteria2 {
		b.EnableHysteria2(cfg.Hysteria2Port)
	}
	if cfg.EnableTUIC {
		b.EnableTUIC(cfg.TUICPort)
	}
	if cfg.EnableVLESSReality {
		b.EnableVLESSReality(cfg.VLESSRealityPort)
	}

	if cfg.HY2UpMbps > 0 && cfg.HY2DownMbps > 0 {
		b.HY2Bandwidth(cfg.HY2UpMbps, cfg.HY2DownMbps)
	}
	if cfg.HY2Obfs {
		b.HY2Obfs()
	}

	cc, err := parseCongestion(cfg.TUICCC)
	if err != nil {
		return nil, err
	}
	b.TUICCongestion(cc)
	b.VLESSHandshake(cfg.VLESSHandshakeServer, cfg.VLESSHandshakePort)

	return b.Build(ctx)
}

func parseCongestion(s string) (singbox.CongestionControl, error) {
	switch singbox.CongestionControl(s) {
	case "", singbox.CongestionCubic:
		return singbox.CongestionCubic, nil
	case singbox.CongestionNewReno:
		return singbox.CongestionNewReno, nil
	case singbox.CongestionBBR:
		return singbox.CongestionBBR, nil
	default:
		return "", fmt.Errorf("unknown congestion control %q (want cubic, new_reno or bbr)", s)
	}
}

// pickProtocol resolves which enabled protocol the client should use; empty
// means the first enabled one in protocol order.
func pickProtocol(res *autoconf.MultiProtocolResult, name string) (autoconf.Protocol, error) {
	if name == "" {
		switch {
		case res.AnyTLS != nil:
			return autoconf.AnyTLS, nil
		case res.Hysteria2 != nil:
			return autoconf.Hysteria2, nil
		case res.TUIC != nil:
			return autoconf.TUIC, nil
		case res.VLESSReality != nil:
			return autoconf.VLESSReality, nil
		default:
			return 0, fmt.Errorf("no protocol enabled")
		}
	}
	p, ok := autoconf.ParseProtocol(name)
	if !ok {
		return 0, fmt.Errorf("unknown protocol %q", name)
	}
	enabled := map[autoconf.Protocol]bool{
		autoconf.AnyTLS:       res.AnyTLS != nil,
		autoconf.Hysteria2:    res.Hysteria2 != nil,
		autoconf.TUIC:         res.TUIC != nil,
		autoconf.VLESSReality: res.VLESSReality != nil,
	}
	if !enabled[p] {
		return 0, fmt.Errorf("protocol %s is not enabled", p)
	}
	return p, nil
}

// pickUser resolves whose credentials the client carries; empty means the
// first user.
func pickUser(users []autoconf.GeneratedUser, name string) (autoconf.GeneratedUser, error) {
	if len(users) == 0 {
		return autoconf.GeneratedUser{}, fmt.Errorf("no users in build result")
	}
	if name == "" {
		return users[0], nil
	}
	for _, u := range users {
		if u.Name == name {
			return u, nil
		}
	}
	return autoconf.GeneratedUser{}, fmt.Errorf("user %q not found", name)
}

// ProxyOutbound derives the client outbound (tagged "proxy") matching one
// of the built inbounds. The TLS-terminating protocols dial the domain so
// certificate verification holds; REALITY dials the raw IP.
func ProxyOutbound(res *autoconf.MultiProtocolResult, protocolName, userName string) (map[string]any, error) {
	p, err := pickProtocol(res, protocolName)
	if err != nil {
		return nil, err
	}
	user, err := pickUser(res.Users, userName)
	if err != nil {
		return nil, err
	}

	switch p {
	case autoconf.AnyTLS:
		r := res.AnyTLS
		return map[string]any{
			"type":        singbox.TypeAnyTLS,
			"tag":         "proxy",
			"server":      r.Info.Domain,
			"server_port": r.Info.Port,
			"password":    user.Password,
			"tls": map[string]any{
				"enabled":     true,
				"server_name": r.Info.Domain,
			},
		}, nil

	case autoconf.Hysteria2:
		r := res.Hysteria2
		out := map[string]any{
			"type":        singbox.TypeHysteria2,
			"tag":         "proxy",
			"server":      r.Info.Domain,
			"server_port": r.Info.Port,
			"password":    user.Password,
			"tls": map[string]any{
				"enabled":     true,
				"server_name": r.Info.Domain,
				"alpn":        []string{"h3"},
			},
		}
		if r.ObfsPassword != "" {
			out["obfs"] = map[string]any{
				"type":     singbox.ObfsSalamander,
				"password": r.ObfsPassword,
			}
		}
		return out, nil

	case autoconf.TUIC:
		r := res.TUIC
		return map[string]any{
			"type":               singbox.TypeTUIC,
			"tag":                "proxy",
			"server":             r.Info.Domain,
			"server_port":        r.Info.Port,
			"uuid":               user.UUID,
			"password":           user.Password,
			"congestion_control": r.Inbound.CongestionControl,
			"udp_relay_mode":     "native",
			"tls": map[string]any{
				"enabled":     true,
				"server_name": r.Info.Domain,
				"alpn":        []string{"h3"},
			},
		}, nil

	case autoconf.VLESSReality:
		r := res.VLESSReality
		return map[string]any{
			"type":        singbox.TypeVLESS,
			"tag":         "proxy",
			"server":      r.Connection.Server,
			"server_port": r.Info.Port,
			"uuid":        user.UUID,
			"flow":        string(singbox.FlowVision),
			"tls": map[string]any{
				"enabled":     true,
				"server_name": r.Connection.ServerName,
				"utls": map[string]any{
					"enabled":     true,
					"fingerprint": "chrome",
				},
				"reality": map[string]any{
					"enabled":    true,
					"public_key": r.PublicKey,
					"short_id":   r.ShortID,
				},
			},
		}, nil

	default:
		return nil, fmt.Errorf("protocol %s has no client outbound", p)
	}
}
