package profile

import (
	"encoding/json"
	"fmt"
	"strings"

	"ezsingbox/internal/autoconf"
	"ezsingbox/internal/config"
	"ezsingbox/internal/sharelink"
	"ezsingbox/internal/singbox"
)

// ServerJSON renders the full server configuration.
func ServerJSON(cfg *config.Config, res *autoconf.MultiProtocolResult) ([]byte, error) {
	doc := singbox.ServerDocument(cfg.LogLevel, res.Inbounds())
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal server config: %w", err)
	}
	return append(out, '\n'), nil
}

// ClientJSON renders a complete client configuration around the chosen
// protocol and user.
func ClientJSON(cfg *config.Config, res *autoconf.MultiProtocolResult) ([]byte, error) {
	outbound, err := ProxyOutbound(res, cfg.Client.Protocol, cfg.Client.User)
	if err != nil {
		return nil, err
	}
	doc := singbox.ClientDocument(cfg.LogLevel, cfg.Client.MixedListen, cfg.Client.MixedPort, outbound)
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal client config: %w", err)
	}
	return append(out, '\n'), nil
}

// ShareLinks renders one import link per enabled protocol and user. name
// prefixes the link labels.
func ShareLinks(res *autoconf.MultiProtocolResult, name string) []string {
	if name == "" {
		name = "ezsingbox"
	}
	var links []string
	for _, u := range res.Users {
		label := name
		if len(res.Users) > 1 {
			label = name + "-" + u.Name
		}
		if r := res.AnyTLS; r != nil {
			links = append(links, sharelink.AnyTLS(
				r.Info.Domain, r.Info.Port, u.Password, r.Info.Domain, label+"-anytls"))
		}
		if r := res.Hysteria2; r != nil {
			links = append(links, sharelink.Hysteria2(
				r.Info.Domain, r.Info.Port, u.Password, r.Info.Domain, r.ObfsPassword, label+"-hy2"))
		}
		if r := res.TUIC; r != nil {
			links = append(links, sharelink.TUIC(
				r.Info.Domain, r.Info.Port, u.UUID, u.Password, r.Info.Domain,
				r.Inbound.CongestionControl, label+"-tuic"))
		}
		if r := res.VLESSReality; r != nil {
			links = append(links, sharelink.VLESSReality(
				r.Connection.Server, r.Info.Port, u.UUID, r.PublicKey, r.ShortID,
				r.Connection.ServerName, label+"-vless"))
		}
	}
	return links
}

// Details renders a human-readable summary of what was generated: identity,
// per-protocol endpoints and the share links.
func Details(cfg *config.Config, res *autoconf.MultiProtocolResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "public ip: %s\n", res.PublicIP)
	fmt.Fprintf(&b, "domain:    %s\n", res.Domain)
	for _, u := range res.Users {
		fmt.Fprintf(&b, "user:      %s  password=%s  uuid=%s\n", u.Name, u.Password, u.UUID)
	}
	b.WriteString("\n")

	if r := res.AnyTLS; r != nil {
		fmt.Fprintf(&b, "anytls        %s:%d\n", r.Connection.Server, r.Info.Port)
	}
	if r := res.Hysteria2; r != nil {
		fmt.Fprintf(&b, "hysteria2     %s:%d", r.Connection.Server, r.Info.Port)
		if r.ObfsPassword != "" {
			fmt.Fprintf(&b, "  obfs=%s", r.ObfsPassword)
		}
		b.WriteString("\n")
	}
	if r := res.TUIC; r != nil {
		fmt.Fprintf(&b, "tuic          %s:%d  cc=%s\n",
			r.Connection.Server, r.Info.Port, r.Inbound.CongestionControl)
	}
	if r := res.VLESSReality; r != nil {
		fmt.Fprintf(&b, "vless-reality %s:%d  handshake=%s:%d\n",
			r.Connection.Server, r.Info.Port, r.HandshakeServer, r.HandshakePort)
		fmt.Fprintf(&b, "              public_key=%s short_id=%s\n", r.PublicKey, r.ShortID)
	}
	b.WriteString("\n")

	for _, link := range ShareLinks(res, cfg.Subscribe.Name) {
		b.WriteString(link)
		b.WriteString("\n")
	}
	return b.String()
}
