package singbox

// defaultDNS is the DNS block shared by both documents: DoH resolvers in
// the sing-box 1.12+ server format (the legacy `address` field is
// deprecated since 1.12.0).
func defaultDNS() map[string]any {
	return map[string]any{
		"servers": []any{
			map[string]any{
				"type":        "https",
				"tag":         "cloudflare",
				"server":      "1.1.1.1",
				"server_port": 443,
				"path":        "/dns-query",
			},
			map[string]any{
				"type":        "https",
				"tag":         "google",
				"server":      "8.8.8.8",
				"server_port": 443,
				"path":        "/dns-query",
			},
		},
		"final": "cloudflare",
	}
}

func logBlock(level string) map[string]any {
	if level == "" {
		level = "info"
	}
	return map[string]any{
		"level":     level,
		"timestamp": true,
	}
}

// ServerDocument assembles a complete server configuration around the
// given inbounds: DoH DNS, direct+block outbounds and a route resolving
// domains through cloudflare with direct as the final hop.
func ServerDocument(logLevel string, inbounds []any) map[string]any {
	return map[string]any{
		"log":      logBlock(logLevel),
		"dns":      defaultDNS(),
		"inbounds": inbounds,
		"outbounds": []any{
			map[string]any{"type": "direct", "tag": "direct"},
			map[string]any{"type": "block", "tag": "block"},
		},
		"route": map[string]any{
			"rules":                   []any{},
			"default_domain_resolver": "cloudflare",
			"final":                   "direct",
		},
	}
}

// ClientDocument assembles a client configuration: a local mixed
// (SOCKS5+HTTP) inbound, the given proxy outbound ahead of direct and
// block, and all traffic routed through the proxy by default.
func ClientDocument(logLevel, mixedListen string, mixedPort uint16, outbound map[string]any) map[string]any {
	if mixedListen == "" {
		mixedListen = "127.0.0.1"
	}
	if mixedPort == 0 {
		mixedPort = 2080
	}
	return map[string]any{
		"log": logBlock(logLevel),
		"dns": defaultDNS(),
		"inbounds": []any{
			map[string]any{
				"type":        "mixed",
				"tag":         "mixed-in",
				"listen":      mixedListen,
				"listen_port": mixedPort,
			},
		},
		"outbounds": []any{
			outbound,
			map[string]any{"type": "direct", "tag": "direct"},
			map[string]any{"type": "block", "tag": "block"},
		},
		"route": map[string]any{
			"rules":                   []any{},
			"default_domain_resolver": "cloudflare",
			"final":                   "proxy",
		},
	}
}
