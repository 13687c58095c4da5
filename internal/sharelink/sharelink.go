// Package sharelink renders the client-import URI for each supported
// protocol, in the formats V2RayN-family clients understand.
package sharelink

import (
	"net"
	"net/url"
	"strconv"

	"ezsingbox/internal/singbox"
)

func hostPort(host string, port uint16) string {
	return net.JoinHostPort(host, strconv.Itoa(int(port)))
}

// AnyTLS renders an anytls:// link.
func AnyTLS(host string, port uint16, password, sni, name string) string {
	u := url.URL{
		Scheme:   "anytls",
		User:     url.User(password),
		Host:     hostPort(host, port),
		Fragment: name,
	}
	q := u.Query()
	q.Set("sni", sni)
	q.Set("insecure", "0")
	u.RawQuery = q.Encode()
	return u.String()
}

// Hysteria2 renders a hysteria2:// link. obfsPassword is empty when
// obfuscation is off.
func Hysteria2(host string, port uint16, password, sni, obfsPassword, name string) string {
	u := url.URL{
		Scheme:   "hysteria2",
		User:     url.User(password),
		Host:     hostPort(host, port),
		Fragment: name,
	}
	q := u.Query()
	q.Set("sni", sni)
	q.Set("insecure", "0")
	if obfsPassword != "" {
		q.Set("obfs", singbox.ObfsSalamander)
		q.Set("obfs-password", obfsPassword)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// TUIC renders a tuic:// link with uuid:password userinfo.
func TUIC(host string, port uint16, uuid, password, sni string, cc singbox.CongestionControl, name string) string {
	if cc == "" {
		cc = singbox.CongestionBBR
	}
	u := url.URL{
		Scheme:   "tuic",
		User:     url.UserPassword(uuid, password),
		Host:     hostPort(host, port),
		Fragment: name,
	}
	q := u.Query()
	q.Set("sni", sni)
	q.Set("congestion_control", string(cc))
	q.Set("udp_relay_mode", "native")
	q.Set("alpn", "h3")
	u.RawQuery = q.Encode()
	return u.String()
}

// VLESSReality renders a vless:// link for a REALITY endpoint.
func VLESSReality(host string, port uint16, uuid, publicKey, shortID, sni, name string) string {
	u := url.URL{
		Scheme:   "vless",
		User:     url.User(uuid),
		Host:     hostPort(host, port),
		Fragment: name,
	}
	q := u.Query()
	q.Set("encryption", "none")
	q.Set("type", "tcp")
	q.Set("security", "reality")
	q.Set("pbk", publicKey)
	q.Set("sid", shortID)
	q.Set("sni", sni)
	q.Set("fp", "chrome")
	q.Set("flow", string(singbox.FlowVision))
	u.RawQuery = q.Encode()
	return u.String()
}

// ImportRemoteProfile renders the sing-box deep link that subscribes a
// client to a remote profile URL.
func ImportRemoteProfile(profileURL, name string) string {
	return "sing-box://import-remote-profile?url=" + url.QueryEscape(profileURL) + "#" + url.PathEscape(name)
}
