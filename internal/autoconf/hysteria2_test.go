package autoconf

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ezsingbox/internal/singbox"
)

func TestHysteria2Defaults(t *testing.T) {
	ip := netip.MustParseAddr("203.0.113.1")
	res, err := NewHysteria2().PublicIP(ip).Build()
	require.NoError(t, err)

	in := res.Inbound
	assert.Equal(t, "hysteria2", in.Type)
	assert.Equal(t, "hy2-in", in.Tag)
	assert.Equal(t, uint16(443), in.ListenPort)
	assert.Zero(t, in.UpMbps)
	assert.Zero(t, in.DownMbps)
	assert.Nil(t, in.Obfs)
	assert.True(t, in.TLS.Enabled)
	require.NotNil(t, in.TLS.ACME)
	assert.Empty(t, res.ObfsPassword)
}

func TestHysteria2BandwidthAndObfs(t *testing.T) {
	ip := netip.MustParseAddr("203.0.113.1")
	res, err := NewHysteria2().
		PublicIP(ip).
		Bandwidth(100, 500).
		ObfsPassword("hush").
		IgnoreClientBandwidth().
		Masquerade("https://news.ycombinator.com/").
		Build()
	require.NoError(t, err)

	in := res.Inbound
	assert.Equal(t, uint32(100), in.UpMbps)
	assert.Equal(t, uint32(500), in.DownMbps)
	require.NotNil(t, in.Obfs)
	assert.Equal(t, "salamander", in.Obfs.Type)
	assert.Equal(t, "hush", in.Obfs.Password)
	assert.Equal(t, "hush", res.ObfsPassword)
	assert.True(t, in.IgnoreClientBandwidth)
	require.NotNil(t, in.Masquerade)
	assert.Equal(t, "https://news.ycombinator.com/", in.Masquerade.URL)
}

func TestHysteria2BandwidthBothOrNeither(t *testing.T) {
	ip := netip.MustParseAddr("203.0.113.1")
	res, err := NewHysteria2().PublicIP(ip).UpMbps(100).Build()
	require.NoError(t, err)
	assert.Zero(t, res.Inbound.UpMbps)
	assert.Zero(t, res.Inbound.DownMbps)
}

func TestHysteria2ObfsPasswordGenerated(t *testing.T) {
	ip := netip.MustParseAddr("203.0.113.1")
	res, err := NewHysteria2().PublicIP(ip).Obfs().Build()
	require.NoError(t, err)
	require.NotNil(t, res.Inbound.Obfs)
	assert.NotEmpty(t, res.ObfsPassword)
	assert.Equal(t, res.ObfsPassword, res.Inbound.Obfs.Password)
}

func TestHysteria2RequiresTLS(t *testing.T) {
	_, err := NewHysteria2().PublicIP(netip.MustParseAddr("203.0.113.1")).DisableTLS().Build()
	require.Error(t, err)
	var berr *BuildError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, InvalidConfig, berr.Kind)
	assert.Equal(t, Hysteria2, berr.Protocol)
	assert.Contains(t, berr.Msg, "must enable TLS")
}

func TestHysteria2CustomTLS(t *testing.T) {
	res, err := NewHysteria2().
		CustomTLS("/etc/ssl/cert.pem", "/etc/ssl/key.pem").
		Build()
	require.NoError(t, err)
	in := res.Inbound
	assert.True(t, in.TLS.Enabled)
	assert.Nil(t, in.TLS.ACME)
	assert.Equal(t, "/etc/ssl/cert.pem", in.TLS.CertificatePath)
	assert.Equal(t, "/etc/ssl/key.pem", in.TLS.KeyPath)
}

func TestHysteria2MasqueradeConfig(t *testing.T) {
	res, err := NewHysteria2().
		PublicIP(netip.MustParseAddr("203.0.113.1")).
		MasqueradeConfig(singbox.MasqueradeConfig{
			Type:        singbox.MasqueradeProxy,
			URL:         "https://example.com",
			RewriteHost: true,
		}).
		Build()
	require.NoError(t, err)
	require.NotNil(t, res.Inbound.Masquerade)
	require.NotNil(t, res.Inbound.Masquerade.Config)
	assert.Equal(t, singbox.MasqueradeProxy, res.Inbound.Masquerade.Config.Type)
}
