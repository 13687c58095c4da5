package profile

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ezsingbox/internal/autoconf"
	"ezsingbox/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("EZ_PUBLIC_IP", "203.0.113.1")
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func TestBuildFromConfig(t *testing.T) {
	cfg := testConfig(t)
	res, err := Build(context.Background(), cfg)
	require.NoError(t, err)

	require.NotNil(t, res.AnyTLS)
	require.NotNil(t, res.Hysteria2)
	require.NotNil(t, res.TUIC)
	require.NotNil(t, res.VLESSReality)
	assert.Equal(t, "203.0.113.1", res.PublicIP.String())
	assert.Equal(t, "203-0-113-1.sslip.io", res.Domain)
	assert.Equal(t, uint16(2053), res.Hysteria2.Info.Port)
	require.Len(t, res.Users, 1)
	assert.Equal(t, "default", res.Users[0].Name)
}

func TestBuildRespectsDisables(t *testing.T) {
	t.Setenv("EZ_ENABLE_ANYTLS", "false")
	t.Setenv("EZ_ENABLE_TUIC", "false")
	cfg := testConfig(t)
	res, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, res.AnyTLS)
	assert.Nil(t, res.TUIC)
	assert.NotNil(t, res.Hysteria2)
	assert.NotNil(t, res.VLESSReality)
}

func TestBuildRejectsBadPublicIP(t *testing.T) {
	t.Setenv("EZ_PUBLIC_IP", "not-an-ip")
	cfg, err := config.Load()
	require.NoError(t, err)
	_, err = Build(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "public ip")
}

func TestBuildRejectsBadCongestion(t *testing.T) {
	t.Setenv("EZ_TUIC_CC", "warp-speed")
	cfg := testConfig(t)
	_, err := Build(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "congestion")
}

func buildAll(t *testing.T) (*config.Config, *autoconf.MultiProtocolResult) {
	t.Helper()
	cfg := testConfig(t)
	res, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	return cfg, res
}

func TestServerJSON(t *testing.T) {
	cfg, res := buildAll(t)
	raw, err := ServerJSON(cfg, res)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	inbounds := doc["inbounds"].([]any)
	require.Len(t, inbounds, 4)
	types := make([]string, 0, 4)
	for _, in := range inbounds {
		types = append(types, in.(map[string]any)["type"].(string))
	}
	assert.Equal(t, []string{"anytls", "hysteria2", "tuic", "vless"}, types)
}

func TestProxyOutboundDefaultsToFirstEnabled(t *testing.T) {
	_, res := buildAll(t)
	out, err := ProxyOutbound(res, "", "")
	require.NoError(t, err)
	assert.Equal(t, "anytls", out["type"])
	assert.Equal(t, "proxy", out["tag"])
	assert.Equal(t, "203-0-113-1.sslip.io", out["server"])
	assert.Equal(t, res.Users[0].Password, out["password"])
}

func TestProxyOutboundVLESS(t *testing.T) {
	_, res := buildAll(t)
	out, err := ProxyOutbound(res, "vless", "")
	require.NoError(t, err)
	// REALITY dials the raw IP, not the domain.
	assert.Equal(t, "203.0.113.1", out["server"])
	assert.Equal(t, res.Users[0].UUID, out["uuid"])
	assert.Equal(t, "xtls-rprx-vision", out["flow"])
	tls := out["tls"].(map[string]any)
	assert.Equal(t, "www.microsoft.com", tls["server_name"])
	reality := tls["reality"].(map[string]any)
	assert.Equal(t, res.VLESSReality.PublicKey, reality["public_key"])
	utls := tls["utls"].(map[string]any)
	assert.Equal(t, "chrome", utls["fingerprint"])
}

func TestProxyOutboundHysteria2WithObfs(t *testing.T) {
	t.Setenv("EZ_HY2_OBFS", "true")
	_, res := buildAll(t)
	out, err := ProxyOutbound(res, "hy2", "")
	require.NoError(t, err)
	obfs := out["obfs"].(map[string]any)
	assert.Equal(t, "salamander", obfs["type"])
	assert.Equal(t, res.Hysteria2.ObfsPassword, obfs["password"])
	tls := out["tls"].(map[string]any)
	assert.Equal(t, []string{"h3"}, tls["alpn"])
}

func TestProxyOutboundErrors(t *testing.T) {
	t.Setenv("EZ_ENABLE_TUIC", "false")
	_, res := buildAll(t)
	_, err := ProxyOutbound(res, "tuic", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not enabled")

	_, err = ProxyOutbound(res, "anytls", "nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestClientJSON(t *testing.T) {
	cfg, res := buildAll(t)
	cfg.Client.Protocol = "tuic"
	raw, err := ClientJSON(cfg, res)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	outbounds := doc["outbounds"].([]any)
	require.Len(t, outbounds, 3)
	assert.Equal(t, "tuic", outbounds[0].(map[string]any)["type"])
	assert.Equal(t, "direct", outbounds[1].(map[string]any)["type"])
	assert.Equal(t, "block", outbounds[2].(map[string]any)["type"])
	inbounds := doc["inbounds"].([]any)
	assert.Equal(t, "mixed", inbounds[0].(map[string]any)["type"])
}

func TestShareLinksAndDetails(t *testing.T) {
	cfg, res := buildAll(t)
	links := ShareLinks(res, cfg.Subscribe.Name)
	require.Len(t, links, 4)
	assert.True(t, strings.HasPrefix(links[0], "anytls://"))
	assert.True(t, strings.HasPrefix(links[1], "hysteria2://"))
	assert.True(t, strings.HasPrefix(links[2], "tuic://"))
	assert.True(t, strings.HasPrefix(links[3], "vless://"))

	details := Details(cfg, res)
	assert.Contains(t, details, "203.0.113.1")
	assert.Contains(t, details, "203-0-113-1.sslip.io")
	assert.Contains(t, details, "vless://")
}
