package autoconf

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ezsingbox/internal/singbox"
)

func TestTUICDefaults(t *testing.T) {
	ip := netip.MustParseAddr("203.0.113.1")
	res, err := NewTUIC().PublicIP(ip).Build()
	require.NoError(t, err)

	in := res.Inbound
	assert.Equal(t, "tuic", in.Type)
	assert.Equal(t, "tuic-in", in.Tag)
	assert.Equal(t, singbox.CongestionCubic, in.CongestionControl)
	assert.False(t, in.ZeroRTTHandshake)
	assert.Nil(t, in.AuthTimeout)
	assert.Nil(t, in.Heartbeat)

	require.Len(t, in.Users, 1)
	assert.Equal(t, "default", in.Users[0].Name)
	assert.NotEmpty(t, in.Users[0].UUID)
	assert.NotEmpty(t, in.Users[0].Password)
	assert.Equal(t, in.Users[0].UUID, res.Info.Users[0].UUID)
}

func TestTUICTunables(t *testing.T) {
	ip := netip.MustParseAddr("203.0.113.1")
	res, err := NewTUIC().
		PublicIP(ip).
		BBR().
		AuthTimeout(singbox.DurationFromSeconds(3)).
		Heartbeat(singbox.DurationFromSeconds(10)).
		ZeroRTTHandshake().
		AddUserWithCredentials("alice", "5b2a9e1e-93f4-4e1a-8b1d-111122223333", "pw").
		Build()
	require.NoError(t, err)

	in := res.Inbound
	assert.Equal(t, singbox.CongestionBBR, in.CongestionControl)
	require.NotNil(t, in.AuthTimeout)
	assert.Equal(t, uint64(3000), in.AuthTimeout.Millis())
	require.NotNil(t, in.Heartbeat)
	assert.Equal(t, uint64(10000), in.Heartbeat.Millis())
	assert.True(t, in.ZeroRTTHandshake)

	require.Len(t, in.Users, 1)
	assert.Equal(t, "5b2a9e1e-93f4-4e1a-8b1d-111122223333", in.Users[0].UUID)
	assert.Equal(t, "pw", in.Users[0].Password)
}

func TestTUICUserWithUUIDGetsGeneratedPassword(t *testing.T) {
	res, err := NewTUIC().
		ACMEDomain("vpn.example.com").
		AddUserWithUUID("alice", "5b2a9e1e-93f4-4e1a-8b1d-111122223333").
		Build()
	require.NoError(t, err)
	require.Len(t, res.Inbound.Users, 1)
	assert.NotEmpty(t, res.Inbound.Users[0].Password)
}

func TestTUICRequiresTLS(t *testing.T) {
	_, err := NewTUIC().PublicIP(netip.MustParseAddr("203.0.113.1")).DisableTLS().Build()
	require.Error(t, err)
	var berr *BuildError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, InvalidConfig, berr.Kind)
	assert.Equal(t, TUIC, berr.Protocol)
}
