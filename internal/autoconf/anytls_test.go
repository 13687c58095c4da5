package autoconf

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ezsingbox/internal/singbox"
)

func TestAnyTLSDefaults(t *testing.T) {
	ip := netip.MustParseAddr("203.0.113.1")
	res, err := NewAnyTLS().PublicIP(ip).Build()
	require.NoError(t, err)

	assert.Equal(t, uint16(443), res.Info.Port)
	assert.Equal(t, "203-0-113-1.sslip.io", res.Info.Domain)
	require.Len(t, res.Info.Users, 1)
	assert.Equal(t, "default", res.Info.Users[0].Name)
	assert.NotEmpty(t, res.Info.Users[0].Password)

	in := res.Inbound
	assert.Equal(t, "anytls", in.Type)
	assert.Equal(t, "anytls-in", in.Tag)
	assert.Equal(t, "::", in.Listen)
	assert.Equal(t, uint16(443), in.ListenPort)
	assert.Equal(t, singbox.DefaultPaddingScheme(), in.PaddingScheme)

	require.NotNil(t, in.TLS)
	assert.True(t, in.TLS.Enabled)
	assert.Equal(t, "203-0-113-1.sslip.io", in.TLS.ServerName)
	require.NotNil(t, in.TLS.ACME)
	assert.Equal(t, []string{"203-0-113-1.sslip.io"}, in.TLS.ACME.Domain)

	assert.Equal(t, "203.0.113.1", res.Connection.Server)
	assert.Equal(t, "203-0-113-1.sslip.io", res.Connection.ServerName)
}

func TestAnyTLSExplicitEverything(t *testing.T) {
	res, err := NewAnyTLS().
		Port(8443).
		Listen("0.0.0.0").
		Tag("front-door").
		ACMEDomainEmail("vpn.example.com", "ops@example.com").
		AddUserWithPassword("alice", "s3cret").
		AddUser("bob").
		NoPadding().
		Build()
	require.NoError(t, err)

	in := res.Inbound
	assert.Equal(t, "front-door", in.Tag)
	assert.Equal(t, "0.0.0.0", in.Listen)
	assert.Equal(t, uint16(8443), in.ListenPort)
	assert.Nil(t, in.PaddingScheme)
	assert.Equal(t, "ops@example.com", in.TLS.ACME.Email)

	require.Len(t, in.Users, 2)
	assert.Equal(t, singbox.User{Name: "alice", Password: "s3cret"}, in.Users[0])
	assert.Equal(t, "bob", in.Users[1].Name)
	assert.NotEmpty(t, in.Users[1].Password)

	// No public IP: clients connect via the domain.
	assert.Equal(t, "vpn.example.com", res.Connection.Server)
}

func TestAnyTLSDisabledTLS(t *testing.T) {
	res, err := NewAnyTLS().DisableTLS().Listen("127.0.0.1").Build()
	require.NoError(t, err)
	assert.Nil(t, res.Inbound.TLS)
	assert.Empty(t, res.Info.Domain)
	assert.Equal(t, "127.0.0.1", res.Connection.Server)
}

func TestAnyTLSACMEWithoutDomainOrIP(t *testing.T) {
	_, err := NewAnyTLS().Build()
	require.Error(t, err)
	var berr *BuildError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, MissingConfig, berr.Kind)
	assert.Equal(t, AnyTLS, berr.Protocol)
}

func TestAnyTLSBuilderIsOneShot(t *testing.T) {
	b := NewAnyTLS().PublicIP(netip.MustParseAddr("203.0.113.1"))
	_, err := b.Build()
	require.NoError(t, err)
	_, err = b.Build()
	assert.ErrorIs(t, err, ErrBuilderConsumed)
}

func TestAnyTLSFailedBuildStaysConsumed(t *testing.T) {
	b := NewAnyTLS()
	_, err := b.Build()
	require.Error(t, err)
	_, err = b.Build()
	assert.ErrorIs(t, err, ErrBuilderConsumed)
}
