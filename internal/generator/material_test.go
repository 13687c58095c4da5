package generator

import (
	"bytes"
	"encoding/base64"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	p := Password()
	raw, err := base64.StdEncoding.DecodeString(p)
	require.NoError(t, err)
	assert.Len(t, raw, DefaultPasswordBytes)
	assert.NotEqual(t, p, Password(), "two passwords should differ")
}

func TestPasswordLen(t *testing.T) {
	raw, err := base64.StdEncoding.DecodeString(PasswordLen(32))
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestPasswordStandardAlphabet(t *testing.T) {
	old := randSource
	randSource = bytes.NewReader(bytes.Repeat([]byte{0xFF, 0xFE}, 16))
	t.Cleanup(func() { randSource = old })

	p := PasswordLen(8)
	assert.Equal(t, "//7//v/+//4=", p)
	assert.NotContains(t, p, "_")
	assert.NotContains(t, p, "-")
}

func TestHexString(t *testing.T) {
	s := HexString(8)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{16}$`), s)
}

func TestUUIDForms(t *testing.T) {
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, UUID())
	assert.Regexp(t, `^[0-9a-f]{32}$`, UUIDSimple())
}

func TestShortID(t *testing.T) {
	assert.Regexp(t, `^[0-9a-f]{8}$`, ShortID())
}

func TestNewRealityKeyPair(t *testing.T) {
	kp := NewRealityKeyPair()
	assert.NotEqual(t, kp.PrivateKey, kp.PublicKey)

	priv, err := base64.RawURLEncoding.DecodeString(kp.PrivateKey)
	require.NoError(t, err)
	require.Len(t, priv, 32)
	pub, err := base64.RawURLEncoding.DecodeString(kp.PublicKey)
	require.NoError(t, err)
	require.Len(t, pub, 32)

	// RFC 7748 clamping.
	assert.Zero(t, priv[0]&7)
	assert.Zero(t, priv[31]&128)
	assert.NotZero(t, priv[31]&64)

	other := NewRealityKeyPair()
	assert.NotEqual(t, kp.PrivateKey, other.PrivateKey)
	assert.NotEqual(t, kp.PublicKey, other.PublicKey)
}
