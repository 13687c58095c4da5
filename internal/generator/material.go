// Package generator produces the random material a fresh proxy deployment
// needs: passwords, UUIDs, REALITY keypairs, short IDs and wildcard-DNS
// domains derived from a public IP.
package generator

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"io"

	"github.com/google/uuid"
	"golang.org/x/crypto/curve25519"
)

// DefaultPasswordBytes is the entropy length of a generated password before
// base64 encoding.
const DefaultPasswordBytes = 16

// randSource is swappable in tests.
var randSource io.Reader = rand.Reader

func randomBytes(n int) []byte {
	buf := make([]byte, n)
	if _, err := io.ReadFull(randSource, buf); err != nil {
		// The platform CSPRNG never fails on any supported OS; if it does,
		// nothing credential-related can proceed.
		panic("generator: reading random source: " + err.Error())
	}
	return buf
}

// Password returns a standard-base64 password built from
// DefaultPasswordBytes of CSPRNG entropy.
func Password() string {
	return PasswordLen(DefaultPasswordBytes)
}

// PasswordLen returns a standard-base64 password built from n random bytes.
func PasswordLen(n int) string {
	return base64.StdEncoding.EncodeToString(randomBytes(n))
}

// HexString returns 2n lowercase hex characters from n random bytes.
func HexString(n int) string {
	return hex.EncodeToString(randomBytes(n))
}

// UUID returns a canonical (hyphenated) random UUID.
func UUID() string {
	return uuid.NewString()
}

// UUIDSimple returns a random UUID as 32 hex characters without hyphens.
func UUIDSimple() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// ShortID returns an 8-character lowercase hex REALITY short ID.
func ShortID() string {
	return HexString(4)
}

// RealityKeyPair holds an X25519 keypair in the base64url-without-padding
// form sing-box expects in reality blocks.
type RealityKeyPair struct {
	PrivateKey string
	PublicKey  string
}

// NewRealityKeyPair generates a fresh X25519 keypair. The private scalar is
// clamped per RFC 7748 before the public key is derived.
func NewRealityKeyPair() RealityKeyPair {
	priv := randomBytes(curve25519.ScalarSize)
	priv[0] &= 248
	priv[31] &= 127
	priv[31] |= 64

	pub, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		// Unreachable for a clamped scalar against the basepoint.
		panic("generator: deriving X25519 public key: " + err.Error())
	}

	enc := base64.RawURLEncoding
	return RealityKeyPair{
		PrivateKey: enc.EncodeToString(priv),
		PublicKey:  enc.EncodeToString(pub),
	}
}
