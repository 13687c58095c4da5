package singbox

// InboundTLS is the inbound-side TLS block. Exactly one certificate source
// is populated: ACME, a certificate/key path pair, or a REALITY block.
type InboundTLS struct {
	Enabled         bool            `json:"enabled,omitempty"`
	ServerName      string          `json:"server_name,omitempty"`
	ALPN            []string        `json:"alpn,omitempty"`
	CertificatePath string          `json:"certificate_path,omitempty"`
	KeyPath         string          `json:"key_path,omitempty"`
	ACME            *ACME           `json:"acme,omitempty"`
	Reality         *InboundReality `json:"reality,omitempty"`
}

// ACME configures automatic certificate issuance.
type ACME struct {
	Domain                  []string `json:"domain,omitempty"`
	Email                   string   `json:"email,omitempty"`
	DataDirectory           string   `json:"data_directory,omitempty"`
	Provider                string   `json:"provider,omitempty"`
	DisableHTTPChallenge    bool     `json:"disable_http_challenge,omitempty"`
	DisableTLSALPNChallenge bool     `json:"disable_tls_alpn_challenge,omitempty"`
}

// InboundReality is the server-side REALITY block.
type InboundReality struct {
	Enabled           bool              `json:"enabled,omitempty"`
	Handshake         *RealityHandshake `json:"handshake,omitempty"`
	PrivateKey        string            `json:"private_key,omitempty"`
	ShortID           []string          `json:"short_id,omitempty"`
	MaxTimeDifference *Duration         `json:"max_time_difference,omitempty"`
}

// RealityHandshake is the camouflage target REALITY handshakes against.
type RealityHandshake struct {
	Server     string `json:"server"`
	ServerPort uint16 `json:"server_port"`
}

// OutboundTLS is the client-side TLS block.
type OutboundTLS struct {
	Enabled    bool             `json:"enabled,omitempty"`
	ServerName string           `json:"server_name,omitempty"`
	Insecure   bool             `json:"insecure,omitempty"`
	ALPN       []string         `json:"alpn,omitempty"`
	UTLS       *UTLS            `json:"utls,omitempty"`
	Reality    *OutboundReality `json:"reality,omitempty"`
}

// UTLS configures client hello fingerprint mimicry.
type UTLS struct {
	Enabled     bool   `json:"enabled,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// OutboundReality is the client-side REALITY block.
type OutboundReality struct {
	Enabled   bool   `json:"enabled,omitempty"`
	PublicKey string `json:"public_key,omitempty"`
	ShortID   string `json:"short_id,omitempty"`
}
