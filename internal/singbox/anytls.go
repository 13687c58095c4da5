package singbox

// TypeAnyTLS is the inbound type tag for AnyTLS.
const TypeAnyTLS = "anytls"

// AnyTLSInbound is an AnyTLS inbound listener.
type AnyTLSInbound struct {
	Type string `json:"type"`
	Tag  string `json:"tag,omitempty"`
	ListenFields
	Users         []User      `json:"users"`
	PaddingScheme []string    `json:"padding_scheme,omitempty"`
	TLS           *InboundTLS `json:"tls,omitempty"`
}

// NewAnyTLSInbound returns an AnyTLS inbound with its type set.
func NewAnyTLSInbound(tag string) *AnyTLSInbound {
	return &AnyTLSInbound{Type: TypeAnyTLS, Tag: tag}
}

// DefaultPaddingScheme returns the reference AnyTLS padding table: eight
// padded packets, the first fixed at 30 bytes, the rest drawn from
// progressively wider ranges with CheckMark boundaries on packet 2.
func DefaultPaddingScheme() []string {
	return []string{
		"stop=8",
		"0=30-30",
		"1=100-400",
		"2=400-500,c,500-1000,c,500-1000,c,500-1000",
		"3=9-9,500-1000",
		"4=500-1000",
		"5=500-1000",
		"6=500-1000",
		"7=500-1000",
	}
}
