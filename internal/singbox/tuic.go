package singbox

// TypeTUIC is the inbound type tag for TUIC.
const TypeTUIC = "tuic"

// CongestionControl is a TUIC congestion control algorithm.
type CongestionControl string

const (
	CongestionCubic   CongestionControl = "cubic"
	CongestionNewReno CongestionControl = "new_reno"
	CongestionBBR     CongestionControl = "bbr"
)

// TUICInbound is a TUIC inbound listener. TLS is mandatory.
type TUICInbound struct {
	Type string `json:"type"`
	Tag  string `json:"tag,omitempty"`
	ListenFields
	Users             []TUICUser        `json:"users"`
	CongestionControl CongestionControl `json:"congestion_control,omitempty"`
	AuthTimeout       *Duration         `json:"auth_timeout,omitempty"`
	ZeroRTTHandshake  bool              `json:"zero_rtt_handshake,omitempty"`
	Heartbeat         *Duration         `json:"heartbeat,omitempty"`
	TLS               InboundTLS        `json:"tls"`
}

// NewTUICInbound returns a TUIC inbound with its type set.
func NewTUICInbound(tag string) *TUICInbound {
	return &TUICInbound{Type: TypeTUIC, Tag: tag}
}
