package singbox

// TypeVLESS is the inbound type tag for VLESS.
const TypeVLESS = "vless"

// VLESSInbound is a VLESS inbound listener, used here exclusively with a
// REALITY TLS block.
type VLESSInbound struct {
	Type string `json:"type"`
	Tag  string `json:"tag,omitempty"`
	ListenFields
	Users []VLESSUser `json:"users"`
	TLS   *InboundTLS `json:"tls,omitempty"`
}

// NewVLESSInbound returns a VLESS inbound with its type set.
func NewVLESSInbound(tag string) *VLESSInbound {
	return &VLESSInbound{Type: TypeVLESS, Tag: tag}
}
