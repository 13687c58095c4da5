package singbox

// ListenFields are the listen options shared by every inbound.
type ListenFields struct {
	Listen      string    `json:"listen,omitempty"`
	ListenPort  uint16    `json:"listen_port,omitempty"`
	TCPFastOpen bool      `json:"tcp_fast_open,omitempty"`
	UDPTimeout  *Duration `json:"udp_timeout,omitempty"`
}
