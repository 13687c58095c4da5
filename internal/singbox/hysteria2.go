package singbox

import (
	"encoding/json"
	"fmt"
)

// TypeHysteria2 is the inbound type tag for Hysteria2.
const TypeHysteria2 = "hysteria2"

// ObfsSalamander is the only obfuscation type Hysteria2 defines.
const ObfsSalamander = "salamander"

// Hysteria2Inbound is a Hysteria2 inbound listener. TLS is mandatory for
// this protocol, so the block is embedded by value.
type Hysteria2Inbound struct {
	Type string `json:"type"`
	Tag  string `json:"tag,omitempty"`
	ListenFields
	Users                 []User         `json:"users"`
	UpMbps                uint32         `json:"up_mbps,omitempty"`
	DownMbps              uint32         `json:"down_mbps,omitempty"`
	Obfs                  *Hysteria2Obfs `json:"obfs,omitempty"`
	IgnoreClientBandwidth bool           `json:"ignore_client_bandwidth,omitempty"`
	Masquerade            *Masquerade    `json:"masquerade,omitempty"`
	TLS                   InboundTLS     `json:"tls"`
}

// NewHysteria2Inbound returns a Hysteria2 inbound with its type set.
func NewHysteria2Inbound(tag string) *Hysteria2Inbound {
	return &Hysteria2Inbound{Type: TypeHysteria2, Tag: tag}
}

// Hysteria2Obfs enables salamander traffic obfuscation.
type Hysteria2Obfs struct {
	Type     string `json:"type"`
	Password string `json:"password"`
}

// MasqueradeType selects the structured masquerade behavior.
type MasqueradeType string

const (
	MasqueradeFile   MasqueradeType = "file"
	MasqueradeProxy  MasqueradeType = "proxy"
	MasqueradeString MasqueradeType = "string"
)

// MasqueradeConfig is the structured form of a masquerade target.
type MasqueradeConfig struct {
	Type        MasqueradeType    `json:"type"`
	Directory   string            `json:"directory,omitempty"`
	URL         string            `json:"url,omitempty"`
	RewriteHost bool              `json:"rewrite_host,omitempty"`
	StatusCode  int               `json:"status_code,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	Content     string            `json:"content,omitempty"`
}

// Masquerade is either a bare URL string or a structured config; the JSON
// form is the union sing-box accepts. Set exactly one of URL or Config.
type Masquerade struct {
	URL    string
	Config *MasqueradeConfig
}

// MasqueradeURL wraps a bare URL target.
func MasqueradeURL(url string) *Masquerade { return &Masquerade{URL: url} }

// MarshalJSON writes either the bare string or the structured object.
func (m Masquerade) MarshalJSON() ([]byte, error) {
	if m.Config != nil {
		return json.Marshal(m.Config)
	}
	return json.Marshal(m.URL)
}

// UnmarshalJSON accepts both union arms.
func (m *Masquerade) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		m.Config = nil
		return json.Unmarshal(data, &m.URL)
	}
	var cfg MasqueradeConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("masquerade: %w", err)
	}
	m.URL = ""
	m.Config = &cfg
	return nil
}
