package singbox

// User is the name+password record used by AnyTLS and Hysteria2 inbounds.
type User struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// TUICUser authenticates with a UUID and a password.
type TUICUser struct {
	Name     string `json:"name,omitempty"`
	UUID     string `json:"uuid"`
	Password string `json:"password,omitempty"`
}

// VLESSFlow selects the VLESS flow control mode.
type VLESSFlow string

// FlowVision is the xtls-rprx-vision flow required for REALITY transports.
const FlowVision VLESSFlow = "xtls-rprx-vision"

// VLESSUser authenticates with a UUID; Flow is set for REALITY deployments.
type VLESSUser struct {
	Name string    `json:"name"`
	UUID string    `json:"uuid"`
	Flow VLESSFlow `json:"flow,omitempty"`
}
