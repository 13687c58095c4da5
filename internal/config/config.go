// Package config loads the EZ_* environment configuration that drives
// generation. Everything has a default; a bare invocation on a server with
// a public IP needs no variables at all.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full environment surface.
type Config struct {
	// ConfigPath is where the generated server config is written.
	ConfigPath   string `mapstructure:"config_path"`
	LogLevel     string `mapstructure:"log_level"`
	PrintConfig  bool   `mapstructure:"print_config"`
	PrintDetails bool   `mapstructure:"print_details"`

	PublicIP  string `mapstructure:"public_ip"`
	Domain    string `mapstructure:"domain"`
	ACMEEmail string `mapstructure:"acme_email"`
	User      string `mapstructure:"user"`
	Password  string `mapstructure:"password"`

	EnableAnyTLS       bool `mapstructure:"enable_anytls"`
	EnableHysteria2    bool `mapstructure:"enable_hysteria2"`
	EnableTUIC         bool `mapstructure:"enable_tuic"`
	EnableVLESSReality bool `mapstructure:"enable_vless_reality"`

	AnyTLSPort       uint16 `mapstructure:"anytls_port"`
	Hysteria2Port    uint16 `mapstructure:"hysteria2_port"`
	TUICPort         uint16 `mapstructure:"tuic_port"`
	VLESSRealityPort uint16 `mapstructure:"vless_reality_port"`

	HY2Obfs              bool   `mapstructure:"hy2_obfs"`
	HY2UpMbps            uint32 `mapstructure:"hy2_up_mbps"`
	HY2DownMbps          uint32 `mapstructure:"hy2_down_mbps"`
	TUICCC               string `mapstructure:"tuic_cc"`
	VLESSHandshakeServer string `mapstructure:"vless_handshake_server"`
	VLESSHandshakePort   uint16 `mapstructure:"vless_handshake_port"`

	Client    ClientConfig    `mapstructure:"client"`
	Subscribe SubscribeConfig `mapstructure:"subscribe"`
}

// ClientConfig controls the derived client-side document.
type ClientConfig struct {
	// ConfigPath is where the generated client config is written.
	ConfigPath string `mapstructure:"config_path"`
	// Protocol picks which inbound the client outbound targets; empty picks
	// the first enabled one.
	Protocol string `mapstructure:"protocol"`
	// User picks whose credentials the outbound carries; empty picks the
	// first user.
	User        string `mapstructure:"user"`
	MixedListen string `mapstructure:"mixed_listen"`
	MixedPort   uint16 `mapstructure:"mixed_port"`
}

// SubscribeConfig controls the subscription HTTP server.
type SubscribeConfig struct {
	Listen string `mapstructure:"listen"`
	Path   string `mapstructure:"path"`
	// PublicURL is the externally reachable base URL advertised in the
	// import link; defaults to http://<public-ip>:<listen-port>.
	PublicURL string `mapstructure:"public_url"`
	// Name labels the profile in importing clients.
	Name     string        `mapstructure:"name"`
	User     string        `mapstructure:"user"`
	Password string        `mapstructure:"password"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// Load reads the EZ_* environment into a Config.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("EZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("config_path", "config.json")
	v.SetDefault("log_level", "info")
	v.SetDefault("print_config", false)
	v.SetDefault("print_details", true)

	v.SetDefault("public_ip", "")
	v.SetDefault("domain", "")
	v.SetDefault("acme_email", "")
	v.SetDefault("user", "default")
	v.SetDefault("password", "")

	v.SetDefault("enable_anytls", true)
	v.SetDefault("enable_hysteria2", true)
	v.SetDefault("enable_tuic", true)
	v.SetDefault("enable_vless_reality", true)

	v.SetDefault("anytls_port", 443)
	v.SetDefault("hysteria2_port", 2053)
	v.SetDefault("tuic_port", 2083)
	v.SetDefault("vless_reality_port", 2096)

	v.SetDefault("hy2_obfs", false)
	v.SetDefault("hy2_up_mbps", 0)
	v.SetDefault("hy2_down_mbps", 0)
	v.SetDefault("tuic_cc", "cubic")
	v.SetDefault("vless_handshake_server", "www.microsoft.com")
	v.SetDefault("vless_handshake_port", 443)

	v.SetDefault("client.config_path", "client.json")
	v.SetDefault("client.protocol", "")
	v.SetDefault("client.user", "")
	v.SetDefault("client.mixed_listen", "127.0.0.1")
	v.SetDefault("client.mixed_port", 2080)

	v.SetDefault("subscribe.listen", "0.0.0.0:8080")
	v.SetDefault("subscribe.path", "/sub")
	v.SetDefault("subscribe.public_url", "")
	v.SetDefault("subscribe.name", "ezsingbox")
	v.SetDefault("subscribe.user", "")
	v.SetDefault("subscribe.password", "")
	v.SetDefault("subscribe.cache_ttl", "5m")
}

// SlogLevel maps the configured level string to a slog level, defaulting to
// info on anything unrecognized.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "trace":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
