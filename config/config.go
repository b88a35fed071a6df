// Package config loads and validates server configuration through viper.
package config

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/viper"
)

// Configuration is the full server configuration. Values come from the config
// file, environment variables prefixed with CREATIVE_AGENT_, or the defaults
// installed by SetupViper, in that order of precedence.
type Configuration struct {
	ExternalURL    string    `mapstructure:"external_url"`
	Host           string    `mapstructure:"host"`
	Port           int       `mapstructure:"port"`
	AdminPort      int       `mapstructure:"admin_port"`
	StatusResponse string    `mapstructure:"status_response"`
	EnableGzip     bool      `mapstructure:"enable_gzip"`
	Preview        Preview   `mapstructure:"preview"`
	Store          Store     `mapstructure:"preview_store"`
	Metrics        Metrics   `mapstructure:"metrics"`
	RateLimit      RateLimit `mapstructure:"rate_limit"`
}

// Preview tunes the rendering engine.
type Preview struct {
	// MaxInFlight bounds concurrent batch items so a large batch cannot
	// saturate the preview store's connection.
	MaxInFlight int `mapstructure:"max_in_flight"`
	// StrictUnknownAssets fails validation on manifest assets the format
	// does not declare instead of reporting them as warnings.
	StrictUnknownAssets bool `mapstructure:"strict_unknown_assets"`
	// TTLSeconds is how long stored previews stay readable.
	TTLSeconds int `mapstructure:"ttl_seconds"`
}

// Store points at the preview store service previews are written through.
// An empty Scheme yields protocol relative URLs.
type Store struct {
	Scheme     string `mapstructure:"scheme"`
	Host       string `mapstructure:"host"`
	PutPath    string `mapstructure:"put_path"`
	PublicHost string `mapstructure:"public_host"`
}

// Metrics selects the metrics backend.
type Metrics struct {
	Type string `mapstructure:"type"`
}

// RateLimit throttles preview endpoints per client IP.
type RateLimit struct {
	Enabled              bool  `mapstructure:"enabled"`
	MaxRequestsPerSecond int64 `mapstructure:"max_requests_per_second"`
}

// GetStoreBaseURL allows for a protocol relative URL if the scheme is empty.
func (cfg *Store) GetStoreBaseURL() string {
	scheme := strings.ToLower(cfg.Scheme)
	if strings.Contains(scheme, "https") {
		return fmt.Sprintf("https://%s", cfg.Host)
	}
	if strings.Contains(scheme, "http") {
		return fmt.Sprintf("http://%s", cfg.Host)
	}
	return fmt.Sprintf("//%s", cfg.Host)
}

// GetPutURL is the write endpoint previews are uploaded through.
func (cfg *Store) GetPutURL() string {
	return cfg.GetStoreBaseURL() + cfg.PutPath
}

// GetPublicBaseURL is the address stored previews are readable from. It falls
// back to the store host when no separate public host is configured.
func (cfg *Store) GetPublicBaseURL() string {
	if cfg.PublicHost == "" {
		return cfg.GetStoreBaseURL()
	}
	scheme := strings.ToLower(cfg.Scheme)
	if strings.Contains(scheme, "https") {
		return fmt.Sprintf("https://%s", cfg.PublicHost)
	}
	if strings.Contains(scheme, "http") {
		return fmt.Sprintf("http://%s", cfg.PublicHost)
	}
	return fmt.Sprintf("//%s", cfg.PublicHost)
}

func (cfg *Configuration) validate() error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.AdminPort < 0 || cfg.AdminPort > 65535 {
		return fmt.Errorf("invalid admin port: %d", cfg.AdminPort)
	}
	if cfg.Preview.MaxInFlight <= 0 {
		return fmt.Errorf("preview.max_in_flight must be positive, got %d", cfg.Preview.MaxInFlight)
	}
	if cfg.Preview.TTLSeconds <= 0 {
		return fmt.Errorf("preview.ttl_seconds must be positive, got %d", cfg.Preview.TTLSeconds)
	}
	switch cfg.Metrics.Type {
	case "none", "go_metrics":
	default:
		return fmt.Errorf("unknown metrics type: %q", cfg.Metrics.Type)
	}
	if cfg.RateLimit.Enabled && cfg.RateLimit.MaxRequestsPerSecond <= 0 {
		return fmt.Errorf("rate_limit.max_requests_per_second must be positive when rate limiting is enabled")
	}
	return nil
}

// New validates the viper config and unmarshals it into a Configuration.
func New(v *viper.Viper) (*Configuration, error) {
	var c Configuration
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("viper failed to unmarshal app config: %v", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	glog.Infof("config: served from %s:%d, preview store at %s", c.Host, c.Port, c.Store.GetPutURL())
	return &c, nil
}

// SetupViper sets the config file to read, the environment binding and every
// default. Env vars beat the file: CREATIVE_AGENT_PREVIEW_STORE_HOST overrides
// preview_store.host.
func SetupViper(v *viper.Viper, filename string) {
	if filename != "" {
		v.SetConfigName(filename)
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/config")
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				glog.Warningf("Error reading config file: %v", err)
			}
		}
	}

	v.SetDefault("external_url", "http://localhost:8000")
	v.SetDefault("host", "")
	v.SetDefault("port", 8000)
	v.SetDefault("admin_port", 6060)
	v.SetDefault("status_response", "")
	v.SetDefault("enable_gzip", false)

	v.SetDefault("preview.max_in_flight", 10)
	v.SetDefault("preview.strict_unknown_assets", false)
	v.SetDefault("preview.ttl_seconds", 86400)

	v.SetDefault("preview_store.scheme", "")
	v.SetDefault("preview_store.host", "")
	v.SetDefault("preview_store.put_path", "/cache")
	v.SetDefault("preview_store.public_host", "")

	v.SetDefault("metrics.type", "none")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.max_requests_per_second", 50)

	v.SetEnvPrefix("CREATIVE_AGENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}
