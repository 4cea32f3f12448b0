package config

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultLifetime is the registration lifetime in seconds when the
// configuration does not set one.
const DefaultLifetime int64 = 86400

// Validation errors.
var (
	ErrNoEndpointName = errors.New("endpoint name is required")
	ErrNoServer       = errors.New("a server or bootstrap server address is required")
	ErrBadLifetime    = errors.New("lifetime must be positive")
)

// Server configures one server the client talks to.
type Server struct {
	// Address is the host:port the client dials.
	Address string `yaml:"address"`

	// PSKIdentity is the pre-shared key identity.
	PSKIdentity string `yaml:"psk_identity"`

	// PSKSecret is the pre-shared key, hex encoded.
	PSKSecret string `yaml:"psk_secret"`
}

// Provisioned reports whether the server has both an address and a
// complete PSK pair.
func (s Server) Provisioned() bool {
	return s.Address != "" && s.PSKIdentity != "" && s.PSKSecret != ""
}

// SecretBytes decodes the hex-encoded PSK secret.
func (s Server) SecretBytes() ([]byte, error) {
	if s.PSKSecret == "" {
		return nil, nil
	}
	secret, err := hex.DecodeString(s.PSKSecret)
	if err != nil {
		return nil, fmt.Errorf("decode psk secret: %w", err)
	}
	return secret, nil
}

// Config is the client configuration.
type Config struct {
	// EndpointName identifies this client towards servers.
	EndpointName string `yaml:"endpoint_name"`

	// Server is the device-management server, if provisioned.
	Server Server `yaml:"server"`

	// Bootstrap is the bootstrap server, used when no
	// device-management server is provisioned.
	Bootstrap Server `yaml:"bootstrap"`

	// Lifetime is the registration lifetime in seconds. Zero selects
	// DefaultLifetime.
	Lifetime int64 `yaml:"lifetime"`

	// StepInterval is the session step timer period. Zero lets the
	// session layer choose its default.
	StepInterval time.Duration `yaml:"step_interval"`

	// LogLevel is one of debug, info, warn, error. Empty means info.
	LogLevel string `yaml:"log_level"`
}

// Load reads and validates a YAML configuration file. Unknown keys are
// rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates YAML configuration bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Lifetime == 0 {
		cfg.Lifetime = DefaultLifetime
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.EndpointName == "" {
		return ErrNoEndpointName
	}
	if c.Server.Address == "" && c.Bootstrap.Address == "" {
		return ErrNoServer
	}
	if c.Lifetime <= 0 {
		return ErrBadLifetime
	}
	if _, err := c.Server.SecretBytes(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if _, err := c.Bootstrap.SecretBytes(); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	return nil
}

// ServerAddress returns the address the session should dial first: the
// device-management server when provisioned, otherwise the bootstrap
// server.
func (c *Config) ServerAddress() string {
	if c.Server.Provisioned() {
		return c.Server.Address
	}
	return c.Bootstrap.Address
}
