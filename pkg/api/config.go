package api

import (
	"time"

	"github.com/marmos91/bridgefs/internal/bytesize"
)

// APIConfig configures the host endpoint HTTP server.
type APIConfig struct {
	// Port is the HTTP port the bridge endpoint listens on.
	// Default: 9618
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. Default: 30s (write bodies can be large).
	ReadTimeout time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of
	// the response. Default: 30s
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`

	// IdleTimeout is the maximum time to wait for the next request on a
	// kept-alive connection. Default: 60s
	IdleTimeout time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`

	// AuthToken, when non-empty, requires clients to present it as a
	// bearer token. Empty disables authentication (local development).
	AuthToken string `mapstructure:"auth_token" yaml:"auth_token"`

	// MaxWriteSize caps the request body of write operations.
	// Accepts human-readable values ("32MiB"). Default: 32MiB
	MaxWriteSize bytesize.ByteSize `mapstructure:"max_write_size" yaml:"max_write_size"`
}

// ApplyDefaults fills in zero values with sensible defaults. Idempotent
// with the defaults applied during config loading, so servers constructed
// directly (e.g. in tests) behave the same.
func (c *APIConfig) ApplyDefaults() {
	if c.Port <= 0 {
		c.Port = 9618
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 30 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 30 * time.Second
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60 * time.Second
	}
	if c.MaxWriteSize == 0 {
		c.MaxWriteSize = 32 * bytesize.MiB
	}
}
