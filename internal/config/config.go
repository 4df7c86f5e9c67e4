// Package config is used to load the configuration file
package config

import (
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/blacktop/ipa/pkg/ipa"
)

type remote struct {
	Proxy    string        `mapstructure:"proxy"`
	Insecure bool          `mapstructure:"insecure"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Config is the configuration struct
type Config struct {
	Strict       bool                    `mapstructure:"strict"`
	FamilyPolicy ipa.MissingFamilyPolicy `mapstructure:"family-policy"`
	Encoding     string                  `mapstructure:"encoding"`
	Remote       remote                  `mapstructure:"remote"`

	enc encoding.Encoding
}

func (c *Config) verify() error {
	if c.Remote.Timeout < 0 {
		return fmt.Errorf("remote.timeout must not be negative")
	}
	if c.Encoding == "" {
		return nil
	}
	enc, err := ianaindex.IANA.Encoding(c.Encoding)
	if err != nil {
		return fmt.Errorf("unknown encoding %q: %v", c.Encoding, err)
	}
	if enc == nil {
		return fmt.Errorf("encoding %q is not supported", c.Encoding)
	}
	c.enc = enc
	return nil
}

// TargetEncoding returns the output encoding names must be representable in;
// nil means UTF-8.
func (c *Config) TargetEncoding() encoding.Encoding {
	return c.enc
}

// RemoteConfig returns the settings used to open remote archives
func (c *Config) RemoteConfig() *ipa.RemoteConfig {
	return &ipa.RemoteConfig{
		Proxy:    c.Remote.Proxy,
		Insecure: c.Remote.Insecure,
		Timeout:  c.Remote.Timeout,
	}
}

// Options returns the ipa.Open options described by the config
func (c *Config) Options() []ipa.Option {
	return []ipa.Option{
		ipa.WithStrict(c.Strict),
		ipa.WithFamilyPolicy(c.FamilyPolicy),
	}
}

// LoadConfig loads the configuration from v (viper's global instance when nil)
func LoadConfig(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.GetViper()
	}

	var c Config
	if err := v.Unmarshal(&c, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	))); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal: %v", err)
	}

	if err := c.verify(); err != nil {
		return nil, fmt.Errorf("config: failed to verify: %v", err)
	}

	return &c, nil
}
