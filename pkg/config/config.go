// Copyright (C) 2025 SAGE-X Project
//
// This file is part of alipay-global-go.
//
// alipay-global-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// alipay-global-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with alipay-global-go.  If not, see <https://www.gnu.org/licenses/>.

// Package config loads client and webhook settings from YAML with
// environment overrides.
//
// Example file:
//
//	client_id: SANDBOX_5YBZ1A2ZXXXX
//	sandbox: true
//	key_version: "1"
//	timeout: 15s
//	private_key_file: /etc/alipay/merchant_private.pem
//	alipay_public_key_file: /etc/alipay/alipay_public.pem
//	log:
//	  service_name: checkout
//	  level: info
//
// No credentials are compiled in; every key comes from the file, the
// environment or a path they point to.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/sage-x-project/alipay-global-go/pkg/keys"
	"github.com/sage-x-project/alipay-global-go/pkg/logger"
)

// Environment variables read by FromEnv and applied over file values
const (
	EnvConfigPath     = "CONFIG_PATH"
	EnvClientID       = "ALIPAY_CLIENT_ID"
	EnvBaseURL        = "ALIPAY_BASE_URL"
	EnvSandbox        = "ALIPAY_SANDBOX"
	EnvKeyVersion     = "ALIPAY_KEY_VERSION"
	EnvPrivateKeyFile = "ALIPAY_PRIVATE_KEY_FILE"
	EnvPublicKeyFile  = "ALIPAY_PUBLIC_KEY_FILE"
)

const DefaultTimeout = 30 * time.Second

var (
	ErrMissingClientID   = errors.New("client_id is required")
	ErrMissingPrivateKey = errors.New("private_key or private_key_file is required")
)

// WebhookConfig configures the notification receiver
type WebhookConfig struct {
	Listen       string        `yaml:"listen"`
	NotifyPath   string        `yaml:"notify_path"`
	MaxClockSkew time.Duration `yaml:"max_clock_skew"`
}

// Config is the top level configuration
type Config struct {
	ClientID   string        `yaml:"client_id"`
	Sandbox    bool          `yaml:"sandbox"`
	BaseURL    string        `yaml:"base_url"`
	KeyVersion string        `yaml:"key_version"`
	Timeout    time.Duration `yaml:"timeout"`

	PrivateKey          string `yaml:"private_key"`
	PrivateKeyFile      string `yaml:"private_key_file"`
	AlipayPublicKey     string `yaml:"alipay_public_key"`
	AlipayPublicKeyFile string `yaml:"alipay_public_key_file"`

	// SkipResponseVerification turns off checking response signatures.
	// Only meant for local stubs that cannot sign.
	SkipResponseVerification bool `yaml:"skip_response_verification"`

	Webhook WebhookConfig `yaml:"webhook"`
	Log     logger.Config `yaml:"log"`
}

// Load reads path, applies environment overrides and validates the result
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// FromEnv loads the file named by CONFIG_PATH if set, otherwise builds the
// configuration from environment variables alone
func FromEnv() (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}
	return Parse(nil)
}

// Parse decodes YAML data, applies environment overrides and validates
func Parse(data []byte) (*Config, error) {
	c := new(Config)
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks required fields
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return ErrMissingClientID
	}
	if c.PrivateKey == "" && c.PrivateKeyFile == "" {
		return ErrMissingPrivateKey
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// KeySource returns where the keys come from
func (c *Config) KeySource() keys.Source {
	return keys.Source{
		PrivateKey:     c.PrivateKey,
		PrivateKeyFile: c.PrivateKeyFile,
		PublicKey:      c.AlipayPublicKey,
		PublicKeyFile:  c.AlipayPublicKeyFile,
	}
}

// LoadKeys reads and parses the configured keys once
func (c *Config) LoadKeys() (*keys.KeyMaterial, error) {
	km, err := keys.Load(c.KeySource())
	if err != nil {
		return nil, fmt.Errorf("failed to load keys: %w", err)
	}
	return km, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvClientID); v != "" {
		c.ClientID = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvSandbox); v != "" {
		sandbox, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSandbox, err)
		}
		c.Sandbox = sandbox
	}
	if v := os.Getenv(EnvKeyVersion); v != "" {
		c.KeyVersion = v
	}
	if v := os.Getenv(EnvPrivateKeyFile); v != "" {
		c.PrivateKeyFile = v
		c.PrivateKey = ""
	}
	if v := os.Getenv(EnvPublicKeyFile); v != "" {
		c.AlipayPublicKeyFile = v
		c.AlipayPublicKey = ""
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Webhook.NotifyPath == "" {
		c.Webhook.NotifyPath = "/alipay/notify"
	}
	if c.Webhook.Listen == "" {
		c.Webhook.Listen = ":8080"
	}
	if c.Log.ServiceName == "" {
		c.Log.ServiceName = "alipay-global"
	}
}
