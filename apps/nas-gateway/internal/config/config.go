// Package config はnas-gatewayの設定を提供する。
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config はアプリケーション設定を保持する
type Config struct {
	// Valkey接続設定
	RedisHost string `envconfig:"REDIS_HOST" required:"true"`
	RedisPort string `envconfig:"REDIS_PORT" required:"true"`
	RedisPass string `envconfig:"REDIS_PASS" required:"true"`

	// 認可エンジン設定
	EngineURL string `envconfig:"ENGINE_URL" required:"true"`

	// RADIUS設定
	RadiusSecret     string        `envconfig:"RADIUS_SECRET"`
	AuthListenAddr   string        `envconfig:"AUTH_LISTEN_ADDR" default:":1812"`
	AcctListenAddr   string        `envconfig:"ACCT_LISTEN_ADDR" default:":1813"`
	DefaultNetworkID string        `envconfig:"DEFAULT_NETWORK_ID"`
	SessionTimeout   time.Duration `envconfig:"SESSION_TIMEOUT" default:"24h"`

	// ログ設定
	LogLevel        string `envconfig:"LOG_LEVEL" default:"INFO"`
	LogMaskDeviceID bool   `envconfig:"LOG_MASK_DEVICE_ID" default:"true"`
}

// Load は環境変数から設定を読み込む
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// ValkeyAddr はValkey接続アドレスを "host:port" 形式で返す
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// validate は設定値のバリデーションを行う
func (c *Config) validate() error {
	if !strings.HasPrefix(c.EngineURL, "http://") && !strings.HasPrefix(c.EngineURL, "https://") {
		return fmt.Errorf("ENGINE_URL must start with http:// or https://")
	}
	if c.AuthListenAddr == c.AcctListenAddr {
		return fmt.Errorf("AUTH_LISTEN_ADDR and ACCT_LISTEN_ADDR must differ")
	}
	if c.SessionTimeout < time.Second {
		return fmt.Errorf("SESSION_TIMEOUT must be >= 1s")
	}
	return nil
}
