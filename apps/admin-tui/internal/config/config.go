// Package config はAdmin TUIの設定管理を提供する。
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// APITimeout は管理APIへのリクエストタイムアウト
const APITimeout = 5 * time.Second

// Config はAdmin TUIの設定を表す。
type Config struct {
	ValkeyAddr     string `envconfig:"VALKEY_ADDR" default:"127.0.0.1:6379"` // Valkeyアドレス
	ValkeyPassword string `envconfig:"VALKEY_PASSWORD"`                      // Valkeyパスワード

	AdminAPIURL string `envconfig:"ADMIN_API_URL" default:"http://127.0.0.1:8080"` // authz-serverのURL
	AdminToken  string `envconfig:"ADMIN_TOKEN"`                                   // X-Admin-Token
	AdminActor  string `envconfig:"ADMIN_ACTOR"`                                   // 操作者名（X-Admin-Actor）

	AuditLogPath string `envconfig:"AUDIT_LOG_PATH" default:"admin-tui-audit.log"` // 監査ログ出力先
}

// Load は環境変数から設定を読み込む。
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.AdminActor == "" {
		cfg.AdminActor = os.Getenv("USER")
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// validate は設定値のバリデーションを行う。
func (c *Config) validate() error {
	if !strings.HasPrefix(c.AdminAPIURL, "http://") && !strings.HasPrefix(c.AdminAPIURL, "https://") {
		return fmt.Errorf("ADMIN_API_URL must start with http:// or https://")
	}
	return nil
}
