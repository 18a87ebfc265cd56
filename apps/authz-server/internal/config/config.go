// Package config はauthz-serverの設定を提供する。
package config

import (
	"fmt"
	"maps"
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

	// サーバー設定
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`
	GinMode    string `envconfig:"GIN_MODE" default:"release"`
	AdminToken string `envconfig:"ADMIN_TOKEN" required:"true"`

	// ログ設定
	LogLevel        string `envconfig:"LOG_LEVEL" default:"INFO"`
	LogMaskDeviceID bool   `envconfig:"LOG_MASK_DEVICE_ID" default:"true"`

	// 認可判定設定
	FeatureActions   map[string]string `envconfig:"FEATURE_ACTIONS"` // action:feature,... 既定カタログへの追加・上書き
	RateLimits       map[string]int    `envconfig:"RATE_LIMITS"`     // action:limit,...
	RateWindow       time.Duration     `envconfig:"RATE_WINDOW" default:"1m"`
	FeatureRateLimit int               `envconfig:"FEATURE_RATE_LIMIT" default:"5"`
	SessionTTL       time.Duration     `envconfig:"SESSION_TTL" default:"24h"`
	UsageWindow      time.Duration     `envconfig:"USAGE_WINDOW" default:"24h"`
	TrustMinScore    float64           `envconfig:"TRUST_MIN_SCORE" default:"0"`
	TrustBaseline    float64           `envconfig:"TRUST_BASELINE" default:"50"`

	// 異常検知設定
	MinConfidence         float64       `envconfig:"MIN_CONFIDENCE" default:"0.7"`
	FalsePositiveCooldown time.Duration `envconfig:"FALSE_POSITIVE_COOLDOWN" default:"1h"`
	NodeFindingLimit      int           `envconfig:"NODE_FINDING_LIMIT" default:"30"`
	NodeFindingWindow     time.Duration `envconfig:"NODE_FINDING_WINDOW" default:"1m"`

	// 監視ノード登録設定
	TrustedIssuersFile string `envconfig:"TRUSTED_ISSUERS_FILE" required:"true"`

	// エスカレーション設定
	PermanentMinConfidence float64       `envconfig:"PERMANENT_MIN_CONFIDENCE" default:"0.9"`
	CorroborationMin       int           `envconfig:"CORROBORATION_MIN" default:"2"`
	CorroborationWindow    time.Duration `envconfig:"CORROBORATION_WINDOW" default:"24h"`
	AlertCooldown          time.Duration `envconfig:"ALERT_COOLDOWN" default:"5m"`
	TempBlockBase          time.Duration `envconfig:"TEMP_BLOCK_BASE" default:"1h"`
	WarningTTL             time.Duration `envconfig:"WARNING_TTL" default:"72h"`

	// 管理者通知設定（未設定の場合は通知せず、管理者の確認操作を待つ）
	AdminWebhookURL string `envconfig:"ADMIN_WEBHOOK_URL"`
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

// FeatureTable は既定の機能カタログに環境変数の指定を重ねたテーブルを返す。
func (c *Config) FeatureTable() map[string]string {
	table := maps.Clone(DefaultFeatureActions)
	maps.Copy(table, c.FeatureActions)
	return table
}

// RateLimitTable は既定のレート上限に環境変数の指定を重ねたテーブルを返す。
func (c *Config) RateLimitTable() map[string]int {
	table := maps.Clone(DefaultRateLimits)
	maps.Copy(table, c.RateLimits)
	return table
}

// validate は設定値のバリデーションを行う
func (c *Config) validate() error {
	if strings.TrimSpace(c.AdminToken) == "" {
		return fmt.Errorf("ADMIN_TOKEN must not be empty")
	}
	if c.RateWindow <= 0 || c.NodeFindingWindow <= 0 {
		return fmt.Errorf("RATE_WINDOW and NODE_FINDING_WINDOW must be positive")
	}
	if c.FeatureRateLimit < 1 || c.NodeFindingLimit < 1 {
		return fmt.Errorf("FEATURE_RATE_LIMIT and NODE_FINDING_LIMIT must be >= 1")
	}
	for action, limit := range c.RateLimits {
		if limit < 1 {
			return fmt.Errorf("RATE_LIMITS[%s] must be >= 1", action)
		}
	}
	for action, feature := range c.FeatureActions {
		if isCoreAction(action) || action == "unknown" {
			return fmt.Errorf("FEATURE_ACTIONS must not redefine reserved action %q", action)
		}
		if strings.TrimSpace(feature) == "" {
			return fmt.Errorf("FEATURE_ACTIONS[%s] must name a feature", action)
		}
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 || c.PermanentMinConfidence < 0 || c.PermanentMinConfidence > 1 {
		return fmt.Errorf("MIN_CONFIDENCE and PERMANENT_MIN_CONFIDENCE must be within [0,1]")
	}
	if c.CorroborationMin < 1 {
		return fmt.Errorf("CORROBORATION_MIN must be >= 1")
	}
	if c.WarningTTL <= 0 || c.WarningTTL > MaxWarningTTL {
		return fmt.Errorf("WARNING_TTL must be within (0, %s]", MaxWarningTTL)
	}
	if c.TrustBaseline < TrustScoreMin || c.TrustBaseline > TrustScoreMax {
		return fmt.Errorf("TRUST_BASELINE must be within [%v,%v]", TrustScoreMin, TrustScoreMax)
	}
	if c.AdminWebhookURL != "" &&
		!strings.HasPrefix(c.AdminWebhookURL, "http://") && !strings.HasPrefix(c.AdminWebhookURL, "https://") {
		return fmt.Errorf("ADMIN_WEBHOOK_URL must start with http:// or https://")
	}
	return nil
}

func isCoreAction(action string) bool {
	switch action {
	case "authenticate", "connect", "transmit", "allocate_resources":
		return true
	}
	return false
}
