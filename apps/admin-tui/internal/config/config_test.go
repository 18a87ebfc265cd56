package config

import (
	"testing"
)

func TestLoad(t *testing.T) {
	t.Run("reads settings from environment", func(t *testing.T) {
		t.Setenv("VALKEY_ADDR", "10.0.0.5:6380")
		t.Setenv("VALKEY_PASSWORD", "test_password")
		t.Setenv("ADMIN_API_URL", "https://authz.example:8443")
		t.Setenv("ADMIN_TOKEN", "token-1")
		t.Setenv("ADMIN_ACTOR", "alice")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if cfg.ValkeyAddr != "10.0.0.5:6380" {
			t.Errorf("ValkeyAddr = %q", cfg.ValkeyAddr)
		}
		if cfg.ValkeyPassword != "test_password" {
			t.Errorf("ValkeyPassword = %q", cfg.ValkeyPassword)
		}
		if cfg.AdminAPIURL != "https://authz.example:8443" || cfg.AdminToken != "token-1" || cfg.AdminActor != "alice" {
			t.Errorf("予期しない設定: %+v", cfg)
		}
	})

	t.Run("uses defaults", func(t *testing.T) {
		t.Setenv("USER", "operator")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if cfg.ValkeyAddr != "127.0.0.1:6379" {
			t.Errorf("ValkeyAddr = %q, want 127.0.0.1:6379", cfg.ValkeyAddr)
		}
		if cfg.AdminAPIURL != "http://127.0.0.1:8080" {
			t.Errorf("AdminAPIURL = %q", cfg.AdminAPIURL)
		}
		if cfg.AdminActor != "operator" {
			t.Errorf("AdminActor = %q, want operator", cfg.AdminActor)
		}
		if cfg.AuditLogPath != "admin-tui-audit.log" {
			t.Errorf("AuditLogPath = %q", cfg.AuditLogPath)
		}
	})

	t.Run("rejects invalid API URL", func(t *testing.T) {
		t.Setenv("ADMIN_API_URL", "authz:8080")
		if _, err := Load(); err == nil {
			t.Error("エラーが返されるべき")
		}
	})
}
