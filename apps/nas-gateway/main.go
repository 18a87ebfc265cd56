// Package main はnas-gateway（認可エンジン前段のRADIUSゲートウェイ）のエントリーポイント。
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/oyaguma3/fleetguard/apps/nas-gateway/internal/config"
	"github.com/oyaguma3/fleetguard/apps/nas-gateway/internal/engine"
	"github.com/oyaguma3/fleetguard/apps/nas-gateway/internal/gateway"
	"github.com/oyaguma3/fleetguard/apps/nas-gateway/internal/server"
	"github.com/oyaguma3/fleetguard/apps/nas-gateway/internal/store"
	"github.com/oyaguma3/fleetguard/pkg/logging"
)

func main() {
	// 1. 環境変数読み込み
	cfg, err := config.Load()
	if err != nil {
		slog.Error("設定読み込み失敗", "error", err)
		os.Exit(1)
	}

	// 2. ロガー初期化
	slog.SetDefault(logging.NewLogger(os.Stdout, "nas-gateway", cfg.LogLevel))

	slog.Info("nas-gateway起動開始",
		"auth_addr", cfg.AuthListenAddr,
		"acct_addr", cfg.AcctListenAddr,
		"engine_url", cfg.EngineURL,
	)

	// 3. Valkeyクライアント初期化
	valkeyClient, err := store.NewValkeyClient(cfg)
	if err != nil {
		slog.Error("Valkey接続失敗",
			"event_id", "VALKEY_CONN_ERR",
			"error", err,
		)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// 4. Store層・エンジンクライアント
	clientStore := store.NewClientStore(valkeyClient)
	sessionStore := store.NewAcctSessionStore(valkeyClient)
	engineClient := engine.NewClient(cfg)

	// 5. ゲートウェイ処理
	processor := gateway.NewProcessor(engineClient, clientStore, sessionStore, cfg, func() string {
		return uuid.New().String()
	})

	// 6. 認証・アカウンティングの2ポート
	secretSource := server.NewSecretSource(clientStore, cfg.RadiusSecret)
	servers := []*server.Server{
		server.NewServer(cfg.AuthListenAddr, server.NewAuthHandler(processor), secretSource),
		server.NewServer(cfg.AcctListenAddr, server.NewAcctHandler(processor), secretSource),
	}
	for _, srv := range servers {
		go func(srv *server.Server) {
			slog.Info("RADIUSサーバー起動", "addr", srv.Addr())
			if err := srv.ListenAndServe(); err != nil {
				slog.Error("サーバーエラー", "addr", srv.Addr(), "error", err)
			}
		}(srv)
	}

	// 7. シグナル待機 → Graceful Shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigCh
	slog.Info("シグナル受信、シャットダウン開始", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	for _, srv := range servers {
		if err := srv.Shutdown(ctx); err != nil {
			slog.Warn("シャットダウンエラー", "addr", srv.Addr(), "error", err)
		}
	}

	slog.Info("nas-gateway停止完了")
}
