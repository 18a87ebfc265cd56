// Package main はauthz-serverのエントリーポイント。
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/anomaly"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/config"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/decision"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/escalation"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/handler"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/notify"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/ratelimit"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/registrar"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/server"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/store"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/trust"
	"github.com/oyaguma3/fleetguard/pkg/logging"
)

func main() {
	// 1. 設定読み込み
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// 2. ロガー初期化
	slog.SetDefault(logging.NewLogger(os.Stdout, "authz-server", cfg.LogLevel))

	slog.Info("starting authz-server",
		"listen_addr", cfg.ListenAddr,
		"log_level", cfg.LogLevel,
		"notifier", cfg.AdminWebhookURL != "",
	)

	// 3. Valkey接続
	vc, err := store.NewValkeyClient(cfg)
	if err != nil {
		slog.Error("failed to connect to valkey",
			"event_id", "VALKEY_CONN_ERR",
			"error", err,
		)
		os.Exit(1)
	}
	defer vc.Close()

	// 4. 信頼済み発行者
	roots, err := registrar.LoadTrustedIssuers(cfg.TrustedIssuersFile)
	if err != nil {
		slog.Error("failed to load trusted issuers", "error", err)
		os.Exit(1)
	}

	// 5. ストア
	devices := store.NewDeviceStore(vc)
	sessions := store.NewSessionStore(vc)
	networks := store.NewNetworkStore(vc)
	usage := store.NewUsageStore(vc)
	blocks := store.NewBlockStore(vc)
	nodes := store.NewNodeStore(vc)
	findings := store.NewFindingStore(vc)
	alerts := store.NewAlertStore(vc)

	// 6. レートリミッター（デバイスの判定用とノードの報告用）
	decisionLimiter := ratelimit.New(vc, ratelimit.Policy{
		Limits:  cfg.RateLimitTable(),
		Default: cfg.FeatureRateLimit,
		Window:  cfg.RateWindow,
	})
	findingLimiter := ratelimit.New(vc, ratelimit.Policy{
		Default: cfg.NodeFindingLimit,
		Window:  cfg.NodeFindingWindow,
	})

	// 7. ドメインサービス
	trustSvc := trust.NewService(store.NewTrustStore(vc), cfg)

	var notifier escalation.Notifier
	if cfg.AdminWebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg)
	}
	manager := escalation.NewManager(escalation.Stores{
		Blocks:   blocks,
		Findings: findings,
		Alerts:   alerts,
		Sessions: sessions,
		Networks: networks,
	}, trustSvc, notifier, cfg)

	evaluator := decision.NewEvaluator(devices, sessions, networks, usage, blocks, decisionLimiter, trustSvc, cfg)
	scorer := anomaly.NewScorer(nodes, findings, findingLimiter, manager, cfg)
	reg := registrar.NewRegistrar(nodes, roots, cfg)

	// 8. ハンドラー
	h := handler.NewHandler(handler.Deps{
		Decider:    evaluator,
		Ingestor:   scorer,
		Registrar:  reg,
		Escalation: manager,
		Trust:      trustSvc,
		Rates:      decisionLimiter,
		Devices:    devices,
		Networks:   networks,
		Usage:      usage,
		Blocks:     blocks,
		Alerts:     alerts,
		Findings:   findings,
		Nodes:      nodes,
	}, cfg)

	// 9. サーバー起動
	srv := server.New(cfg, h)

	go func() {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	redriveCtx, stopRedrive := context.WithCancel(context.Background())
	go scorer.RunRedrive(redriveCtx, config.EscalationRedriveInterval)

	// 10. シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	stopRedrive()

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("server stopped")
}
