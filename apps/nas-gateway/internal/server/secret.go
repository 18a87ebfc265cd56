package server

import (
	"context"
	"log/slog"
	"net"

	"github.com/oyaguma3/fleetguard/apps/nas-gateway/internal/store"
	"github.com/oyaguma3/fleetguard/pkg/logging"
)

// DynamicSecretSource はValkeyのNASクライアント登録に基づくRADIUS Secret解決を行う。
// layeh.com/radius.SecretSourceインターフェースの実装。
type DynamicSecretSource struct {
	clientStore    store.ClientStore
	fallbackSecret []byte
}

// NewSecretSource は新しいDynamicSecretSourceを生成する。
// fallbackSecretが空文字列の場合、フォールバックは無効。
func NewSecretSource(cs store.ClientStore, fallbackSecret string) *DynamicSecretSource {
	var fb []byte
	if fallbackSecret != "" {
		fb = []byte(fallbackSecret)
	}
	return &DynamicSecretSource{
		clientStore:    cs,
		fallbackSecret: fb,
	}
}

// RADIUSSecret はリモートアドレスに対応するRADIUS Secretを返す。
// Valkey登録 → フォールバック → nilの優先順で解決する。
func (s *DynamicSecretSource) RADIUSSecret(ctx context.Context, remoteAddr net.Addr) ([]byte, error) {
	ip := extractIP(remoteAddr)
	if ip == "" {
		slog.Warn("IPアドレス抽出失敗",
			logging.FieldEventID, "RADIUS_IP_EXTRACT_ERR",
		)
		return s.fallbackSecret, nil
	}

	c, err := s.clientStore.GetClient(ctx, ip)
	if err != nil {
		slog.Warn("Valkeyクライアント検索エラー",
			logging.FieldEventID, "RADIUS_SECRET_ERR",
			logging.FieldSrcIP, ip,
			logging.FieldError, err,
		)
		return s.fallbackSecret, nil
	}
	if c != nil && c.Secret != "" {
		return []byte(c.Secret), nil
	}

	if len(s.fallbackSecret) == 0 {
		slog.Warn("RADIUS Secret不明",
			logging.FieldEventID, "RADIUS_NO_SECRET",
			logging.FieldSrcIP, ip,
		)
	}
	return s.fallbackSecret, nil
}

// extractIP はnet.AddrからIPアドレス文字列を抽出する
func extractIP(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	if udpAddr, ok := addr.(*net.UDPAddr); ok {
		return udpAddr.IP.String()
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return ""
	}
	return host
}
