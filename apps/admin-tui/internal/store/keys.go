// Package store はValkeyアクセス層を提供する。
package store

// キープレフィックス定義
const (
	// PrefixDevice はデバイスキーのプレフィックス
	PrefixDevice = "dev:"
	// KeyDeviceIndex はデバイス一覧セット
	KeyDeviceIndex = "devices"
	// KeyBlacklist はブラックリストセット
	KeyBlacklist = "blacklist"
	// PrefixClient はRADIUSクライアント（NAS）キーのプレフィックス
	PrefixClient = "client:"
	// PrefixNetwork はネットワークキーのプレフィックス
	PrefixNetwork = "net:"
	// PrefixConnection はネットワークごとの接続Hashのプレフィックス
	PrefixConnection = "conn:"
	// PrefixSession は認証済みセッションキーのプレフィックス
	PrefixSession = "sess:"
	// PrefixAcctSession はNASアカウンティングセッションキーのプレフィックス
	PrefixAcctSession = "nas:acct:"
	// KeyNodeIndex は監視ノード一覧セット
	KeyNodeIndex = "nodes"
	// KeyBlockIndex はブロック一覧セット
	KeyBlockIndex = "blocks"
	// KeyAlertIndex はアラート履歴リスト
	KeyAlertIndex = "alerts"
)

// DeviceKey はデバイスのValkeyキーを生成する。
func DeviceKey(id string) string {
	return PrefixDevice + id
}

// ClientKey はRADIUSクライアントのValkeyキーを生成する。
func ClientKey(ip string) string {
	return PrefixClient + ip
}

// NetworkKey はネットワークのValkeyキーを生成する。
func NetworkKey(id string) string {
	return PrefixNetwork + id
}

// SessionKey はセッションのValkeyキーを生成する。
func SessionKey(deviceID string) string {
	return PrefixSession + deviceID
}
