package store

// Valkeyキープレフィックス
const (
	KeyPrefixClient      = "client:"   // RADIUSクライアント設定
	KeyPrefixAcctSession = "nas:acct:" // アカウンティングセッション
)
