package model

// RadiusClient はnas-gatewayにRADIUSを送るNAS(アクセスポイント等)。
// Valkeyキー: client:{IP} のHASH。nas-gatewayとadmin-tuiが共有する。
type RadiusClient struct {
	IP        string `json:"ip" redis:"ip"`
	Secret    string `json:"secret" redis:"secret"`
	Name      string `json:"name" redis:"name"`
	NetworkID string `json:"network_id" redis:"network_id"` // 空はゲートウェイ既定のネットワーク
}

// NewRadiusClient は新しいRadiusClientを生成する。
func NewRadiusClient(ip, secret, name, networkID string) *RadiusClient {
	return &RadiusClient{
		IP:        ip,
		Secret:    secret,
		Name:      name,
		NetworkID: networkID,
	}
}

// NetworkOr はNASの所属ネットワークを返す。
// NASが未登録(nil)またはネットワーク未設定の場合はfallbackを返す。
func (c *RadiusClient) NetworkOr(fallback string) string {
	if c == nil || c.NetworkID == "" {
		return fallback
	}
	return c.NetworkID
}
