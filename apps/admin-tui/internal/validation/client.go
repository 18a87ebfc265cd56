package validation

import (
	"net/netip"
	"strings"
)

// ClientInput はRADIUSクライアント(NAS)の入力。
type ClientInput struct {
	IP        string
	Secret    string
	Name      string
	NetworkID string
}

// ValidateIPv4 はNASのIPv4アドレスを検証する。
// nas-gatewayは送信元アドレスでクライアントを引くため、IPv6やマップドアドレスは受け付けない。
func ValidateIPv4(ip string) error {
	if ip == "" {
		return fieldError("IP", "required")
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil || !addr.Is4() {
		return fieldError("IP", "must be a valid IPv4 address")
	}
	return nil
}

// ValidateSecret は共有シークレットを検証する。
func ValidateSecret(secret string) error {
	switch {
	case secret == "":
		return fieldError("Secret", "required")
	case len(secret) > MaxSecretLength:
		return fieldError("Secret", "must be at most %d characters", MaxSecretLength)
	case !SecretPattern.MatchString(secret):
		return fieldError("Secret", "must contain only printable ASCII characters (no spaces)")
	}
	return nil
}

// ValidateClientName はNAS名を検証する。
func ValidateClientName(name string) error {
	switch {
	case name == "":
		return fieldError("Name", "required")
	case len(name) > MaxClientNameLength:
		return fieldError("Name", "must be at most %d characters", MaxClientNameLength)
	case !ClientNamePattern.MatchString(name):
		return fieldError("Name", "must contain only alphanumeric characters, hyphens, and underscores")
	}
	return nil
}

// ValidateNetworkID はNASの所属ネットワークを検証する。
// 空はnas-gatewayのDEFAULT_NETWORK_IDを使う意味になる。
func ValidateNetworkID(id string) error {
	if id != "" && !NetworkIDPattern.MatchString(id) {
		return fieldError("NetworkID", "must contain only alphanumeric characters, hyphens, and underscores")
	}
	return nil
}

// ValidateClient は全項目を検証し、見つかったエラーをすべて返す。
func ValidateClient(input *ClientInput) []error {
	return collect(
		ValidateIPv4(input.IP),
		ValidateSecret(input.Secret),
		ValidateClientName(input.Name),
		ValidateNetworkID(input.NetworkID),
	)
}

// NormalizeClientInput は前後の空白を除いた入力を返す。
func NormalizeClientInput(input *ClientInput) *ClientInput {
	return &ClientInput{
		IP:        strings.TrimSpace(input.IP),
		Secret:    strings.TrimSpace(input.Secret),
		Name:      strings.TrimSpace(input.Name),
		NetworkID: strings.TrimSpace(input.NetworkID),
	}
}
