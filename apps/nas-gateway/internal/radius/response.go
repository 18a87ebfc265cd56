package radius

import (
	"time"

	"layeh.com/radius"
	"layeh.com/radius/rfc2865"
)

// AcceptParams はAccess-Accept生成に必要なパラメータ
type AcceptParams struct {
	// Class はアカウンティングで返送されるセッショントークン
	Class string
	// SessionTimeout はセッション有効期間（1秒未満なら設定しない）
	SessionTimeout time.Duration
	// ProxyStates はリクエストから抽出されたProxy-State属性
	ProxyStates *ProxyStates
}

// BuildAccessAccept はAccess-Acceptパケットを構築する。
func BuildAccessAccept(request *radius.Packet, secret []byte, params *AcceptParams) *radius.Packet {
	resp := request.Response(radius.CodeAccessAccept)

	if params.Class != "" {
		_ = rfc2865.Class_Set(resp, []byte(params.Class))
	}
	if secs := int(params.SessionTimeout / time.Second); secs > 0 {
		_ = rfc2865.SessionTimeout_Set(resp, rfc2865.SessionTimeout(secs))
	}

	params.ProxyStates.Apply(resp)
	SetMessageAuthenticator(resp, secret, request.Authenticator)
	return resp
}

// BuildAccessReject はAccess-Rejectパケットを構築する。
// reasonは判定の拒否理由で、Reply-Messageとして返す。
func BuildAccessReject(request *radius.Packet, secret []byte, reason string, proxyStates *ProxyStates) *radius.Packet {
	resp := request.Response(radius.CodeAccessReject)

	if reason != "" {
		_ = rfc2865.ReplyMessage_SetString(resp, reason)
	}

	proxyStates.Apply(resp)
	SetMessageAuthenticator(resp, secret, request.Authenticator)
	return resp
}

// BuildAccountingResponse はAccounting-Responseパケットを生成する（RFC 2866）。
// Response Authenticatorはlayeh.com/radiusのEncode()が計算する。
func BuildAccountingResponse(request *radius.Packet, proxyStates *ProxyStates) *radius.Packet {
	resp := request.Response(radius.CodeAccountingResponse)
	proxyStates.Apply(resp)
	return resp
}
