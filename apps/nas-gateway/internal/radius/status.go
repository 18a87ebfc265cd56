package radius

import (
	"log/slog"

	"layeh.com/radius"
)

// HandleStatusServer はStatus-Server(Code=12)を処理する（RFC 5997）。
// 認証ポートではAccess-Accept、アカウンティングポートではAccounting-Responseを返す。
// Message-Authenticator検証失敗時はnilを返す（応答なし）。
func HandleStatusServer(request *radius.Packet, secret []byte, respCode radius.Code, srcIP, traceID string) *radius.Packet {
	if !VerifyMessageAuthenticator(request, secret) {
		slog.Warn("Status-Server: Message-Authenticator検証失敗",
			"event_id", "RADIUS_AUTH_ERR",
			"trace_id", traceID,
			"src_ip", srcIP,
		)
		return nil
	}

	resp := request.Response(respCode)
	ExtractProxyStates(request).Apply(resp)
	SetMessageAuthenticator(resp, secret, request.Authenticator)

	slog.Info("Status-Server: 応答送信",
		"event_id", "PKT_RECV",
		"trace_id", traceID,
		"src_ip", srcIP,
	)
	return resp
}
