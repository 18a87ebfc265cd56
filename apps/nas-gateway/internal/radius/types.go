// Package radius はnas-gatewayのRADIUSパケット処理を提供する。
package radius

// AccessAttributes はAccess-Requestから抽出された属性を表す
type AccessAttributes struct {
	DeviceID      string       // Calling-Station-Id（正規化済み）またはUser-Name
	UserName      string       // User-Name（オプション）
	NASIdentifier string       // NAS-Identifier（オプション）
	ProxyStates   *ProxyStates // Proxy-State属性（複数可）
}

// AccountingAttributes はAccounting-Requestから抽出された属性を表す
type AccountingAttributes struct {
	AcctStatusType uint32       // Acct-Status-Type（1:Start, 2:Stop, 3:Interim）
	AcctSessionID  string       // Acct-Session-Id（必須）
	DeviceID       string       // Calling-Station-Id（正規化済み）またはUser-Name
	NasIPAddress   string       // NAS-IP-Address
	InputOctets    uint64       // Acct-Input-Octets + Acct-Input-Gigawords
	OutputOctets   uint64       // Acct-Output-Octets + Acct-Output-Gigawords
	SessionTime    uint32       // Acct-Session-Time
	ProxyStates    *ProxyStates // Proxy-State属性（複数可）
}

// TotalOctets は入出力の合計オクテット数を返す。
func (a *AccountingAttributes) TotalOctets() uint64 {
	return a.InputOctets + a.OutputOctets
}

// Acct-Status-Type値（RFC 2866）
const (
	AcctStatusTypeStart   uint32 = 1
	AcctStatusTypeStop    uint32 = 2
	AcctStatusTypeInterim uint32 = 3
)
