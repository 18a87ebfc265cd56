package radius

import (
	"encoding/binary"
	"errors"
	"net"
	"strings"

	"layeh.com/radius"
	"layeh.com/radius/rfc2865"
)

// RADIUS属性タイプ定数（RFC 2865/2866/2869）
const (
	AttrTypeNASIPAddress    = 4
	AttrTypeAcctStatusType  = 40
	AttrTypeAcctInputOct    = 42
	AttrTypeAcctOutputOct   = 43
	AttrTypeAcctSessionID   = 44
	AttrTypeAcctSessionTime = 46
	AttrTypeAcctInputGigaw  = 52
	AttrTypeAcctOutputGigaw = 53
)

// 属性抽出エラー
var (
	ErrMissingDeviceID   = errors.New("missing Calling-Station-Id and User-Name")
	ErrMissingStatusType = errors.New("missing Acct-Status-Type")
	ErrMissingSessionID  = errors.New("missing Acct-Session-Id")
)

// ExtractAccessAttributes はAccess-Requestから必要な属性を抽出する。
func ExtractAccessAttributes(p *radius.Packet) (*AccessAttributes, error) {
	attrs := &AccessAttributes{
		UserName:      rfc2865.UserName_GetString(p),
		NASIdentifier: rfc2865.NASIdentifier_GetString(p),
		ProxyStates:   ExtractProxyStates(p),
	}
	attrs.DeviceID = deviceID(rfc2865.CallingStationID_GetString(p), attrs.UserName)
	if attrs.DeviceID == "" {
		return nil, ErrMissingDeviceID
	}
	return attrs, nil
}

// ExtractAccountingAttributes はAccounting-Requestから必要な属性を抽出する。
func ExtractAccountingAttributes(p *radius.Packet) (*AccountingAttributes, error) {
	attrs := &AccountingAttributes{}

	// Acct-Status-Type（必須）
	statusTypeAttr := p.Get(radius.Type(AttrTypeAcctStatusType))
	if len(statusTypeAttr) < 4 {
		return nil, ErrMissingStatusType
	}
	attrs.AcctStatusType = binary.BigEndian.Uint32(statusTypeAttr)

	// Acct-Session-Id（必須）
	sessionIDAttr := p.Get(radius.Type(AttrTypeAcctSessionID))
	if len(sessionIDAttr) == 0 {
		return nil, ErrMissingSessionID
	}
	attrs.AcctSessionID = string(sessionIDAttr)

	attrs.DeviceID = deviceID(rfc2865.CallingStationID_GetString(p), rfc2865.UserName_GetString(p))
	if attrs.DeviceID == "" {
		return nil, ErrMissingDeviceID
	}

	// NAS-IP-Address
	nasIPAttr := p.Get(radius.Type(AttrTypeNASIPAddress))
	if len(nasIPAttr) == 4 {
		attrs.NasIPAddress = net.IP(nasIPAttr).String()
	}

	// オクテット数（Gigawordsで上位32ビットを補う）
	attrs.InputOctets = octets(p, AttrTypeAcctInputOct, AttrTypeAcctInputGigaw)
	attrs.OutputOctets = octets(p, AttrTypeAcctOutputOct, AttrTypeAcctOutputGigaw)

	// Acct-Session-Time
	timeAttr := p.Get(radius.Type(AttrTypeAcctSessionTime))
	if len(timeAttr) >= 4 {
		attrs.SessionTime = binary.BigEndian.Uint32(timeAttr)
	}

	attrs.ProxyStates = ExtractProxyStates(p)
	return attrs, nil
}

func octets(p *radius.Packet, lowType, highType int) uint64 {
	var n uint64
	if v := p.Get(radius.Type(lowType)); len(v) >= 4 {
		n = uint64(binary.BigEndian.Uint32(v))
	}
	if v := p.Get(radius.Type(highType)); len(v) >= 4 {
		n += uint64(binary.BigEndian.Uint32(v)) << 32
	}
	return n
}

// deviceID はCalling-Station-Idを優先してデバイス識別子を決定する。
func deviceID(callingStation, userName string) string {
	if id := NormalizeMAC(callingStation); id != "" {
		return id
	}
	return strings.TrimSpace(userName)
}

// NormalizeMAC はMACアドレス形式の文字列を "aa:bb:cc:dd:ee:ff" 形式に正規化する。
// 区切りは "-", ":", "." およびなしを受け付け、MACでなければそのまま返す。
func NormalizeMAC(s string) string {
	s = strings.TrimSpace(s)
	hex := strings.NewReplacer("-", "", ":", "", ".", "").Replace(s)
	if len(hex) != 12 {
		return s
	}
	hw, err := net.ParseMAC(hex[0:2] + ":" + hex[2:4] + ":" + hex[4:6] + ":" + hex[6:8] + ":" + hex[8:10] + ":" + hex[10:12])
	if err != nil {
		return s
	}
	return hw.String()
}
