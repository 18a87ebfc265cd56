package radius

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/subtle"

	"layeh.com/radius"
	"layeh.com/radius/rfc2869"
)

// VerifyAccountingAuthenticator はAccounting-RequestのRequest Authenticatorを検証する（RFC 2866）。
// 検証式: Authenticator = MD5(Code + ID + Length + 16 zero octets + Attributes + Secret)
func VerifyAccountingAuthenticator(packet *radius.Packet, secret []byte) bool {
	data, err := packet.MarshalBinary()
	if err != nil {
		return false
	}
	if len(data) < 20 {
		return false
	}

	var origAuth [16]byte
	copy(origAuth[:], data[4:20])
	copy(data[4:20], make([]byte, 16))

	h := md5.New()
	h.Write(data)
	h.Write(secret)
	expected := h.Sum(nil)

	return subtle.ConstantTimeCompare(origAuth[:], expected) == 1
}

// VerifyMessageAuthenticator はMessage-Authenticator属性を検証する。
// Request Authenticatorを使用してHMAC-MD5を計算し、パケット内の値と比較する。
func VerifyMessageAuthenticator(packet *radius.Packet, secret []byte) bool {
	origMA, err := rfc2869.MessageAuthenticator_Lookup(packet)
	if err != nil {
		return false
	}
	if len(origMA) != 16 {
		return false
	}

	_ = rfc2869.MessageAuthenticator_Set(packet, make([]byte, 16))

	data, err := packet.MarshalBinary()
	if err != nil {
		_ = rfc2869.MessageAuthenticator_Set(packet, origMA)
		return false
	}

	mac := hmac.New(md5.New, secret)
	mac.Write(data)
	expected := mac.Sum(nil)

	_ = rfc2869.MessageAuthenticator_Set(packet, origMA)

	return hmac.Equal(expected, origMA)
}

// SetMessageAuthenticator は応答パケットにMessage-Authenticator属性を生成・追加する。
// requestAuth はリクエストのAuthenticator（RFC 3579に基づき応答の計算に使用）。
func SetMessageAuthenticator(packet *radius.Packet, secret []byte, requestAuth [16]byte) {
	_ = rfc2869.MessageAuthenticator_Set(packet, make([]byte, 16))

	savedAuth := packet.Authenticator
	packet.Authenticator = requestAuth

	data, err := packet.MarshalBinary()
	if err != nil {
		packet.Authenticator = savedAuth
		return
	}

	mac := hmac.New(md5.New, secret)
	mac.Write(data)
	computed := mac.Sum(nil)

	packet.Authenticator = savedAuth
	_ = rfc2869.MessageAuthenticator_Set(packet, computed)
}
