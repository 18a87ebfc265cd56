package radius

import (
	"crypto/hmac"
	"crypto/md5"
	"encoding/binary"
	"testing"

	radiuspkg "layeh.com/radius"
	"layeh.com/radius/rfc2869"
)

func addUint32Attr(p *radiuspkg.Packet, attrType int, val uint32) {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, val)
	p.Add(radiuspkg.Type(attrType), b)
}

// setValidMA はリクエストに正しいMessage-Authenticatorを設定する
func setValidMA(t *testing.T, p *radiuspkg.Packet, secret []byte) {
	t.Helper()
	_ = rfc2869.MessageAuthenticator_Set(p, make([]byte, 16))
	data, err := p.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	mac := hmac.New(md5.New, secret)
	mac.Write(data)
	_ = rfc2869.MessageAuthenticator_Set(p, mac.Sum(nil))
}
