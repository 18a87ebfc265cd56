package radius

import (
	"testing"

	radiuspkg "layeh.com/radius"
	"layeh.com/radius/rfc2869"
)

func TestHandleStatusServer(t *testing.T) {
	secret := []byte("testing123")

	tests := []struct {
		name     string
		validMA  bool
		respCode radiuspkg.Code
		wantNil  bool
	}{
		{name: "認証ポート", validMA: true, respCode: radiuspkg.CodeAccessAccept},
		{name: "アカウンティングポート", validMA: true, respCode: radiuspkg.CodeAccountingResponse},
		{name: "MA不正", validMA: false, respCode: radiuspkg.CodeAccessAccept, wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := radiuspkg.New(radiuspkg.CodeStatusServer, secret)
			if tt.validMA {
				setValidMA(t, req, secret)
			} else {
				_ = rfc2869.MessageAuthenticator_Set(req, make([]byte, 16))
			}

			resp := HandleStatusServer(req, secret, tt.respCode, "192.168.1.1", "trace-001")
			if tt.wantNil {
				if resp != nil {
					t.Error("expected nil response")
				}
				return
			}
			if resp == nil {
				t.Fatal("expected response")
			}
			if resp.Code != tt.respCode {
				t.Errorf("Code = %v, want %v", resp.Code, tt.respCode)
			}
			if _, err := rfc2869.MessageAuthenticator_Lookup(resp); err != nil {
				t.Error("response should have Message-Authenticator")
			}
		})
	}
}
