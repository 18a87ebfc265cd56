package radius

import (
	"testing"
	"time"

	radiuspkg "layeh.com/radius"
	"layeh.com/radius/rfc2865"
	"layeh.com/radius/rfc2869"
)

func TestBuildAccessAccept(t *testing.T) {
	secret := []byte("testing123")
	req := radiuspkg.New(radiuspkg.CodeAccessRequest, secret)
	_ = rfc2865.ProxyState_Add(req, []byte("ps-1"))
	_ = rfc2865.ProxyState_Add(req, []byte("ps-2"))

	resp := BuildAccessAccept(req, secret, &AcceptParams{
		Class:          "class-uuid",
		SessionTimeout: 90 * time.Minute,
		ProxyStates:    ExtractProxyStates(req),
	})

	if resp.Code != radiuspkg.CodeAccessAccept {
		t.Errorf("Code = %v, want Access-Accept", resp.Code)
	}
	if resp.Identifier != req.Identifier {
		t.Errorf("Identifier = %d, want %d", resp.Identifier, req.Identifier)
	}
	if got := string(rfc2865.Class_Get(resp)); got != "class-uuid" {
		t.Errorf("Class = %q, want %q", got, "class-uuid")
	}
	if got := rfc2865.SessionTimeout_Get(resp); got != 5400 {
		t.Errorf("Session-Timeout = %d, want 5400", got)
	}
	states, _ := rfc2865.ProxyState_Gets(resp)
	if len(states) != 2 || string(states[0]) != "ps-1" || string(states[1]) != "ps-2" {
		t.Errorf("Proxy-State = %q, want [ps-1 ps-2]", states)
	}
	if _, err := rfc2869.MessageAuthenticator_Lookup(resp); err != nil {
		t.Error("Message-Authenticator should be set")
	}
}

func TestBuildAccessAccept_NoOptionalAttributes(t *testing.T) {
	secret := []byte("testing123")
	req := radiuspkg.New(radiuspkg.CodeAccessRequest, secret)

	resp := BuildAccessAccept(req, secret, &AcceptParams{})

	if _, err := rfc2865.Class_Lookup(resp); err == nil {
		t.Error("Class should not be set")
	}
	if _, err := rfc2865.SessionTimeout_Lookup(resp); err == nil {
		t.Error("Session-Timeout should not be set")
	}
}

func TestBuildAccessReject(t *testing.T) {
	secret := []byte("testing123")
	req := radiuspkg.New(radiuspkg.CodeAccessRequest, secret)
	_ = rfc2865.ProxyState_Add(req, []byte("ps-1"))

	resp := BuildAccessReject(req, secret, "blacklisted", ExtractProxyStates(req))

	if resp.Code != radiuspkg.CodeAccessReject {
		t.Errorf("Code = %v, want Access-Reject", resp.Code)
	}
	if got := rfc2865.ReplyMessage_GetString(resp); got != "blacklisted" {
		t.Errorf("Reply-Message = %q, want %q", got, "blacklisted")
	}
	states, _ := rfc2865.ProxyState_Gets(resp)
	if len(states) != 1 {
		t.Errorf("Proxy-State count = %d, want 1", len(states))
	}
	if _, err := rfc2869.MessageAuthenticator_Lookup(resp); err != nil {
		t.Error("Message-Authenticator should be set")
	}
}

func TestBuildAccountingResponse(t *testing.T) {
	req := radiuspkg.New(radiuspkg.CodeAccountingRequest, []byte("secret"))
	_ = rfc2865.ProxyState_Add(req, []byte("ps-1"))

	resp := BuildAccountingResponse(req, ExtractProxyStates(req))

	if resp.Code != radiuspkg.CodeAccountingResponse {
		t.Errorf("Code = %v, want Accounting-Response", resp.Code)
	}
	states, _ := rfc2865.ProxyState_Gets(resp)
	if len(states) != 1 || string(states[0]) != "ps-1" {
		t.Errorf("Proxy-State = %q, want [ps-1]", states)
	}
}

func TestProxyStates_ApplyNil(t *testing.T) {
	var ps *ProxyStates
	resp := radiuspkg.New(radiuspkg.CodeAccessAccept, []byte("secret"))
	ps.Apply(resp)
	if len(resp.Attributes) != 0 {
		t.Errorf("attributes = %d, want 0", len(resp.Attributes))
	}
}
