package anomaly

import (
	"errors"
	"fmt"
)

// RejectClass はテレメトリ拒否の分類を表す。
type RejectClass string

const (
	// RejectMalformed はペイロードの形式・範囲不備
	RejectMalformed RejectClass = "malformed"
	// RejectIdentity は未登録・無効ノード、証明書失効、署名不一致
	RejectIdentity RejectClass = "identity"
	// RejectCapability はノードの報告対象外プロトコル
	RejectCapability RejectClass = "capability"
	// RejectRateLimited はノード単位の検知結果レート超過
	RejectRateLimited RejectClass = "rate_limited"
)

// 拒否理由コード
const (
	ReasonUnknownNode        = "unknown_node"
	ReasonInactiveNode       = "inactive_node"
	ReasonCertificateExpired = "certificate_expired"
	ReasonCertificateRevoked = "certificate_revoked"
	ReasonSignatureInvalid   = "signature_invalid"
	ReasonInvalidPayload     = "invalid_payload"
	ReasonProtocolNotAllowed = "protocol_not_allowed"
	ReasonOutOfRange         = "out_of_range"
	ReasonNodeRateLimited    = "node_rate_limited"
)

// RejectError はテレメトリ受付拒否を表す。状態は変更されていない。
type RejectError struct {
	Class  RejectClass
	Reason string
	Cause  error
}

// Error はerrorインターフェースを実装する。
func (e *RejectError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("telemetry rejected: class=%s, reason=%s, cause=%v", e.Class, e.Reason, e.Cause)
	}
	return fmt.Sprintf("telemetry rejected: class=%s, reason=%s", e.Class, e.Reason)
}

// Unwrap は根本原因を返す。
func (e *RejectError) Unwrap() error {
	return e.Cause
}

func reject(class RejectClass, reason string, cause error) *RejectError {
	return &RejectError{Class: class, Reason: reason, Cause: cause}
}

// AsReject はerrがRejectErrorの場合にそれを返す。
func AsReject(err error) (*RejectError, bool) {
	var rerr *RejectError
	if errors.As(err, &rerr) {
		return rerr, true
	}
	return nil, false
}
