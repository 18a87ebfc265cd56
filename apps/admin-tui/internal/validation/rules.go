// Package validation は運用コンソールの入力検証を提供する。
// 検証はエンジンと同じ規則で行い、APIに送る前に不正な入力を弾く。
package validation

import (
	"fmt"
	"regexp"
)

var (
	// DeviceIDPattern はデバイスID（MACアドレスやホスト名、1-64文字）
	DeviceIDPattern = regexp.MustCompile(`^[A-Za-z0-9:._-]{1,64}$`)

	// NetworkIDPattern はネットワークID（1-64文字の英数字、ハイフン、アンダースコア）
	NetworkIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

	// FeaturePattern は機能名（小文字英数字とアンダースコア）
	FeaturePattern = regexp.MustCompile(`^[a-z0-9_]{1,32}$`)

	// RolePattern はデバイスロール。空はロールなし。
	RolePattern = regexp.MustCompile(`^[a-z0-9_]{0,32}$`)

	// SerialPattern は監視ノード証明書のシリアル（16進数）
	SerialPattern = regexp.MustCompile(`^[0-9A-Fa-f]{1,40}$`)

	// SecretPattern はRADIUS共有シークレット（空白を含まないASCII印字可能文字）
	SecretPattern = regexp.MustCompile(`^[\x21-\x7E]{1,128}$`)

	// ClientNamePattern はNAS名
	ClientNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
)

const (
	MaxSecretLength      = 128
	MaxClientNameLength  = 64
	MaxNetworkNameLength = 64
	// MaxFeatures はデバイスが宣言できる機能数の上限
	MaxFeatures = 32
)

// FieldError は入力項目ごとの検証エラー。
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func fieldError(field, format string, args ...any) *FieldError {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// collect はnilでないエラーだけを集める。
func collect(errs ...error) []error {
	var out []error
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}
