package anomaly

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"fmt"

	"github.com/oyaguma3/fleetguard/pkg/apperr"
)

// VerifySignature はノードの登録済み公開鍵（PKIX DER, Base64）でペイロードの署名を検証する。
// Ed25519は生ペイロード、ECDSAはSHA-256ダイジェストに対するASN.1署名を受け付ける。
func VerifySignature(publicKeyB64 string, payload, signature []byte) error {
	der, err := base64.StdEncoding.DecodeString(publicKeyB64)
	if err != nil {
		return fmt.Errorf("%w: decode public key: %v", apperr.ErrSignatureInvalid, err)
	}
	pub, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return fmt.Errorf("%w: parse public key: %v", apperr.ErrSignatureInvalid, err)
	}

	switch key := pub.(type) {
	case ed25519.PublicKey:
		if ed25519.Verify(key, payload, signature) {
			return nil
		}
	case *ecdsa.PublicKey:
		digest := sha256.Sum256(payload)
		if ecdsa.VerifyASN1(key, digest[:], signature) {
			return nil
		}
	default:
		return fmt.Errorf("%w: unsupported key type %T", apperr.ErrSignatureInvalid, pub)
	}
	return apperr.ErrSignatureInvalid
}
