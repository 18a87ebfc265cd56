// Package registrar は監視ノードの証明書を検証し、ノード登録を管理する。
package registrar

import (
	"context"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"
	"unicode"

	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/config"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/store"
	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/logging"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

const (
	maxNameLength     = 64
	maxLocationLength = 128
)

// RegisterRequest はノード登録要求を表す。
type RegisterRequest struct {
	Name           string   `json:"name"`
	Location       string   `json:"location,omitempty"`
	Capabilities   []string `json:"capabilities"`
	CertificatePEM string   `json:"certificate"`
	ChainPEM       string   `json:"chain,omitempty"` // 中間CA証明書（任意）
}

// RenewRequest は証明書更新要求を表す。
type RenewRequest struct {
	CertificatePEM string   `json:"certificate"`
	ChainPEM       string   `json:"chain,omitempty"`
	Capabilities   []string `json:"capabilities,omitempty"` // 省略時は登録済みの値を維持
}

// RegisterResult は登録・更新結果を表す。
type RegisterResult struct {
	NodeID  string                `json:"node_id"`
	Created bool                  `json:"created"`
	Node    *model.MonitoringNode `json:"node"`
}

// Registrar は監視ノードの登録・更新・失効を行う。
type Registrar struct {
	nodes store.NodeStore
	roots *x509.CertPool
	cfg   *config.Config
	now   func() time.Time
}

// NewRegistrar は新しいRegistrarを生成する。
func NewRegistrar(ns store.NodeStore, roots *x509.CertPool, cfg *config.Config) *Registrar {
	return &Registrar{
		nodes: ns,
		roots: roots,
		cfg:   cfg,
		now:   time.Now,
	}
}

// LoadTrustedIssuers はPEMバンドルから信頼する発行者の証明書プールを読み込む。
func LoadTrustedIssuers(path string) (*x509.CertPool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trusted issuers: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(data) {
		return nil, fmt.Errorf("no certificates found in %s", path)
	}
	return pool, nil
}

// Register はノードを登録する。同一公開鍵での再登録は既存エントリを更新する。
func (r *Registrar) Register(ctx context.Context, req *RegisterRequest) (*RegisterResult, error) {
	if err := validateMetadata(req.Name, req.Location); err != nil {
		return nil, err
	}
	if err := validateCapabilities(req.Capabilities); err != nil {
		return nil, err
	}
	now := r.now()
	cert, err := r.verify(ctx, req.CertificatePEM, req.ChainPEM, now)
	if err != nil {
		r.logReject("", err)
		return nil, err
	}
	nodeID := Fingerprint(cert)

	created := false
	if _, err := r.nodes.GetNode(ctx, nodeID); err != nil {
		if !errors.Is(err, apperr.ErrNodeNotFound) {
			return nil, err
		}
		created = true
	}

	node := newNode(nodeID, cert, now)
	node.Name = req.Name
	node.Location = req.Location
	node.Capabilities = slices.Clone(req.Capabilities)
	if err := r.nodes.PutNode(ctx, node); err != nil {
		return nil, err
	}
	// 初回登録時刻は既存値を返す
	stored, err := r.nodes.GetNode(ctx, nodeID)
	if err != nil {
		return nil, err
	}

	slog.Info("監視ノード登録",
		"event_id", "NODE_REGISTER",
		logging.FieldNodeID, nodeID,
		"created", created,
		"serial", node.Serial,
		"not_after", node.NotAfter,
	)
	return &RegisterResult{NodeID: nodeID, Created: created, Node: stored}, nil
}

// Renew は登録済みノードの証明書を更新する。
// 検証に失敗した場合はノードを無効化し、以降のテレメトリを受け付けない。過去の検知結果は変更しない。
func (r *Registrar) Renew(ctx context.Context, nodeID string, req *RenewRequest) (*RegisterResult, error) {
	existing, err := r.nodes.GetNode(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	if req.Capabilities != nil {
		if err := validateCapabilities(req.Capabilities); err != nil {
			return nil, err
		}
	}

	now := r.now()
	cert, err := r.verify(ctx, req.CertificatePEM, req.ChainPEM, now)
	if err == nil && Fingerprint(cert) != nodeID {
		err = fmt.Errorf("%w: public key does not match node", apperr.ErrCertificateInvalid)
	}
	if err != nil {
		if isStoreError(err) {
			return nil, err
		}
		r.logReject(nodeID, err)
		if derr := r.nodes.SetNodeActive(ctx, nodeID, false); derr != nil {
			return nil, derr
		}
		return nil, err
	}

	node := newNode(nodeID, cert, now)
	node.Name = existing.Name
	node.Location = existing.Location
	node.Capabilities = existing.Capabilities
	if req.Capabilities != nil {
		node.Capabilities = slices.Clone(req.Capabilities)
	}
	node.RegisteredAt = existing.RegisteredAt
	node.RenewedAt = now.Unix()
	if err := r.nodes.PutNode(ctx, node); err != nil {
		return nil, err
	}

	slog.Info("監視ノード証明書更新",
		"event_id", "NODE_RENEW",
		logging.FieldNodeID, nodeID,
		"serial", node.Serial,
		"not_after", node.NotAfter,
	)
	return &RegisterResult{NodeID: nodeID, Node: node}, nil
}

// Revoke は証明書シリアルを失効させ、該当するノードを無効化する。
func (r *Registrar) Revoke(ctx context.Context, serial string) ([]string, error) {
	if serial == "" {
		return nil, apperr.NewValidationError("serial", "required")
	}
	if err := r.nodes.RevokeSerial(ctx, serial); err != nil {
		return nil, err
	}
	nodes, err := r.nodes.ListNodes(ctx)
	if err != nil {
		return nil, err
	}
	var deactivated []string
	for _, n := range nodes {
		if n.Serial != serial || !n.Active {
			continue
		}
		if err := r.nodes.SetNodeActive(ctx, n.ID, false); err != nil {
			return nil, err
		}
		deactivated = append(deactivated, n.ID)
	}
	slog.Warn("証明書シリアル失効",
		"event_id", "NODE_REVOKE",
		"serial", serial,
		"deactivated", len(deactivated),
	)
	return deactivated, nil
}

// verify は証明書を解析し、信頼する発行者への連鎖・有効期限・失効状態を検証する。
func (r *Registrar) verify(ctx context.Context, certPEM, chainPEM string, now time.Time) (*x509.Certificate, error) {
	cert, err := parseCertificate(certPEM)
	if err != nil {
		return nil, err
	}
	if !now.Before(cert.NotAfter) {
		return nil, apperr.ErrCertificateExpired
	}

	intermediates := x509.NewCertPool()
	if chainPEM != "" && !intermediates.AppendCertsFromPEM([]byte(chainPEM)) {
		return nil, fmt.Errorf("%w: chain contains no certificates", apperr.ErrCertificateInvalid)
	}
	opts := x509.VerifyOptions{
		Roots:         r.roots,
		Intermediates: intermediates,
		CurrentTime:   now,
		KeyUsages:     []x509.ExtKeyUsage{x509.ExtKeyUsageAny},
	}
	if _, err := cert.Verify(opts); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrCertificateInvalid, err)
	}

	if err := checkKey(cert); err != nil {
		return nil, err
	}

	revoked, err := r.nodes.IsRevoked(ctx, SerialHex(cert))
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperr.ErrCertificateRevoked
	}
	return cert, nil
}

func (r *Registrar) logReject(nodeID string, err error) {
	slog.Warn("監視ノード証明書検証失敗",
		"event_id", "NODE_REJECT",
		logging.FieldNodeID, nodeID,
		"error", err,
	)
}

// Fingerprint は証明書の公開鍵（SubjectPublicKeyInfo）のSHA-256を16進数で返す。
func Fingerprint(cert *x509.Certificate) string {
	sum := sha256.Sum256(cert.RawSubjectPublicKeyInfo)
	return hex.EncodeToString(sum[:])
}

// SerialHex は証明書シリアルを16進数で返す。
func SerialHex(cert *x509.Certificate) string {
	return cert.SerialNumber.Text(16)
}

func newNode(nodeID string, cert *x509.Certificate, now time.Time) *model.MonitoringNode {
	return &model.MonitoringNode{
		ID:           nodeID,
		Issuer:       cert.Issuer.String(),
		Serial:       SerialHex(cert),
		NotAfter:     cert.NotAfter.Unix(),
		PublicKey:    base64.StdEncoding.EncodeToString(cert.RawSubjectPublicKeyInfo),
		Active:       true,
		RegisteredAt: now.Unix(),
	}
}

func parseCertificate(certPEM string) (*x509.Certificate, error) {
	if len(certPEM) == 0 || len(certPEM) > config.MaxCertificateBytes {
		return nil, apperr.NewValidationError("certificate", "must be a PEM certificate up to 64KiB")
	}
	block, _ := pem.Decode([]byte(certPEM))
	if block == nil || block.Type != "CERTIFICATE" {
		return nil, fmt.Errorf("%w: not a PEM certificate", apperr.ErrCertificateInvalid)
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrCertificateInvalid, err)
	}
	return cert, nil
}

// checkKey はテレメトリ署名に使用できる鍵種別かを確認する。
func checkKey(cert *x509.Certificate) error {
	switch key := cert.PublicKey.(type) {
	case ed25519.PublicKey:
		return nil
	case *ecdsa.PublicKey:
		if key.Curve == elliptic.P256() {
			return nil
		}
	}
	return fmt.Errorf("%w: key must be Ed25519 or ECDSA P-256", apperr.ErrCertificateInvalid)
}

func validateMetadata(name, location string) error {
	if name == "" || len(name) > maxNameLength || !printable(name) {
		return apperr.NewValidationError("name", "must be 1-64 printable characters")
	}
	if len(location) > maxLocationLength || !printable(location) {
		return apperr.NewValidationError("location", "must be at most 128 printable characters")
	}
	return nil
}

func validateCapabilities(caps []string) error {
	if len(caps) == 0 {
		return apperr.NewValidationError("capabilities", "must not be empty")
	}
	seen := make(map[string]struct{}, len(caps))
	for _, c := range caps {
		if !model.IsKnownProtocol(c) {
			return apperr.NewValidationError("capabilities", fmt.Sprintf("unknown protocol %q", c))
		}
		if _, dup := seen[c]; dup {
			return apperr.NewValidationError("capabilities", fmt.Sprintf("duplicate protocol %q", c))
		}
		seen[c] = struct{}{}
	}
	return nil
}

func printable(s string) bool {
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

func isStoreError(err error) bool {
	var se *apperr.StoreError
	return errors.Is(err, apperr.ErrStoreUnavailable) || errors.As(err, &se)
}
