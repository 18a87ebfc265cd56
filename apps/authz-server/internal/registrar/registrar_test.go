package registrar

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/config"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/store"
	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

var testNow = time.Unix(1700000000, 0)

// testCA はテスト用の認証局を表す。
type testCA struct {
	cert *x509.Certificate
	key  *ecdsa.PrivateKey
	pem  string
}

func newTestCA(t *testing.T, name string, parent *testCA) *testCA {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("鍵生成エラー: %v", err)
	}
	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(time.Now().UnixNano()),
		Subject:               pkix.Name{CommonName: name},
		NotBefore:             testNow.Add(-24 * time.Hour),
		NotAfter:              testNow.Add(365 * 24 * time.Hour),
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	signerCert, signerKey := tmpl, crypto.Signer(key)
	if parent != nil {
		signerCert, signerKey = parent.cert, parent.key
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, signerCert, &key.PublicKey, signerKey)
	if err != nil {
		t.Fatalf("CA証明書生成エラー: %v", err)
	}
	cert, _ := x509.ParseCertificate(der)
	return &testCA{cert: cert, key: key, pem: encodePEM(der)}
}

// issue はpubに対するノード証明書を発行する。
func (ca *testCA) issue(t *testing.T, pub crypto.PublicKey, serial int64, notAfter time.Time) string {
	t.Helper()
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(serial),
		Subject:      pkix.Name{CommonName: "probe"},
		NotBefore:    testNow.Add(-time.Hour),
		NotAfter:     notAfter,
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, ca.cert, pub, ca.key)
	if err != nil {
		t.Fatalf("証明書発行エラー: %v", err)
	}
	return encodePEM(der)
}

func encodePEM(der []byte) string {
	return string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}))
}

func newEd25519Key(t *testing.T) ed25519.PublicKey {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("鍵生成エラー: %v", err)
	}
	return pub
}

type testEnv struct {
	nodes     store.NodeStore
	registrar *Registrar
	ca        *testCA
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	host, port, _ := net.SplitHostPort(mr.Addr())
	cfg := &config.Config{RedisHost: host, RedisPort: port}
	vc, err := store.NewValkeyClient(cfg)
	if err != nil {
		t.Fatalf("NewValkeyClient failed: %v", err)
	}
	t.Cleanup(func() { _ = vc.Close() })

	ca := newTestCA(t, "fleet-root", nil)
	roots := x509.NewCertPool()
	roots.AddCert(ca.cert)

	env := &testEnv{nodes: store.NewNodeStore(vc), ca: ca}
	env.registrar = NewRegistrar(env.nodes, roots, cfg)
	env.registrar.now = func() time.Time { return testNow }
	return env
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	certPEM := env.ca.issue(t, newEd25519Key(t), 0x1a2b, testNow.Add(30*24*time.Hour))

	req := &RegisterRequest{
		Name:           "probe-1",
		Location:       "floor 3",
		Capabilities:   []string{model.ProtocolWiFi, model.ProtocolBLE},
		CertificatePEM: certPEM,
	}
	res, err := env.registrar.Register(ctx, req)
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if !res.Created || len(res.NodeID) != 64 {
		t.Errorf("result = %+v", res)
	}
	if res.Node.Serial != "1a2b" || !res.Node.Active || res.Node.RegisteredAt != testNow.Unix() {
		t.Errorf("node = %+v", res.Node)
	}

	// 同一証明書での再登録はエントリを増やさない
	env.registrar.now = func() time.Time { return testNow.Add(time.Hour) }
	again, err := env.registrar.Register(ctx, req)
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if again.Created || again.NodeID != res.NodeID {
		t.Errorf("re-registration = %+v", again)
	}
	if again.Node.RegisteredAt != testNow.Unix() {
		t.Errorf("RegisteredAt changed: %d", again.Node.RegisteredAt)
	}
	nodes, err := env.nodes.ListNodes(ctx)
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if len(nodes) != 1 {
		t.Errorf("ListNodes() = %d nodes, want 1", len(nodes))
	}
}

func TestRegisterWithIntermediate(t *testing.T) {
	env := newTestEnv(t)
	inter := newTestCA(t, "fleet-issuing", env.ca)
	certPEM := inter.issue(t, newEd25519Key(t), 7, testNow.Add(24*time.Hour))

	req := &RegisterRequest{Name: "probe-2", Capabilities: []string{model.ProtocolZigbee}, CertificatePEM: certPEM}
	if _, err := env.registrar.Register(context.Background(), req); !errors.Is(err, apperr.ErrCertificateInvalid) {
		t.Errorf("without chain: expected ErrCertificateInvalid, got %v", err)
	}

	req.ChainPEM = inter.pem
	if _, err := env.registrar.Register(context.Background(), req); err != nil {
		t.Errorf("予期しないエラー: %v", err)
	}
}

func TestRegisterRejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	other := newTestCA(t, "rogue-root", nil)

	if err := env.nodes.RevokeSerial(ctx, "63"); err != nil {
		t.Fatalf("RevokeSerial failed: %v", err)
	}
	p384, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	if err != nil {
		t.Fatalf("鍵生成エラー: %v", err)
	}

	valid := env.ca.issue(t, newEd25519Key(t), 1, testNow.Add(24*time.Hour))
	tests := []struct {
		name    string
		req     *RegisterRequest
		wantErr error
	}{
		{"信頼されない発行者", &RegisterRequest{Name: "p", Capabilities: []string{"wifi"},
			CertificatePEM: other.issue(t, newEd25519Key(t), 2, testNow.Add(time.Hour))}, apperr.ErrCertificateInvalid},
		{"期限切れ", &RegisterRequest{Name: "p", Capabilities: []string{"wifi"},
			CertificatePEM: env.ca.issue(t, newEd25519Key(t), 3, testNow)}, apperr.ErrCertificateExpired},
		{"失効済み", &RegisterRequest{Name: "p", Capabilities: []string{"wifi"},
			CertificatePEM: env.ca.issue(t, newEd25519Key(t), 0x63, testNow.Add(time.Hour))}, apperr.ErrCertificateRevoked},
		{"P-384鍵", &RegisterRequest{Name: "p", Capabilities: []string{"wifi"},
			CertificatePEM: env.ca.issue(t, &p384.PublicKey, 4, testNow.Add(time.Hour))}, apperr.ErrCertificateInvalid},
		{"PEMでない", &RegisterRequest{Name: "p", Capabilities: []string{"wifi"}, CertificatePEM: "garbage"}, apperr.ErrCertificateInvalid},
		{"未知のプロトコル", &RegisterRequest{Name: "p", Capabilities: []string{"wifi", "smoke-signal"}, CertificatePEM: valid}, apperr.ErrInvalidRequest},
		{"プロトコル重複", &RegisterRequest{Name: "p", Capabilities: []string{"wifi", "wifi"}, CertificatePEM: valid}, apperr.ErrInvalidRequest},
		{"能力なし", &RegisterRequest{Name: "p", CertificatePEM: valid}, apperr.ErrInvalidRequest},
		{"名前なし", &RegisterRequest{Capabilities: []string{"wifi"}, CertificatePEM: valid}, apperr.ErrInvalidRequest},
		{"名前に制御文字", &RegisterRequest{Name: "p\n1", Capabilities: []string{"wifi"}, CertificatePEM: valid}, apperr.ErrInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.registrar.Register(ctx, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	nodes, err := env.nodes.ListNodes(ctx)
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if len(nodes) != 0 {
		t.Errorf("rejected registrations must not create nodes, got %d", len(nodes))
	}
}

func TestRenew(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	pub := newEd25519Key(t)

	res, err := env.registrar.Register(ctx, &RegisterRequest{
		Name: "probe-1", Capabilities: []string{model.ProtocolWiFi},
		CertificatePEM: env.ca.issue(t, pub, 10, testNow.Add(24*time.Hour)),
	})
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}

	renewed, err := env.registrar.Renew(ctx, res.NodeID, &RenewRequest{
		CertificatePEM: env.ca.issue(t, pub, 11, testNow.Add(48*time.Hour)),
		Capabilities:   []string{model.ProtocolWiFi, model.ProtocolBLE},
	})
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if renewed.Node.Serial != "b" || renewed.Node.RenewedAt != testNow.Unix() || len(renewed.Node.Capabilities) != 2 {
		t.Errorf("renewed node = %+v", renewed.Node)
	}
	if renewed.Node.Name != "probe-1" {
		t.Errorf("Name = %q, want probe-1", renewed.Node.Name)
	}

	// 別の公開鍵による更新は失敗し、ノードは無効化される
	_, err = env.registrar.Renew(ctx, res.NodeID, &RenewRequest{
		CertificatePEM: env.ca.issue(t, newEd25519Key(t), 12, testNow.Add(48*time.Hour)),
	})
	if !errors.Is(err, apperr.ErrCertificateInvalid) {
		t.Errorf("expected ErrCertificateInvalid, got %v", err)
	}
	node, err := env.nodes.GetNode(ctx, res.NodeID)
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if node.Active {
		t.Error("node should be inactive after failed renewal")
	}

	if _, err := env.registrar.Renew(ctx, "unknown", &RenewRequest{}); !errors.Is(err, apperr.ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
}

func TestRevoke(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.registrar.Register(ctx, &RegisterRequest{
		Name: "probe-1", Capabilities: []string{model.ProtocolLoRaWAN},
		CertificatePEM: env.ca.issue(t, newEd25519Key(t), 0xff, testNow.Add(24*time.Hour)),
	})
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}

	deactivated, err := env.registrar.Revoke(ctx, "ff")
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if len(deactivated) != 1 || deactivated[0] != res.NodeID {
		t.Errorf("deactivated = %v", deactivated)
	}
	revoked, err := env.nodes.IsRevoked(ctx, "ff")
	if err != nil || !revoked {
		t.Errorf("IsRevoked = %v, %v", revoked, err)
	}

	if _, err := env.registrar.Revoke(ctx, ""); !errors.Is(err, apperr.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestLoadTrustedIssuers(t *testing.T) {
	ca := newTestCA(t, "root", nil)
	dir := t.TempDir()

	path := filepath.Join(dir, "issuers.pem")
	if err := os.WriteFile(path, []byte(ca.pem), 0o600); err != nil {
		t.Fatalf("書き込みエラー: %v", err)
	}
	if _, err := LoadTrustedIssuers(path); err != nil {
		t.Errorf("予期しないエラー: %v", err)
	}

	empty := filepath.Join(dir, "empty.pem")
	if err := os.WriteFile(empty, []byte("nothing"), 0o600); err != nil {
		t.Fatalf("書き込みエラー: %v", err)
	}
	if _, err := LoadTrustedIssuers(empty); err == nil {
		t.Error("expected error for bundle without certificates")
	}
	if _, err := LoadTrustedIssuers(filepath.Join(dir, "missing.pem")); err == nil {
		t.Error("expected error for missing file")
	}
}
