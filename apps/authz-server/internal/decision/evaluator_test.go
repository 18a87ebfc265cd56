package decision

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/config"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/mocks"
	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/model"
	"go.uber.org/mock/gomock"
)

var testNow = time.Unix(1700000000, 0)

const (
	testDevice  = "aa:bb:cc:dd:ee:01"
	testNetwork = "net1"
)

type testEnv struct {
	devices  *mocks.MockDeviceStore
	sessions *mocks.MockSessionStore
	networks *mocks.MockNetworkStore
	usage    *mocks.MockUsageStore
	blocks   *mocks.MockBlockStore
	limiter  *mocks.MockRateLimiter
	trust    *mocks.MockTrustGate
	ev       *Evaluator
}

func newTestConfig() *config.Config {
	return &config.Config{
		SessionTTL:  time.Hour,
		UsageWindow: 24 * time.Hour,
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	env := &testEnv{
		devices:  mocks.NewMockDeviceStore(ctrl),
		sessions: mocks.NewMockSessionStore(ctrl),
		networks: mocks.NewMockNetworkStore(ctrl),
		usage:    mocks.NewMockUsageStore(ctrl),
		blocks:   mocks.NewMockBlockStore(ctrl),
		limiter:  mocks.NewMockRateLimiter(ctrl),
		trust:    mocks.NewMockTrustGate(ctrl),
	}
	env.ev = NewEvaluator(env.devices, env.sessions, env.networks, env.usage, env.blocks,
		env.limiter, env.trust, newTestConfig())
	env.ev.now = func() time.Time { return testNow }
	return env
}

func (env *testEnv) expectAttempt(action string, exceeded bool) {
	env.limiter.EXPECT().CheckAndIncrement(gomock.Any(), testDevice, action).Return(exceeded, nil)
}

func (env *testEnv) expectNoVeto() {
	env.devices.EXPECT().IsBlacklisted(gomock.Any(), testDevice).Return(false, nil)
	env.blocks.EXPECT().GetBlock(gomock.Any(), testDevice, testNow).Return(nil, nil)
}

func (env *testEnv) expectSession() {
	env.sessions.EXPECT().GetSession(gomock.Any(), testDevice, testNow).
		Return(&model.Session{DeviceID: testDevice, AuthenticatedAt: testNow.Unix(), ExpiresAt: testNow.Add(time.Hour).Unix()}, nil)
}

func (env *testEnv) expectTrusted() {
	env.trust.EXPECT().Allows(gomock.Any(), testDevice).Return(true, nil)
}

func (env *testEnv) expectDevice(d *model.Device) {
	env.devices.EXPECT().GetDevice(gomock.Any(), testDevice).Return(d, nil)
}

func testDeviceRecord() *model.Device {
	return &model.Device{
		ID:                testDevice,
		SupportedFeatures: []string{"use_2m_phy"},
		Quota:             1000,
		Mode:              model.ModeBoth,
	}
}

func int64Ptr(v int64) *int64 { return &v }

func assertResult(t *testing.T, got *model.DecisionResult, allowed bool, rule, reason string) {
	t.Helper()
	if got == nil {
		t.Fatal("result is nil")
	}
	if got.Allowed != allowed || got.MatchedRule != rule || got.Reason != reason {
		t.Errorf("result = %+v, want {Allowed:%v MatchedRule:%s Reason:%s}", got, allowed, rule, reason)
	}
}

func TestDecideMalformed(t *testing.T) {
	tests := []struct {
		name string
		req  *model.DecisionRequest
	}{
		{"nil", nil},
		{"device_id空", &model.DecisionRequest{Action: model.ActionAuthenticate}},
		{"device_idに空白", &model.DecisionRequest{DeviceID: "a b", Action: model.ActionAuthenticate}},
		{"action空", &model.DecisionRequest{DeviceID: testDevice}},
		{"connectにnetwork_idなし", &model.DecisionRequest{DeviceID: testDevice, Action: model.ActionConnect}},
		{"transmitにdata_sizeなし", &model.DecisionRequest{DeviceID: testDevice, Action: model.ActionTransmit, NetworkID: testNetwork}},
		{"transmitに負のdata_size", &model.DecisionRequest{DeviceID: testDevice, Action: model.ActionTransmit, NetworkID: testNetwork, DataSize: int64Ptr(-1)}},
		{"allocateにresourcesなし", &model.DecisionRequest{DeviceID: testDevice, Action: model.ActionAllocateResources}},
		{"機能名の不一致", &model.DecisionRequest{DeviceID: testDevice, Action: "use_2m_phy", Feature: "le_coded"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// モックに期待値を設定しないことで、状態変更が無いことを確認する
			env := newTestEnv(t)
			got, err := env.ev.Decide(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("予期しないエラー: %v", err)
			}
			assertResult(t, got, false, model.RuleDefaultDeny, model.ReasonMalformedRequest)
		})
	}
}

// 未知のアクションは拒否し、試行はunknownカウンタに加算する
func TestDecideUnknownAction(t *testing.T) {
	storeErr := apperr.NewStoreError("EVAL", "rl:"+testDevice+":unknown",
		fmt.Errorf("%w: connection refused", apperr.ErrStoreUnavailable))

	tests := []struct {
		name       string
		exceeded   bool
		limiterErr error
		wantReason string
		wantErr    bool
	}{
		{name: "上限内", wantReason: model.ReasonUnknownAction},
		{name: "上限超過", exceeded: true, wantReason: model.ReasonRateLimited},
		{name: "ストア障害", limiterErr: storeErr, wantReason: model.ReasonStoreUnavailable, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.limiter.EXPECT().CheckAndIncrement(gomock.Any(), testDevice, model.RateBucketUnknown).
				Return(tt.exceeded, tt.limiterErr)
			// ブラックリスト・ブロックは参照しない

			got, err := env.ev.Decide(context.Background(), &model.DecisionRequest{DeviceID: testDevice, Action: "launch_rockets"})
			if tt.wantErr {
				if !errors.Is(err, apperr.ErrStoreUnavailable) {
					t.Errorf("expected ErrStoreUnavailable, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("予期しないエラー: %v", err)
			}
			assertResult(t, got, false, model.RuleDefaultDeny, tt.wantReason)
		})
	}
}

func TestDecideBlacklistVeto(t *testing.T) {
	requests := []*model.DecisionRequest{
		{DeviceID: testDevice, Action: model.ActionAuthenticate},
		{DeviceID: testDevice, Action: model.ActionConnect, NetworkID: testNetwork},
		{DeviceID: testDevice, Action: model.ActionTransmit, NetworkID: testNetwork, DataSize: int64Ptr(1)},
		{DeviceID: testDevice, Action: model.ActionAllocateResources, Resources: int64Ptr(1)},
		{DeviceID: testDevice, Action: "use_2m_phy"},
	}
	for _, req := range requests {
		t.Run(req.Action, func(t *testing.T) {
			env := newTestEnv(t)
			env.expectAttempt(req.Action, false)
			env.devices.EXPECT().IsBlacklisted(gomock.Any(), testDevice).Return(true, nil)

			got, err := env.ev.Decide(context.Background(), req)
			if err != nil {
				t.Fatalf("予期しないエラー: %v", err)
			}
			assertResult(t, got, false, model.RuleBlacklistVeto, model.ReasonBlacklisted)
		})
	}
}

func TestDecideBlockVeto(t *testing.T) {
	tests := []struct {
		name  string
		block *model.Block
	}{
		{"一時ブロック", &model.Block{DeviceID: testDevice, Kind: model.BlockTemporary, ExpiresAt: testNow.Add(time.Minute).Unix()}},
		{"永続ブロック", &model.Block{DeviceID: testDevice, Kind: model.BlockPermanent}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.expectAttempt(model.ActionAuthenticate, false)
			env.devices.EXPECT().IsBlacklisted(gomock.Any(), testDevice).Return(false, nil)
			env.blocks.EXPECT().GetBlock(gomock.Any(), testDevice, testNow).Return(tt.block, nil)

			got, err := env.ev.Decide(context.Background(), &model.DecisionRequest{DeviceID: testDevice, Action: model.ActionAuthenticate})
			if err != nil {
				t.Fatalf("予期しないエラー: %v", err)
			}
			assertResult(t, got, false, model.RuleBlockVeto, model.ReasonBlocked)
		})
	}
}

func TestDecideAuthenticate(t *testing.T) {
	req := &model.DecisionRequest{DeviceID: testDevice, Action: model.ActionAuthenticate}

	t.Run("許可でセッション作成", func(t *testing.T) {
		env := newTestEnv(t)
		env.expectAttempt(req.Action, false)
		env.expectNoVeto()
		env.expectDevice(testDeviceRecord())
		env.expectTrusted()
		env.sessions.EXPECT().CreateSession(gomock.Any(), testDevice, testNow, time.Hour).
			Return(&model.Session{DeviceID: testDevice}, nil)

		got, err := env.ev.Decide(context.Background(), req)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		assertResult(t, got, true, RuleAuthenticate, model.ReasonAllowed)
	})

	t.Run("未登録デバイス", func(t *testing.T) {
		env := newTestEnv(t)
		env.expectAttempt(req.Action, false)
		env.expectNoVeto()
		env.devices.EXPECT().GetDevice(gomock.Any(), testDevice).Return(nil, apperr.ErrDeviceNotFound)
		env.devices.EXPECT().IncrAuthFailure(gomock.Any(), testDevice, config.AuthFailureTTL).Return(int64(1), nil)

		got, err := env.ev.Decide(context.Background(), req)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		assertResult(t, got, false, model.RuleDefaultDeny, model.ReasonUnknownDevice)
	})

	t.Run("レート上限超過", func(t *testing.T) {
		env := newTestEnv(t)
		env.expectAttempt(req.Action, true)
		env.expectNoVeto()
		env.expectDevice(testDeviceRecord())

		got, err := env.ev.Decide(context.Background(), req)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		assertResult(t, got, false, model.RuleDefaultDeny, model.ReasonRateLimited)
		if !got.Exhausted() {
			t.Error("rate limited result should be exhausted")
		}
	})

	t.Run("信頼スコア不足", func(t *testing.T) {
		env := newTestEnv(t)
		env.expectAttempt(req.Action, false)
		env.expectNoVeto()
		env.expectDevice(testDeviceRecord())
		env.trust.EXPECT().Allows(gomock.Any(), testDevice).Return(false, nil)

		got, err := env.ev.Decide(context.Background(), req)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		assertResult(t, got, false, model.RuleDefaultDeny, model.ReasonLowTrust)
	})
}

func TestDecideConnect(t *testing.T) {
	req := &model.DecisionRequest{DeviceID: testDevice, Action: model.ActionConnect, NetworkID: testNetwork}
	network := &model.Network{ID: testNetwork, MaxDevices: 2}

	t.Run("空き容量あり", func(t *testing.T) {
		env := newTestEnv(t)
		env.expectAttempt(req.Action, false)
		env.expectNoVeto()
		env.expectSession()
		env.expectTrusted()
		env.networks.EXPECT().GetNetwork(gomock.Any(), testNetwork).Return(network, nil)
		env.networks.EXPECT().TryConnect(gomock.Any(), testNetwork, testDevice, int64(2), testNow).Return(true, nil)

		got, err := env.ev.Decide(context.Background(), req)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		assertResult(t, got, true, RuleConnect, model.ReasonAllowed)
	})

	// 最大2台のネットワークに2台接続済みの場合、認証済みでも拒否
	t.Run("容量上限", func(t *testing.T) {
		env := newTestEnv(t)
		env.expectAttempt(req.Action, false)
		env.expectNoVeto()
		env.expectSession()
		env.expectTrusted()
		env.networks.EXPECT().GetNetwork(gomock.Any(), testNetwork).Return(network, nil)
		env.networks.EXPECT().TryConnect(gomock.Any(), testNetwork, testDevice, int64(2), testNow).Return(false, nil)

		got, err := env.ev.Decide(context.Background(), req)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		assertResult(t, got, false, model.RuleDefaultDeny, model.ReasonNetworkFull)
	})

	t.Run("未登録ネットワーク", func(t *testing.T) {
		env := newTestEnv(t)
		env.expectAttempt(req.Action, false)
		env.expectNoVeto()
		env.expectSession()
		env.expectTrusted()
		env.networks.EXPECT().GetNetwork(gomock.Any(), testNetwork).Return(nil, apperr.ErrNetworkNotFound)

		got, _ := env.ev.Decide(context.Background(), req)
		assertResult(t, got, false, model.RuleDefaultDeny, model.ReasonUnknownNetwork)
	})

	t.Run("セッションなし", func(t *testing.T) {
		env := newTestEnv(t)
		env.expectAttempt(req.Action, false)
		env.expectNoVeto()
		env.sessions.EXPECT().GetSession(gomock.Any(), testDevice, testNow).Return(nil, nil)

		got, _ := env.ev.Decide(context.Background(), req)
		assertResult(t, got, false, model.RuleDefaultDeny, model.ReasonNoSession)
	})
}

func TestDecideTransmit(t *testing.T) {
	newReq := func(size int64) *model.DecisionRequest {
		return &model.DecisionRequest{DeviceID: testDevice, Action: model.ActionTransmit, NetworkID: testNetwork, DataSize: int64Ptr(size)}
	}

	tests := []struct {
		name       string
		size       int64
		consumed   bool
		wantAllow  bool
		wantReason string
	}{
		{"クォータちょうど", 1000, true, true, model.ReasonAllowed},
		{"クォータ超過", 1001, false, false, model.ReasonQuotaExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.expectAttempt(model.ActionTransmit, false)
			env.expectNoVeto()
			env.expectSession()
			env.expectTrusted()
			env.networks.EXPECT().IsConnected(gomock.Any(), testNetwork, testDevice).Return(true, nil)
			env.expectDevice(testDeviceRecord())
			env.usage.EXPECT().TryConsume(gomock.Any(), testDevice, tt.size, int64(1000), 24*time.Hour).
				Return(tt.consumed, int64(0), nil)

			got, err := env.ev.Decide(context.Background(), newReq(tt.size))
			if err != nil {
				t.Fatalf("予期しないエラー: %v", err)
			}
			rule := RuleTransmit
			if !tt.wantAllow {
				rule = model.RuleDefaultDeny
			}
			assertResult(t, got, tt.wantAllow, rule, tt.wantReason)
		})
	}

	t.Run("セッションなしは常に拒否", func(t *testing.T) {
		env := newTestEnv(t)
		env.expectAttempt(model.ActionTransmit, false)
		env.expectNoVeto()
		// 失効済みセッション
		env.sessions.EXPECT().GetSession(gomock.Any(), testDevice, testNow).
			Return(&model.Session{DeviceID: testDevice, ExpiresAt: testNow.Unix()}, nil)

		got, _ := env.ev.Decide(context.Background(), newReq(0))
		assertResult(t, got, false, model.RuleDefaultDeny, model.ReasonNoSession)
	})

	t.Run("未接続", func(t *testing.T) {
		env := newTestEnv(t)
		env.expectAttempt(model.ActionTransmit, false)
		env.expectNoVeto()
		env.expectSession()
		env.expectTrusted()
		env.networks.EXPECT().IsConnected(gomock.Any(), testNetwork, testDevice).Return(false, nil)

		got, _ := env.ev.Decide(context.Background(), newReq(10))
		assertResult(t, got, false, model.RuleDefaultDeny, model.ReasonNotConnected)
	})
}

// countingLimiter は固定ウィンドウ内の試行回数を数えるテスト用のレート制限器。
type countingLimiter struct {
	limit  int
	counts map[string]int
}

func (l *countingLimiter) CheckAndIncrement(_ context.Context, subject, action string) (bool, error) {
	key := subject + ":" + action
	l.counts[key]++
	return l.counts[key] > l.limit, nil
}

func TestDecideFeatureActionRateLimit(t *testing.T) {
	env := newTestEnv(t)
	limiter := &countingLimiter{limit: 5, counts: map[string]int{}}
	env.ev.limiter = limiter

	env.devices.EXPECT().IsBlacklisted(gomock.Any(), testDevice).Return(false, nil).Times(6)
	env.blocks.EXPECT().GetBlock(gomock.Any(), testDevice, testNow).Return(nil, nil).Times(6)
	env.sessions.EXPECT().GetSession(gomock.Any(), testDevice, testNow).
		Return(&model.Session{DeviceID: testDevice, ExpiresAt: testNow.Add(time.Hour).Unix()}, nil).Times(6)
	env.devices.EXPECT().GetDevice(gomock.Any(), testDevice).Return(testDeviceRecord(), nil).Times(6)
	env.trust.EXPECT().Allows(gomock.Any(), testDevice).Return(true, nil).Times(5)

	req := &model.DecisionRequest{DeviceID: testDevice, Action: "use_2m_phy"}
	for i := 1; i <= 6; i++ {
		got, err := env.ev.Decide(context.Background(), req)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if i <= 5 {
			assertResult(t, got, true, RuleFeaturePrefix+"use_2m_phy", model.ReasonAllowed)
		} else {
			assertResult(t, got, false, model.RuleDefaultDeny, model.ReasonRateLimited)
		}
	}
	if limiter.counts[testDevice+":use_2m_phy"] != 6 {
		t.Errorf("counter = %d, want 6", limiter.counts[testDevice+":use_2m_phy"])
	}
}

func TestDecideFeatureNotSupported(t *testing.T) {
	env := newTestEnv(t)
	env.expectAttempt("use_long_range", false)
	env.expectNoVeto()
	env.expectSession()
	env.expectDevice(testDeviceRecord())

	got, err := env.ev.Decide(context.Background(), &model.DecisionRequest{DeviceID: testDevice, Action: "use_long_range"})
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	assertResult(t, got, false, model.RuleDefaultDeny, model.ReasonFeatureNotSupported)
}

func TestDecideAllocateResources(t *testing.T) {
	admin := testDeviceRecord()
	admin.Role = model.RoleNetworkAdmin

	tests := []struct {
		name      string
		device    *model.Device
		resources int64
		want      bool
	}{
		{"network_admin", admin, 4, true},
		{"ロールなし", testDeviceRecord(), 4, false},
		{"要求量0", admin, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.expectAttempt(model.ActionAllocateResources, false)
			env.expectNoVeto()
			env.expectSession()
			env.expectTrusted()
			env.expectDevice(tt.device)

			got, err := env.ev.Decide(context.Background(), &model.DecisionRequest{
				DeviceID: testDevice, Action: model.ActionAllocateResources, Resources: int64Ptr(tt.resources),
			})
			if err != nil {
				t.Fatalf("予期しないエラー: %v", err)
			}
			if tt.want {
				assertResult(t, got, true, RuleAllocateResources, model.ReasonAllowed)
			} else {
				assertResult(t, got, false, model.RuleDefaultDeny, model.ReasonNotAuthorized)
			}
		})
	}
}

func TestDecideStoreUnavailable(t *testing.T) {
	storeErr := apperr.NewStoreError("IsBlacklisted", "blacklist",
		fmt.Errorf("%w: connection refused", apperr.ErrStoreUnavailable))

	tests := []struct {
		name  string
		setup func(env *testEnv)
	}{
		{"レートカウンタ", func(env *testEnv) {
			env.limiter.EXPECT().CheckAndIncrement(gomock.Any(), testDevice, model.ActionAuthenticate).Return(false, storeErr)
		}},
		{"ブラックリスト", func(env *testEnv) {
			env.expectAttempt(model.ActionAuthenticate, false)
			env.devices.EXPECT().IsBlacklisted(gomock.Any(), testDevice).Return(false, storeErr)
		}},
		{"デバイス", func(env *testEnv) {
			env.expectAttempt(model.ActionAuthenticate, false)
			env.expectNoVeto()
			env.devices.EXPECT().GetDevice(gomock.Any(), testDevice).Return(nil, storeErr)
		}},
		{"信頼スコア", func(env *testEnv) {
			env.expectAttempt(model.ActionAuthenticate, false)
			env.expectNoVeto()
			env.expectDevice(testDeviceRecord())
			env.trust.EXPECT().Allows(gomock.Any(), testDevice).Return(false, errors.New("timeout"))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			tt.setup(env)

			got, err := env.ev.Decide(context.Background(), &model.DecisionRequest{DeviceID: testDevice, Action: model.ActionAuthenticate})
			if !errors.Is(err, apperr.ErrStoreUnavailable) {
				t.Errorf("expected ErrStoreUnavailable, got: %v", err)
			}
			assertResult(t, got, false, model.RuleDefaultDeny, model.ReasonStoreUnavailable)
		})
	}
}
