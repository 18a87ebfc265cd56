package trust

import (
	"context"
	"errors"
	"testing"

	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/config"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/mocks"
	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/model"
	"go.uber.org/mock/gomock"
)

func newTestConfig(minScore float64) *config.Config {
	return &config.Config{TrustBaseline: 50, TrustMinScore: minScore}
}

func TestAdjustClampsDelta(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
		want  float64
	}{
		{"範囲内", -7, -7},
		{"下限", -45, -20},
		{"上限", 33, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTS := mocks.NewMockTrustStore(ctrl)
			mockTS.EXPECT().AdjustTrust(gomock.Any(), "dev1", tt.want, gomock.Any(), gomock.Any()).
				Return(&model.TrustScore{DeviceID: "dev1", Score: 50 + tt.want}, nil)

			s := NewService(mockTS, newTestConfig(0))
			ts, err := s.Adjust(context.Background(), "dev1", tt.delta, "test")
			if err != nil {
				t.Fatalf("予期しないエラー: %v", err)
			}
			if ts.Score != 50+tt.want {
				t.Errorf("Score = %v, want %v", ts.Score, 50+tt.want)
			}
		})
	}
}

func TestAllows(t *testing.T) {
	tests := []struct {
		name     string
		minScore float64
		score    float64
		want     bool
	}{
		{"下限以上", 30, 30, true},
		{"下限未満", 30, 29.9, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTS := mocks.NewMockTrustStore(ctrl)
			mockTS.EXPECT().GetTrust(gomock.Any(), "dev1", 50.0).
				Return(&model.TrustScore{DeviceID: "dev1", Score: tt.score}, nil)

			s := NewService(mockTS, newTestConfig(tt.minScore))
			got, err := s.Allows(context.Background(), "dev1")
			if err != nil {
				t.Fatalf("予期しないエラー: %v", err)
			}
			if got != tt.want {
				t.Errorf("Allows = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllowsDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// 下限0の場合はストアを参照しない
	mockTS := mocks.NewMockTrustStore(ctrl)
	s := NewService(mockTS, newTestConfig(0))

	got, err := s.Allows(context.Background(), "dev1")
	if err != nil || !got {
		t.Errorf("Allows = %v, %v; want true, nil", got, err)
	}
}

func TestAllowsStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTS := mocks.NewMockTrustStore(ctrl)
	mockTS.EXPECT().GetTrust(gomock.Any(), "dev1", 50.0).Return(nil, apperr.ErrStoreUnavailable)

	s := NewService(mockTS, newTestConfig(10))
	got, err := s.Allows(context.Background(), "dev1")
	if !errors.Is(err, apperr.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got: %v", err)
	}
	if got {
		t.Error("Allows must fail closed on store error")
	}
}

func TestDeltaForFinding(t *testing.T) {
	tests := []struct {
		score float64
		want  float64
	}{
		{0, 0},
		{50, -10},
		{100, -20},
	}
	for _, tt := range tests {
		f := &model.AnomalyFinding{SeverityScore: tt.score}
		if got := DeltaForFinding(f); got != tt.want {
			t.Errorf("DeltaForFinding(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 10) != 5 || Clamp(-1, 0, 10) != 0 || Clamp(11, 0, 10) != 10 {
		t.Error("Clamp returned unexpected value")
	}
}
