package store

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Statistics は統計情報を表す。
type Statistics struct {
	DeviceCount      int64 `json:"device_count"`
	BlacklistCount   int64 `json:"blacklist_count"`
	ClientCount      int64 `json:"client_count"`
	NetworkCount     int64 `json:"network_count"`
	SessionCount     int64 `json:"session_count"`
	AcctSessionCount int64 `json:"acct_session_count"`
	NodeCount        int64 `json:"node_count"`
	BlockCount       int64 `json:"block_count"`
	AlertCount       int64 `json:"alert_count"`
	UpdatedAt        int64 `json:"updated_at"`
}

// StatisticsStore は統計情報へのアクセスを提供する。
type StatisticsStore struct {
	client       *redis.Client
	deviceStore  *DeviceStore
	clientStore  *ClientStore
	networkStore *NetworkStore

	mu       sync.RWMutex
	cache    *Statistics
	cacheTTL time.Duration
}

// NewStatisticsStore は新しいStatisticsStoreを生成する。
func NewStatisticsStore(
	client *redis.Client,
	deviceStore *DeviceStore,
	clientStore *ClientStore,
	networkStore *NetworkStore,
) *StatisticsStore {
	return &StatisticsStore{
		client:       client,
		deviceStore:  deviceStore,
		clientStore:  clientStore,
		networkStore: networkStore,
		cacheTTL:     1 * time.Minute,
	}
}

// Get は統計情報を取得する（1分キャッシュ）。
func (s *StatisticsStore) Get(ctx context.Context) (*Statistics, error) {
	s.mu.RLock()
	if s.cache != nil && time.Now().Unix()-s.cache.UpdatedAt < int64(s.cacheTTL.Seconds()) {
		cached := *s.cache
		s.mu.RUnlock()
		return &cached, nil
	}
	s.mu.RUnlock()

	return s.Refresh(ctx)
}

// Refresh はキャッシュを更新して最新の統計情報を取得する。
func (s *StatisticsStore) Refresh(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{
		UpdatedAt: time.Now().Unix(),
	}

	counters := []struct {
		dst   *int64
		count func(context.Context) (int64, error)
	}{
		{&stats.DeviceCount, s.deviceStore.Count},
		{&stats.BlacklistCount, s.scard(KeyBlacklist)},
		{&stats.ClientCount, s.clientStore.Count},
		{&stats.NetworkCount, s.networkStore.Count},
		{&stats.SessionCount, s.scan(PrefixSession + "*")},
		{&stats.AcctSessionCount, s.scan(PrefixAcctSession + "*")},
		{&stats.NodeCount, s.scard(KeyNodeIndex)},
		{&stats.BlockCount, s.scard(KeyBlockIndex)},
		{&stats.AlertCount, s.llen(KeyAlertIndex)},
	}

	// 並列で各カウントを取得
	var wg sync.WaitGroup
	errs := make([]error, len(counters))
	for i, c := range counters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := c.count(ctx)
			if err != nil {
				errs[i] = err
				return
			}
			*c.dst = n
		}()
	}
	wg.Wait()

	// エラーがあっても部分的な結果を返す（エラーは最初のものを返す）
	for _, err := range errs {
		if err != nil {
			return stats, err
		}
	}

	// キャッシュ更新
	s.mu.Lock()
	s.cache = stats
	s.mu.Unlock()

	return stats, nil
}

// ClearCache はキャッシュをクリアする。
func (s *StatisticsStore) ClearCache() {
	s.mu.Lock()
	s.cache = nil
	s.mu.Unlock()
}

func (s *StatisticsStore) scard(key string) func(context.Context) (int64, error) {
	return func(ctx context.Context) (int64, error) {
		return s.client.SCard(ctx, key).Result()
	}
}

func (s *StatisticsStore) llen(key string) func(context.Context) (int64, error) {
	return func(ctx context.Context) (int64, error) {
		return s.client.LLen(ctx, key).Result()
	}
}

func (s *StatisticsStore) scan(pattern string) func(context.Context) (int64, error) {
	return func(ctx context.Context) (int64, error) {
		return countKeys(ctx, s.client, pattern)
	}
}
