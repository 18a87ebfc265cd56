package store

import (
	"context"
	"errors"
	"slices"
	"strconv"

	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/model"
	"github.com/oyaguma3/fleetguard/pkg/valkey"
	"github.com/redis/go-redis/v9"
)

// nodeStore はNodeStoreインターフェースの実装。
type nodeStore struct {
	vc *ValkeyClient
}

// NewNodeStore は新しいNodeStoreを生成する。
func NewNodeStore(vc *ValkeyClient) NodeStore {
	return &nodeStore{vc: vc}
}

// GetNode は監視ノードを取得する。
func (s *nodeStore) GetNode(ctx context.Context, nodeID string) (*model.MonitoringNode, error) {
	key := KeyPrefixNode + nodeID
	m, err := s.vc.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, valkey.Wrap("GetNode", key, err)
	}
	return decodeNode(key, nodeID, m)
}

func decodeNode(key, nodeID string, m map[string]string) (*model.MonitoringNode, error) {
	if len(m) == 0 {
		return nil, apperr.ErrNodeNotFound
	}
	var n model.MonitoringNode
	if err := valkey.DecodeHash(m, &n); err != nil {
		return nil, apperr.NewStoreError("GetNode", key, err)
	}
	n.ID = nodeID
	return &n, nil
}

// PutNode は監視ノードを登録または更新する。
// registered_atは初回登録時のみ設定する。
func (s *nodeStore) PutNode(ctx context.Context, n *model.MonitoringNode) error {
	key := KeyPrefixNode + n.ID
	fields, err := valkey.EncodeHash(n)
	if err != nil {
		return apperr.NewStoreError("PutNode", key, err)
	}
	delete(fields, "registered_at")
	_, err = s.vc.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fields)
		pipe.HSetNX(ctx, key, "registered_at", strconv.FormatInt(n.RegisteredAt, 10))
		pipe.SAdd(ctx, KeyNodeIndex, n.ID)
		return nil
	})
	return valkey.Wrap("PutNode", key, err)
}

// SetNodeActive はノードの有効状態を設定する。
func (s *nodeStore) SetNodeActive(ctx context.Context, nodeID string, active bool) error {
	key := KeyPrefixNode + nodeID
	n, err := s.vc.Client().Exists(ctx, key).Result()
	if err != nil {
		return valkey.Wrap("SetNodeActive", key, err)
	}
	if n == 0 {
		return apperr.ErrNodeNotFound
	}
	err = s.vc.Client().HSet(ctx, key, "active", strconv.FormatBool(active)).Err()
	return valkey.Wrap("SetNodeActive", key, err)
}

// ListNodes は登録済みノードをID順に返す。
func (s *nodeStore) ListNodes(ctx context.Context) ([]*model.MonitoringNode, error) {
	ids, err := s.vc.Client().SMembers(ctx, KeyNodeIndex).Result()
	if err != nil {
		return nil, valkey.Wrap("ListNodes", KeyNodeIndex, err)
	}
	slices.Sort(ids)

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = s.vc.Client().Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, KeyPrefixNode+id)
		}
		return nil
	})
	if err != nil {
		return nil, valkey.Wrap("ListNodes", KeyNodeIndex, err)
	}

	nodes := make([]*model.MonitoringNode, 0, len(ids))
	for i, id := range ids {
		n, err := decodeNode(KeyPrefixNode+id, id, cmds[i].Val())
		if err != nil {
			if errors.Is(err, apperr.ErrNodeNotFound) {
				continue
			}
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// IsRevoked は証明書シリアルが失効済みかを返す。
func (s *nodeStore) IsRevoked(ctx context.Context, serial string) (bool, error) {
	ok, err := s.vc.Client().SIsMember(ctx, KeyRevokedSerials, serial).Result()
	if err != nil {
		return false, valkey.Wrap("IsRevoked", KeyRevokedSerials, err)
	}
	return ok, nil
}

// RevokeSerial は証明書シリアルを失効リストに追加する。
func (s *nodeStore) RevokeSerial(ctx context.Context, serial string) error {
	return valkey.Wrap("RevokeSerial", KeyRevokedSerials,
		s.vc.Client().SAdd(ctx, KeyRevokedSerials, serial).Err())
}
