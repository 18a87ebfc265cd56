package valkey

import (
	"context"
	"errors"
	"fmt"

	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/redis/go-redis/v9"
)

// NewClient はValkeyクライアントを生成し、ConnectTimeout以内のPINGで疎通を確認する。
// 疎通できない場合はErrStoreUnavailableを返す。
func NewClient(opts *Options) (*redis.Client, error) {
	if opts == nil {
		opts = NewOptions(ProfileServer, "", "")
	}
	client := redis.NewClient(opts.redisOptions())

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %s: %v", apperr.ErrStoreUnavailable, opts.Addr, err)
	}
	return client, nil
}

// IsKeyNotFound はキーが見つからないエラーかどうかを判定する。
func IsKeyNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}

// Wrap はValkey操作のエラーをStoreErrorに変換する。
// redis.Nilは呼び出し側で判定するためそのまま返す。
// それ以外はErrStoreUnavailableとして扱い、呼び出し側はフェイルクローズする。
func Wrap(operation, key string, err error) error {
	if err == nil || IsKeyNotFound(err) {
		return err
	}
	return apperr.NewStoreError(operation, key,
		fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err))
}
