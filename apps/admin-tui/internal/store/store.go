package store

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// scanBatch はSCAN 1回あたりのCOUNTヒント。
const scanBatch = 100

// eachKey はpatternに一致するキーをSCANで順に渡す。
// KEYSはValkeyを長時間ブロックするため使わない。
func eachKey(ctx context.Context, client *redis.Client, pattern string, fn func(key string)) error {
	iter := client.Scan(ctx, 0, pattern, scanBatch).Iterator()
	for iter.Next(ctx) {
		fn(iter.Val())
	}
	return iter.Err()
}

// scanKeys はpatternに一致するキーを列挙する。
func scanKeys(ctx context.Context, client *redis.Client, pattern string) ([]string, error) {
	var keys []string
	if err := eachKey(ctx, client, pattern, func(k string) { keys = append(keys, k) }); err != nil {
		return nil, err
	}
	return keys, nil
}

// countKeys はpatternに一致するキーの数を返す。
func countKeys(ctx context.Context, client *redis.Client, pattern string) (int64, error) {
	var n int64
	if err := eachKey(ctx, client, pattern, func(string) { n++ }); err != nil {
		return 0, err
	}
	return n, nil
}
