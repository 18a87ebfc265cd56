// Package valkey はValkeyクライアントの共通機能を提供する。
package valkey

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// Profile は接続の用途。用途ごとにタイムアウトと再試行の既定値が異なる。
type Profile int

const (
	// ProfileServer はauthz-serverやnas-gatewayのような常駐サービス向け。
	ProfileServer Profile = iota
	// ProfileConsole は運用コンソール向け。対話操作のため再試行しない。
	ProfileConsole
)

// Options はValkeyクライアントの接続オプション。
type Options struct {
	Addr            string
	Password        string
	ConnectTimeout  time.Duration
	CommandTimeout  time.Duration // 読み取りと書き込みに共通
	PoolSize        int
	MinIdleConns    int
	MaxRetries      int // -1で再試行なし
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
}

// NewOptions は用途ごとの既定値でOptionsを生成する。
//
//	ProfileServer:  接続3秒 コマンド2秒 プール10 再試行3回(100ms〜1s)
//	ProfileConsole: 接続5秒 コマンド5秒 プール5 再試行なし
func NewOptions(p Profile, addr, password string) *Options {
	if addr == "" {
		addr = "localhost:6379"
	}
	o := &Options{Addr: addr, Password: password}
	switch p {
	case ProfileConsole:
		o.ConnectTimeout, o.CommandTimeout = 5*time.Second, 5*time.Second
		o.PoolSize, o.MinIdleConns = 5, 1
		o.MaxRetries = -1
	default:
		o.ConnectTimeout, o.CommandTimeout = 3*time.Second, 2*time.Second
		o.PoolSize, o.MinIdleConns = 10, 2
		o.MaxRetries = 3
		o.MinRetryBackoff, o.MaxRetryBackoff = 100*time.Millisecond, time.Second
	}
	return o
}

// WithTimeouts は接続とコマンドのタイムアウトを上書きする。0は既定値のまま。
func (o *Options) WithTimeouts(connect, command time.Duration) *Options {
	if connect > 0 {
		o.ConnectTimeout = connect
	}
	if command > 0 {
		o.CommandTimeout = command
	}
	return o
}

// WithPoolSize はプールサイズを上書きする。最小アイドル数はプールの1/5(最低1)とする。
func (o *Options) WithPoolSize(n int) *Options {
	if n > 0 {
		o.PoolSize = n
		o.MinIdleConns = max(1, n/5)
	}
	return o
}

func (o *Options) redisOptions() *redis.Options {
	return &redis.Options{
		Addr:            o.Addr,
		Password:        o.Password,
		DialTimeout:     o.ConnectTimeout,
		ReadTimeout:     o.CommandTimeout,
		WriteTimeout:    o.CommandTimeout,
		PoolSize:        o.PoolSize,
		MinIdleConns:    o.MinIdleConns,
		MaxRetries:      o.MaxRetries,
		MinRetryBackoff: o.MinRetryBackoff,
		MaxRetryBackoff: o.MaxRetryBackoff,
	}
}
