package store

import "github.com/redis/go-redis/v9"

// tryConnectScript は接続数の上限判定と追加を1キー上で原子的に行う。
// KEYS[1]=conn:{network} KEYS[2]=devnet:{device}
// ARGV[1]=deviceID ARGV[2]=maxDevices ARGV[3]=接続時刻 ARGV[4]=networkID
var tryConnectScript = redis.NewScript(`
if redis.call('HEXISTS', KEYS[1], ARGV[1]) == 1 then
  return 1
end
if redis.call('HLEN', KEYS[1]) >= tonumber(ARGV[2]) then
  return 0
end
redis.call('HSET', KEYS[1], ARGV[1], ARGV[3])
redis.call('SADD', KEYS[2], ARGV[4])
return 1
`)

// tryConsumeScript はクォータ判定と使用量加算を原子的に行う。
// KEYS[1]=bw:{device}
// ARGV[1]=size ARGV[2]=quota ARGV[3]=集計期間（ミリ秒）
var tryConsumeScript = redis.NewScript(`
local used = tonumber(redis.call('GET', KEYS[1]) or '0')
local size = tonumber(ARGV[1])
if used + size > tonumber(ARGV[2]) then
  return {0, used}
end
local total = redis.call('INCRBY', KEYS[1], size)
if redis.call('PTTL', KEYS[1]) < 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[3])
end
return {1, total}
`)

// createAlertScript は重複抑止キーの取得とアラート作成を原子的に行う。
// KEYS[1]=alertdedup:{type}:{device} KEYS[2]=alert:{id} KEYS[3]=alerts KEYS[4]=alerts:{device}
// ARGV[1]=cooldown（ミリ秒） ARGV[2]=alertID ARGV[3..]=フィールドと値
var createAlertScript = redis.NewScript(`
if not redis.call('SET', KEYS[1], ARGV[2], 'NX', 'PX', ARGV[1]) then
  return 0
end
redis.call('HSET', KEYS[2], unpack(ARGV, 3))
redis.call('RPUSH', KEYS[3], ARGV[2])
redis.call('RPUSH', KEYS[4], ARGV[2])
return 1
`)

// adjustTrustScript はdeltaとスコアを丸めて加算する。
// KEYS[1]=trust:{device}
// ARGV[1]=delta ARGV[2]=baseline ARGV[3]=maxDelta ARGV[4]=min ARGV[5]=max ARGV[6]=更新時刻
var adjustTrustScript = redis.NewScript(`
local score = tonumber(redis.call('HGET', KEYS[1], 'score'))
if not score then
  score = tonumber(ARGV[2])
end
local delta = tonumber(ARGV[1])
local maxDelta = tonumber(ARGV[3])
if delta > maxDelta then
  delta = maxDelta
elseif delta < -maxDelta then
  delta = -maxDelta
end
score = score + delta
if score < tonumber(ARGV[4]) then
  score = tonumber(ARGV[4])
elseif score > tonumber(ARGV[5]) then
  score = tonumber(ARGV[5])
end
redis.call('HSET', KEYS[1], 'score', tostring(score), 'last_updated', ARGV[6])
return tostring(score)
`)
