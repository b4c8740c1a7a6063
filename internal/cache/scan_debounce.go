package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ScanDebouncer 短窗口內抑制同一掃描 session 的重複 payload，
// 吸收鏡頭對著同一張 QR 的連續讀取。這只是省後端呼叫的最佳化，
// 重複驗票的正確性由 booking row 的 CAS 保證。
type ScanDebouncer interface {
	// Observe 回傳 true 表示第一次看到，false 表示窗口內的重複掃描
	Observe(ctx context.Context, sessionID string, payload string) (bool, error)
}

type RedisScanDebouncerImpl struct {
	client *redis.Client
	window time.Duration
}

func NewRedisScanDebouncer(client *redis.Client, window time.Duration) ScanDebouncer {
	return &RedisScanDebouncerImpl{
		client: client,
		window: window,
	}
}

func (d *RedisScanDebouncerImpl) key(sessionID string, payload string) string {
	// payload 可能很長，雜湊後當 key
	sum := sha256.Sum256([]byte(payload))
	return fmt.Sprintf("scan:%s:%s", sessionID, hex.EncodeToString(sum[:]))
}

func (d *RedisScanDebouncerImpl) Observe(ctx context.Context, sessionID string, payload string) (bool, error) {
	// SET NX PX：第一次寫入成功，窗口內的重複寫入失敗
	ok, err := d.client.SetNX(ctx, d.key(sessionID, payload), 1, d.window).Result()
	if err != nil {
		// Redis 掛了就放行，讓 CAS 兜底，不能因為去抖動失效而擋驗票
		return true, err
	}
	return ok, nil
}

// MemoryScanDebouncerImpl 單機版，測試與本地開發用
type MemoryScanDebouncerImpl struct {
	mu     sync.Mutex
	seen   map[string]time.Time
	window time.Duration
	now    func() time.Time
}

func NewMemoryScanDebouncer(window time.Duration) *MemoryScanDebouncerImpl {
	return &MemoryScanDebouncerImpl{
		seen:   make(map[string]time.Time),
		window: window,
		now:    time.Now,
	}
}

func (d *MemoryScanDebouncerImpl) Observe(ctx context.Context, sessionID string, payload string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	key := sessionID + "|" + payload

	if at, ok := d.seen[key]; ok && now.Sub(at) < d.window {
		return false, nil
	}

	// 順手清掉過期的項目，map 不會無限長大
	for k, at := range d.seen {
		if now.Sub(at) >= d.window {
			delete(d.seen, k)
		}
	}

	d.seen[key] = now
	return true, nil
}
