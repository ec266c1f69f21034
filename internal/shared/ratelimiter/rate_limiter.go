// Package ratelimiter は外部API呼び出しの頻度を制限します。
package ratelimiter

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// Limiter は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiter は interval あたり最大 limit 回まで操作を許可します。
// 呼び出しは interval/limit の間隔で均等に割り当てられるため、長さ interval の
// どの区間でも limit 回を超えません。複数のゴルーチンから安全に使用できます。
type RateLimiter struct {
	limit    int
	interval time.Duration
	lim      *rate.Limiter
	now      func() time.Time
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
// limit が0以下の場合は制限しません。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	rl := &RateLimiter{limit: limit, interval: interval, now: time.Now}
	if limit > 0 && interval > 0 {
		rl.lim = rate.NewLimiter(rate.Every(interval/time.Duration(limit)), 1)
	}
	return rl
}

// reserve は呼び出し枠を1つ確保し、予約と実行までに待つべき時間を返します。
func (rl *RateLimiter) reserve() (*rate.Reservation, time.Duration) {
	now := rl.now()
	r := rl.lim.ReserveN(now, 1)
	return r, r.DelayFrom(now)
}

// Wait はレートリミットの上限に達しているかを確認し、必要であれば待機します。
// 待機中に ctx が終了した場合は予約を取り消し、ctx.Err() を返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl == nil || rl.lim == nil {
		return nil
	}
	r, wait := rl.reserve()
	if wait <= 0 {
		return nil
	}
	slog.Info("rate limit reached, waiting", "limit", rl.limit, "interval", rl.interval, "wait", wait)
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		r.CancelAt(rl.now())
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
