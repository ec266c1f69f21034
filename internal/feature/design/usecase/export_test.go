package usecase

import "time"

// SetRegistryClock はテスト用にレジストリと以降に作成されるセッションの時計を差し替えます。
func SetRegistryClock(r *sessionRegistry, now func() time.Time) {
	r.now = now
	for _, s := range r.sessions {
		s.now = now
	}
}
