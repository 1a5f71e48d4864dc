package safari

import (
	"context"
	"math/rand"
	"time"
)

// sleepCtx ждёт d либо отмену контекста. false означает отмену:
// вызывающий обязан немедленно выйти.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// randDuration возвращает случайную длительность в секундах из [min, max).
// Разброс имитирует человеческую реакцию и сбивает детектор автоматизации.
func randDuration(min, max float64) time.Duration {
	sec := min + rand.Float64()*(max-min)
	return time.Duration(sec * float64(time.Second))
}
