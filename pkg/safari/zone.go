package safari

import (
	"context"
	"log"
)

// RunZoneEntry пытается открыть сафари-зону: шлёт команду входа до пяти раз
// с паузой в пять секунд. Если зона так и не открылась, молча сдаётся —
// машина остаётся в SAFARI_INIT до явного стопа или нового запуска.
func RunZoneEntry(ctx context.Context, deps Deps, s *Session) {
	for i := 0; i < zoneEntryAttempts; i++ {
		if ctx.Err() != nil {
			return
		}
		// Событие зоны могло прийти между попытками — тогда вход уже не нужен.
		if !s.Hunting() || s.Mode() != ModeSafariInit {
			return
		}
		SendCommand(ctx, deps.Messenger, EnterCommand)
		if !sleepCtx(ctx, zoneEntryDelay) {
			return
		}
	}
	log.Printf("[HUNT] аккаунт %d: зона не открылась после %d попыток",
		s.AccountID, zoneEntryAttempts)
}
