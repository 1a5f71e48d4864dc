package safari

import (
	"context"
	"log"
	"strings"
)

// SendCommand отправляет команду без повторов: следующий тик цикла
// всё равно отправит её заново, поэтому ошибка только пишется в журнал.
func SendCommand(ctx context.Context, m Messenger, text string) {
	if err := m.SendMessage(ctx, text); err != nil {
		log.Printf("[ACTION] отправка %q не удалась: %v", text, err)
	}
}

// ClickButton перечитывает сообщение, ищет в сетке кнопку по подстроке
// подписи (без регистра, построчно слева направо) и нажимает её.
// Отсутствие кнопки — не ошибка и не повод повторять: раскладка не изменится.
// Сбои сети повторяются до трёх раз с паузой в полсекунды.
func ClickButton(ctx context.Context, m Messenger, msgID int, label string) bool {
	want := strings.ToLower(label)

	for attempt := 1; attempt <= clickAttempts; attempt++ {
		msg, err := m.GetMessage(ctx, msgID)
		if err != nil {
			log.Printf("[ACTION] чтение сообщения %d (попытка %d): %v", msgID, attempt, err)
			if !sleepCtx(ctx, clickBackoff) {
				return false
			}
			continue
		}
		if msg == nil || len(msg.Buttons) == 0 {
			return false
		}

		index := -1
		flat := 0
	scan:
		for _, row := range msg.Buttons {
			for _, btn := range row {
				if strings.Contains(strings.ToLower(btn), want) {
					index = flat
					break scan
				}
				flat++
			}
		}
		if index < 0 {
			return false
		}

		if err := m.Click(ctx, msgID, index); err != nil {
			log.Printf("[ACTION] нажатие %q в сообщении %d (попытка %d): %v", label, msgID, attempt, err)
			if !sleepCtx(ctx, clickBackoff) {
				return false
			}
			continue
		}
		return true
	}
	return false
}
