package safari

import (
	"context"

	"safari_go/models"
)

// Inbound — входящее сообщение игрового диалога в том виде,
// в котором его видит движок: текст, сетка подписей кнопок и признак вложения.
type Inbound struct {
	ID       int
	Text     string
	Buttons  [][]string
	HasMedia bool
}

// Messenger — действия над игровым чатом от имени аккаунта.
// Реализуется поверх клиента Telegram; в тестах подменяется фейком.
type Messenger interface {
	// SendMessage отправляет текстовую команду в игровой чат.
	SendMessage(ctx context.Context, text string) error
	// RecentMessages возвращает последние сообщения игрового бота, новые первыми.
	RecentMessages(ctx context.Context, limit int) ([]Inbound, error)
	// GetMessage перечитывает сообщение по идентификатору.
	GetMessage(ctx context.Context, msgID int) (*Inbound, error)
	// Click нажимает кнопку с указанным порядковым номером в сетке.
	Click(ctx context.Context, msgID, index int) error
	// DownloadMedia сохраняет вложение сообщения во временный файл.
	DownloadMedia(ctx context.Context, msgID int) (string, error)
	// IsConnected сообщает, жива ли сессия.
	IsConnected() bool
}

// Notifier доставляет отчёт владельцу аккаунта.
// group != 0 — дополнительно продублировать в группу. Доставка best-effort:
// ошибки поглощаются реализацией.
type Notifier interface {
	Notify(owner, group int64, text, attachmentPath string)
}

// StatStore атомарно увеличивает накопительный и суточный счётчики.
type StatStore interface {
	IncrementStat(accountID int, kind models.StatKind) error
}

// Deps — внешние зависимости машины состояний одного аккаунта.
type Deps struct {
	Messenger Messenger
	Notifier  Notifier
	Stats     StatStore
}
