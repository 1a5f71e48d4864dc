package telegram

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"

	"safari_go/pkg/safari"

	"github.com/gotd/td/telegram/downloader"
	"github.com/gotd/td/tg"
)

// gameMessenger реализует safari.Messenger поверх gotd для одного диалога
// с игровым ботом.
type gameMessenger struct {
	api  *tg.Client
	peer *tg.InputPeerUser
	// runCtx живёт, пока работает client.Run: по нему определяется,
	// жива ли ещё сессия.
	runCtx context.Context
}

func newGameMessenger(runCtx context.Context, api *tg.Client, peer *tg.InputPeerUser) *gameMessenger {
	return &gameMessenger{api: api, peer: peer, runCtx: runCtx}
}

func (g *gameMessenger) IsConnected() bool {
	return g.runCtx.Err() == nil
}

// SendMessage отправляет текст в игровой диалог.
func (g *gameMessenger) SendMessage(ctx context.Context, text string) error {
	_, err := g.api.MessagesSendMessage(ctx, &tg.MessagesSendMessageRequest{
		Peer:     g.peer,
		Message:  text,
		RandomID: rand.Int63(),
	})
	return err
}

// RecentMessages возвращает последние сообщения игрового бота, новые первыми.
// Собственные исходящие сообщения аккаунта отбрасываются.
func (g *gameMessenger) RecentMessages(ctx context.Context, limit int) ([]safari.Inbound, error) {
	history, err := g.api.MessagesGetHistory(ctx, &tg.MessagesGetHistoryRequest{
		Peer:  g.peer,
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}
	msgs, err := extractMessages(history)
	if err != nil {
		return nil, err
	}

	var inbound []safari.Inbound
	for _, m := range msgs {
		if m.Out {
			continue
		}
		inbound = append(inbound, toInbound(m))
	}
	return inbound, nil
}

// GetMessage перечитывает одно сообщение диалога.
func (g *gameMessenger) GetMessage(ctx context.Context, msgID int) (*safari.Inbound, error) {
	msg, err := g.fetchRaw(ctx, msgID)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, nil
	}
	in := toInbound(msg)
	return &in, nil
}

// Click нажимает inline-кнопку с указанным порядковым номером в сетке.
func (g *gameMessenger) Click(ctx context.Context, msgID, index int) error {
	msg, err := g.fetchRaw(ctx, msgID)
	if err != nil {
		return err
	}
	if msg == nil {
		return fmt.Errorf("сообщение %d не найдено", msgID)
	}
	markup, ok := msg.GetReplyMarkup()
	if !ok {
		return fmt.Errorf("сообщение %d без кнопок", msgID)
	}
	inline, ok := markup.(*tg.ReplyInlineMarkup)
	if !ok {
		return fmt.Errorf("сообщение %d без inline-клавиатуры", msgID)
	}

	flat := 0
	for _, row := range inline.Rows {
		for _, btn := range row.Buttons {
			if flat != index {
				flat++
				continue
			}
			cb, ok := btn.(*tg.KeyboardButtonCallback)
			if !ok {
				return fmt.Errorf("кнопка %d сообщения %d не callback", index, msgID)
			}
			req := &tg.MessagesGetBotCallbackAnswerRequest{
				Peer:  g.peer,
				MsgID: msgID,
			}
			req.SetData(cb.Data)
			_, err := g.api.MessagesGetBotCallbackAnswer(ctx, req)
			return err
		}
	}
	return fmt.Errorf("в сообщении %d нет кнопки %d", msgID, index)
}

// DownloadMedia сохраняет вложение сообщения во временный файл
// и возвращает путь к нему. Удаление файла — забота вызывающего.
func (g *gameMessenger) DownloadMedia(ctx context.Context, msgID int) (string, error) {
	msg, err := g.fetchRaw(ctx, msgID)
	if err != nil {
		return "", err
	}
	if msg == nil {
		return "", fmt.Errorf("сообщение %d не найдено", msgID)
	}
	media, ok := msg.GetMedia()
	if !ok {
		return "", fmt.Errorf("сообщение %d без вложения", msgID)
	}

	var loc tg.InputFileLocationClass
	ext := ".bin"
	switch m := media.(type) {
	case *tg.MessageMediaPhoto:
		photo, ok := m.Photo.(*tg.Photo)
		if !ok {
			return "", fmt.Errorf("фото недоступно")
		}
		loc = &tg.InputPhotoFileLocation{
			ID:            photo.ID,
			AccessHash:    photo.AccessHash,
			FileReference: photo.FileReference,
			ThumbSize:     largestPhotoSize(photo),
		}
		ext = ".jpg"
	case *tg.MessageMediaDocument:
		doc, ok := m.Document.(*tg.Document)
		if !ok {
			return "", fmt.Errorf("документ недоступен")
		}
		loc = &tg.InputDocumentFileLocation{
			ID:            doc.ID,
			AccessHash:    doc.AccessHash,
			FileReference: doc.FileReference,
		}
	default:
		return "", fmt.Errorf("неподдерживаемый тип вложения %T", media)
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("safari_catch_%d%s", msgID, ext))
	if _, err := downloader.NewDownloader().Download(g.api, loc).ToPath(ctx, path); err != nil {
		return "", err
	}
	return path, nil
}

// fetchRaw читает сообщение по ID. nil без ошибки — сообщение удалено.
func (g *gameMessenger) fetchRaw(ctx context.Context, msgID int) (*tg.Message, error) {
	res, err := g.api.MessagesGetMessages(ctx, []tg.InputMessageClass{
		&tg.InputMessageID{ID: msgID},
	})
	if err != nil {
		return nil, err
	}
	msgs, err := extractMessages(res)
	if err != nil {
		return nil, err
	}
	for _, m := range msgs {
		if m.ID == msgID {
			return m, nil
		}
	}
	return nil, nil
}

// extractMessages достаёт годные сообщения из любого варианта ответа API.
func extractMessages(res tg.MessagesMessagesClass) ([]*tg.Message, error) {
	var raw []tg.MessageClass
	switch v := res.(type) {
	case *tg.MessagesMessages:
		raw = v.Messages
	case *tg.MessagesMessagesSlice:
		raw = v.Messages
	case *tg.MessagesChannelMessages:
		raw = v.Messages
	default:
		return nil, fmt.Errorf("unexpected messages type %T", res)
	}

	var valid []*tg.Message
	for _, m := range raw {
		if msg, ok := m.(*tg.Message); ok {
			valid = append(valid, msg)
		}
	}
	// Новые сообщения первыми, как того ждёт цикл охоты.
	sort.Slice(valid, func(i, j int) bool {
		return valid[i].ID > valid[j].ID
	})
	return valid, nil
}

// toInbound переводит сообщение gotd в представление движка.
func toInbound(m *tg.Message) safari.Inbound {
	in := safari.Inbound{
		ID:   m.ID,
		Text: m.Message,
	}
	if media, ok := m.GetMedia(); ok {
		if _, empty := media.(*tg.MessageMediaEmpty); !empty {
			in.HasMedia = true
		}
	}
	if markup, ok := m.GetReplyMarkup(); ok {
		if inline, ok := markup.(*tg.ReplyInlineMarkup); ok {
			for _, row := range inline.Rows {
				var labels []string
				for _, btn := range row.Buttons {
					labels = append(labels, btn.GetText())
				}
				in.Buttons = append(in.Buttons, labels)
			}
		}
	}
	return in
}

// largestPhotoSize выбирает тип самого крупного варианта фото.
func largestPhotoSize(photo *tg.Photo) string {
	best := ""
	area := 0
	for _, s := range photo.Sizes {
		switch v := s.(type) {
		case *tg.PhotoSize:
			if v.W*v.H >= area {
				area = v.W * v.H
				best = v.Type
			}
		case *tg.PhotoSizeProgressive:
			if v.W*v.H >= area {
				area = v.W * v.H
				best = v.Type
			}
		}
	}
	return best
}
