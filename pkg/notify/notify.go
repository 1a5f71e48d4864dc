// Package notify доставляет отчёты охоты владельцам аккаунтов
// через мастер-бота (Bot API). Доставка best-effort: любая ошибка
// пишется в журнал и поглощается.
package notify

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const apiBase = "https://api.telegram.org"

// Bot — клиент Bot API мастер-бота.
type Bot struct {
	token  string
	client *http.Client
}

func NewBot(token string) *Bot {
	return &Bot{
		token:  token,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Notify отправляет сообщение владельцу и, если group != 0, дублирует в группу.
// Реализует safari.Notifier.
func (b *Bot) Notify(owner, group int64, text, attachmentPath string) {
	if b == nil || b.token == "" {
		return
	}
	if owner != 0 {
		b.send(owner, text, attachmentPath)
	}
	if group != 0 {
		b.send(group, text, attachmentPath)
	}
}

func (b *Bot) send(chatID int64, text, attachmentPath string) {
	var err error
	if attachmentPath != "" {
		err = b.sendDocument(chatID, text, attachmentPath)
	} else {
		err = b.sendMessage(chatID, text)
	}
	if err != nil {
		log.Printf("[NOTIFY] чат %d: %v", chatID, err)
	}
}

func (b *Bot) sendMessage(chatID int64, text string) error {
	form := url.Values{
		"chat_id": {strconv.FormatInt(chatID, 10)},
		"text":    {text},
	}
	resp, err := b.client.PostForm(b.method("sendMessage"), form)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkResponse(resp)
}

// sendDocument отправляет файл с подписью multipart-запросом.
func (b *Bot) sendDocument(chatID int64, caption, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var body strings.Builder
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("chat_id", strconv.FormatInt(chatID, 10)); err != nil {
		return err
	}
	if err := writer.WriteField("caption", caption); err != nil {
		return err
	}
	part, err := writer.CreateFormFile("document", file.Name())
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	resp, err := b.client.Post(b.method("sendDocument"), writer.FormDataContentType(), strings.NewReader(body.String()))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkResponse(resp)
}

func (b *Bot) method(name string) string {
	return fmt.Sprintf("%s/bot%s/%s", apiBase, b.token, name)
}

func checkResponse(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("bot api: %s: %s", resp.Status, string(payload))
}
