// Package telegram связывает движок охоты с MTProto-клиентом gotd:
// создание клиентов аккаунтов, авторизация, чтение игрового диалога
// и нажатие inline-кнопок.
package telegram

import (
	"database/sql"
	"fmt"
	"log"

	"safari_go/models"

	"golang.org/x/net/proxy"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/dcs"
)

// NewAccountClient создаёт клиента Telegram для аккаунта: сессия хранится
// в БД, при назначенном прокси трафик идёт через SOCKS5.
func NewAccountClient(acc models.Account, db *sql.DB, handler telegram.UpdateHandler) (*telegram.Client, error) {
	var storage session.Storage = &session.StorageMemory{}
	if db != nil && acc.ID > 0 {
		storage = &DBSessionStorage{DB: db, AccountID: acc.ID}
	}

	opts := telegram.Options{SessionStorage: storage}
	if handler != nil {
		opts.UpdateHandler = handler
	}
	if p := acc.Proxy; p != nil {
		addr := fmt.Sprintf("%s:%d", p.IP, p.Port)
		var auth *proxy.Auth
		if p.Login != "" || p.Password != "" {
			auth = &proxy.Auth{User: p.Login, Password: p.Password}
		}
		d, err := proxy.SOCKS5("tcp", addr, auth, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("proxy dialer: %w", err)
		}
		dc, ok := d.(proxy.ContextDialer)
		if !ok {
			return nil, fmt.Errorf("proxy dialer missing context")
		}
		opts.Resolver = dcs.Plain(dcs.PlainOptions{Dial: dc.DialContext})
		log.Printf("[PROXY] %s via %s", acc.Phone, addr)
	}
	return telegram.NewClient(acc.ApiID, acc.ApiHash, opts), nil
}
