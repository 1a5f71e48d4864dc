package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"

	"safari_go/models"
	"safari_go/pkg/storage"

	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
)

// RequestCode отправляет код подтверждения и сохраняет его хеш в базе.
func RequestCode(db *storage.DB, acc models.Account) (string, error) {
	client, err := NewAccountClient(acc, db.Conn, nil)
	if err != nil {
		return "", err
	}

	var phoneCodeHash string
	ctx := context.Background()
	err = client.Run(ctx, func(ctx context.Context) error {
		sentCode, err := client.Auth().SendCode(ctx, acc.Phone, auth.SendCodeOptions{})
		if err != nil {
			return err
		}
		sent, ok := sentCode.(*tg.AuthSentCode)
		if !ok {
			log.Printf("[AUTH] неожиданный тип ответа на запрос кода: %T", sentCode)
			return fmt.Errorf("unexpected sent code type: %T", sentCode)
		}
		phoneCodeHash = sent.PhoneCodeHash
		// Хеш понадобится на шаге подтверждения, храним его в базе.
		return db.UpdatePhoneCodeHash(acc.ID, phoneCodeHash)
	})
	return phoneCodeHash, err
}

// CompleteAuthorization завершает вход по коду (и, при необходимости,
// облачному паролю) и помечает аккаунт авторизованным.
func CompleteAuthorization(db *storage.DB, acc models.Account, code, password string) error {
	client, err := NewAccountClient(acc, db.Conn, nil)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return client.Run(ctx, func(ctx context.Context) error {
		if _, err := client.Auth().SignIn(ctx, acc.Phone, code, acc.PhoneCodeHash); err != nil {
			if !errors.Is(err, auth.ErrPasswordAuthNeeded) {
				log.Printf("[AUTH] вход не удался для %s: %v", acc.Phone, err)
				return fmt.Errorf("authorization error: %w", err)
			}
			if _, err := client.Auth().Password(ctx, password); err != nil {
				log.Printf("[AUTH] облачный пароль не подошёл для %s: %v", acc.Phone, err)
				return fmt.Errorf("password authentication failed: %w", err)
			}
		}

		self, err := client.Self(ctx)
		if err != nil {
			return err
		}
		if err := db.MarkAuthorized(acc.ID, self.ID); err != nil {
			return err
		}
		log.Printf("[AUTH] аккаунт %s авторизован (tg id %d)", acc.Phone, self.ID)
		return nil
	})
}
