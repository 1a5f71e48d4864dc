package telegram

import (
	"context"
	"fmt"
	"log"

	"safari_go/models"
	"safari_go/pkg/safari"
	"safari_go/pkg/storage"

	"github.com/gotd/td/tg"
)

// RunAccount поднимает клиента аккаунта и обслуживает его до отмены контекста
// или потери сессии. onReady вызывается один раз, когда диалог с игровым
// ботом готов к работе.
func RunAccount(
	ctx context.Context,
	db *storage.DB,
	acc models.Account,
	sess *safari.Session,
	notifier safari.Notifier,
	gameBot string,
	onReady func(safari.Deps),
) error {
	dispatcher := tg.NewUpdateDispatcher()
	client, err := NewAccountClient(acc, db.Conn, dispatcher)
	if err != nil {
		return err
	}

	return client.Run(ctx, func(ctx context.Context) error {
		status, err := client.Auth().Status(ctx)
		if err != nil {
			return err
		}
		if !status.Authorized {
			// Сессия отозвана — автоматических повторов нет,
			// нужен повторный вход через оператора.
			log.Printf("[RUNNER] аккаунт %d: сессия истекла или отозвана", acc.ID)
			return fmt.Errorf("сессия аккаунта %d не авторизована", acc.ID)
		}

		api := tg.NewClient(client)
		peer, err := resolveGameBot(ctx, api, gameBot)
		if err != nil {
			return fmt.Errorf("игровой бот %s: %w", gameBot, err)
		}

		msgr := newGameMessenger(ctx, api, peer)
		deps := safari.Deps{Messenger: msgr, Notifier: notifier, Stats: db}
		if onReady != nil {
			onReady(deps)
		}

		// Один канал на аккаунт: и новые, и отредактированные сообщения
		// проходят через единственного потребителя, сохраняя порядок.
		events := make(chan models.Event, 16)
		publish := func(msg *tg.Message) {
			if msg.Out {
				return
			}
			from, ok := msg.PeerID.(*tg.PeerUser)
			if !ok || from.UserID != peer.UserID {
				return
			}
			in := toInbound(msg)
			ev := safari.Classify(in.Text, in.Buttons)
			ev.MsgID = in.ID
			ev.HasMedia = in.HasMedia
			select {
			case events <- ev:
			case <-ctx.Done():
			}
		}

		dispatcher.OnNewMessage(func(ctx context.Context, e tg.Entities, u *tg.UpdateNewMessage) error {
			if msg, ok := u.Message.(*tg.Message); ok {
				publish(msg)
			}
			return nil
		})
		// Игра раскрывает исход боя правкой того же сообщения,
		// поэтому правки равноправны с новыми сообщениями.
		dispatcher.OnEditMessage(func(ctx context.Context, e tg.Entities, u *tg.UpdateEditMessage) error {
			if msg, ok := u.Message.(*tg.Message); ok {
				publish(msg)
			}
			return nil
		})

		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case ev := <-events:
					safari.HandleEvent(ctx, deps, sess, ev)
				}
			}
		}()

		log.Printf("[RUNNER] аккаунт %d подключён, игровой диалог %d", acc.ID, peer.UserID)
		<-ctx.Done()
		return ctx.Err()
	})
}

// resolveGameBot находит диалог игрового бота по username.
func resolveGameBot(ctx context.Context, api *tg.Client, username string) (*tg.InputPeerUser, error) {
	res, err := api.ContactsResolveUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	for _, u := range res.Users {
		user, ok := u.(*tg.User)
		if !ok {
			continue
		}
		if user.Bot {
			return &tg.InputPeerUser{UserID: user.ID, AccessHash: user.AccessHash}, nil
		}
	}
	return nil, fmt.Errorf("бот %s не найден среди пользователей", username)
}
