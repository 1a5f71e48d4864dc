// Package fleet владеет реестром живых аккаунтов и общим планировщиком.
// Реестр — единственное место, где состояние аккаунтов видно всем сразу:
// операторским командам, планировщику и восстановлению после рестарта.
package fleet

import (
	"context"
	"fmt"
	"log"
	"sync"

	"safari_go/models"
	"safari_go/pkg/safari"
	"safari_go/pkg/storage"
	"safari_go/pkg/telegram"
)

// Runner — живой аккаунт: состояние охоты и управление его горутиной.
type Runner struct {
	Session *safari.Session
	ctx     context.Context
	cancel  context.CancelFunc

	mu   sync.Mutex
	deps *safari.Deps
}

// setDeps вызывается из RunAccount, когда игровой диалог готов.
func (r *Runner) setDeps(d safari.Deps) {
	r.mu.Lock()
	r.deps = &d
	r.mu.Unlock()
}

// Deps возвращает зависимости машины состояний; false — клиент ещё подключается.
func (r *Runner) Deps() (safari.Deps, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deps == nil {
		return safari.Deps{}, false
	}
	return *r.deps, true
}

// Fleet — реестр аккаунтов. Карта защищена RWMutex: вставки и удаления
// не должны ломать обход планировщика, поэтому обход идёт по снимку.
type Fleet struct {
	mu      sync.RWMutex
	runners map[int]*Runner

	db       *storage.DB
	notifier safari.Notifier
	gameBot  string
}

func New(db *storage.DB, notifier safari.Notifier, gameBot string) *Fleet {
	return &Fleet{
		runners:  make(map[int]*Runner),
		db:       db,
		notifier: notifier,
		gameBot:  gameBot,
	}
}

// Launch подключает аккаунт и регистрирует его в реестре.
// Повторный запуск того же аккаунта гасит старую горутину.
func (f *Fleet) Launch(acc models.Account) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Runner{Session: safari.NewSession(acc), ctx: ctx, cancel: cancel}

	f.mu.Lock()
	if old, ok := f.runners[acc.ID]; ok {
		old.cancel()
	}
	f.runners[acc.ID] = r
	f.mu.Unlock()

	go func() {
		err := telegram.RunAccount(ctx, f.db, acc, r.Session, f.notifier, f.gameBot, r.setDeps)
		if err != nil && ctx.Err() == nil {
			log.Printf("[FLEET] аккаунт %d: соединение завершилось: %v", acc.ID, err)
		}
		// Без соединения охота невозможна в любом случае.
		r.Session.Stop()
	}()

	log.Printf("[FLEET] аккаунт %d зарегистрирован", acc.ID)
	return r
}

func (f *Fleet) Get(id int) *Runner {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.runners[id]
}

// Snapshot возвращает стабильный срез реестра для безопасного обхода.
func (f *Fleet) Snapshot() []*Runner {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]*Runner, 0, len(f.runners))
	for _, r := range f.runners {
		out = append(out, r)
	}
	return out
}

// Remove гасит горутину аккаунта и убирает его из реестра.
func (f *Fleet) Remove(id int) {
	f.mu.Lock()
	r, ok := f.runners[id]
	if ok {
		delete(f.runners, id)
	}
	f.mu.Unlock()
	if ok {
		r.cancel()
		r.Session.Stop()
	}
}

// StartHunt включает охоту аккаунта и запускает вход в зону.
func (f *Fleet) StartHunt(id int) error {
	r := f.Get(id)
	if r == nil {
		return fmt.Errorf("аккаунт %d не подключён", id)
	}
	deps, ok := r.Deps()
	if !ok {
		return fmt.Errorf("аккаунт %d ещё подключается", id)
	}
	r.Session.Start()
	go safari.RunZoneEntry(r.ctx, deps, r.Session)
	return nil
}

// StopHunt выключает охоту; цикл аккаунта заметит флаг на ближайшем тике.
func (f *Fleet) StopHunt(id int) error {
	r := f.Get(id)
	if r == nil {
		return fmt.Errorf("аккаунт %d не подключён", id)
	}
	r.Session.Stop()
	return nil
}

// StartAll запускает охоту у всех простаивающих аккаунтов. Возвращает число запусков.
func (f *Fleet) StartAll() int {
	count := 0
	for _, r := range f.Snapshot() {
		if r.Session.Hunting() {
			continue
		}
		if err := f.StartHunt(r.Session.AccountID); err != nil {
			log.Printf("[FLEET] массовый запуск, аккаунт %d: %v", r.Session.AccountID, err)
			continue
		}
		count++
	}
	return count
}

// StopAll выключает охоту у всех активных аккаунтов. Возвращает число остановок.
func (f *Fleet) StopAll() int {
	count := 0
	for _, r := range f.Snapshot() {
		if !r.Session.Hunting() {
			continue
		}
		r.Session.Stop()
		count++
	}
	return count
}

// ResetDailyMirrors обнуляет суточные зеркала счётчиков всего парка.
func (f *Fleet) ResetDailyMirrors() {
	for _, r := range f.Snapshot() {
		r.Session.ResetDailyStats()
	}
}
