// Package accounts — операторские команды регистрации и входа аккаунтов.
package accounts

import (
	"log"
	"net/http"

	"safari_go/internal/fleet"
	"safari_go/internal/httputil"
	"safari_go/models"
	"safari_go/pkg/safari"
	"safari_go/pkg/storage"
	"safari_go/pkg/telegram"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	DB    *storage.DB
	Fleet *fleet.Fleet
}

func NewHandler(db *storage.DB, f *fleet.Fleet) *Handler {
	return &Handler{DB: db, Fleet: f}
}

// Create регистрирует аккаунт и асинхронно запрашивает код подтверждения.
func (h *Handler) Create(c *gin.Context) {
	var req struct {
		Phone   string `json:"phone" binding:"required"`
		ApiID   int    `json:"api_id" binding:"required"`
		ApiHash string `json:"api_hash" binding:"required"`
		ProxyID *int   `json:"proxy_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Неверный формат запроса")
		return
	}

	account, err := h.DB.CreateAccount(models.Account{
		Phone:     req.Phone,
		ApiID:     req.ApiID,
		ApiHash:   req.ApiHash,
		ProxyID:   req.ProxyID,
		Watchlist: safari.DefaultWatchlist,
		Ball:      safari.DefaultBall,
		Interval:  safari.DefaultInterval,
	})
	if err != nil {
		httputil.RespondError(c, http.StatusInternalServerError, "Ошибка при создании аккаунта")
		return
	}

	// Код запрашиваем в фоне, чтобы не держать HTTP-запрос открытым.
	go func() {
		acc, err := h.DB.GetAccountByID(account.ID)
		if err != nil {
			log.Printf("[ACCOUNTS] чтение аккаунта %d: %v", account.ID, err)
			return
		}
		if _, err := telegram.RequestCode(h.DB, *acc); err != nil {
			log.Printf("[ACCOUNTS] запрос кода для %s: %v", acc.Phone, err)
			return
		}
		log.Printf("[ACCOUNTS] код отправлен на номер %s", acc.Phone)
	}()

	c.JSON(http.StatusOK, account)
}

// Confirm завершает авторизацию по коду и подключает аккаунт к парку.
func (h *Handler) Confirm(c *gin.Context) {
	var req struct {
		AccountID int    `json:"account_id" binding:"required"`
		Code      string `json:"code" binding:"required"`
		Password  string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Неверный формат запроса")
		return
	}

	acc, err := h.DB.GetAccountByID(req.AccountID)
	if err != nil {
		httputil.RespondError(c, http.StatusNotFound, "Аккаунт не найден")
		return
	}

	if err := telegram.CompleteAuthorization(h.DB, *acc, req.Code, req.Password); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Авторизация не удалась: "+err.Error())
		return
	}

	// Перечитываем запись: авторизация проставила telegram_id владельца.
	acc, err = h.DB.GetAccountByID(req.AccountID)
	if err != nil {
		httputil.RespondError(c, http.StatusInternalServerError, "Ошибка чтения аккаунта")
		return
	}
	h.Fleet.Launch(*acc)

	c.JSON(http.StatusOK, gin.H{"status": "авторизован", "account_id": acc.ID})
}
