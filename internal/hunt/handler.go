// Package hunt — операторские команды управления охотой:
// запуск и остановка, интервал, расписание, список существ, уведомления.
package hunt

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"safari_go/internal/fleet"
	"safari_go/internal/httputil"
	"safari_go/pkg/safari"
	"safari_go/pkg/storage"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	DB    *storage.DB
	Fleet *fleet.Fleet
}

func NewHandler(db *storage.DB, f *fleet.Fleet) *Handler {
	return &Handler{DB: db, Fleet: f}
}

// accountRef — общий вид запросов, адресованных одному аккаунту.
type accountRef struct {
	AccountID int `json:"account_id" binding:"required"`
}

// Start включает охоту аккаунта.
func (h *Handler) Start(c *gin.Context) {
	var req accountRef
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Неверный формат запроса")
		return
	}
	if err := h.Fleet.StartHunt(req.AccountID); err != nil {
		httputil.RespondError(c, http.StatusConflict, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "охота запущена"})
}

// Stop выключает охоту аккаунта.
func (h *Handler) Stop(c *gin.Context) {
	var req accountRef
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Неверный формат запроса")
		return
	}
	if err := h.Fleet.StopHunt(req.AccountID); err != nil {
		httputil.RespondError(c, http.StatusConflict, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "охота остановлена"})
}

// StartAll запускает всех простаивающих, StopAll останавливает всех активных.
func (h *Handler) StartAll(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"started": h.Fleet.StartAll()})
}

func (h *Handler) StopAll(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stopped": h.Fleet.StopAll()})
}

// SetInterval меняет паузу между командами охоты.
func (h *Handler) SetInterval(c *gin.Context) {
	var req struct {
		accountRef
		Interval float64 `json:"interval" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Неверный формат запроса")
		return
	}
	if req.Interval < safari.MinInterval {
		httputil.RespondError(c, http.StatusBadRequest, "Минимальный интервал — 1.0 секунды")
		return
	}
	if err := h.DB.UpdateInterval(req.AccountID, req.Interval); err != nil {
		httputil.RespondError(c, http.StatusInternalServerError, "Ошибка сохранения интервала")
		return
	}
	// Зеркало обновляется синхронно: машина не должна видеть устаревшее значение.
	if r := h.Fleet.Get(req.AccountID); r != nil {
		r.Session.SetInterval(req.Interval)
	}
	c.JSON(http.StatusOK, gin.H{"status": "интервал обновлён", "interval": req.Interval})
}

// SetSchedule задаёт время автозапуска ("10:30 AM") либо выключает его ("off").
func (h *Handler) SetSchedule(c *gin.Context) {
	var req struct {
		accountRef
		Time string `json:"time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Неверный формат запроса")
		return
	}

	if strings.EqualFold(req.Time, "off") {
		if err := h.DB.UpdateSchedule(req.AccountID, nil, false); err != nil {
			httputil.RespondError(c, http.StatusInternalServerError, "Ошибка сохранения расписания")
			return
		}
		if r := h.Fleet.Get(req.AccountID); r != nil {
			r.Session.SetSchedule(nil, false)
		}
		c.JSON(http.StatusOK, gin.H{"status": "расписание выключено"})
		return
	}

	parsed, err := time.Parse(fleet.ScheduleLayout, strings.ToUpper(strings.TrimSpace(req.Time)))
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Неверный формат времени, пример: 10:30 AM")
		return
	}
	normalized := parsed.Format(fleet.ScheduleLayout)

	if err := h.DB.UpdateSchedule(req.AccountID, &normalized, true); err != nil {
		httputil.RespondError(c, http.StatusInternalServerError, "Ошибка сохранения расписания")
		return
	}
	if r := h.Fleet.Get(req.AccountID); r != nil {
		r.Session.SetSchedule(&normalized, true)
	}
	c.JSON(http.StatusOK, gin.H{"status": "расписание установлено", "time": normalized})
}

// SetWatchlist заменяет список существ, ради которых аккаунт вступает в бой.
func (h *Handler) SetWatchlist(c *gin.Context) {
	var req struct {
		accountRef
		Names []string `json:"names" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Неверный формат запроса")
		return
	}

	var names []string
	for _, n := range req.Names {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		httputil.RespondError(c, http.StatusBadRequest, "Список существ пуст")
		return
	}

	if err := h.DB.UpdateWatchlist(req.AccountID, names); err != nil {
		httputil.RespondError(c, http.StatusInternalServerError, "Ошибка сохранения списка")
		return
	}
	if r := h.Fleet.Get(req.AccountID); r != nil {
		r.Session.SetWatchlist(names)
	}
	c.JSON(http.StatusOK, gin.H{"status": "список обновлён", "count": len(names)})
}

// SetBall меняет предпочитаемый мяч.
func (h *Handler) SetBall(c *gin.Context) {
	var req struct {
		accountRef
		Ball string `json:"ball" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Неверный формат запроса")
		return
	}
	if err := h.DB.UpdateBall(req.AccountID, req.Ball); err != nil {
		httputil.RespondError(c, http.StatusInternalServerError, "Ошибка сохранения")
		return
	}
	if r := h.Fleet.Get(req.AccountID); r != nil {
		r.Session.SetBall(req.Ball)
	}
	c.JSON(http.StatusOK, gin.H{"status": "мяч обновлён"})
}

// SetNotification включает или выключает дублирование отчётов в группу.
func (h *Handler) SetNotification(c *gin.Context) {
	var req struct {
		accountRef
		Enabled bool  `json:"enabled"`
		GroupID int64 `json:"group_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Неверный формат запроса")
		return
	}
	if err := h.DB.UpdateNotification(req.AccountID, req.Enabled, req.GroupID); err != nil {
		httputil.RespondError(c, http.StatusInternalServerError, "Ошибка сохранения")
		return
	}
	if r := h.Fleet.Get(req.AccountID); r != nil {
		r.Session.SetNotification(req.Enabled, req.GroupID)
	}
	c.JSON(http.StatusOK, gin.H{"status": "уведомления обновлены"})
}

// Status возвращает текущее состояние одного аккаунта.
func (h *Handler) Status(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Неверный идентификатор аккаунта")
		return
	}

	r := h.Fleet.Get(id)
	if r == nil {
		httputil.RespondError(c, http.StatusNotFound, "Аккаунт не подключён")
		return
	}

	schedule, scheduleOn := r.Session.Schedule()
	c.JSON(http.StatusOK, gin.H{
		"account_id":      id,
		"hunting":         r.Session.Hunting(),
		"mode":            r.Session.Mode().String(),
		"interval":        r.Session.Interval(),
		"ball":            r.Session.Ball(),
		"schedule":        schedule,
		"schedule_active": scheduleOn,
		"stats":           r.Session.StatsSnapshot(),
	})
}

// GlobalStats — сводка по парку для владельца сервиса.
func (h *Handler) GlobalStats(c *gin.Context) {
	users, caught, err := h.DB.GetGlobalStats()
	if err != nil {
		httputil.RespondError(c, http.StatusInternalServerError, "Ошибка чтения статистики")
		return
	}

	active := 0
	for _, r := range h.Fleet.Snapshot() {
		if r.Session.Hunting() {
			active++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_users":    users,
		"active_hunters": active,
		"total_caught":   caught,
	})
}
