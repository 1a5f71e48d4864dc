// Package backup — выгрузка и восстановление парка аккаунтов одним архивом.
package backup

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"safari_go/internal/fleet"
	"safari_go/internal/httputil"
	"safari_go/models"
	"safari_go/pkg/storage"

	"github.com/gin-gonic/gin"
)

// archiveEntry — имя файла с данными внутри архива.
const archiveEntry = "safari_data.json"

type Handler struct {
	DB    *storage.DB
	Fleet *fleet.Fleet
}

func NewHandler(db *storage.DB, f *fleet.Fleet) *Handler {
	return &Handler{DB: db, Fleet: f}
}

// Export отдаёт zip-архив со всеми аккаунтами и их сессиями Telegram.
func (h *Handler) Export(c *gin.Context) {
	records, err := h.DB.ExportRecords()
	if err != nil {
		httputil.RespondError(c, http.StatusInternalServerError, "Ошибка выгрузки аккаунтов")
		return
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		httputil.RespondError(c, http.StatusInternalServerError, "Ошибка сериализации")
		return
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entry, err := zw.Create(archiveEntry)
	if err == nil {
		_, err = entry.Write(data)
	}
	if err == nil {
		err = zw.Close()
	}
	if err != nil {
		httputil.RespondError(c, http.StatusInternalServerError, "Ошибка упаковки архива")
		return
	}

	name := fmt.Sprintf("safari_backup_%s.zip", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
	log.Printf("[BACKUP] выгружено аккаунтов: %d", len(records))
}

// Import восстанавливает аккаунты из ранее выгруженного архива
// и подключает к парку всех, кто уже авторизован.
func (h *Handler) Import(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Файл архива не передан")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Ошибка чтения файла")
		return
	}

	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "Файл не является zip-архивом")
		return
	}

	records, err := decodeArchive(zr)
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	count, err := h.DB.ImportRecords(records)
	if err != nil {
		httputil.RespondError(c, http.StatusInternalServerError,
			fmt.Sprintf("Импорт прерван после %d записей: %v", count, err))
		return
	}

	// Сессии уже в базе, клиенты поднимутся без повторного входа.
	accounts, err := h.DB.GetAuthorizedAccounts()
	if err != nil {
		log.Printf("[BACKUP] чтение авторизованных аккаунтов: %v", err)
	}
	for _, acc := range accounts {
		h.Fleet.Launch(acc)
	}

	log.Printf("[BACKUP] восстановлено аккаунтов: %d, подключено: %d", count, len(accounts))
	c.JSON(http.StatusOK, gin.H{"restored": count, "launched": len(accounts)})
}

// decodeArchive находит файл данных в архиве и разбирает записи.
func decodeArchive(zr *zip.Reader) ([]models.AccountRecord, error) {
	for _, f := range zr.File {
		if f.Name != archiveEntry {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения архива: %v", err)
		}
		defer rc.Close()

		var records []models.AccountRecord
		if err := json.NewDecoder(rc).Decode(&records); err != nil {
			return nil, fmt.Errorf("ошибка разбора данных: %v", err)
		}
		return records, nil
	}
	return nil, fmt.Errorf("в архиве нет файла %s", archiveEntry)
}
