package accounts

import (
	"safari_go/internal/fleet"
	"safari_go/pkg/storage"

	"github.com/gin-gonic/gin"
)

// SetupRoutes регистрирует маршруты управления аккаунтами.
func SetupRoutes(r *gin.RouterGroup, db *storage.DB, f *fleet.Fleet) {
	handler := NewHandler(db, f)
	r.POST("/create", handler.Create)
	r.POST("/confirm", handler.Confirm)
}
