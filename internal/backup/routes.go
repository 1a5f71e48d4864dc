package backup

import (
	"safari_go/internal/fleet"
	"safari_go/pkg/storage"

	"github.com/gin-gonic/gin"
)

// SetupRoutes регистрирует маршруты резервного копирования.
func SetupRoutes(r *gin.RouterGroup, db *storage.DB, f *fleet.Fleet) {
	handler := NewHandler(db, f)
	r.GET("/export", handler.Export)
	r.POST("/import", handler.Import)
}
