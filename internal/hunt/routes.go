package hunt

import (
	"safari_go/internal/fleet"
	"safari_go/pkg/storage"

	"github.com/gin-gonic/gin"
)

// SetupRoutes регистрирует маршруты управления охотой.
func SetupRoutes(r *gin.RouterGroup, db *storage.DB, f *fleet.Fleet) {
	handler := NewHandler(db, f)
	r.POST("/start", handler.Start)
	r.POST("/stop", handler.Stop)
	r.POST("/start_all", handler.StartAll)
	r.POST("/stop_all", handler.StopAll)
	r.POST("/interval", handler.SetInterval)
	r.POST("/schedule", handler.SetSchedule)
	r.POST("/watchlist", handler.SetWatchlist)
	r.POST("/ball", handler.SetBall)
	r.POST("/notification", handler.SetNotification)
	r.GET("/status/:id", handler.Status)
	r.GET("/stats", handler.GlobalStats)
}
