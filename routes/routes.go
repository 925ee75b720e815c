package routes

import (
	"github.com/See2Code/transport-platform-sub000/handlers"
	"github.com/See2Code/transport-platform-sub000/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the operational and producer endpoints.
func RegisterRoutes(r *gin.Engine, reminderHandler *handlers.ReminderHandler) {
	r.GET("/health", handlers.HealthHandler)

	reminders := r.Group("/api/reminders")
	reminders.Use(middleware.JWTAuthMiddleware())
	{
		reminders.POST("", reminderHandler.CreateReminderHandler)
		reminders.GET("", reminderHandler.ListRemindersHandler)
		reminders.DELETE("", reminderHandler.DeleteByParentHandler)
		reminders.DELETE("/:id", reminderHandler.DeleteReminderHandler)
	}
}
