package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the notification API under rg.
func RegisterRoutes(rg *gin.RouterGroup, n *NotificationHandler, subs *SubscriptionHandler, settings *SettingsHandler) {
	rg.POST("/notifications/check", n.HandleCheck)
	rg.POST("/notifications/check/batch", n.HandleCheckBatch)
	rg.POST("/entries/created", n.HandleEntryCreated)
	rg.POST("/followups/cancel", n.HandleCancelFollowUps)
	rg.POST("/maintenance/logs/prune", n.HandlePruneLogs)

	rg.POST("/subscriptions", subs.HandleRegister)
	rg.DELETE("/subscriptions", subs.HandleUnregister)
	rg.GET("/users/:user_id/subscriptions", subs.HandleList)

	rg.GET("/users/:user_id/notification-settings", settings.HandleGet)
	rg.PUT("/users/:user_id/notification-settings", settings.HandleReplace)
	rg.PATCH("/users/:user_id/notification-settings", settings.HandlePatch)
}
