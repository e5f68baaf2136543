package router

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/coachdesk/notifier/internal/api/handlers/notification"
	"github.com/coachdesk/notifier/internal/middlewares"
)

func New(handler *notification.Handler) *ginext.Engine {
	e := ginext.New()
	e.Use(middlewares.CORSMiddleware())
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	api := e.Group("/api")
	{
		notifications := api.Group("/notifications")
		{
			notifications.POST("/", handler.Create)
			notifications.POST("/session-reminders", handler.CreateSessionReminders)
			notifications.GET("/", handler.GetAll)
			notifications.GET("/stats", handler.Stats)
			notifications.GET("/:id", handler.GetStatus)
			notifications.GET("/:id/detail", handler.GetDetail)
			notifications.GET("/:id/logs", handler.GetDeliveryLogs)
			notifications.DELETE("/:id", handler.Cancel)
		}

		users := api.Group("/users")
		{
			users.GET("/:userID/preferences", handler.GetPreferences)
			users.PUT("/:userID/preferences", handler.UpdatePreferences)
			users.GET("/:userID/inbox", handler.Inbox)
		}

		api.PUT("/inbox/:id/read", handler.MarkInboxRead)

		api.POST("/push-subscriptions", handler.CreatePushSubscription)
		api.DELETE("/push-subscriptions/:id", handler.DeletePushSubscription)

		api.POST("/scheduler/run", handler.TriggerRun)
	}

	return e
}
