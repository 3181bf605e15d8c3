package router

import (
	"ModelFlow/internal/handler"
	"ModelFlow/utils"

	"github.com/gin-gonic/gin"
)

// InitRouter builds API routes.
func InitRouter() *gin.Engine {
	r := gin.Default()
	r.Use(utils.CORSMiddleware())

	api := r.Group("/api")
	{
		api.POST("/register", handler.Register)
		api.GET("/activate", handler.Activate)
		api.POST("/login", handler.Login)
		api.GET("/models", handler.ListModels)

		auth := api.Group("")
		auth.Use(utils.AuthMiddleware())

		models := auth.Group("/models")
		{
			models.POST("/upload", handler.UploadModel)
			models.GET("/mine", handler.MyModels)
			models.GET("/archived", handler.ArchivedModels)
			models.GET("/:id", handler.GetModelDetail)
			models.DELETE("/:id", handler.DeleteModel)
			models.POST("/:id/like", handler.LikeModel)
			models.DELETE("/:id/like", handler.UnlikeModel)
			models.GET("/:id/like", handler.LikeStatus)
			models.GET("/:id/download", handler.DownloadModel)
			models.POST("/:id/archive", handler.ArchiveModel)
			models.POST("/:id/purchase", handler.PurchaseModel)
		}

		monetize := auth.Group("/monetize")
		{
			monetize.GET("/earnings", handler.Earnings)
			monetize.GET("/purchases", handler.PurchasedModels)
			monetize.GET("/balance", handler.Balance)
			monetize.POST("/withdrawals", handler.CreateWithdrawal)
		}

		notify := auth.Group("/notifications")
		{
			notify.GET("", handler.Notifications)
			notify.POST("/read", handler.MarkNotificationsRead)
			notify.POST("/delete", handler.DeleteNotifications)
		}

		automations := auth.Group("/automations")
		{
			automations.POST("/upload", handler.UploadAutomation)
			automations.GET("", handler.ListAutomations)
			automations.POST("/search", handler.SearchAutomations)
			automations.GET("/:id", handler.GetAutomation)
			automations.PATCH("/:id", handler.UpdateAutomation)
			automations.DELETE("/:id", handler.DeleteAutomation)
			automations.POST("/:id/toggle", handler.ToggleAutomation)
			automations.POST("/:id/import", handler.ImportAutomation)
			automations.POST("/:id/execute", handler.ExecuteAutomation)
		}

		admin := auth.Group("/admin")
		admin.Use(utils.AdminMiddleware())
		{
			admin.GET("/models/pending", handler.PendingModels)
			admin.POST("/models/:id/review", handler.ReviewModel)
			admin.GET("/withdrawals", handler.PendingWithdrawals)
			admin.POST("/withdrawals/approve", handler.ApproveWithdrawal)
			admin.POST("/withdrawals/reject", handler.RejectWithdrawal)
		}
	}
	return r
}
