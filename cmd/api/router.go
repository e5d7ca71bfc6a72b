package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authdelivery "taskboard-backend/internal/auth/delivery"
	authusecase "taskboard-backend/internal/auth/usecase"
	boarddelivery "taskboard-backend/internal/board/delivery"
	boardusecase "taskboard-backend/internal/board/usecase"
	"taskboard-backend/pkg/database"
)

func SetupRoutes(r *gin.Engine, authUsecase authusecase.AuthUsecase, groupUsecase authusecase.GroupUsecase, boardSvc *boardusecase.Service, db *database.Manager) {
	authHandler := authdelivery.NewAuthHandler(authUsecase)
	groupHandler := authdelivery.NewGroupHandler(groupUsecase)
	boardHandler := boarddelivery.NewBoardHandler(boardSvc)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			if !db.TestConnection() {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "ok", "pool": db.PoolStatus()})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.POST("/heartbeat", authHandler.Heartbeat)
			auth.GET("/me", authdelivery.AuthMiddleware(authUsecase), authHandler.Me)
			auth.POST("/change-password", authdelivery.AuthMiddleware(authUsecase), authHandler.ChangePassword)
			auth.POST("/reset-password", authdelivery.AuthMiddleware(authUsecase), authHandler.ResetPassword)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(authdelivery.AuthMiddleware(authUsecase))
		{
			tasks.GET("", boardHandler.GetMyTasks)
			tasks.POST("", boardHandler.CreateTask)
			tasks.GET("/search", boardHandler.SearchTasks)
			tasks.GET("/statistics", boardHandler.GetStatistics)
			tasks.GET("/:id", boardHandler.GetTask)
			tasks.PUT("/:id", boardHandler.UpdateTask)
			tasks.DELETE("/:id", boardHandler.DeleteTask)
			tasks.POST("/:id/move", boardHandler.MoveTask)
			tasks.GET("/:id/comments", boardHandler.GetComments)
			tasks.POST("/:id/comments", boardHandler.AddComment)
			tasks.GET("/:id/attachments", boardHandler.GetAttachments)
			tasks.POST("/:id/attachments", boardHandler.AddAttachment)
			tasks.GET("/:id/dependencies", boardHandler.GetDependencies)
			tasks.POST("/:id/dependencies", boardHandler.AddDependency)
			tasks.DELETE("/:id/dependencies/:depends_on", boardHandler.RemoveDependency)
		}

		// Column routes (protected)
		columns := api.Group("/columns")
		columns.Use(authdelivery.AuthMiddleware(authUsecase))
		{
			columns.GET("", boardHandler.GetColumns)
			columns.POST("", boardHandler.CreateColumn)
			columns.PUT("/:id", boardHandler.UpdateColumn)
			columns.DELETE("/:id", boardHandler.DeleteColumn)
			columns.GET("/:id/tasks", boardHandler.GetTasksByColumn)
		}

		// Group routes (protected; mutations require admin or manager)
		groups := api.Group("/groups")
		groups.Use(authdelivery.AuthMiddleware(authUsecase))
		{
			groups.GET("", groupHandler.GetGroups)
			groups.POST("", groupHandler.CreateGroup)
			groups.GET("/:id", groupHandler.GetGroup)
			groups.DELETE("/:id", groupHandler.DeleteGroup)
			groups.POST("/:id/members", groupHandler.AddMember)
			groups.DELETE("/:id/members/:user_id", groupHandler.RemoveMember)
			groups.GET("/:id/tasks", boardHandler.GetTasksByGroup)
		}

		// Board settings (protected)
		settings := api.Group("/settings")
		settings.Use(authdelivery.AuthMiddleware(authUsecase))
		{
			settings.GET("/:key", boardHandler.GetSetting)
			settings.PUT("/:key", boardHandler.PutSetting)
		}

		// Comment / attachment routes addressed by their own id (protected)
		api.DELETE("/comments/:id", authdelivery.AuthMiddleware(authUsecase), boardHandler.DeleteComment)
		api.DELETE("/attachments/:id", authdelivery.AuthMiddleware(authUsecase), boardHandler.DeleteAttachment)
	}
}
