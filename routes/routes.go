package routes

import (
	"emoguchi/controllers"
	"emoguchi/middleware"
	"emoguchi/services/game"
	utils "emoguchi/utils"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, service *game.Service) {
	// utils global
	router.Use(utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/ping", controllers.Ping)

	// API routes group
	api := router.Group("/api/v1")

	api.GET("/emotions", controllers.ListEmotions())

	rooms := api.Group("/rooms")
	{
		rooms.POST("", controllers.CreateRoom(service))
		rooms.GET("/:room_id", controllers.GetRoom(service))

		// Host-only room management
		host := rooms.Group("/:room_id")
		host.Use(middleware.HostTokenRequired(service))
		{
			host.DELETE("", controllers.DeleteRoom(service))
			host.PUT("/config", controllers.UpdateRoomConfig(service))
			host.POST("/prefetch", controllers.PrefetchPhrases(service))
		}
	}

	debug := api.Group("/debug")
	debug.Use(middleware.DebugTokenRequired())
	{
		debug.GET("/rooms", controllers.DebugListRooms(service))
		debug.GET("/snapshots", controllers.DebugListSnapshots(service))
		debug.GET("/rooms/:room_id", controllers.DebugGetRoom(service))
		debug.GET("/rooms/:room_id/snapshot", controllers.DebugGetSnapshot(service))
		debug.POST("/rooms/:room_id/complete_round", controllers.DebugCompleteRound(service))
		debug.POST("/rooms/:room_id/reset", controllers.DebugResetRoom(service))
	}
}
