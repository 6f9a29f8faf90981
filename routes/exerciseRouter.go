package routes

import (
	controller "golang-exercisetracker/controllers"

	"github.com/gin-gonic/gin"
)

func ExerciseRoutes(incomingRoutes *gin.RouterGroup, ec *controller.ExerciseController, write ...gin.HandlerFunc) {
	incomingRoutes.POST("/users/:id/exercises", chain(write, ec.AddExercise())...)
	incomingRoutes.GET("/users/:id/logs", ec.GetLogs())
	incomingRoutes.POST("/users/:id/logs/archive", chain(write, ec.ArchiveLogs())...)
}
