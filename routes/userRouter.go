package routes

import (
	"slices"

	controller "golang-exercisetracker/controllers"

	"github.com/gin-gonic/gin"
)

// UserRoutes registers the user endpoints. write runs before handlers that
// create documents.
func UserRoutes(incomingRoutes *gin.RouterGroup, uc *controller.UserController, write ...gin.HandlerFunc) {
	incomingRoutes.POST("/users", chain(write, uc.CreateUser())...)
	incomingRoutes.GET("/users", uc.GetUsers())
}

// chain copies middleware so routes sharing it never share a backing array.
func chain(mw []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	return append(slices.Clip(mw), handler)
}
