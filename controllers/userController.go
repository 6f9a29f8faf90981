package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang-exercisetracker/metrics"
	"golang-exercisetracker/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New()

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	ListUsers(ctx context.Context) ([]models.User, error)
	FindUser(ctx context.Context, userID string) (models.User, error)
}

type UserController struct {
	Users   UserStore
	Timeout time.Duration
}

func NewUserController(users UserStore, timeout time.Duration) *UserController {
	return &UserController{Users: users, Timeout: timeout}
}

func (uc *UserController) CreateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(c.Request.Context(), uc.Timeout)
		defer cancel()

		var requestBody struct {
			Username models.LooseString `json:"username" form:"username"`
		}
		if err := c.ShouldBind(&requestBody); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		user := models.User{Username: requestBody.Username.String()}

		// A user without a username is refused like any other failed insert.
		if err := validate.Struct(user); err != nil {
			c.Error(fmt.Errorf("validate user: %w", err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "User could not be created"})
			return
		}

		user.ID = primitive.NewObjectID()
		user.UserID = user.ID.Hex()

		if err := uc.Users.CreateUser(ctx, &user); err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "User could not be created"})
			return
		}
		metrics.UsersCreated.Inc()

		c.JSON(http.StatusOK, user)
	}
}

func (uc *UserController) GetUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(c.Request.Context(), uc.Timeout)
		defer cancel()

		users, err := uc.Users.ListUsers(ctx)
		if err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching users"})
			return
		}
		if users == nil {
			users = []models.User{}
		}

		c.JSON(http.StatusOK, users)
	}
}
