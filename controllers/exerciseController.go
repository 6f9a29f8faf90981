package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang-exercisetracker/database"
	"golang-exercisetracker/helpers"
	"golang-exercisetracker/metrics"
	"golang-exercisetracker/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrUserNotFound is the body of the soft error returned, with status 200, for
// an unknown user id.
const ErrUserNotFound = models.UserNotFoundMessage

type ExerciseStore interface {
	AddExercise(ctx context.Context, exercise *models.Exercise) error
	FindExercises(ctx context.Context, userID string, filter models.LogFilter) ([]models.Exercise, error)
}

// LogArchiver stores an exported log under key.
type LogArchiver interface {
	Put(ctx context.Context, key string, body []byte) error
}

type ExerciseController struct {
	Users     UserStore
	Exercises ExerciseStore
	// Archiver is optional; without it the archive endpoint answers 503.
	Archiver LogArchiver
	Timeout  time.Duration
	Now      func() time.Time
}

func NewExerciseController(users UserStore, exercises ExerciseStore, archiver LogArchiver, timeout time.Duration) *ExerciseController {
	return &ExerciseController{
		Users:     users,
		Exercises: exercises,
		Archiver:  archiver,
		Timeout:   timeout,
		Now:       time.Now,
	}
}

func (ec *ExerciseController) AddExercise() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(c.Request.Context(), ec.Timeout)
		defer cancel()

		var requestBody struct {
			Description models.LooseString `json:"description" form:"description"`
			Duration    models.LooseString `json:"duration" form:"duration"`
			Date        models.LooseString `json:"date" form:"date"`
		}
		if err := c.ShouldBind(&requestBody); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		user, ok := ec.findUser(ctx, c)
		if !ok {
			return
		}

		now := ec.Now()
		date, err := helpers.ExerciseDate(requestBody.Date.String(), now)
		if err != nil {
			c.Error(fmt.Errorf("exercise date %q: %w", requestBody.Date, err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while adding exercise"})
			return
		}

		exercise := models.Exercise{
			ID:          primitive.NewObjectID(),
			UserID:      user.UserID,
			Description: requestBody.Description.String(),
			Duration:    helpers.ParseMinutes(requestBody.Duration.String()),
			Date:        date,
			CreatedAt:   now.UTC(),
		}
		exercise.ExerciseID = exercise.ID.Hex()

		if err := validate.Struct(exercise); err != nil {
			c.Error(fmt.Errorf("validate exercise: %w", err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while adding exercise"})
			return
		}

		if err := ec.Exercises.AddExercise(ctx, &exercise); err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while adding exercise"})
			return
		}
		metrics.ExercisesAdded.Inc()

		c.JSON(http.StatusOK, models.ExerciseResponse{
			Username:    user.Username,
			Description: exercise.Description,
			Duration:    exercise.Duration,
			Date:        helpers.FormatDate(exercise.Date),
			UserID:      user.UserID,
		})
	}
}

func (ec *ExerciseController) GetLogs() gin.HandlerFunc {
	return func(c *gin.Context) {
		var ctx, cancel = context.WithTimeout(c.Request.Context(), ec.Timeout)
		defer cancel()

		log, ok := ec.loadLog(ctx, c)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, log)
	}
}

// ArchiveLogs writes the same log GetLogs would return to object storage.
func (ec *ExerciseController) ArchiveLogs() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ec.Archiver == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "log archive is not configured"})
			return
		}

		var ctx, cancel = context.WithTimeout(c.Request.Context(), ec.Timeout)
		defer cancel()

		log, ok := ec.loadLog(ctx, c)
		if !ok {
			return
		}

		body, err := json.Marshal(log)
		if err != nil {
			c.Error(fmt.Errorf("encode log: %w", err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while archiving log"})
			return
		}

		key := helpers.ArchiveKey(log.UserID, ec.Now())
		if err := ec.Archiver.Put(ctx, key, body); err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while archiving log"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": log.UserID, "count": log.Count, "key": key})
	}
}

// findUser resolves the :id path parameter. When it returns false the
// response has already been written.
func (ec *ExerciseController) findUser(ctx context.Context, c *gin.Context) (models.User, bool) {
	user, err := ec.Users.FindUser(ctx, c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{"error": ErrUserNotFound})
		return models.User{}, false
	}
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching user"})
		return models.User{}, false
	}
	return user, true
}

func (ec *ExerciseController) loadLog(ctx context.Context, c *gin.Context) (models.Log, bool) {
	user, ok := ec.findUser(ctx, c)
	if !ok {
		return models.Log{}, false
	}

	exercises := []models.Exercise{}
	if filter, ok := logFilter(c); ok {
		found, err := ec.Exercises.FindExercises(ctx, user.UserID, filter)
		if err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching exercises"})
			return models.Log{}, false
		}
		exercises = found
	}

	entries := make([]models.LogEntry, 0, len(exercises))
	for _, e := range exercises {
		entries = append(entries, models.LogEntry{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        helpers.FormatDate(e.Date),
		})
	}

	return models.Log{
		Username: user.Username,
		Count:    len(entries),
		UserID:   user.UserID,
		Log:      entries,
	}, true
}

// logFilter reads from, to and limit. It returns false when a date bound is
// present but unparseable, which matches no exercise at all.
func logFilter(c *gin.Context) (models.LogFilter, bool) {
	filter := models.LogFilter{Limit: helpers.ParseLimit(c.Query("limit"))}

	if from := c.Query("from"); from != "" {
		t, err := helpers.ParseDate(from)
		if err != nil {
			return filter, false
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := helpers.ParseDate(to)
		if err != nil {
			return filter, false
		}
		filter.To = &t
	}
	return filter, true
}
