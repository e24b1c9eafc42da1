package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourname/wellnesstracker/internal/service"
)

func PostExercise(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var body service.LogExerciseRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if err := service.ValidateLogExerciseRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Validation failed")
			return
		}

		ex, err := app.Exercises().Log(c.Request.Context(), user, &body)
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to save exercise")
			return
		}
		HandleSuccess(c, app.Logger(), ex, nil)
	}
}

func GetExercises(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		day, err := queryDay(c)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid day")
			return
		}

		exercises, err := app.Exercises().ListByDay(c.Request.Context(), user, day)
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to fetch exercises")
			return
		}
		HandleSuccess(c, app.Logger(), exercises, nil)
	}
}

func DeleteExercise(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := app.Exercises().Delete(c.Request.Context(), c.Param("id")); err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to delete exercise")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"deleted": true})
	}
}
