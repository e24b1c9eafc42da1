package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourname/wellnesstracker/internal/service"
)

func PutGoalWater(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var req service.SetGoalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if err := service.ValidateSetGoalRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Validation failed")
			return
		}

		goal, err := app.Goals().SetWater(c.Request.Context(), user, req.Day, req.Amount)
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to save water goal")
			return
		}
		HandleSuccess(c, app.Logger(), service.NewGoalView(*goal, app.Metrics().Targets()), nil)
	}
}

func PutGoalSteps(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var req service.SetGoalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if err := service.ValidateSetGoalRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Validation failed")
			return
		}

		goal, err := app.Goals().SetSteps(c.Request.Context(), user, req.Day, req.Amount)
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to save step goal")
			return
		}
		HandleSuccess(c, app.Logger(), service.NewGoalView(*goal, app.Metrics().Targets()), nil)
	}
}

func GetGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		day, err := queryDay(c)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid day")
			return
		}

		goal, err := app.Goals().Fetch(c.Request.Context(), user, day)
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "No goal for day")
			return
		}
		HandleSuccess(c, app.Logger(), service.NewGoalView(*goal, app.Metrics().Targets()), nil)
	}
}

func GetGoalsRecent(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		days := 7
		if raw := c.Query("days"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid days")
				return
			}
			if parsed < 0 {
				HandleError(c, app.Logger(), errors.New("days must not be negative"), http.StatusBadRequest, "Invalid days")
				return
			}
			days = parsed
		}

		goals, err := app.Goals().FetchRecent(c.Request.Context(), user, days)
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to fetch goals")
			return
		}
		HandleSuccess(c, app.Logger(), service.NewGoalViews(goals, app.Metrics().Targets()), nil)
	}
}

func DeleteGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := app.Goals().Delete(c.Request.Context(), c.Param("id")); err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to delete goal")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"deleted": true})
	}
}
