package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourname/wellnesstracker/internal/service"
)

func PostSleepStart(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var body service.StartCycleRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if err := service.ValidateStartCycleRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Validation failed")
			return
		}

		cycle, err := app.Sleep().Start(c.Request.Context(), user, body.StartTime)
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to start sleep cycle")
			return
		}

		HandleSuccess(c, app.Logger(), service.NewSleepCycleView(*cycle), nil)
	}
}

func PostSleepEnd(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var body service.EndCycleRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if err := service.ValidateEndCycleRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Validation failed")
			return
		}

		cycle, err := app.Sleep().End(c.Request.Context(), user, body.EndTime, body.Quality)
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to end sleep cycle")
			return
		}

		HandleSuccess(c, app.Logger(), service.NewSleepCycleView(*cycle), nil)
	}
}

func GetSleepActive(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		cycle, err := app.Sleep().Active(c.Request.Context(), user)
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to fetch active cycle")
			return
		}
		if cycle == nil {
			HandleSuccess(c, app.Logger(), nil, map[string]any{"active": false})
			return
		}
		HandleSuccess(c, app.Logger(), service.NewSleepCycleView(*cycle), map[string]any{"active": true})
	}
}

func GetSleepState(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		state, err := app.Sleep().State(c.Request.Context(), user)
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to derive sleep state")
			return
		}
		HandleSuccess(c, app.Logger(), state, nil)
	}
}

func GetSleepHistory(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		limit := 0
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid limit")
				return
			}
			if parsed < 0 {
				HandleError(c, app.Logger(), errors.New("limit must not be negative"), http.StatusBadRequest, "Invalid limit")
				return
			}
			limit = parsed
		}

		cycles, err := app.Sleep().History(c.Request.Context(), user, limit)
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to fetch history")
			return
		}
		HandleSuccess(c, app.Logger(), service.NewSleepCycleViews(cycles), nil)
	}
}

func PutSleep(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body service.UpdateCycleRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
			return
		}

		cycle, err := app.Sleep().Update(c.Request.Context(), c.Param("id"), body)
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to update sleep cycle")
			return
		}
		HandleSuccess(c, app.Logger(), service.NewSleepCycleView(*cycle), nil)
	}
}

func DeleteSleep(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := app.Sleep().Delete(c.Request.Context(), c.Param("id")); err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to delete sleep cycle")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"deleted": true})
	}
}
