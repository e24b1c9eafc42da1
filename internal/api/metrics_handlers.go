package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourname/wellnesstracker/internal/service"
)

func GetDailyMetrics(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		day, err := queryDay(c)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid day")
			return
		}

		metrics, err := app.Metrics().DailyMetrics(c.Request.Context(), user, day)
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to compute daily metrics")
			return
		}
		HandleSuccess(c, app.Logger(), service.NewDailyMetricsView(metrics), nil)
	}
}
