package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourname/wellnesstracker/internal"
	"github.com/yourname/wellnesstracker/internal/response"
)

func HandleError(c *gin.Context, logger internal.Logger, err error, status int, msg string) {
	requestID := c.GetString("request_id")
	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
	var resp response.APIResponse
	switch status {
	case http.StatusBadRequest:
		resp = response.BadRequest(msg + ": " + err.Error())
	case http.StatusNotFound:
		resp = response.NotFound(msg + ": " + err.Error())
	case http.StatusConflict:
		resp = response.Conflict(msg + ": " + err.Error())
	case http.StatusInternalServerError:
		resp = response.InternalError(msg + ": " + err.Error())
	default:
		resp = response.NewAppError(status, msg+": "+err.Error())
	}
	c.JSON(status, resp)
}

// HandleStoreError maps the stores' typed failures onto HTTP statuses.
func HandleStoreError(c *gin.Context, logger internal.Logger, err error, msg string) {
	HandleError(c, logger, err, statusFor(err), msg)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, internal.ErrActiveCycleExists):
		return http.StatusConflict
	case errors.Is(err, internal.ErrCycleNotFound),
		errors.Is(err, internal.ErrGoalNotFound),
		errors.Is(err, internal.ErrExerciseNotFound):
		return http.StatusNotFound
	case errors.Is(err, internal.ErrInvalidInterval):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func HandleSuccess(c *gin.Context, logger internal.Logger, data interface{}, meta map[string]any) {
	requestID := c.GetString("request_id")
	logger.Infof("[request_id=%s] Success", requestID)
	c.JSON(http.StatusOK, response.Success(data, meta))
}

func currentUser(c *gin.Context) *internal.User {
	return c.MustGet("user").(*internal.User)
}

// queryDay parses the "day" query parameter (2006-01-02), defaulting to
// today.
func queryDay(c *gin.Context) (time.Time, error) {
	raw := c.Query("day")
	if raw == "" {
		return time.Now(), nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}
