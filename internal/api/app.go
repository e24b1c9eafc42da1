package api

import (
	"github.com/gin-gonic/gin"
	"github.com/yourname/wellnesstracker/internal"
	"github.com/yourname/wellnesstracker/internal/service"
	"github.com/yourname/wellnesstracker/internal/storage"
)

type App interface {
	Logger() internal.Logger
	Sleep() *service.SleepCycleStore
	Goals() *service.GoalStore
	Exercises() *service.ExerciseStore
	Metrics() *service.AggregationEngine
}

type app struct {
	logger    internal.Logger
	sleep     *service.SleepCycleStore
	goals     *service.GoalStore
	exercises *service.ExerciseStore
	metrics   *service.AggregationEngine
}

func NewApp(logger internal.Logger, repos storage.Repositories, targets service.GoalTargets) App {
	return &app{
		logger:    logger,
		sleep:     service.NewSleepCycleStore(repos.Cycles),
		goals:     service.NewGoalStore(repos.Goals),
		exercises: service.NewExerciseStore(repos.Exercises),
		metrics:   service.NewAggregationEngine(repos, targets),
	}
}

func (a *app) Logger() internal.Logger             { return a.logger }
func (a *app) Sleep() *service.SleepCycleStore     { return a.sleep }
func (a *app) Goals() *service.GoalStore           { return a.goals }
func (a *app) Exercises() *service.ExerciseStore   { return a.exercises }
func (a *app) Metrics() *service.AggregationEngine { return a.metrics }

// RegisterRoutes wires every handler under the given auth middleware.
func RegisterRoutes(r *gin.Engine, a App, authMW gin.HandlerFunc) {
	r.Use(RequestIDMiddleware())

	g := r.Group("/", authMW)
	g.POST("/sleep/start", PostSleepStart(a))
	g.POST("/sleep/end", PostSleepEnd(a))
	g.GET("/sleep/active", GetSleepActive(a))
	g.GET("/sleep/state", GetSleepState(a))
	g.GET("/sleep", GetSleepHistory(a))
	g.PUT("/sleep/:id", PutSleep(a))
	g.DELETE("/sleep/:id", DeleteSleep(a))

	g.PUT("/goals/water", PutGoalWater(a))
	g.PUT("/goals/steps", PutGoalSteps(a))
	g.GET("/goals", GetGoal(a))
	g.GET("/goals/recent", GetGoalsRecent(a))
	g.DELETE("/goals/:id", DeleteGoal(a))

	g.POST("/exercises", PostExercise(a))
	g.GET("/exercises", GetExercises(a))
	g.DELETE("/exercises/:id", DeleteExercise(a))

	g.GET("/metrics/daily", GetDailyMetrics(a))
}
