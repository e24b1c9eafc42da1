package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourname/wellnesstracker/internal"
	"github.com/yourname/wellnesstracker/internal/storage"
)

type LogExerciseRequest struct {
	Date        time.Time `json:"date" validate:"required"`
	DurationMin int       `json:"duration_min" validate:"gte=0"`
	Intensity   int       `json:"intensity" validate:"gte=0,lte=10"`
	Type        string    `json:"type" validate:"required,oneof=walking running cycling swimming strength yoga other"`
}

func ValidateLogExerciseRequest(req *LogExerciseRequest) error {
	return validate.Struct(req)
}

// ExerciseStore records exercises, the read-only input side of the daily
// aggregation.
type ExerciseStore struct {
	repo storage.ExerciseRepository
}

func NewExerciseStore(repo storage.ExerciseRepository) *ExerciseStore {
	return &ExerciseStore{repo: repo}
}

func (s *ExerciseStore) Log(ctx context.Context, user *internal.User, req *LogExerciseRequest) (*internal.Exercise, error) {
	ex := &internal.Exercise{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Date:        req.Date,
		DurationMin: req.DurationMin,
		Intensity:   req.Intensity,
		Type:        internal.ExerciseType(req.Type),
		CreatedAt:   time.Now(),
	}
	if err := s.repo.SaveExercise(ctx, ex); err != nil {
		return nil, err
	}
	return ex, nil
}

func (s *ExerciseStore) ListByDay(ctx context.Context, user *internal.User, day time.Time) ([]internal.Exercise, error) {
	return s.repo.ListExercisesByDay(ctx, user.ID, day)
}

func (s *ExerciseStore) Delete(ctx context.Context, exerciseID string) error {
	return s.repo.DeleteExercise(ctx, exerciseID)
}
