package storage

import "github.com/yourname/wellnesstracker/internal"

// Repositories bundles the three record repositories served by one
// backend instance.
type Repositories struct {
	Cycles    SleepCycleRepository
	Goals     GoalRepository
	Exercises ExerciseRepository
}

// Closer is implemented by both backends; Close flushes and releases the
// underlying resources.
type Closer interface {
	Close() error
}

func NewFileRepositories(cyclesFile, goalsFile, exercisesFile string, logger internal.Logger) (Repositories, Closer, error) {
	s, err := NewFileStorage(cyclesFile, goalsFile, exercisesFile, logger)
	if err != nil {
		return Repositories{}, nil, err
	}
	return Repositories{Cycles: s, Goals: s, Exercises: s}, s, nil
}

func NewPostgresRepositories(dsn string, logger internal.Logger) (Repositories, Closer, error) {
	s, err := NewPostgresStorage(dsn, logger)
	if err != nil {
		return Repositories{}, nil, err
	}
	return Repositories{Cycles: s, Goals: s, Exercises: s}, s, nil
}
