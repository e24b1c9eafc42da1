package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/yourname/wellnesstracker/internal"
	"github.com/yourname/wellnesstracker/internal/dateutil"
)

// FileStorage keeps all records in memory and flushes them to JSON files
// from debounced background workers. Writes are atomic (temp file +
// rename). Close flushes synchronously.
type FileStorage struct {
	cycles         map[string]*internal.SleepCycle // id -> cycle
	userCycleIndex map[string][]*internal.SleepCycle
	goals          map[string]*internal.Goal // id -> goal
	userGoalIndex  map[string][]*internal.Goal
	exercises      map[string]*internal.Exercise
	userExIndex    map[string][]*internal.Exercise

	mu sync.RWMutex

	cyclesFile    string
	goalsFile     string
	exercisesFile string

	saveCyclesChan chan struct{}
	saveGoalsChan  chan struct{}
	saveExChan     chan struct{}
	shutdownChan   chan struct{}
	saveDelay      time.Duration
	workers        sync.WaitGroup

	logger internal.Logger
}

func NewFileStorage(cyclesFile, goalsFile, exercisesFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		cycles:         make(map[string]*internal.SleepCycle),
		userCycleIndex: make(map[string][]*internal.SleepCycle),
		goals:          make(map[string]*internal.Goal),
		userGoalIndex:  make(map[string][]*internal.Goal),
		exercises:      make(map[string]*internal.Exercise),
		userExIndex:    make(map[string][]*internal.Exercise),
		cyclesFile:     cyclesFile,
		goalsFile:      goalsFile,
		exercisesFile:  exercisesFile,
		saveCyclesChan: make(chan struct{}, 1),
		saveGoalsChan:  make(chan struct{}, 1),
		saveExChan:     make(chan struct{}, 1),
		shutdownChan:   make(chan struct{}),
		saveDelay:      500 * time.Millisecond,
		logger:         logger,
	}

	if err := s.loadCycles(); err != nil {
		logger.Errorf("storage: failed to load sleep cycles: %v", err)
		return nil, err
	}
	if err := s.loadGoals(); err != nil {
		logger.Errorf("storage: failed to load goals: %v", err)
		return nil, err
	}
	if err := s.loadExercises(); err != nil {
		logger.Errorf("storage: failed to load exercises: %v", err)
		return nil, err
	}

	s.workers.Add(3)
	go s.saveWorker(s.saveCyclesChan, s.saveCycles, "sleep cycles")
	go s.saveWorker(s.saveGoalsChan, s.saveGoals, "goals")
	go s.saveWorker(s.saveExChan, s.saveExercises, "exercises")

	return s, nil
}

func decodeJSONFile[T any](path string) ([]*T, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var records []*T
	if err := json.NewDecoder(file).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return records, nil
}

func (s *FileStorage) loadCycles() error {
	cycles, err := decodeJSONFile[internal.SleepCycle](s.cyclesFile)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range cycles {
		s.cycles[c.ID] = c
		s.userCycleIndex[c.UserID] = append(s.userCycleIndex[c.UserID], c)
	}
	for userID := range s.userCycleIndex {
		sortCyclesDesc(s.userCycleIndex[userID])
	}
	return nil
}

func (s *FileStorage) loadGoals() error {
	goals, err := decodeJSONFile[internal.Goal](s.goalsFile)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range goals {
		s.goals[g.ID] = g
		s.userGoalIndex[g.UserID] = append(s.userGoalIndex[g.UserID], g)
	}
	for userID := range s.userGoalIndex {
		sortGoalsDesc(s.userGoalIndex[userID])
	}
	return nil
}

func (s *FileStorage) loadExercises() error {
	exercises, err := decodeJSONFile[internal.Exercise](s.exercisesFile)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range exercises {
		s.exercises[e.ID] = e
		s.userExIndex[e.UserID] = append(s.userExIndex[e.UserID], e)
	}
	return nil
}

func sortCyclesDesc(cycles []*internal.SleepCycle) {
	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i].Start.After(cycles[j].Start)
	})
}

func sortGoalsDesc(goals []*internal.Goal) {
	sort.Slice(goals, func(i, j int) bool {
		return goals[i].Day.After(goals[j].Day)
	})
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveCycles() error {
	s.mu.RLock()
	cycles := make([]*internal.SleepCycle, 0, len(s.cycles))
	for _, c := range s.cycles {
		cycles = append(cycles, c)
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.cyclesFile, cycles)
}

func (s *FileStorage) saveGoals() error {
	s.mu.RLock()
	goals := make([]*internal.Goal, 0, len(s.goals))
	for _, g := range s.goals {
		goals = append(goals, g)
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.goalsFile, goals)
}

func (s *FileStorage) saveExercises() error {
	s.mu.RLock()
	exercises := make([]*internal.Exercise, 0, len(s.exercises))
	for _, e := range s.exercises {
		exercises = append(exercises, e)
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.exercisesFile, exercises)
}

func (s *FileStorage) saveWorker(trigger chan struct{}, save func() error, what string) {
	defer s.workers.Done()

	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-trigger:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := save(); err != nil {
				s.logger.Errorf("storage: error saving %s: %v", what, err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func signal(trigger chan struct{}) {
	select {
	case trigger <- struct{}{}:
	default:
	}
}

// Close stops the flush workers and saves all pending data synchronously.
// It waits for the workers to finish so a mid-flight debounced save never
// races the final flush on the same temp file.
func (s *FileStorage) Close() error {
	close(s.shutdownChan)
	s.workers.Wait()

	if err := s.saveCycles(); err != nil {
		return err
	}
	if err := s.saveGoals(); err != nil {
		return err
	}
	return s.saveExercises()
}

// --- SleepCycleRepository ---

func (s *FileStorage) SaveCycle(ctx context.Context, cycle *internal.SleepCycle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *cycle
	s.cycles[stored.ID] = &stored
	s.insertCycleLocked(&stored)
	signal(s.saveCyclesChan)
	return nil
}

// insertCycleLocked keeps the per-user index sorted by start descending.
func (s *FileStorage) insertCycleLocked(cycle *internal.SleepCycle) {
	cycles := s.userCycleIndex[cycle.UserID]
	inserted := false
	for i, existing := range cycles {
		if existing.Start.Before(cycle.Start) {
			cycles = append(cycles[:i], append([]*internal.SleepCycle{cycle}, cycles[i:]...)...)
			inserted = true
			break
		}
	}
	if !inserted {
		cycles = append(cycles, cycle)
	}
	s.userCycleIndex[cycle.UserID] = cycles
}

func (s *FileStorage) removeCycleLocked(cycle *internal.SleepCycle) {
	cycles := s.userCycleIndex[cycle.UserID]
	for i, existing := range cycles {
		if existing.ID == cycle.ID {
			s.userCycleIndex[cycle.UserID] = append(cycles[:i], cycles[i+1:]...)
			return
		}
	}
}

func (s *FileStorage) GetCycle(ctx context.Context, id string) (*internal.SleepCycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cycles[id]
	if !ok {
		return nil, internal.ErrCycleNotFound
	}
	copied := *c
	return &copied, nil
}

func (s *FileStorage) UpdateCycle(ctx context.Context, cycle *internal.SleepCycle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.cycles[cycle.ID]
	if !ok {
		return internal.ErrCycleNotFound
	}
	s.removeCycleLocked(old)
	stored := *cycle
	s.cycles[stored.ID] = &stored
	s.insertCycleLocked(&stored)
	signal(s.saveCyclesChan)
	return nil
}

func (s *FileStorage) DeleteCycle(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cycles[id]
	if !ok {
		return internal.ErrCycleNotFound
	}
	s.removeCycleLocked(c)
	delete(s.cycles, id)
	signal(s.saveCyclesChan)
	return nil
}

func (s *FileStorage) ListCycles(ctx context.Context, userID string, limit int) ([]internal.SleepCycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	indexed := s.userCycleIndex[userID]
	n := len(indexed)
	if limit > 0 && limit < n {
		n = limit
	}
	cycles := make([]internal.SleepCycle, n)
	for i := 0; i < n; i++ {
		cycles[i] = *indexed[i]
	}
	return cycles, nil
}

func (s *FileStorage) OpenCycle(ctx context.Context, userID string) (*internal.SleepCycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.userCycleIndex[userID] {
		if c.Open() {
			copied := *c
			return &copied, nil
		}
	}
	return nil, internal.ErrCycleNotFound
}

// --- GoalRepository ---

func (s *FileStorage) SaveGoal(ctx context.Context, goal *internal.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *goal
	if old, ok := s.goals[stored.ID]; ok {
		s.removeGoalLocked(old)
	}
	s.goals[stored.ID] = &stored
	s.userGoalIndex[stored.UserID] = append(s.userGoalIndex[stored.UserID], &stored)
	sortGoalsDesc(s.userGoalIndex[stored.UserID])
	signal(s.saveGoalsChan)
	return nil
}

func (s *FileStorage) removeGoalLocked(goal *internal.Goal) {
	goals := s.userGoalIndex[goal.UserID]
	for i, existing := range goals {
		if existing.ID == goal.ID {
			s.userGoalIndex[goal.UserID] = append(goals[:i], goals[i+1:]...)
			return
		}
	}
}

func (s *FileStorage) GetGoalByDay(ctx context.Context, userID string, day time.Time) (*internal.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.userGoalIndex[userID] {
		if dateutil.SameDay(g.Day, day) {
			copied := *g
			return &copied, nil
		}
	}
	return nil, internal.ErrGoalNotFound
}

func (s *FileStorage) ListGoalsSince(ctx context.Context, userID string, since time.Time) ([]internal.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var goals []internal.Goal
	for _, g := range s.userGoalIndex[userID] {
		if g.Day.Before(since) && !dateutil.SameDay(g.Day, since) {
			continue
		}
		goals = append(goals, *g)
	}
	return goals, nil
}

func (s *FileStorage) DeleteGoal(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.goals[id]
	if !ok {
		return internal.ErrGoalNotFound
	}
	s.removeGoalLocked(g)
	delete(s.goals, id)
	signal(s.saveGoalsChan)
	return nil
}

// --- ExerciseRepository ---

func (s *FileStorage) SaveExercise(ctx context.Context, ex *internal.Exercise) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *ex
	s.exercises[stored.ID] = &stored
	s.userExIndex[stored.UserID] = append(s.userExIndex[stored.UserID], &stored)
	signal(s.saveExChan)
	return nil
}

func (s *FileStorage) ListExercisesByDay(ctx context.Context, userID string, day time.Time) ([]internal.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exercises []internal.Exercise
	for _, e := range s.userExIndex[userID] {
		if dateutil.SameDay(e.Date, day) {
			exercises = append(exercises, *e)
		}
	}
	sort.Slice(exercises, func(i, j int) bool {
		return exercises[i].Date.Before(exercises[j].Date)
	})
	return exercises, nil
}

func (s *FileStorage) DeleteExercise(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.exercises[id]
	if !ok {
		return internal.ErrExerciseNotFound
	}
	exercises := s.userExIndex[e.UserID]
	for i, existing := range exercises {
		if existing.ID == id {
			s.userExIndex[e.UserID] = append(exercises[:i], exercises[i+1:]...)
			break
		}
	}
	delete(s.exercises, id)
	signal(s.saveExChan)
	return nil
}

// --- Compile-time assertions ---
var _ SleepCycleRepository = (*FileStorage)(nil)
var _ GoalRepository = (*FileStorage)(nil)
var _ ExerciseRepository = (*FileStorage)(nil)
