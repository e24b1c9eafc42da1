package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/yourname/wellnesstracker/internal"
	"github.com/yourname/wellnesstracker/internal/dateutil"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()

	if err := runMigrations(dsn); err != nil {
		logger.Errorf("failed to run migrations: %v", err)
		return nil, err
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

// runMigrations applies the embedded goose migrations through the pgx
// stdlib driver before the pool is opened.
func runMigrations(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, "migrations")
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// dayRange brackets a calendar day for SQL comparisons.
func dayRange(day time.Time) (time.Time, time.Time) {
	start := dateutil.StartOfDay(day)
	return start, start.AddDate(0, 0, 1)
}

// --- SleepCycleRepository ---

func (p *PostgresStorage) SaveCycle(ctx context.Context, cycle *internal.SleepCycle) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO sleep_cycles (id, user_id, start_time, end_time, quality, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		cycle.ID, cycle.UserID, cycle.Start, cycle.End, cycle.Quality, cycle.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert sleep cycle: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetCycle(ctx context.Context, id string) (*internal.SleepCycle, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT id, user_id, start_time, end_time, quality, created_at
		 FROM sleep_cycles WHERE id = $1`, id)
	return scanCycle(row)
}

func (p *PostgresStorage) UpdateCycle(ctx context.Context, cycle *internal.SleepCycle) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE sleep_cycles SET start_time = $2, end_time = $3, quality = $4 WHERE id = $1`,
		cycle.ID, cycle.Start, cycle.End, cycle.Quality)
	if err != nil {
		p.logger.Errorf("failed to update sleep cycle: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return internal.ErrCycleNotFound
	}
	return nil
}

func (p *PostgresStorage) DeleteCycle(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM sleep_cycles WHERE id = $1`, id)
	if err != nil {
		p.logger.Errorf("failed to delete sleep cycle: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return internal.ErrCycleNotFound
	}
	return nil
}

func (p *PostgresStorage) ListCycles(ctx context.Context, userID string, limit int) ([]internal.SleepCycle, error) {
	query := `SELECT id, user_id, start_time, end_time, quality, created_at
		 FROM sleep_cycles WHERE user_id = $1 ORDER BY start_time DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Errorf("failed to query sleep cycles: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cycles []internal.SleepCycle
	for rows.Next() {
		var c internal.SleepCycle
		if err := rows.Scan(&c.ID, &c.UserID, &c.Start, &c.End, &c.Quality, &c.CreatedAt); err != nil {
			p.logger.Errorf("failed to scan sleep cycle: %v", err)
			return nil, err
		}
		cycles = append(cycles, c)
	}
	return cycles, rows.Err()
}

func (p *PostgresStorage) OpenCycle(ctx context.Context, userID string) (*internal.SleepCycle, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT id, user_id, start_time, end_time, quality, created_at
		 FROM sleep_cycles WHERE user_id = $1 AND end_time IS NULL
		 ORDER BY start_time DESC LIMIT 1`, userID)
	return scanCycle(row)
}

func scanCycle(row pgx.Row) (*internal.SleepCycle, error) {
	var c internal.SleepCycle
	if err := row.Scan(&c.ID, &c.UserID, &c.Start, &c.End, &c.Quality, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, internal.ErrCycleNotFound
		}
		return nil, err
	}
	return &c, nil
}

// --- GoalRepository ---

func (p *PostgresStorage) SaveGoal(ctx context.Context, goal *internal.Goal) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO goals (id, user_id, day, water, steps, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id, day) DO UPDATE
		 SET water = EXCLUDED.water, steps = EXCLUDED.steps, updated_at = EXCLUDED.updated_at`,
		goal.ID, goal.UserID, dateutil.StartOfDay(goal.Day), goal.Water, goal.Steps,
		goal.CreatedAt, goal.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to upsert goal: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetGoalByDay(ctx context.Context, userID string, day time.Time) (*internal.Goal, error) {
	from, to := dayRange(day)
	row := p.pool.QueryRow(ctx,
		`SELECT id, user_id, day, water, steps, created_at, updated_at
		 FROM goals WHERE user_id = $1 AND day >= $2 AND day < $3`, userID, from, to)
	var g internal.Goal
	if err := row.Scan(&g.ID, &g.UserID, &g.Day, &g.Water, &g.Steps, &g.CreatedAt, &g.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, internal.ErrGoalNotFound
		}
		p.logger.Errorf("failed to query goal: %v", err)
		return nil, err
	}
	return &g, nil
}

func (p *PostgresStorage) ListGoalsSince(ctx context.Context, userID string, since time.Time) ([]internal.Goal, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, user_id, day, water, steps, created_at, updated_at
		 FROM goals WHERE user_id = $1 AND day >= $2 ORDER BY day DESC`,
		userID, dateutil.StartOfDay(since))
	if err != nil {
		p.logger.Errorf("failed to query goals: %v", err)
		return nil, err
	}
	defer rows.Close()

	var goals []internal.Goal
	for rows.Next() {
		var g internal.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Day, &g.Water, &g.Steps, &g.CreatedAt, &g.UpdatedAt); err != nil {
			p.logger.Errorf("failed to scan goal: %v", err)
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (p *PostgresStorage) DeleteGoal(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		p.logger.Errorf("failed to delete goal: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return internal.ErrGoalNotFound
	}
	return nil
}

// --- ExerciseRepository ---

func (p *PostgresStorage) SaveExercise(ctx context.Context, ex *internal.Exercise) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO exercises (id, user_id, date, duration_min, intensity, type, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ex.ID, ex.UserID, ex.Date, ex.DurationMin, ex.Intensity, string(ex.Type), ex.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert exercise: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListExercisesByDay(ctx context.Context, userID string, day time.Time) ([]internal.Exercise, error) {
	from, to := dayRange(day)
	rows, err := p.pool.Query(ctx,
		`SELECT id, user_id, date, duration_min, intensity, type, created_at
		 FROM exercises WHERE user_id = $1 AND date >= $2 AND date < $3 ORDER BY date ASC`,
		userID, from, to)
	if err != nil {
		p.logger.Errorf("failed to query exercises: %v", err)
		return nil, err
	}
	defer rows.Close()

	var exercises []internal.Exercise
	for rows.Next() {
		var e internal.Exercise
		var typ string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.DurationMin, &e.Intensity, &typ, &e.CreatedAt); err != nil {
			p.logger.Errorf("failed to scan exercise: %v", err)
			return nil, err
		}
		e.Type = internal.ExerciseType(typ)
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

func (p *PostgresStorage) DeleteExercise(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		p.logger.Errorf("failed to delete exercise: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return internal.ErrExerciseNotFound
	}
	return nil
}

// --- Compile-time assertions ---
var _ SleepCycleRepository = (*PostgresStorage)(nil)
var _ GoalRepository = (*PostgresStorage)(nil)
var _ ExerciseRepository = (*PostgresStorage)(nil)
