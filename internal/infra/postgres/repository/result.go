package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/tables-trainer-bot/internal/domain/entities"
	"github.com/aliskhannn/tables-trainer-bot/internal/infra/postgres"
)

var (
	ErrStatsNotFound   = errors.New("user stats not found")
	ErrResultDuplicate = errors.New("practice result already recorded")
)

// ResultRepository stores finished question sets and per-user aggregates.
type ResultRepository struct {
	db postgres.DBTX
}

// NewResultRepository creates a new ResultRepository with the provided database handle.
func NewResultRepository(db postgres.DBTX) *ResultRepository {
	return &ResultRepository{db: db}
}

// Create inserts a result. A second insert for the same session returns ErrResultDuplicate.
func (r *ResultRepository) Create(ctx context.Context, res *entities.PracticeResult) (int64, error) {
	query := `
		INSERT INTO practice_results (
			session_id, user_id, tables, correct, incorrect,
			accuracy, outcome, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (session_id) DO NOTHING
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		res.SessionID,
		res.UserID,
		res.Tables,
		res.Correct,
		res.Incorrect,
		res.Accuracy,
		string(res.Outcome),
		res.CompletedAt,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrResultDuplicate
		}
		return 0, fmt.Errorf("create practice result: %w", err)
	}

	return id, nil
}

// ListRecent returns the latest results of a user, newest first.
func (r *ResultRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]*entities.PracticeResult, error) {
	query := `
		SELECT id, session_id, user_id, tables, correct, incorrect,
		       accuracy, outcome, completed_at
		FROM practice_results
		WHERE user_id = $1
		ORDER BY completed_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list practice results: %w", err)
	}
	defer rows.Close()

	var results []*entities.PracticeResult
	for rows.Next() {
		var (
			res     entities.PracticeResult
			outcome string
		)
		if err := rows.Scan(
			&res.ID,
			&res.SessionID,
			&res.UserID,
			&res.Tables,
			&res.Correct,
			&res.Incorrect,
			&res.Accuracy,
			&outcome,
			&res.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan practice result: %w", err)
		}
		res.Outcome = entities.Outcome(outcome)
		results = append(results, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate practice results: %w", err)
	}

	return results, nil
}

// UpsertStats folds a result into the user's aggregate.
func (r *ResultRepository) UpsertStats(ctx context.Context, res *entities.PracticeResult) error {
	query := `
		INSERT INTO user_stats (
			user_id, sessions, total_correct, total_incorrect,
			best_accuracy, last_practiced_at
		) VALUES ($1, 1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			sessions = user_stats.sessions + 1,
			total_correct = user_stats.total_correct + EXCLUDED.total_correct,
			total_incorrect = user_stats.total_incorrect + EXCLUDED.total_incorrect,
			best_accuracy = GREATEST(user_stats.best_accuracy, EXCLUDED.best_accuracy),
			last_practiced_at = EXCLUDED.last_practiced_at
	`

	_, err := r.db.Exec(ctx, query,
		res.UserID, res.Correct, res.Incorrect, res.Accuracy, res.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert user stats: %w", err)
	}

	return nil
}

// GetStats returns the user's aggregate.
func (r *ResultRepository) GetStats(ctx context.Context, userID int64) (*entities.UserStats, error) {
	query := `
		SELECT user_id, sessions, total_correct, total_incorrect,
		       best_accuracy, last_practiced_at
		FROM user_stats
		WHERE user_id = $1
	`

	var s entities.UserStats
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&s.UserID,
		&s.Sessions,
		&s.TotalCorrect,
		&s.TotalIncorrect,
		&s.BestAccuracy,
		&s.LastPracticed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStatsNotFound
		}
		return nil, fmt.Errorf("get user stats: %w", err)
	}

	return &s, nil
}
