package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/tables-trainer-bot/internal/domain/entities"
)

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
}

type ResultRepository interface {
	Create(ctx context.Context, res *entities.PracticeResult) (int64, error)
	UpsertStats(ctx context.Context, res *entities.PracticeResult) error
	ListRecent(ctx context.Context, userID int64, limit int) ([]*entities.PracticeResult, error)
	GetStats(ctx context.Context, userID int64) (*entities.UserStats, error)
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

// ResultRecorder persists finished question sets.
type ResultRecorder interface {
	Record(ctx context.Context, res *entities.PracticeResult) error
}

// IdleEvicter drops practice state that has not been used for a while.
type IdleEvicter interface {
	EvictIdle(ttl time.Duration) int
}
