package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/tables-trainer-bot/internal/domain/entities"
	"github.com/aliskhannn/tables-trainer-bot/internal/infra/postgres/repository"
)

const recentResultsLimit = 5

// HistoryService stores and reports finished question sets.
type HistoryService struct {
	tr         Transactor
	resultRepo ResultRepository
	txRepo     func(tx pgx.Tx) ResultRepository
}

func NewHistoryService(tr Transactor, resultRepo ResultRepository) *HistoryService {
	return &HistoryService{
		tr:         tr,
		resultRepo: resultRepo,
		txRepo: func(tx pgx.Tx) ResultRepository {
			return repository.NewResultRepository(tx)
		},
	}
}

// Record saves the result and updates the user's aggregate in one transaction.
// Recording the same question set twice is a no-op.
func (s *HistoryService) Record(ctx context.Context, res *entities.PracticeResult) error {
	err := s.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		repo := s.txRepo(tx)

		id, err := repo.Create(ctx, res)
		if err != nil {
			return err
		}
		res.ID = id

		return repo.UpsertStats(ctx, res)
	})
	if errors.Is(err, repository.ErrResultDuplicate) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("record practice result: %w", err)
	}
	return nil
}

// Report is what /stats shows.
type Report struct {
	Stats  *entities.UserStats
	Recent []*entities.PracticeResult
}

// Report returns the user's aggregate and latest results.
// A user without history gets empty stats, not an error.
func (s *HistoryService) Report(ctx context.Context, userID int64) (*Report, error) {
	stats, err := s.resultRepo.GetStats(ctx, userID)
	if errors.Is(err, repository.ErrStatsNotFound) {
		return &Report{Stats: &entities.UserStats{UserID: userID}}, nil
	}
	if err != nil {
		return nil, err
	}

	recent, err := s.resultRepo.ListRecent(ctx, userID, recentResultsLimit)
	if err != nil {
		return nil, err
	}

	return &Report{Stats: stats, Recent: recent}, nil
}
