package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/tables-trainer-bot/internal/domain/entities"
	"github.com/aliskhannn/tables-trainer-bot/internal/infra/postgres/repository"
)

type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	f.calls++
	return fn(ctx, nil)
}

type fakeResultRepo struct {
	created   []*entities.PracticeResult
	upserted  []*entities.PracticeResult
	createErr error
	stats     *entities.UserStats
	statsErr  error
	recent    []*entities.PracticeResult
}

func (f *fakeResultRepo) Create(_ context.Context, res *entities.PracticeResult) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.created = append(f.created, res)
	return int64(len(f.created)), nil
}

func (f *fakeResultRepo) UpsertStats(_ context.Context, res *entities.PracticeResult) error {
	f.upserted = append(f.upserted, res)
	return nil
}

func (f *fakeResultRepo) ListRecent(_ context.Context, _ int64, limit int) ([]*entities.PracticeResult, error) {
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func (f *fakeResultRepo) GetStats(_ context.Context, _ int64) (*entities.UserStats, error) {
	return f.stats, f.statsErr
}

func newTestHistoryService(repo *fakeResultRepo) (*HistoryService, *fakeTransactor) {
	tr := &fakeTransactor{}
	s := NewHistoryService(tr, repo)
	s.txRepo = func(pgx.Tx) ResultRepository { return repo }
	return s, tr
}

func TestHistoryService_Record(t *testing.T) {
	repo := &fakeResultRepo{}
	s, tr := newTestHistoryService(repo)

	res := entities.NewPracticeResult("set-1", 1, []int{2, 3}, entities.NewSummary(18, 2))
	if err := s.Record(context.Background(), res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tr.calls != 1 {
		t.Errorf("expected one transaction, got %d", tr.calls)
	}
	if len(repo.created) != 1 || len(repo.upserted) != 1 {
		t.Fatalf("expected create and upsert, got %d/%d", len(repo.created), len(repo.upserted))
	}
	if res.ID != 1 {
		t.Errorf("ID = %d, want 1", res.ID)
	}
}

func TestHistoryService_RecordDuplicate(t *testing.T) {
	repo := &fakeResultRepo{createErr: repository.ErrResultDuplicate}
	s, _ := newTestHistoryService(repo)

	res := entities.NewPracticeResult("set-1", 1, []int{2}, entities.NewSummary(5, 5))
	if err := s.Record(context.Background(), res); err != nil {
		t.Fatalf("expected duplicate to be ignored, got %v", err)
	}
	if len(repo.upserted) != 0 {
		t.Error("stats must not be updated for a duplicate")
	}
}

func TestHistoryService_RecordError(t *testing.T) {
	boom := errors.New("boom")
	repo := &fakeResultRepo{createErr: boom}
	s, _ := newTestHistoryService(repo)

	res := entities.NewPracticeResult("set-1", 1, []int{2}, entities.NewSummary(5, 5))
	if err := s.Record(context.Background(), res); !errors.Is(err, boom) {
		t.Errorf("expected wrapped error, got %v", err)
	}
}

func TestHistoryService_Report(t *testing.T) {
	tests := []struct {
		name       string
		repo       *fakeResultRepo
		wantErr    bool
		wantRuns   int
		wantRecent int
	}{
		{
			name: "no history",
			repo: &fakeResultRepo{statsErr: repository.ErrStatsNotFound},
		},
		{
			name: "with history",
			repo: &fakeResultRepo{
				stats: &entities.UserStats{UserID: 1, Sessions: 7},
				recent: []*entities.PracticeResult{
					{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}, {ID: 6}, {ID: 7},
				},
			},
			wantRuns:   7,
			wantRecent: recentResultsLimit,
		},
		{
			name:    "storage error",
			repo:    &fakeResultRepo{statsErr: errors.New("boom")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestHistoryService(tt.repo)

			report, err := s.Report(context.Background(), 1)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Report() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if report.Stats.Sessions != tt.wantRuns {
				t.Errorf("Sessions = %d, want %d", report.Stats.Sessions, tt.wantRuns)
			}
			if len(report.Recent) != tt.wantRecent {
				t.Errorf("len(Recent) = %d, want %d", len(report.Recent), tt.wantRecent)
			}
		})
	}
}
