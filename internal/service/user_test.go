package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/aliskhannn/tables-trainer-bot/internal/domain/entities"
)

type fakeUserRepo struct {
	saved []*entities.User
	err   error
}

func (f *fakeUserRepo) Save(_ context.Context, user *entities.User) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.saved = append(f.saved, user)
	return len(f.saved) == 1, nil
}

func TestUserService_EnsureUser(t *testing.T) {
	repo := &fakeUserRepo{}
	s := NewUserService(repo, zap.NewNop())

	if err := s.EnsureUser(context.Background(), 1, 10, "kid"); err != nil {
		t.Fatal(err)
	}

	if len(repo.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(repo.saved))
	}
	u := repo.saved[0]
	if u.ID != 1 || u.ChatID != 10 || u.Username != "kid" || !u.IsActive {
		t.Errorf("unexpected user %+v", u)
	}
}

func TestUserService_EnsureUserError(t *testing.T) {
	boom := errors.New("boom")
	s := NewUserService(&fakeUserRepo{err: boom}, zap.NewNop())

	if err := s.EnsureUser(context.Background(), 1, 10, ""); !errors.Is(err, boom) {
		t.Errorf("expected %v, got %v", boom, err)
	}
}
