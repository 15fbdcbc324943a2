package reviewservice

import (
	"context"
	"sync"

	reviewdomain "github.com/Black-And-White-Club/review-board/app/modules/review/domain"
	reviewdb "github.com/Black-And-White-Club/review-board/app/modules/review/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Review Repo
// ------------------------

type FakeReviewRepo struct {
	mu    sync.Mutex
	trace []string

	ListCategoryNamesFunc func(ctx context.Context, db bun.IDB) ([]string, error)
	ListReviewsFunc       func(ctx context.Context, db bun.IDB, categoryName, leaderboardName string) ([]reviewdomain.Review, error)
}

func NewFakeReviewRepo() *FakeReviewRepo {
	return &FakeReviewRepo{
		trace: []string{},
	}
}

func (f *FakeReviewRepo) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeReviewRepo) ListCategoryNames(ctx context.Context, db bun.IDB) ([]string, error) {
	f.record("ListCategoryNames")
	if f.ListCategoryNamesFunc != nil {
		return f.ListCategoryNamesFunc(ctx, db)
	}
	return []string{}, nil
}

func (f *FakeReviewRepo) ListReviews(ctx context.Context, db bun.IDB, categoryName, leaderboardName string) ([]reviewdomain.Review, error) {
	f.record("ListReviews")
	if f.ListReviewsFunc != nil {
		return f.ListReviewsFunc(ctx, db, categoryName, leaderboardName)
	}
	return []reviewdomain.Review{}, nil
}

// --- Accessors for assertions ---

func (f *FakeReviewRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ reviewdb.Repository = (*FakeReviewRepo)(nil)
