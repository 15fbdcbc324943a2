package reviewhandlers

import (
	"context"

	reviewservice "github.com/Black-And-White-Club/review-board/app/modules/review/application"
	reviewdomain "github.com/Black-And-White-Club/review-board/app/modules/review/domain"
)

// ------------------------
// Fake Review Service
// ------------------------

type FakeReviewService struct {
	trace []string

	ListCategoriesFunc func(ctx context.Context) ([]string, error)
	ListReviewsFunc    func(ctx context.Context, categoryName, leaderboardName string) ([]reviewdomain.Review, error)
}

func NewFakeReviewService() *FakeReviewService {
	return &FakeReviewService{
		trace: []string{},
	}
}

func (f *FakeReviewService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeReviewService) ListCategories(ctx context.Context) ([]string, error) {
	f.record("ListCategories")
	if f.ListCategoriesFunc != nil {
		return f.ListCategoriesFunc(ctx)
	}
	return []string{}, nil
}

func (f *FakeReviewService) ListReviews(ctx context.Context, categoryName, leaderboardName string) ([]reviewdomain.Review, error) {
	f.record("ListReviews")
	if f.ListReviewsFunc != nil {
		return f.ListReviewsFunc(ctx, categoryName, leaderboardName)
	}
	return []reviewdomain.Review{}, nil
}

func (f *FakeReviewService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ reviewservice.Service = (*FakeReviewService)(nil)
