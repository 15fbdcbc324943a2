package reviewservice

import (
	"context"

	reviewdomain "github.com/Black-And-White-Club/review-board/app/modules/review/domain"
)

// Service defines the read operations exposed over HTTP.
// Every failure is returned as a *QueryError.
type Service interface {
	// ListCategories returns all category names in store order.
	ListCategories(ctx context.Context) ([]string, error)

	// ListReviews returns the reviews for a category+leaderboard pair, sorted
	// by player id. Unknown names produce an empty, non-nil slice.
	ListReviews(ctx context.Context, categoryName, leaderboardName string) ([]reviewdomain.Review, error)
}
