package reviewdb

import (
	"context"

	reviewdomain "github.com/Black-And-White-Club/review-board/app/modules/review/domain"
	"github.com/uptrace/bun"
)

// Repository defines the read contract for categories and reviews.
// A nil db argument means the repository's own pool.
//
// Error semantics:
//   - ErrNilDB: no database handle is available
//   - Other errors: infrastructure failures (connectivity, malformed query,
//     a row that does not fit the expected shape)
type Repository interface {
	// ListCategoryNames returns every category name in store order.
	ListCategoryNames(ctx context.Context, db bun.IDB) ([]string, error)

	// ListReviews returns the reviews of one category+leaderboard pair sorted by
	// player id. Unknown names yield an empty list, not an error.
	ListReviews(ctx context.Context, db bun.IDB, categoryName, leaderboardName string) ([]reviewdomain.Review, error)
}
