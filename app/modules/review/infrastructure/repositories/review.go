package reviewdb

import (
	"context"
	"errors"
	"fmt"

	reviewdomain "github.com/Black-And-White-Club/review-board/app/modules/review/domain"
	"github.com/uptrace/bun"
)

// ErrNilDB is returned when neither the caller nor the repository has a
// database handle.
var ErrNilDB = errors.New("nil database handle")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new review repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) (bun.IDB, error) {
	if db != nil {
		return db, nil
	}
	if r.db == nil {
		return nil, ErrNilDB
	}
	return r.db, nil
}

// ListCategoryNames retrieves every category name with no filter or ordering.
func (r *Impl) ListCategoryNames(ctx context.Context, db bun.IDB) ([]string, error) {
	db, err := r.resolveDB(db)
	if err != nil {
		return nil, err
	}

	rows, err := categoriesQuery(db).Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category rows: %w", err)
	}
	return names, nil
}

// ListReviews retrieves the reviews for a category+leaderboard pair.
func (r *Impl) ListReviews(ctx context.Context, db bun.IDB, categoryName, leaderboardName string) ([]reviewdomain.Review, error) {
	db, err := r.resolveDB(db)
	if err != nil {
		return nil, err
	}

	rows, err := reviewsQuery(db, categoryName, leaderboardName).Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]reviewdomain.Review, 0)
	for rows.Next() {
		// Scanning into plain types rejects NULLs and out-of-range values
		// instead of defaulting them.
		var review reviewdomain.Review
		if err := rows.Scan(&review.PlayerSteamID, &review.Score, &review.IsLegal); err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate review rows: %w", err)
	}
	return reviews, nil
}

func categoriesQuery(db bun.IDB) *bun.SelectQuery {
	return db.NewSelect().
		Model((*Category)(nil)).
		Column("name")
}

// reviewsQuery resolves both names to ids in CTEs and filters reviews on the
// pair. A name with no match resolves to NULL, so no rows compare equal.
// More than one match makes Postgres reject the scalar subquery.
func reviewsQuery(db bun.IDB, categoryName, leaderboardName string) *bun.SelectQuery {
	categoryID := db.NewSelect().
		Model((*Category)(nil)).
		Column("id").
		Where("name = ?", categoryName)

	leaderboardID := db.NewSelect().
		Model((*Leaderboard)(nil)).
		Column("id").
		Where("name = ?", leaderboardName)

	return db.NewSelect().
		With("category_id", categoryID).
		With("leaderboard_id", leaderboardID).
		Model((*Review)(nil)).
		Column("player_steam_id", "score", "is_legal").
		Where("r.category_id = (SELECT * FROM category_id)").
		Where("r.leaderboard_id = (SELECT * FROM leaderboard_id)").
		OrderExpr("r.player_steam_id ASC")
}
