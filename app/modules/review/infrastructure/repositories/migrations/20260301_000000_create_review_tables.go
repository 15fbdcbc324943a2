package reviewmigrations

import (
	"context"
	"fmt"

	reviewdb "github.com/Black-And-White-Club/review-board/app/modules/review/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating categories, leaderboards and reviews tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.NewCreateTable().Model((*reviewdb.Category)(nil)).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create categories table: %w", err)
			}
			if _, err := tx.NewCreateTable().Model((*reviewdb.Leaderboard)(nil)).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create leaderboards table: %w", err)
			}
			if _, err := tx.NewCreateTable().
				Model((*reviewdb.Review)(nil)).
				IfNotExists().
				ForeignKey(`("category_id") REFERENCES "categories" ("id") ON DELETE CASCADE`).
				ForeignKey(`("leaderboard_id") REFERENCES "leaderboards" ("id") ON DELETE CASCADE`).
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to create reviews table: %w", err)
			}

			fmt.Println("Review tables created successfully!")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping reviews, leaderboards and categories tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			for _, model := range []any{(*reviewdb.Review)(nil), (*reviewdb.Leaderboard)(nil), (*reviewdb.Category)(nil)} {
				if _, err := tx.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
					return err
				}
			}

			fmt.Println("Review tables dropped successfully!")
			return nil
		})
	})
}
