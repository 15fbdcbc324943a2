package reviewdb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// FixtureReview is a review addressed by names rather than ids.
type FixtureReview struct {
	Category      string
	Leaderboard   string
	PlayerSteamID int64
	Score         int32
	IsLegal       bool
}

// Fixture is a data set for local development and integration tests.
// The service never writes; only tooling calls Seed.
type Fixture struct {
	Categories   []string
	Leaderboards []string
	Reviews      []FixtureReview
}

// ExampleFixture is the small reference data set used in docs and tests.
func ExampleFixture() Fixture {
	return Fixture{
		Categories:   []string{"speed", "damage"},
		Leaderboards: []string{"world"},
		Reviews: []FixtureReview{
			{Category: "speed", Leaderboard: "world", PlayerSteamID: 1002, Score: 40, IsLegal: false},
			{Category: "speed", Leaderboard: "world", PlayerSteamID: 1001, Score: 50, IsLegal: true},
		},
	}
}

// Seed inserts the fixture in one transaction. Existing names are reused and
// duplicate reviews are ignored, so seeding twice is harmless.
func Seed(ctx context.Context, db bun.IDB, f Fixture) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		categoryIDs := make(map[string]int64, len(f.Categories))
		for _, name := range f.Categories {
			id, err := upsertName(ctx, tx, &Category{Name: name})
			if err != nil {
				return fmt.Errorf("failed to seed category %q: %w", name, err)
			}
			categoryIDs[name] = id
		}

		leaderboardIDs := make(map[string]int64, len(f.Leaderboards))
		for _, name := range f.Leaderboards {
			id, err := upsertName(ctx, tx, &Leaderboard{Name: name})
			if err != nil {
				return fmt.Errorf("failed to seed leaderboard %q: %w", name, err)
			}
			leaderboardIDs[name] = id
		}

		if len(f.Reviews) == 0 {
			return nil
		}

		rows := make([]Review, 0, len(f.Reviews))
		for _, fr := range f.Reviews {
			categoryID, ok := categoryIDs[fr.Category]
			if !ok {
				return fmt.Errorf("review references unknown category %q", fr.Category)
			}
			leaderboardID, ok := leaderboardIDs[fr.Leaderboard]
			if !ok {
				return fmt.Errorf("review references unknown leaderboard %q", fr.Leaderboard)
			}
			rows = append(rows, Review{
				CategoryID:    categoryID,
				LeaderboardID: leaderboardID,
				PlayerSteamID: fr.PlayerSteamID,
				Score:         fr.Score,
				IsLegal:       fr.IsLegal,
			})
		}

		if _, err := tx.NewInsert().
			Model(&rows).
			On("CONFLICT (category_id, leaderboard_id, player_steam_id) DO NOTHING").
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to seed reviews: %w", err)
		}
		return nil
	})
}

// upsertName inserts a named row or, on conflict, returns the existing id.
func upsertName(ctx context.Context, tx bun.Tx, model any) (int64, error) {
	var id int64
	err := tx.NewInsert().
		Model(model).
		On("CONFLICT (name) DO UPDATE").
		Set("name = EXCLUDED.name").
		Returning("id").
		Scan(ctx, &id)
	return id, err
}
