package reviewdb

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// offlineDB returns a bun.DB that formats queries but never connects.
func offlineDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN("postgres://u:p@localhost:5432/reviews?sslmode=disable")))
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCategoriesQuery(t *testing.T) {
	q := categoriesQuery(offlineDB(t)).String()

	assert.Contains(t, q, `FROM "categories" AS "c"`)
	assert.Contains(t, q, "name")
	assert.NotContains(t, q, "WHERE")
	assert.NotContains(t, q, "ORDER BY")
}

func TestReviewsQuery(t *testing.T) {
	tests := []struct {
		name            string
		categoryName    string
		leaderboardName string
		wantFragments   []string
	}{
		{
			name:            "plain names",
			categoryName:    "speed",
			leaderboardName: "world",
			wantFragments: []string{
				`WITH "category_id" AS (SELECT`,
				`"leaderboard_id" AS (SELECT`,
				`FROM "categories" AS "c" WHERE (name = 'speed')`,
				`FROM "leaderboards" AS "lb" WHERE (name = 'world')`,
				`FROM "reviews" AS "r"`,
				`(r.category_id = (SELECT * FROM category_id))`,
				`(r.leaderboard_id = (SELECT * FROM leaderboard_id))`,
				`ORDER BY r.player_steam_id ASC`,
			},
		},
		{
			name:            "quotes are escaped, not interpreted",
			categoryName:    "O'Brien",
			leaderboardName: "x'); DROP TABLE reviews; --",
			wantFragments: []string{
				`(name = 'O''Brien')`,
				`(name = 'x''); DROP TABLE reviews; --')`,
			},
		},
		{
			name:            "names are case sensitive and untrimmed",
			categoryName:    " Speed ",
			leaderboardName: "WORLD",
			wantFragments: []string{
				`(name = ' Speed ')`,
				`(name = 'WORLD')`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := reviewsQuery(offlineDB(t), tt.categoryName, tt.leaderboardName).String()
			for _, frag := range tt.wantFragments {
				assert.Contains(t, q, frag)
			}
		})
	}
}

func TestNilDB(t *testing.T) {
	repo := NewRepository(nil)

	_, err := repo.ListCategoryNames(context.Background(), nil)
	require.ErrorIs(t, err, ErrNilDB)

	_, err = repo.ListReviews(context.Background(), nil, "speed", "world")
	require.ErrorIs(t, err, ErrNilDB)
}
