package testutils

import (
	"fmt"
	"sort"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	reviewdomain "github.com/Black-And-White-Club/review-board/app/modules/review/domain"
	reviewdb "github.com/Black-And-White-Club/review-board/app/modules/review/infrastructure/repositories"
)

// TestDataGenerator provides methods to create test data for integration tests
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed the generator was built with, for failure messages.
func (g *TestDataGenerator) Seed() int64 {
	return g.seed
}

// PairKey addresses one category+leaderboard pair.
type PairKey struct {
	Category    string
	Leaderboard string
}

// GeneratedData is a fixture plus the reviews each pair should return.
type GeneratedData struct {
	Fixture  reviewdb.Fixture
	Expected map[PairKey][]reviewdomain.Review
}

// GenerateNames returns count distinct names built from fake words.
func (g *TestDataGenerator) GenerateNames(prefix string, count int) []string {
	names := make([]string, count)
	for i := range names {
		names[i] = fmt.Sprintf("%s-%s-%d", prefix, g.faker.Word(), i)
	}
	return names
}

// GenerateFixture builds categories x leaderboards pairs with up to
// maxReviews reviews each. Player ids are unique within a pair. Expected
// holds every pair, sorted by player id, including empty ones.
func (g *TestDataGenerator) GenerateFixture(categories, leaderboards, maxReviews int) GeneratedData {
	data := GeneratedData{
		Fixture: reviewdb.Fixture{
			Categories:   g.GenerateNames("category", categories),
			Leaderboards: g.GenerateNames("leaderboard", leaderboards),
		},
		Expected: make(map[PairKey][]reviewdomain.Review),
	}

	for _, c := range data.Fixture.Categories {
		for _, l := range data.Fixture.Leaderboards {
			key := PairKey{Category: c, Leaderboard: l}
			expected := []reviewdomain.Review{}
			seen := make(map[int64]struct{})

			n := g.faker.Number(0, maxReviews)
			for len(expected) < n {
				id := 76561197960265728 + g.faker.Int64()%1_000_000_000
				if _, dup := seen[id]; dup {
					continue
				}
				seen[id] = struct{}{}

				review := reviewdomain.Review{
					PlayerSteamID: id,
					Score:         g.faker.Int32(),
					IsLegal:       g.faker.Bool(),
				}
				expected = append(expected, review)
				data.Fixture.Reviews = append(data.Fixture.Reviews, reviewdb.FixtureReview{
					Category:      c,
					Leaderboard:   l,
					PlayerSteamID: review.PlayerSteamID,
					Score:         review.Score,
					IsLegal:       review.IsLegal,
				})
			}

			sort.Slice(expected, func(i, j int) bool {
				return expected[i].PlayerSteamID < expected[j].PlayerSteamID
			})
			data.Expected[key] = expected
		}
	}

	return data
}
