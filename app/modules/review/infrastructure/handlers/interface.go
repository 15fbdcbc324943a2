package reviewhandlers

import "net/http"

// Handlers defines the HTTP handlers of the review module.
type Handlers interface {
	// HandleListCategories serves GET /categories.
	HandleListCategories(w http.ResponseWriter, r *http.Request)

	// HandleListReviews serves GET /categories/{category}/{leaderboard}.
	HandleListReviews(w http.ResponseWriter, r *http.Request)
}
