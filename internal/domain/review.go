package domain

import (
	"time"
)

// Review is a user-submitted product review as read from the review store.
// It is never mutated during a scoring pass.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// UserDay identifies one user on one UTC calendar date.
type UserDay struct {
	UserID string
	Date   string // YYYY-MM-DD, UTC
}

// ActivityDate returns the UTC calendar date used for daily activity counts.
func ActivityDate(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// UserActivity holds behavioral counters for a set of users.
type UserActivity struct {
	// Total maps user ID to the number of reviews the user ever wrote.
	Total map[string]int
	// Daily maps user and date to the number of reviews written that day.
	Daily map[UserDay]int
}
