package domain

import "time"

// Reason labels attached to suspicious verdicts.
const (
	ReasonDuplicate   = "Duplicate review text"
	ReasonBurst       = "Burst posting detected"
	ReasonLowActivity = "Low reviewer activity"
	ReasonModel       = "Predicted by ML model"
	ReasonIrrelevant  = "Irrelevant to product specifications"
)

// Verdict is the per-review scoring outcome. Features is nil for reviews
// rejected by the relevance filter.
type Verdict struct {
	ReviewID         string         `json:"review_id,omitempty"`
	UserID           string         `json:"user_id"`
	Rating           int            `json:"rating"`
	Text             string         `json:"text"`
	CreatedAt        time.Time      `json:"created_at"`
	Suspicious       bool           `json:"suspicious"`
	Reasons          []string       `json:"reasons"`
	FraudProbability float64        `json:"fraud_probability"`
	Features         *FeatureVector `json:"features,omitempty"`
}

// IntegrityReport summarizes a list of verdicts.
type IntegrityReport struct {
	Total                 int     `json:"total"`
	GenuineCount          int     `json:"genuine_count"`
	SuspiciousCount       int     `json:"suspicious_count"`
	RawAverageRating      float64 `json:"raw_average_rating"`
	FilteredAverageRating float64 `json:"filtered_average_rating"`
}

// ProductIntegrity is the full result of scoring one product.
type ProductIntegrity struct {
	Product       *Product        `json:"product,omitempty"`
	Category      string          `json:"category"`
	CategoryKnown bool            `json:"category_known"`
	Report        IntegrityReport `json:"report"`
	Verdicts      []Verdict       `json:"verdicts"`
	ModelVersion  string          `json:"model_version"`
	ScoredAt      time.Time       `json:"scored_at"`
}
