package models

// UserID identifies a reward account. It is caller-supplied and not tied to
// an authenticated identity.
type UserID string

// RewardBalance is the per-user point balance kept by the reward ledger.
// Points never go below zero.
type RewardBalance struct {
	User   UserID `json:"user"`
	Points Points `json:"points"`
}
