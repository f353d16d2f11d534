package model

import "time"

// User represents the signed-in seller account.
type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	BusinessName     string    `json:"business_name,omitempty"`
	SubscriptionTier string    `json:"subscription_tier"`
	IsPartner        bool      `json:"is_partner"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Subscription tiers (server-enforced; informational on the client).
const (
	TierFree    = "free"
	TierPro     = "pro"
	TierPartner = "partner"
)
