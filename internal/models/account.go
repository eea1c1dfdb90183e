package models

import "time"

// Account links a user to an external identity provider. One row is created
// the first time a user signs in through a given provider.
type Account struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Provider          string    `gorm:"not null;uniqueIndex:idx_provider_identity" json:"provider"`
	ProviderAccountID string    `gorm:"not null;uniqueIndex:idx_provider_identity" json:"provider_account_id"`
	UserID            uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt         time.Time `json:"created_at"`
}
