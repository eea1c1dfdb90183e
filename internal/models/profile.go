package models

import "time"

// Profile is the 1:1 satellite of User holding personal details. It is
// removed together with its owning user.
type Profile struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	FirstName string     `gorm:"not null" json:"first_name"`
	LastName  *string    `json:"last_name,omitempty"`
	Mobile    *string    `gorm:"uniqueIndex" json:"mobile,omitempty"`
	Gender    *string    `json:"gender,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
