package models

import "time"

// Post is a blog entry authored by a user. The cover image is stored as a
// URL; byte-level upload handling lives outside this service.
type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CoverImage *string   `json:"cover_image,omitempty"`
	AuthorID   uint      `gorm:"not null;index" json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Tags   []Tag `gorm:"many2many:tags_on_posts" json:"tags,omitempty"`
}

// Tag labels posts. Names are unique and reused across posts through the
// tags_on_posts join table.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}
