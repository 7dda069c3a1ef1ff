package model

import (
	"time"

	"github.com/lib/pq"
)

// CreationType is the stored category of a generation result.
type CreationType string

const (
	CreationTypeArticle      CreationType = "article"
	CreationTypeBlogTitle    CreationType = "blog-title"
	CreationTypeImage        CreationType = "image"
	CreationTypeResumeReview CreationType = "resume-review"
)

// String returns the string representation of the creation type.
func (t CreationType) String() string {
	return string(t)
}

// IsValid checks if the creation type is valid.
func (t CreationType) IsValid() bool {
	switch t {
	case CreationTypeArticle, CreationTypeBlogTitle, CreationTypeImage, CreationTypeResumeReview:
		return true
	}
	return false
}

// Creation is a persisted generation result.
type Creation struct {
	ID        int64          `gorm:"primaryKey;autoIncrement"`
	UserID    string         `gorm:"type:text;not null;index"`
	Prompt    string         `gorm:"type:text;not null"`
	Content   string         `gorm:"type:text;not null"`
	Type      CreationType   `gorm:"type:text;not null"`
	Publish   bool           `gorm:"not null;default:false"`
	Likes     pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime"`
}

// TableName returns the table name for Creation.
func (Creation) TableName() string {
	return "creations"
}

// LikedBy reports whether userID is in the like set.
func (c *Creation) LikedBy(userID string) bool {
	for _, id := range c.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// CreationResponse is the JSON shape returned by listing endpoints.
type CreationResponse struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Prompt    string    `json:"prompt"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	Publish   bool      `json:"publish"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts to the listing response. Likes is never null.
func (c *Creation) ToResponse() *CreationResponse {
	likes := []string(c.Likes)
	if likes == nil {
		likes = []string{}
	}
	return &CreationResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Prompt:    c.Prompt,
		Content:   c.Content,
		Type:      c.Type.String(),
		Publish:   c.Publish,
		Likes:     likes,
		CreatedAt: c.CreatedAt,
	}
}

// LikeResult is the outcome of a like toggle.
type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}
