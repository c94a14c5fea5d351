package models

import (
	"time"
)

// Draft statuses. A draft starts pending, moves to approved when the
// publish pipeline succeeds, or to rejected by an explicit reviewer action.
// Nothing transitions out of approved or rejected.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Content categories selecting the prompt template.
const (
	CategoryInformational = "informational"
	CategoryPromotional   = "promotional"
)

type Draft struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Title          string    `gorm:"not null;size:500" json:"title"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	SourceVideoID  string    `gorm:"size:64;uniqueIndex:idx_drafts_source_video,where:source_video_id <> ''" json:"source_video_id"`
	SourceVideoURL string    `gorm:"size:500" json:"source_video_url"`
	Category       string    `gorm:"size:50;default:'informational'" json:"category"`
	Keywords       string    `gorm:"size:500" json:"keywords"`
	Status         string    `gorm:"size:50;default:'pending';index" json:"status"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// PublishHistory is an immutable receipt of a successful publish. Rows are
// only ever inserted.
type PublishHistory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DraftID     uint      `gorm:"not null;index" json:"draft_id"`
	PostID      string    `gorm:"size:64;not null" json:"post_id"`
	URL         string    `gorm:"size:500" json:"url"`
	PublishedAt time.Time `gorm:"not null" json:"published_at"`

	Draft Draft `gorm:"foreignKey:DraftID" json:"draft"`
}

// Setting is a flat key/value bag read by the generation pipeline, e.g.
// the marketing-target description or the default keyword list.
type Setting struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ValidStatus reports whether s is one of the known draft statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ValidCategory reports whether c is a known content category.
func ValidCategory(c string) bool {
	return c == CategoryInformational || c == CategoryPromotional
}
