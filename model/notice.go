package model

import (
	"time"

	"github.com/lib/pq"
)

// Notice is an admin announcement. It has no owner, only admins may change
// or delete it.
type Notice struct {
	Id        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"not null" json:"content"`
	LikeCount int       `gorm:"not null;default:0" json:"like_count"`
}

// NoticeComment is the notice counterpart of Comment.
type NoticeComment struct {
	Id        string         `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	NoticeID  string         `gorm:"not null;index" json:"notice_id"`
	Notice    *Notice        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID    string         `gorm:"not null;index" json:"user_id"`
	Author    *Profile       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Content   string         `gorm:"not null" json:"content"`
	LikeCount int            `gorm:"not null;default:0" json:"like_count"`
	ImageUrls pq.StringArray `gorm:"type:text[]" json:"image_urls"`
}
