package model

import (
	"time"

	"github.com/lib/pq"
)

// Comment is a reply under an argument. Content is 1 to 500 characters.
type Comment struct {
	Id         string         `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	ArgumentID string         `gorm:"not null;index" json:"argument_id"`
	Argument   *Argument      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID     string         `gorm:"not null;index" json:"user_id"`
	Author     *Profile       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Content    string         `gorm:"not null" json:"content"`
	LikeCount  int            `gorm:"not null;default:0" json:"like_count"`
	ImageUrls  pq.StringArray `gorm:"type:text[]" json:"image_urls"`
}
