package model

import (
	"time"

	"github.com/lib/pq"
)

/*

Argument is a position a user takes within a debate

Id: primary key
CreatedAt: time when entity is created, also used by the argument cooldown
DebateID:
Debate: debate the argument belongs to, "belongs-to" relation, cascade on delete
UserID:
Author: profile of the writer, "belongs-to" relation

Side: exactly one side per argument, see SideMode
Content: 50 to 2000 characters on submit, up to 3000 on edit
LikeCount: denormalized number of argument_likes rows
ImageUrls: 0 to 10 http(s) urls

*/
type Argument struct {
	Id        string         `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	DebateID  string         `gorm:"not null;index" json:"debate_id"`
	Debate    *Debate        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID    string         `gorm:"not null;index" json:"user_id"`
	Author    *Profile       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Side      Side           `gorm:"not null" json:"side"`
	Content   string         `gorm:"not null" json:"content"`
	LikeCount int            `gorm:"not null;default:0" json:"like_count"`
	ImageUrls pq.StringArray `gorm:"type:text[]" json:"image_urls"`
}
