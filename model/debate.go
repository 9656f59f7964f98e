package model

import "time"

type DebateStatus string

const (
	DebateStatusActive DebateStatus = "active"
	DebateStatusClosed DebateStatus = "closed"
)

/*

Debate is a topic opened by an admin on which users post arguments

Id: primary key
CreatedAt: time when entity is created

Topic: the question under debate
Description: optional longer explanation
OptionA: label of the first side, "pro" side in fixed side mode
OptionB: label of the second side, "con" side in fixed side mode
Status: only active debates accept arguments and show up in listings

Deleting a debate cascades to its arguments and their comments.

*/
type Debate struct {
	Id          string       `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time    `json:"created_at"`
	Topic       string       `gorm:"not null" json:"topic"`
	Description *string      `json:"description"`
	OptionA     string       `gorm:"not null" json:"option_a"`
	OptionB     string       `gorm:"not null" json:"option_b"`
	Status      DebateStatus `gorm:"not null;default:'active';index" json:"status"`
}

func (d *Debate) IsActive() bool {
	return d.Status == DebateStatusActive
}
