package model

import (
	"fmt"
	"time"
)

/*

Like relations are "many-to-many" relations between a profile and a likeable
row. Existence of the row means "liked". Each target keeps a denormalized
like_count that is only moved by the atomic counter functions created in
migration.

*/

type ArgumentLike struct {
	UserID     string    `gorm:"primaryKey"`
	ArgumentID string    `gorm:"primaryKey"`
	CreatedAt  time.Time `gorm:"index"`
	Argument   *Argument `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

type CommentLike struct {
	UserID    string    `gorm:"primaryKey"`
	CommentID string    `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`
	Comment   *Comment  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

type NoticeLike struct {
	UserID    string    `gorm:"primaryKey"`
	NoticeID  string    `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`
	Notice    *Notice   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

type NoticeCommentLike struct {
	UserID        string         `gorm:"primaryKey"`
	CommentID     string         `gorm:"primaryKey"`
	CreatedAt     time.Time      `gorm:"index"`
	NoticeComment *NoticeComment `gorm:"foreignKey:CommentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// LikeKind identifies one of the four like relations together with the table
// holding its target and counter.
type LikeKind string

const (
	LikeKindArgument      LikeKind = "argument"
	LikeKindComment       LikeKind = "comment"
	LikeKindNotice        LikeKind = "notice"
	LikeKindNoticeComment LikeKind = "notice_comment"
)

var AllLikeKinds = []LikeKind{
	LikeKindArgument,
	LikeKindComment,
	LikeKindNotice,
	LikeKindNoticeComment,
}

// LikeTable is the relation table, e.g. "argument_likes".
func (k LikeKind) LikeTable() Table {
	return Table(string(k) + "_likes")
}

// TargetTable is the table of the liked rows, e.g. "arguments".
func (k LikeKind) TargetTable() Table {
	return Table(string(k) + "s")
}

// TargetColumn is the column of the like relation pointing to the target.
func (k LikeKind) TargetColumn() string {
	switch k {
	case LikeKindArgument:
		return "argument_id"
	case LikeKindNotice:
		return "notice_id"
	default:
		return "comment_id"
	}
}

// IncrementFunc and DecrementFunc name the counter functions in the database.
func (k LikeKind) IncrementFunc() string {
	return fmt.Sprintf("increment_%s_like_count", k)
}

func (k LikeKind) DecrementFunc() string {
	return fmt.Sprintf("decrement_%s_like_count", k)
}

// ScoresAuthor reports whether likes of this kind count toward the author's
// total_score. Notices have no author.
func (k LikeKind) ScoresAuthor() bool {
	return k == LikeKindArgument || k == LikeKindComment
}

func ParseLikeKind(s string) (LikeKind, error) {
	for _, k := range AllLikeKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown like kind: %s", s)
}

// LikeState is the result of a like toggle.
type LikeState struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}
