package store

import (
	"context"
	"time"

	"github.com/Luismorlan/logosarena/model"
	"github.com/pkg/errors"
)

// ErrNotFound is returned (possibly wrapped) when the addressed row does not
// exist.
var ErrNotFound = errors.New("record not found")

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Store is the data store collaborator. Every method is a single statement or
// a single transaction; callers never need to undo partial writes.
type Store interface {
	// LatestCreatedAt returns the created_at of the newest row userID wrote to
	// table. ok is false when there is no such row.
	LatestCreatedAt(ctx context.Context, table model.Table, userID string) (t time.Time, ok bool, err error)

	GetProfile(ctx context.Context, id string) (*model.Profile, error)
	GetProfileByUsername(ctx context.Context, username string) (*model.Profile, error)
	GetProfiles(ctx context.Context, ids []string) (map[string]*model.Profile, error)
	CreateProfileIfNotExists(ctx context.Context, id string) (*model.Profile, error)
	UpdateUsername(ctx context.Context, id string, username string) error
	UpdateProfileSetup(ctx context.Context, id string, username string, gender model.Gender, age int) error
	UpdateRole(ctx context.Context, id string, role model.Role) error
	AdjustTotalScore(ctx context.Context, id string, delta int) error
	ListProfilesByScore(ctx context.Context, limit int) ([]*model.Profile, error)

	CreateDebate(ctx context.Context, d *model.Debate) error
	GetDebate(ctx context.Context, id string) (*model.Debate, error)
	GetActiveDebate(ctx context.Context) (*model.Debate, error)
	SaveDebate(ctx context.Context, d *model.Debate) error
	// DeleteDebate cascades to arguments, comments and their likes.
	DeleteDebate(ctx context.Context, id string) error
	ListActiveDebates(ctx context.Context) ([]*model.DebateSummary, error)

	// CreateArgument also bumps the author's argument_count.
	CreateArgument(ctx context.Context, a *model.Argument) error
	GetArgument(ctx context.Context, id string) (*model.Argument, error)
	UpdateArgumentContent(ctx context.Context, id string, content string) error
	// DeleteArgument cascades to comments and likes and lowers the author's
	// argument_count.
	DeleteArgument(ctx context.Context, id string) error
	// ListArguments returns the arguments of a debate, newest first.
	ListArguments(ctx context.Context, debateID string) ([]*model.Argument, error)
	CountComments(ctx context.Context, argumentIDs []string) (map[string]int, error)

	CreateComment(ctx context.Context, c *model.Comment) error
	GetComment(ctx context.Context, id string) (*model.Comment, error)
	UpdateCommentContent(ctx context.Context, id string, content string) error
	DeleteComment(ctx context.Context, id string) error
	// ListComments returns the comments of an argument, oldest first.
	ListComments(ctx context.Context, argumentID string) ([]*model.Comment, error)

	CreateNotice(ctx context.Context, n *model.Notice) error
	GetNotice(ctx context.Context, id string) (*model.Notice, error)
	SaveNotice(ctx context.Context, n *model.Notice) error
	DeleteNotice(ctx context.Context, id string) error
	// ListNotices returns all notices with comment counts, newest first.
	ListNotices(ctx context.Context) ([]*model.NoticeView, error)

	CreateNoticeComment(ctx context.Context, c *model.NoticeComment) error
	GetNoticeComment(ctx context.Context, id string) (*model.NoticeComment, error)
	UpdateNoticeCommentContent(ctx context.Context, id string, content string) error
	DeleteNoticeComment(ctx context.Context, id string) error
	ListNoticeComments(ctx context.Context, noticeID string) ([]*model.NoticeComment, error)

	HasLike(ctx context.Context, kind model.LikeKind, userID string, targetID string) (bool, error)
	// AddLike inserts the relation row, returning false when it already
	// existed.
	AddLike(ctx context.Context, kind model.LikeKind, userID string, targetID string) (bool, error)
	// RemoveLike deletes the relation row, returning false when there was none.
	RemoveLike(ctx context.Context, kind model.LikeKind, userID string, targetID string) (bool, error)
	// IncrementLikeCount and DecrementLikeCount are the atomic counter RPCs.
	// They return the new count.
	IncrementLikeCount(ctx context.Context, kind model.LikeKind, targetID string) (int, error)
	DecrementLikeCount(ctx context.Context, kind model.LikeKind, targetID string) (int, error)
	LikedTargetIDs(ctx context.Context, kind model.LikeKind, userID string, targetIDs []string) (map[string]bool, error)

	CreateReport(ctx context.Context, r *model.Report) error
}
