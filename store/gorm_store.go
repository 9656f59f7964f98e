package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Luismorlan/logosarena/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is the postgres backed Store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) DB() *gorm.DB {
	return s.db
}

func newId() string {
	return uuid.New().String()
}

// first loads a single row into dest, mapping gorm's not found error.
func (s *GormStore) first(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	err := s.db.WithContext(ctx).Where(query, args...).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func affectedOne(res *gorm.DB, what string, id string) error {
	if res.Error != nil {
		return errors.Wrapf(res.Error, "%s %s", what, id)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(ErrNotFound, "%s %s", what, id)
	}
	return nil
}

func (s *GormStore) LatestCreatedAt(ctx context.Context, table model.Table, userID string) (time.Time, bool, error) {
	if !model.IsCooldownTable(table) {
		return time.Time{}, false, errors.Errorf("table %s is not cooldown checked", table)
	}
	var times []time.Time
	err := s.db.WithContext(ctx).
		Table(string(table)).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(1).
		Pluck("created_at", &times).Error
	if err != nil {
		return time.Time{}, false, errors.Wrapf(err, "latest %s of %s", table, userID)
	}
	if len(times) == 0 {
		return time.Time{}, false, nil
	}
	return times[0], true, nil
}

// --- profiles ---

func (s *GormStore) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	var p model.Profile
	if err := s.first(ctx, &p, "id = ?", id); err != nil {
		return nil, errors.Wrapf(err, "get profile %s", id)
	}
	return &p, nil
}

func (s *GormStore) GetProfileByUsername(ctx context.Context, username string) (*model.Profile, error) {
	var p model.Profile
	if err := s.first(ctx, &p, "username = ?", username); err != nil {
		return nil, errors.Wrapf(err, "get profile by username %s", username)
	}
	return &p, nil
}

func (s *GormStore) GetProfiles(ctx context.Context, ids []string) (map[string]*model.Profile, error) {
	res := map[string]*model.Profile{}
	if len(ids) == 0 {
		return res, nil
	}
	var profiles []*model.Profile
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, errors.Wrap(err, "get profiles")
	}
	for _, p := range profiles {
		res[p.Id] = p
	}
	return res, nil
}

func (s *GormStore) CreateProfileIfNotExists(ctx context.Context, id string) (*model.Profile, error) {
	p := model.Profile{Id: id, Role: model.RoleUser}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&p).Error
	if err != nil {
		return nil, errors.Wrapf(err, "create profile %s", id)
	}
	return s.GetProfile(ctx, id)
}

func (s *GormStore) UpdateUsername(ctx context.Context, id string, username string) error {
	res := s.db.WithContext(ctx).Model(&model.Profile{}).Where("id = ?", id).Update("username", username)
	return affectedOne(res, "update username of", id)
}

func (s *GormStore) UpdateProfileSetup(ctx context.Context, id string, username string, gender model.Gender, age int) error {
	res := s.db.WithContext(ctx).Model(&model.Profile{}).Where("id = ?", id).Updates(map[string]interface{}{
		"username": username,
		"gender":   gender,
		"age":      age,
	})
	return affectedOne(res, "set up profile", id)
}

func (s *GormStore) UpdateRole(ctx context.Context, id string, role model.Role) error {
	res := s.db.WithContext(ctx).Model(&model.Profile{}).Where("id = ?", id).Update("role", role)
	return affectedOne(res, "update role of", id)
}

func (s *GormStore) AdjustTotalScore(ctx context.Context, id string, delta int) error {
	res := s.db.WithContext(ctx).Model(&model.Profile{}).Where("id = ?", id).
		Update("total_score", gorm.Expr("GREATEST(total_score + ?, 0)", delta))
	return affectedOne(res, "adjust score of", id)
}

// ListProfilesByScore skips profiles that have not picked a username yet.
func (s *GormStore) ListProfilesByScore(ctx context.Context, limit int) ([]*model.Profile, error) {
	var profiles []*model.Profile
	err := s.db.WithContext(ctx).Where("username IS NOT NULL").
		Order("total_score desc").Order("created_at asc").Limit(limit).Find(&profiles).Error
	return profiles, errors.Wrap(err, "list profiles by score")
}

// --- debates ---

func (s *GormStore) CreateDebate(ctx context.Context, d *model.Debate) error {
	if d.Id == "" {
		d.Id = newId()
	}
	return errors.Wrap(s.db.WithContext(ctx).Create(d).Error, "create debate")
}

func (s *GormStore) GetDebate(ctx context.Context, id string) (*model.Debate, error) {
	var d model.Debate
	if err := s.first(ctx, &d, "id = ?", id); err != nil {
		return nil, errors.Wrapf(err, "get debate %s", id)
	}
	return &d, nil
}

func (s *GormStore) GetActiveDebate(ctx context.Context) (*model.Debate, error) {
	var d model.Debate
	err := s.db.WithContext(ctx).Where("status = ?", model.DebateStatusActive).Order("created_at desc").First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(ErrNotFound, "get active debate")
	}
	if err != nil {
		return nil, errors.Wrap(err, "get active debate")
	}
	return &d, nil
}

func (s *GormStore) SaveDebate(ctx context.Context, d *model.Debate) error {
	res := s.db.WithContext(ctx).Model(&model.Debate{}).Where("id = ?", d.Id).Updates(map[string]interface{}{
		"topic":       d.Topic,
		"description": d.Description,
		"option_a":    d.OptionA,
		"option_b":    d.OptionB,
		"status":      d.Status,
	})
	return affectedOne(res, "save debate", d.Id)
}

func (s *GormStore) DeleteDebate(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Arguments go away with the debate, keep their authors' counts right.
		err := tx.Exec(`UPDATE profiles SET argument_count = GREATEST(profiles.argument_count - sub.n, 0)
			FROM (SELECT user_id, COUNT(*) AS n FROM arguments WHERE debate_id = ? GROUP BY user_id) AS sub
			WHERE profiles.id = sub.user_id`, id).Error
		if err != nil {
			return errors.Wrapf(err, "release argument counts of debate %s", id)
		}
		return affectedOne(tx.Where("id = ?", id).Delete(&model.Debate{}), "delete debate", id)
	})
}

func (s *GormStore) ListActiveDebates(ctx context.Context) ([]*model.DebateSummary, error) {
	var debates []*model.DebateSummary
	err := s.db.WithContext(ctx).Raw(`SELECT d.*,
			(SELECT COUNT(*) FROM arguments a WHERE a.debate_id = d.id)
			+ (SELECT COUNT(*) FROM comments c JOIN arguments a ON a.id = c.argument_id WHERE a.debate_id = d.id)
			AS argument_count
		FROM debates d
		WHERE d.status = ?
		ORDER BY d.created_at DESC`, model.DebateStatusActive).Scan(&debates).Error
	return debates, errors.Wrap(err, "list active debates")
}

// --- arguments ---

func (s *GormStore) CreateArgument(ctx context.Context, a *model.Argument) error {
	if a.Id == "" {
		a.Id = newId()
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return errors.Wrap(err, "create argument")
		}
		return affectedOne(
			tx.Model(&model.Profile{}).Where("id = ?", a.UserID).
				Update("argument_count", gorm.Expr("argument_count + 1")),
			"count argument of", a.UserID)
	})
}

func (s *GormStore) GetArgument(ctx context.Context, id string) (*model.Argument, error) {
	var a model.Argument
	if err := s.first(ctx, &a, "id = ?", id); err != nil {
		return nil, errors.Wrapf(err, "get argument %s", id)
	}
	return &a, nil
}

func (s *GormStore) UpdateArgumentContent(ctx context.Context, id string, content string) error {
	res := s.db.WithContext(ctx).Model(&model.Argument{}).Where("id = ?", id).Update("content", content)
	return affectedOne(res, "update argument", id)
}

func (s *GormStore) DeleteArgument(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a model.Argument
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&a).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrapf(ErrNotFound, "delete argument %s", id)
		}
		if err != nil {
			return errors.Wrapf(err, "delete argument %s", id)
		}
		if err := tx.Delete(&a).Error; err != nil {
			return errors.Wrapf(err, "delete argument %s", id)
		}
		return tx.Model(&model.Profile{}).Where("id = ?", a.UserID).
			Update("argument_count", gorm.Expr("GREATEST(argument_count - 1, 0)")).Error
	})
}

func (s *GormStore) ListArguments(ctx context.Context, debateID string) ([]*model.Argument, error) {
	var args []*model.Argument
	err := s.db.WithContext(ctx).Where("debate_id = ?", debateID).Order("created_at desc").Find(&args).Error
	return args, errors.Wrapf(err, "list arguments of %s", debateID)
}

func (s *GormStore) CountComments(ctx context.Context, argumentIDs []string) (map[string]int, error) {
	res := map[string]int{}
	if len(argumentIDs) == 0 {
		return res, nil
	}
	type countRow struct {
		ArgumentID string
		Count      int
	}
	var rows []countRow
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Select("argument_id, COUNT(*) AS count").
		Where("argument_id IN ?", argumentIDs).
		Group("argument_id").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "count comments")
	}
	for _, r := range rows {
		res[r.ArgumentID] = r.Count
	}
	return res, nil
}

// --- comments ---

func (s *GormStore) CreateComment(ctx context.Context, c *model.Comment) error {
	if c.Id == "" {
		c.Id = newId()
	}
	return errors.Wrap(s.db.WithContext(ctx).Create(c).Error, "create comment")
}

func (s *GormStore) GetComment(ctx context.Context, id string) (*model.Comment, error) {
	var c model.Comment
	if err := s.first(ctx, &c, "id = ?", id); err != nil {
		return nil, errors.Wrapf(err, "get comment %s", id)
	}
	return &c, nil
}

func (s *GormStore) UpdateCommentContent(ctx context.Context, id string, content string) error {
	res := s.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Update("content", content)
	return affectedOne(res, "update comment", id)
}

func (s *GormStore) DeleteComment(ctx context.Context, id string) error {
	return affectedOne(s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Comment{}), "delete comment", id)
}

func (s *GormStore) ListComments(ctx context.Context, argumentID string) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := s.db.WithContext(ctx).Where("argument_id = ?", argumentID).Order("created_at asc").Find(&comments).Error
	return comments, errors.Wrapf(err, "list comments of %s", argumentID)
}

// --- notices ---

func (s *GormStore) CreateNotice(ctx context.Context, n *model.Notice) error {
	if n.Id == "" {
		n.Id = newId()
	}
	return errors.Wrap(s.db.WithContext(ctx).Create(n).Error, "create notice")
}

func (s *GormStore) GetNotice(ctx context.Context, id string) (*model.Notice, error) {
	var n model.Notice
	if err := s.first(ctx, &n, "id = ?", id); err != nil {
		return nil, errors.Wrapf(err, "get notice %s", id)
	}
	return &n, nil
}

func (s *GormStore) SaveNotice(ctx context.Context, n *model.Notice) error {
	res := s.db.WithContext(ctx).Model(&model.Notice{}).Where("id = ?", n.Id).Updates(map[string]interface{}{
		"title":   n.Title,
		"content": n.Content,
	})
	return affectedOne(res, "save notice", n.Id)
}

func (s *GormStore) DeleteNotice(ctx context.Context, id string) error {
	return affectedOne(s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Notice{}), "delete notice", id)
}

func (s *GormStore) ListNotices(ctx context.Context) ([]*model.NoticeView, error) {
	var notices []*model.NoticeView
	err := s.db.WithContext(ctx).Raw(`SELECT n.*,
			(SELECT COUNT(*) FROM notice_comments c WHERE c.notice_id = n.id) AS comment_count
		FROM notices n
		ORDER BY n.created_at DESC`).Scan(&notices).Error
	return notices, errors.Wrap(err, "list notices")
}

func (s *GormStore) CreateNoticeComment(ctx context.Context, c *model.NoticeComment) error {
	if c.Id == "" {
		c.Id = newId()
	}
	return errors.Wrap(s.db.WithContext(ctx).Create(c).Error, "create notice comment")
}

func (s *GormStore) GetNoticeComment(ctx context.Context, id string) (*model.NoticeComment, error) {
	var c model.NoticeComment
	if err := s.first(ctx, &c, "id = ?", id); err != nil {
		return nil, errors.Wrapf(err, "get notice comment %s", id)
	}
	return &c, nil
}

func (s *GormStore) UpdateNoticeCommentContent(ctx context.Context, id string, content string) error {
	res := s.db.WithContext(ctx).Model(&model.NoticeComment{}).Where("id = ?", id).Update("content", content)
	return affectedOne(res, "update notice comment", id)
}

func (s *GormStore) DeleteNoticeComment(ctx context.Context, id string) error {
	return affectedOne(s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.NoticeComment{}), "delete notice comment", id)
}

func (s *GormStore) ListNoticeComments(ctx context.Context, noticeID string) ([]*model.NoticeComment, error) {
	var comments []*model.NoticeComment
	err := s.db.WithContext(ctx).Where("notice_id = ?", noticeID).Order("created_at asc").Find(&comments).Error
	return comments, errors.Wrapf(err, "list notice comments of %s", noticeID)
}

// --- likes ---

// likeRow builds a relation row of kind. With empty ids it only selects the
// table.
func likeRow(kind model.LikeKind, userID string, targetID string) interface{} {
	switch kind {
	case model.LikeKindArgument:
		return &model.ArgumentLike{UserID: userID, ArgumentID: targetID}
	case model.LikeKindComment:
		return &model.CommentLike{UserID: userID, CommentID: targetID}
	case model.LikeKindNotice:
		return &model.NoticeLike{UserID: userID, NoticeID: targetID}
	default:
		return &model.NoticeCommentLike{UserID: userID, CommentID: targetID}
	}
}

func (s *GormStore) likeQuery(ctx context.Context, kind model.LikeKind, userID string, targetID string) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(likeRow(kind, "", "")).
		Where("user_id = ? AND "+kind.TargetColumn()+" = ?", userID, targetID)
}

func (s *GormStore) HasLike(ctx context.Context, kind model.LikeKind, userID string, targetID string) (bool, error) {
	var n int64
	if err := s.likeQuery(ctx, kind, userID, targetID).Count(&n).Error; err != nil {
		return false, errors.Wrapf(err, "check %s like", kind)
	}
	return n > 0, nil
}

func (s *GormStore) AddLike(ctx context.Context, kind model.LikeKind, userID string, targetID string) (bool, error) {
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(likeRow(kind, userID, targetID))
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "add %s like", kind)
	}
	return res.RowsAffected == 1, nil
}

func (s *GormStore) RemoveLike(ctx context.Context, kind model.LikeKind, userID string, targetID string) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND "+kind.TargetColumn()+" = ?", userID, targetID).
		Delete(likeRow(kind, "", ""))
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "remove %s like", kind)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) callCounter(ctx context.Context, fn string, targetID string) (int, error) {
	var count sql.NullInt64
	err := s.db.WithContext(ctx).Raw(fmt.Sprintf("SELECT %s(?)", fn), targetID).Row().Scan(&count)
	if err != nil {
		return 0, errors.Wrapf(err, "rpc %s(%s)", fn, targetID)
	}
	if !count.Valid {
		return 0, errors.Wrapf(ErrNotFound, "rpc %s(%s)", fn, targetID)
	}
	return int(count.Int64), nil
}

func (s *GormStore) IncrementLikeCount(ctx context.Context, kind model.LikeKind, targetID string) (int, error) {
	return s.callCounter(ctx, kind.IncrementFunc(), targetID)
}

func (s *GormStore) DecrementLikeCount(ctx context.Context, kind model.LikeKind, targetID string) (int, error) {
	return s.callCounter(ctx, kind.DecrementFunc(), targetID)
}

func (s *GormStore) LikedTargetIDs(ctx context.Context, kind model.LikeKind, userID string, targetIDs []string) (map[string]bool, error) {
	res := map[string]bool{}
	if userID == "" || len(targetIDs) == 0 {
		return res, nil
	}
	var ids []string
	err := s.db.WithContext(ctx).
		Model(likeRow(kind, "", "")).
		Where("user_id = ? AND "+kind.TargetColumn()+" IN ?", userID, targetIDs).
		Pluck(kind.TargetColumn(), &ids).Error
	if err != nil {
		return nil, errors.Wrapf(err, "liked %s ids", kind)
	}
	for _, id := range ids {
		res[id] = true
	}
	return res, nil
}

// --- reports ---

func (s *GormStore) CreateReport(ctx context.Context, r *model.Report) error {
	if r.Id == "" {
		r.Id = newId()
	}
	return errors.Wrap(s.db.WithContext(ctx).Create(r).Error, "create report")
}
