package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Luismorlan/logosarena/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type likeKey struct {
	kind     model.LikeKind
	userID   string
	targetID string
}

// FakeStore is an in-memory Store for tests. It keeps the same cascade and
// ordering rules as GormStore. Rows are stored and returned by value.
type FakeStore struct {
	mu sync.Mutex

	// Now stamps created_at. Defaults to time.Now.
	Now func() time.Time
	// FailWith, when set, is returned by every method.
	FailWith error

	profiles       map[string]*model.Profile
	debates        map[string]*model.Debate
	arguments      map[string]*model.Argument
	comments       map[string]*model.Comment
	notices        map[string]*model.Notice
	noticeComments map[string]*model.NoticeComment
	likes          map[likeKey]time.Time
	reports        []*model.Report
	last           time.Time
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		Now:            time.Now,
		profiles:       map[string]*model.Profile{},
		debates:        map[string]*model.Debate{},
		arguments:      map[string]*model.Argument{},
		comments:       map[string]*model.Comment{},
		notices:        map[string]*model.Notice{},
		noticeComments: map[string]*model.NoticeComment{},
		likes:          map[likeKey]time.Time{},
	}
}

func (s *FakeStore) lock() (func(), error) {
	s.mu.Lock()
	if s.FailWith != nil {
		s.mu.Unlock()
		return nil, s.FailWith
	}
	return s.mu.Unlock, nil
}

// stamp returns a creation time. Rows created at the same instant keep their
// insertion order through a nanosecond tie breaker.
func (s *FakeStore) stamp() time.Time {
	t := s.Now()
	if !t.After(s.last) {
		t = s.last.Add(time.Nanosecond)
	}
	s.last = t
	return t
}

func notFound(what string, id string) error {
	return errors.Wrapf(ErrNotFound, "%s %s", what, id)
}

func (s *FakeStore) LatestCreatedAt(ctx context.Context, table model.Table, userID string) (time.Time, bool, error) {
	unlock, err := s.lock()
	if err != nil {
		return time.Time{}, false, err
	}
	defer unlock()

	var latest time.Time
	found := false
	see := func(t time.Time) {
		if !found || t.After(latest) {
			latest, found = t, true
		}
	}
	switch table {
	case model.TableArguments:
		for _, a := range s.arguments {
			if a.UserID == userID {
				see(a.CreatedAt)
			}
		}
	case model.TableComments:
		for _, c := range s.comments {
			if c.UserID == userID {
				see(c.CreatedAt)
			}
		}
	case model.TableNoticeComments:
		for _, c := range s.noticeComments {
			if c.UserID == userID {
				see(c.CreatedAt)
			}
		}
	case model.TableNoticeLikes:
		for k, t := range s.likes {
			if k.kind == model.LikeKindNotice && k.userID == userID {
				see(t)
			}
		}
	default:
		return time.Time{}, false, errors.Errorf("table %s is not cooldown checked", table)
	}
	return latest, found, nil
}

// --- profiles ---

// PutProfile stores p as is. Test setup only.
func (s *FakeStore) PutProfile(p *model.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *p
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.stamp()
	}
	if c.Role == "" {
		c.Role = model.RoleUser
	}
	s.profiles[c.Id] = &c
}

// Reports returns the stored reports in filing order.
func (s *FakeStore) Reports() []*model.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []*model.Report
	for _, r := range s.reports {
		c := *r
		res = append(res, &c)
	}
	return res
}

func (s *FakeStore) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, notFound("get profile", id)
	}
	c := *p
	return &c, nil
}

func (s *FakeStore) GetProfileByUsername(ctx context.Context, username string) (*model.Profile, error) {
	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	for _, p := range s.profiles {
		if p.Username != nil && *p.Username == username {
			c := *p
			return &c, nil
		}
	}
	return nil, notFound("get profile by username", username)
}

func (s *FakeStore) GetProfiles(ctx context.Context, ids []string) (map[string]*model.Profile, error) {
	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	res := map[string]*model.Profile{}
	for _, id := range ids {
		if p, ok := s.profiles[id]; ok {
			c := *p
			res[id] = &c
		}
	}
	return res, nil
}

func (s *FakeStore) CreateProfileIfNotExists(ctx context.Context, id string) (*model.Profile, error) {
	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	p, ok := s.profiles[id]
	if !ok {
		p = &model.Profile{Id: id, CreatedAt: s.stamp(), Role: model.RoleUser}
		s.profiles[id] = p
	}
	c := *p
	return &c, nil
}

func (s *FakeStore) usernameTaken(id string, username string) bool {
	for _, p := range s.profiles {
		if p.Id != id && p.Username != nil && *p.Username == username {
			return true
		}
	}
	return false
}

func (s *FakeStore) UpdateUsername(ctx context.Context, id string, username string) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	p, ok := s.profiles[id]
	if !ok {
		return notFound("update username of", id)
	}
	if s.usernameTaken(id, username) {
		return errors.Errorf("duplicate key value violates unique constraint on username %s", username)
	}
	p.Username = &username
	return nil
}

func (s *FakeStore) UpdateProfileSetup(ctx context.Context, id string, username string, gender model.Gender, age int) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	p, ok := s.profiles[id]
	if !ok {
		return notFound("set up profile", id)
	}
	if s.usernameTaken(id, username) {
		return errors.Errorf("duplicate key value violates unique constraint on username %s", username)
	}
	p.Username = &username
	p.Gender = &gender
	p.Age = &age
	return nil
}

func (s *FakeStore) UpdateRole(ctx context.Context, id string, role model.Role) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	p, ok := s.profiles[id]
	if !ok {
		return notFound("update role of", id)
	}
	p.Role = role
	return nil
}

func (s *FakeStore) AdjustTotalScore(ctx context.Context, id string, delta int) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	p, ok := s.profiles[id]
	if !ok {
		return notFound("adjust score of", id)
	}
	p.TotalScore += delta
	if p.TotalScore < 0 {
		p.TotalScore = 0
	}
	return nil
}

func (s *FakeStore) ListProfilesByScore(ctx context.Context, limit int) ([]*model.Profile, error) {
	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	var res []*model.Profile
	for _, p := range s.profiles {
		if p.Username == nil {
			continue
		}
		c := *p
		res = append(res, &c)
	}
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].TotalScore != res[j].TotalScore {
			return res[i].TotalScore > res[j].TotalScore
		}
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	if limit >= 0 && len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

// --- debates ---

func (s *FakeStore) CreateDebate(ctx context.Context, d *model.Debate) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if d.Id == "" {
		d.Id = uuid.New().String()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = s.stamp()
	}
	if d.Status == "" {
		d.Status = model.DebateStatusActive
	}
	c := *d
	s.debates[c.Id] = &c
	return nil
}

func (s *FakeStore) GetDebate(ctx context.Context, id string) (*model.Debate, error) {
	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	d, ok := s.debates[id]
	if !ok {
		return nil, notFound("get debate", id)
	}
	c := *d
	return &c, nil
}

func (s *FakeStore) GetActiveDebate(ctx context.Context) (*model.Debate, error) {
	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	var latest *model.Debate
	for _, d := range s.debates {
		if d.IsActive() && (latest == nil || d.CreatedAt.After(latest.CreatedAt)) {
			latest = d
		}
	}
	if latest == nil {
		return nil, errors.Wrap(ErrNotFound, "get active debate")
	}
	c := *latest
	return &c, nil
}

func (s *FakeStore) SaveDebate(ctx context.Context, d *model.Debate) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	old, ok := s.debates[d.Id]
	if !ok {
		return notFound("save debate", d.Id)
	}
	c := *d
	c.CreatedAt = old.CreatedAt
	s.debates[c.Id] = &c
	return nil
}

func (s *FakeStore) DeleteDebate(ctx context.Context, id string) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if _, ok := s.debates[id]; !ok {
		return notFound("delete debate", id)
	}
	delete(s.debates, id)
	for aid, a := range s.arguments {
		if a.DebateID == id {
			s.deleteArgumentLocked(aid)
		}
	}
	return nil
}

func (s *FakeStore) ListActiveDebates(ctx context.Context) ([]*model.DebateSummary, error) {
	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	var res []*model.DebateSummary
	for _, d := range s.debates {
		if !d.IsActive() {
			continue
		}
		summary := &model.DebateSummary{}
		summary.Debate = *d
		for _, a := range s.arguments {
			if a.DebateID != d.Id {
				continue
			}
			summary.ArgumentCount++
			for _, c := range s.comments {
				if c.ArgumentID == a.Id {
					summary.ArgumentCount++
				}
			}
		}
		res = append(res, summary)
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

// --- arguments ---

func (s *FakeStore) CreateArgument(ctx context.Context, a *model.Argument) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if _, ok := s.debates[a.DebateID]; !ok {
		return errors.Errorf("foreign key violation: debate %s", a.DebateID)
	}
	author, ok := s.profiles[a.UserID]
	if !ok {
		return notFound("count argument of", a.UserID)
	}
	if a.Id == "" {
		a.Id = uuid.New().String()
	}
	a.CreatedAt = s.stamp()
	c := *a
	s.arguments[c.Id] = &c
	author.ArgumentCount++
	return nil
}

func (s *FakeStore) GetArgument(ctx context.Context, id string) (*model.Argument, error) {
	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	a, ok := s.arguments[id]
	if !ok {
		return nil, notFound("get argument", id)
	}
	c := *a
	return &c, nil
}

func (s *FakeStore) UpdateArgumentContent(ctx context.Context, id string, content string) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	a, ok := s.arguments[id]
	if !ok {
		return notFound("update argument", id)
	}
	a.Content = content
	return nil
}

func (s *FakeStore) deleteArgumentLocked(id string) {
	a := s.arguments[id]
	delete(s.arguments, id)
	for k := range s.likes {
		if k.kind == model.LikeKindArgument && k.targetID == id {
			delete(s.likes, k)
		}
	}
	for cid, c := range s.comments {
		if c.ArgumentID == id {
			s.deleteCommentLocked(cid)
		}
	}
	if author, ok := s.profiles[a.UserID]; ok && author.ArgumentCount > 0 {
		author.ArgumentCount--
	}
}

func (s *FakeStore) DeleteArgument(ctx context.Context, id string) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if _, ok := s.arguments[id]; !ok {
		return notFound("delete argument", id)
	}
	s.deleteArgumentLocked(id)
	return nil
}

func (s *FakeStore) ListArguments(ctx context.Context, debateID string) ([]*model.Argument, error) {
	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	var res []*model.Argument
	for _, a := range s.arguments {
		if a.DebateID == debateID {
			c := *a
			res = append(res, &c)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

func (s *FakeStore) CountComments(ctx context.Context, argumentIDs []string) (map[string]int, error) {
	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	res := map[string]int{}
	for _, id := range argumentIDs {
		for _, c := range s.comments {
			if c.ArgumentID == id {
				res[id]++
			}
		}
	}
	return res, nil
}

// --- comments ---

func (s *FakeStore) CreateComment(ctx context.Context, c *model.Comment) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if _, ok := s.arguments[c.ArgumentID]; !ok {
		return errors.Errorf("foreign key violation: argument %s", c.ArgumentID)
	}
	if c.Id == "" {
		c.Id = uuid.New().String()
	}
	c.CreatedAt = s.stamp()
	cp := *c
	s.comments[cp.Id] = &cp
	return nil
}

func (s *FakeStore) GetComment(ctx context.Context, id string) (*model.Comment, error) {
	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, notFound("get comment", id)
	}
	cp := *c
	return &cp, nil
}

func (s *FakeStore) UpdateCommentContent(ctx context.Context, id string, content string) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	c, ok := s.comments[id]
	if !ok {
		return notFound("update comment", id)
	}
	c.Content = content
	return nil
}

func (s *FakeStore) deleteCommentLocked(id string) {
	delete(s.comments, id)
	for k := range s.likes {
		if k.kind == model.LikeKindComment && k.targetID == id {
			delete(s.likes, k)
		}
	}
}

func (s *FakeStore) DeleteComment(ctx context.Context, id string) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if _, ok := s.comments[id]; !ok {
		return notFound("delete comment", id)
	}
	s.deleteCommentLocked(id)
	return nil
}

func (s *FakeStore) ListComments(ctx context.Context, argumentID string) ([]*model.Comment, error) {
	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	var res []*model.Comment
	for _, c := range s.comments {
		if c.ArgumentID == argumentID {
			cp := *c
			res = append(res, &cp)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	return res, nil
}

// --- notices ---

func (s *FakeStore) CreateNotice(ctx context.Context, n *model.Notice) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if n.Id == "" {
		n.Id = uuid.New().String()
	}
	n.CreatedAt = s.stamp()
	c := *n
	s.notices[c.Id] = &c
	return nil
}

func (s *FakeStore) GetNotice(ctx context.Context, id string) (*model.Notice, error) {
	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	n, ok := s.notices[id]
	if !ok {
		return nil, notFound("get notice", id)
	}
	c := *n
	return &c, nil
}

func (s *FakeStore) SaveNotice(ctx context.Context, n *model.Notice) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	old, ok := s.notices[n.Id]
	if !ok {
		return notFound("save notice", n.Id)
	}
	old.Title = n.Title
	old.Content = n.Content
	return nil
}

func (s *FakeStore) DeleteNotice(ctx context.Context, id string) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if _, ok := s.notices[id]; !ok {
		return notFound("delete notice", id)
	}
	delete(s.notices, id)
	for k := range s.likes {
		if k.kind == model.LikeKindNotice && k.targetID == id {
			delete(s.likes, k)
		}
	}
	for cid, c := range s.noticeComments {
		if c.NoticeID == id {
			s.deleteNoticeCommentLocked(cid)
		}
	}
	return nil
}

func (s *FakeStore) ListNotices(ctx context.Context) ([]*model.NoticeView, error) {
	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	var res []*model.NoticeView
	for _, n := range s.notices {
		view := &model.NoticeView{}
		view.Notice = *n
		for _, c := range s.noticeComments {
			if c.NoticeID == n.Id {
				view.CommentCount++
			}
		}
		res = append(res, view)
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

func (s *FakeStore) CreateNoticeComment(ctx context.Context, c *model.NoticeComment) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if _, ok := s.notices[c.NoticeID]; !ok {
		return errors.Errorf("foreign key violation: notice %s", c.NoticeID)
	}
	if c.Id == "" {
		c.Id = uuid.New().String()
	}
	c.CreatedAt = s.stamp()
	cp := *c
	s.noticeComments[cp.Id] = &cp
	return nil
}

func (s *FakeStore) GetNoticeComment(ctx context.Context, id string) (*model.NoticeComment, error) {
	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	c, ok := s.noticeComments[id]
	if !ok {
		return nil, notFound("get notice comment", id)
	}
	cp := *c
	return &cp, nil
}

func (s *FakeStore) UpdateNoticeCommentContent(ctx context.Context, id string, content string) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	c, ok := s.noticeComments[id]
	if !ok {
		return notFound("update notice comment", id)
	}
	c.Content = content
	return nil
}

func (s *FakeStore) deleteNoticeCommentLocked(id string) {
	delete(s.noticeComments, id)
	for k := range s.likes {
		if k.kind == model.LikeKindNoticeComment && k.targetID == id {
			delete(s.likes, k)
		}
	}
}

func (s *FakeStore) DeleteNoticeComment(ctx context.Context, id string) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if _, ok := s.noticeComments[id]; !ok {
		return notFound("delete notice comment", id)
	}
	s.deleteNoticeCommentLocked(id)
	return nil
}

func (s *FakeStore) ListNoticeComments(ctx context.Context, noticeID string) ([]*model.NoticeComment, error) {
	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	var res []*model.NoticeComment
	for _, c := range s.noticeComments {
		if c.NoticeID == noticeID {
			cp := *c
			res = append(res, &cp)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	return res, nil
}

// --- likes ---

func (s *FakeStore) targetExists(kind model.LikeKind, id string) bool {
	var ok bool
	switch kind {
	case model.LikeKindArgument:
		_, ok = s.arguments[id]
	case model.LikeKindComment:
		_, ok = s.comments[id]
	case model.LikeKindNotice:
		_, ok = s.notices[id]
	case model.LikeKindNoticeComment:
		_, ok = s.noticeComments[id]
	}
	return ok
}

func (s *FakeStore) HasLike(ctx context.Context, kind model.LikeKind, userID string, targetID string) (bool, error) {
	unlock, err := s.lock()
	if err != nil {
		return false, err
	}
	defer unlock()
	_, ok := s.likes[likeKey{kind, userID, targetID}]
	return ok, nil
}

func (s *FakeStore) AddLike(ctx context.Context, kind model.LikeKind, userID string, targetID string) (bool, error) {
	unlock, err := s.lock()
	if err != nil {
		return false, err
	}
	defer unlock()
	if !s.targetExists(kind, targetID) {
		return false, errors.Errorf("foreign key violation: %s %s", kind, targetID)
	}
	k := likeKey{kind, userID, targetID}
	if _, ok := s.likes[k]; ok {
		return false, nil
	}
	s.likes[k] = s.stamp()
	return true, nil
}

func (s *FakeStore) RemoveLike(ctx context.Context, kind model.LikeKind, userID string, targetID string) (bool, error) {
	unlock, err := s.lock()
	if err != nil {
		return false, err
	}
	defer unlock()
	k := likeKey{kind, userID, targetID}
	if _, ok := s.likes[k]; !ok {
		return false, nil
	}
	delete(s.likes, k)
	return true, nil
}

// likeCount returns a pointer to the counter of the target, nil when missing.
func (s *FakeStore) likeCount(kind model.LikeKind, id string) *int {
	switch kind {
	case model.LikeKindArgument:
		if a, ok := s.arguments[id]; ok {
			return &a.LikeCount
		}
	case model.LikeKindComment:
		if c, ok := s.comments[id]; ok {
			return &c.LikeCount
		}
	case model.LikeKindNotice:
		if n, ok := s.notices[id]; ok {
			return &n.LikeCount
		}
	case model.LikeKindNoticeComment:
		if c, ok := s.noticeComments[id]; ok {
			return &c.LikeCount
		}
	}
	return nil
}

func (s *FakeStore) IncrementLikeCount(ctx context.Context, kind model.LikeKind, targetID string) (int, error) {
	unlock, err := s.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()
	count := s.likeCount(kind, targetID)
	if count == nil {
		return 0, notFound("rpc "+kind.IncrementFunc(), targetID)
	}
	*count++
	return *count, nil
}

func (s *FakeStore) DecrementLikeCount(ctx context.Context, kind model.LikeKind, targetID string) (int, error) {
	unlock, err := s.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()
	count := s.likeCount(kind, targetID)
	if count == nil {
		return 0, notFound("rpc "+kind.DecrementFunc(), targetID)
	}
	if *count > 0 {
		*count--
	}
	return *count, nil
}

func (s *FakeStore) LikedTargetIDs(ctx context.Context, kind model.LikeKind, userID string, targetIDs []string) (map[string]bool, error) {
	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	res := map[string]bool{}
	if userID == "" {
		return res, nil
	}
	for _, id := range targetIDs {
		if _, ok := s.likes[likeKey{kind, userID, id}]; ok {
			res[id] = true
		}
	}
	return res, nil
}

// --- reports ---

func (s *FakeStore) CreateReport(ctx context.Context, r *model.Report) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if r.Id == "" {
		r.Id = uuid.New().String()
	}
	r.CreatedAt = s.stamp()
	c := *r
	s.reports = append(s.reports, &c)
	return nil
}
