package resolver

import (
	"context"

	"github.com/Luismorlan/logosarena/model"
)

const noActiveDebateMessage = "there is no active debate"

// ListDebates returns active debates, newest first. argument_count counts
// arguments and the comments under them.
func (r *Resolver) ListDebates(ctx context.Context) (debates []*model.DebateSummary, err error) {
	defer guard("list_debates", &err)

	debates, serr := r.Store.ListActiveDebates(ctx)
	if serr != nil {
		return nil, storeFailure(serr, "")
	}
	if debates == nil {
		debates = []*model.DebateSummary{}
	}
	return debates, nil
}

func (r *Resolver) GetActiveDebate(ctx context.Context) (debate *model.Debate, err error) {
	defer guard("get_active_debate", &err)

	debate, serr := r.Store.GetActiveDebate(ctx)
	if serr != nil {
		return nil, storeFailure(serr, noActiveDebateMessage)
	}
	return debate, nil
}

func (r *Resolver) GetDebate(ctx context.Context, id string) (debate *model.Debate, err error) {
	defer guard("get_debate", &err)

	debate, serr := r.Store.GetDebate(ctx, id)
	if serr != nil {
		return nil, storeFailure(serr, debateNotFoundMessage)
	}
	return debate, nil
}

// ListArguments returns the arguments of a debate grouped by side, each group
// newest first, with author, comment count and the viewer's like.
func (r *Resolver) ListArguments(ctx context.Context, viewer *model.Identity, debateID string) (groups []*model.SideGroup, err error) {
	defer guard("list_arguments", &err)

	debate, serr := r.Store.GetDebate(ctx, debateID)
	if serr != nil {
		return nil, storeFailure(serr, debateNotFoundMessage)
	}
	arguments, serr := r.Store.ListArguments(ctx, debate.Id)
	if serr != nil {
		return nil, storeFailure(serr, "")
	}

	ids := make([]string, 0, len(arguments))
	userIDs := make([]string, 0, len(arguments))
	for _, a := range arguments {
		ids = append(ids, a.Id)
		userIDs = append(userIDs, a.UserID)
	}
	counts, serr := r.Store.CountComments(ctx, ids)
	if serr != nil {
		return nil, storeFailure(serr, "")
	}
	authors, serr := r.loadAuthors(ctx, userIDs)
	if serr != nil {
		return nil, storeFailure(serr, "")
	}
	liked, serr := r.likedBy(ctx, model.LikeKindArgument, viewerID(viewer), ids)
	if serr != nil {
		return nil, storeFailure(serr, "")
	}

	views := make([]*model.ArgumentView, 0, len(arguments))
	for _, a := range arguments {
		views = append(views, &model.ArgumentView{
			Argument:     *a,
			Author:       authors[a.UserID],
			IsLiked:      liked[a.Id],
			CommentCount: counts[a.Id],
		})
	}
	return groupBySide(r.sideMode().Sides(debate), views), nil
}

// ListComments returns the comments of an argument, oldest first.
func (r *Resolver) ListComments(ctx context.Context, viewer *model.Identity, argumentID string) (views []*model.CommentView, err error) {
	defer guard("list_comments", &err)

	if _, serr := r.Store.GetArgument(ctx, argumentID); serr != nil {
		return nil, storeFailure(serr, argumentNotFoundMessage)
	}
	comments, serr := r.Store.ListComments(ctx, argumentID)
	if serr != nil {
		return nil, storeFailure(serr, "")
	}

	ids := make([]string, 0, len(comments))
	userIDs := make([]string, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.Id)
		userIDs = append(userIDs, c.UserID)
	}
	authors, serr := r.loadAuthors(ctx, userIDs)
	if serr != nil {
		return nil, storeFailure(serr, "")
	}
	liked, serr := r.likedBy(ctx, model.LikeKindComment, viewerID(viewer), ids)
	if serr != nil {
		return nil, storeFailure(serr, "")
	}

	views = make([]*model.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, &model.CommentView{
			Comment: *c,
			Author:  authors[c.UserID],
			IsLiked: liked[c.Id],
		})
	}
	return views, nil
}

// Ranking returns the top profiles by total_score.
func (r *Resolver) Ranking(ctx context.Context) (ranking []*model.PublicProfile, err error) {
	defer guard("ranking", &err)

	profiles, serr := r.Store.ListProfilesByScore(ctx, r.Setting.RANKING_LIMIT)
	if serr != nil {
		return nil, storeFailure(serr, "")
	}
	ranking = make([]*model.PublicProfile, 0, len(profiles))
	for _, p := range profiles {
		public, cerr := toPublicProfile(p)
		if cerr != nil {
			return nil, storeFailure(cerr, "")
		}
		ranking = append(ranking, public)
	}
	return ranking, nil
}

// ListNotices returns all notices newest first.
func (r *Resolver) ListNotices(ctx context.Context, viewer *model.Identity) (notices []*model.NoticeView, err error) {
	defer guard("list_notices", &err)

	notices, serr := r.Store.ListNotices(ctx)
	if serr != nil {
		return nil, storeFailure(serr, "")
	}
	ids := make([]string, 0, len(notices))
	for _, n := range notices {
		ids = append(ids, n.Id)
	}
	liked, serr := r.likedBy(ctx, model.LikeKindNotice, viewerID(viewer), ids)
	if serr != nil {
		return nil, storeFailure(serr, "")
	}
	for _, n := range notices {
		n.IsLiked = liked[n.Id]
	}
	if notices == nil {
		notices = []*model.NoticeView{}
	}
	return notices, nil
}

func (r *Resolver) ListNoticeComments(ctx context.Context, viewer *model.Identity, noticeID string) (views []*model.NoticeCommentView, err error) {
	defer guard("list_notice_comments", &err)

	if _, serr := r.Store.GetNotice(ctx, noticeID); serr != nil {
		return nil, storeFailure(serr, noticeNotFoundMessage)
	}
	comments, serr := r.Store.ListNoticeComments(ctx, noticeID)
	if serr != nil {
		return nil, storeFailure(serr, "")
	}

	ids := make([]string, 0, len(comments))
	userIDs := make([]string, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.Id)
		userIDs = append(userIDs, c.UserID)
	}
	authors, serr := r.loadAuthors(ctx, userIDs)
	if serr != nil {
		return nil, storeFailure(serr, "")
	}
	liked, serr := r.likedBy(ctx, model.LikeKindNoticeComment, viewerID(viewer), ids)
	if serr != nil {
		return nil, storeFailure(serr, "")
	}

	views = make([]*model.NoticeCommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, &model.NoticeCommentView{
			NoticeComment: *c,
			Author:        authors[c.UserID],
			IsLiked:       liked[c.Id],
		})
	}
	return views, nil
}
