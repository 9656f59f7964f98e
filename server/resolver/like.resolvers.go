package resolver

import (
	"context"

	"github.com/Luismorlan/logosarena/model"
	"github.com/Luismorlan/logosarena/revalidate"
	Logger "github.com/Luismorlan/logosarena/utils/log"
)

// likeTarget is what a toggle needs to know about the liked row.
type likeTarget struct {
	likeCount int
	// Empty for notices.
	authorID string
	paths    []string
}

func (r *Resolver) loadLikeTarget(ctx context.Context, kind model.LikeKind, id string) (*likeTarget, *Failure) {
	switch kind {
	case model.LikeKindArgument:
		a, err := r.Store.GetArgument(ctx, id)
		if err != nil {
			return nil, storeFailure(err, argumentNotFoundMessage)
		}
		return &likeTarget{
			likeCount: a.LikeCount,
			authorID:  a.UserID,
			paths:     []string{revalidate.DebatePath(a.DebateID), revalidate.PathRanking},
		}, nil
	case model.LikeKindComment:
		c, err := r.Store.GetComment(ctx, id)
		if err != nil {
			return nil, storeFailure(err, commentNotFoundMessage)
		}
		t := &likeTarget{likeCount: c.LikeCount, authorID: c.UserID, paths: []string{revalidate.PathRanking}}
		if a, err := r.Store.GetArgument(ctx, c.ArgumentID); err == nil {
			t.paths = append(t.paths, revalidate.DebatePath(a.DebateID))
		}
		return t, nil
	case model.LikeKindNotice:
		n, err := r.Store.GetNotice(ctx, id)
		if err != nil {
			return nil, storeFailure(err, noticeNotFoundMessage)
		}
		return &likeTarget{likeCount: n.LikeCount, paths: []string{revalidate.PathNotice}}, nil
	case model.LikeKindNoticeComment:
		c, err := r.Store.GetNoticeComment(ctx, id)
		if err != nil {
			return nil, storeFailure(err, noticeCommentNotFoundMessage)
		}
		return &likeTarget{likeCount: c.LikeCount, paths: []string{revalidate.PathNotice}}, nil
	}
	return nil, failf(ValidationFailed, "unknown like kind: %s", kind)
}

// toggleLike flips the (user, target) relation. The counter RPC only runs
// when the insert or delete changed a row, so two racing toggles of the same
// user cannot move the counter twice.
func (r *Resolver) toggleLike(ctx context.Context, ident *model.Identity, kind model.LikeKind, targetID string) (*model.LikeState, *Failure) {
	if f := requireIdentity(ident); f != nil {
		return nil, f
	}
	if kind == model.LikeKindNotice {
		if f := r.throttle(ctx, model.TableNoticeLikes, ident, "liking"); f != nil {
			return nil, f
		}
	}
	target, f := r.loadLikeTarget(ctx, kind, targetID)
	if f != nil {
		return nil, f
	}

	liked, err := r.Store.HasLike(ctx, kind, ident.Id, targetID)
	if err != nil {
		return nil, storeFailure(err, "")
	}

	state := &model.LikeState{Liked: !liked, LikeCount: target.likeCount}
	var changed bool
	if liked {
		changed, err = r.Store.RemoveLike(ctx, kind, ident.Id, targetID)
	} else {
		changed, err = r.Store.AddLike(ctx, kind, ident.Id, targetID)
	}
	if err != nil {
		return nil, storeFailure(err, "")
	}

	if changed {
		delta := 1
		if liked {
			delta = -1
			state.LikeCount, err = r.Store.DecrementLikeCount(ctx, kind, targetID)
		} else {
			state.LikeCount, err = r.Store.IncrementLikeCount(ctx, kind, targetID)
		}
		if err != nil {
			return nil, storeFailure(err, "")
		}
		if kind.ScoresAuthor() && target.authorID != "" {
			if err := r.Store.AdjustTotalScore(ctx, target.authorID, delta); err != nil {
				return nil, storeFailure(err, "")
			}
		}
	} else {
		Logger.Log.Infof("concurrent %s like toggle by %s on %s", kind, ident.Id, targetID)
	}

	r.revalidate(ctx, target.paths...)
	return state, nil
}

func (r *Resolver) ToggleLike(ctx context.Context, ident *model.Identity, kind model.LikeKind, targetID string) (state *model.LikeState, err error) {
	defer r.track("toggle_"+string(kind)+"_like", &err)

	state, f := r.toggleLike(ctx, ident, kind, targetID)
	if f != nil {
		return nil, f
	}
	return state, nil
}

func (r *Resolver) ToggleArgumentLike(ctx context.Context, ident *model.Identity, argumentID string) (*model.LikeState, error) {
	return r.ToggleLike(ctx, ident, model.LikeKindArgument, argumentID)
}

func (r *Resolver) ToggleCommentLike(ctx context.Context, ident *model.Identity, commentID string) (*model.LikeState, error) {
	return r.ToggleLike(ctx, ident, model.LikeKindComment, commentID)
}

func (r *Resolver) ToggleNoticeLike(ctx context.Context, ident *model.Identity, noticeID string) (*model.LikeState, error) {
	return r.ToggleLike(ctx, ident, model.LikeKindNotice, noticeID)
}

func (r *Resolver) ToggleNoticeCommentLike(ctx context.Context, ident *model.Identity, commentID string) (*model.LikeState, error) {
	return r.ToggleLike(ctx, ident, model.LikeKindNoticeComment, commentID)
}
