package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/Luismorlan/logosarena/model"
	"github.com/Luismorlan/logosarena/revalidate"
	"github.com/Luismorlan/logosarena/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type likeFixture struct {
	e             *testEnv
	debate        *model.Debate
	argument      *model.Argument
	comment       *model.Comment
	notice        *model.Notice
	noticeComment *model.NoticeComment
}

func newLikeFixture(t *testing.T) *likeFixture {
	e := newTestEnv(t)
	utils.TestCreateProfileAndValidate(t, e.st, "author", "author")
	utils.TestCreateProfileAndValidate(t, e.st, "fan", "fan")
	f := &likeFixture{e: e}
	f.debate = utils.TestCreateDebateAndValidate(t, e.st, "Should homework be banned?")
	f.argument = utils.TestCreateArgumentAndValidate(t, e.st, "author", f.debate.Id, model.SidePro)
	f.comment = utils.TestCreateCommentAndValidate(t, e.st, "author", f.argument.Id, "indeed")
	f.notice = utils.TestCreateNoticeAndValidate(t, e.st, "maintenance")
	f.noticeComment = utils.TestCreateNoticeCommentAndValidate(t, e.st, "author", f.notice.Id, "ok")
	e.advance(time.Minute)
	return f
}

func (f *likeFixture) score(t *testing.T) int {
	p, err := f.e.st.GetProfile(context.Background(), "author")
	require.NoError(t, err)
	return p.TotalScore
}

func TestToggleLikeRoundTrip(t *testing.T) {
	f := newLikeFixture(t)
	targets := map[model.LikeKind]string{
		model.LikeKindArgument:      f.argument.Id,
		model.LikeKindComment:       f.comment.Id,
		model.LikeKindNotice:        f.notice.Id,
		model.LikeKindNoticeComment: f.noticeComment.Id,
	}
	for _, kind := range model.AllLikeKinds {
		t.Run(string(kind), func(t *testing.T) {
			ctx := context.Background()
			scoreBefore := f.score(t)

			state, err := f.e.r.ToggleLike(ctx, identity("fan"), kind, targets[kind])
			require.NoError(t, err)
			assert.Equal(t, &model.LikeState{Liked: true, LikeCount: 1}, state)
			if kind.ScoresAuthor() {
				assert.Equal(t, scoreBefore+1, f.score(t))
			} else {
				assert.Equal(t, scoreBefore, f.score(t))
			}

			// Past the notice like cooldown.
			f.e.advance(7 * time.Second)
			state, err = f.e.r.ToggleLike(ctx, identity("fan"), kind, targets[kind])
			require.NoError(t, err)
			assert.Equal(t, &model.LikeState{Liked: false, LikeCount: 0}, state)
			assert.Equal(t, scoreBefore, f.score(t))
		})
	}
}

func TestToggleLikeCountsEveryUser(t *testing.T) {
	f := newLikeFixture(t)
	ctx := context.Background()
	utils.TestCreateProfileAndValidate(t, f.e.st, "other", "other")

	_, err := f.e.r.ToggleArgumentLike(ctx, identity("fan"), f.argument.Id)
	require.NoError(t, err)
	state, err := f.e.r.ToggleArgumentLike(ctx, identity("other"), f.argument.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, state.LikeCount)
	assert.Equal(t, 2, f.score(t))

	// Deleting the argument keeps the score the author earned.
	require.NoError(t, f.e.r.DeleteArgument(ctx, identity("author"), f.argument.Id))
	assert.Equal(t, 2, f.score(t))

	assert.Contains(t, f.e.rec.Paths(), revalidate.PathRanking)
	assert.Contains(t, f.e.rec.Paths(), revalidate.DebatePath(f.debate.Id))
}

func TestToggleNoticeLikeCooldown(t *testing.T) {
	f := newLikeFixture(t)
	ctx := context.Background()

	_, err := f.e.r.ToggleNoticeLike(ctx, identity("fan"), f.notice.Id)
	require.NoError(t, err)

	f.e.advance(2 * time.Second)
	_, err = f.e.r.ToggleNoticeLike(ctx, identity("fan"), f.notice.Id)
	require.Error(t, err)
	assert.Equal(t, RateLimited, kindOf(err))
	assert.Equal(t, "please wait 4 seconds before liking again", err.Error())

	notice, err := f.e.st.GetNotice(ctx, f.notice.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, notice.LikeCount)

	// Other kinds are not throttled.
	_, err = f.e.r.ToggleCommentLike(ctx, identity("fan"), f.comment.Id)
	require.NoError(t, err)
	state, err := f.e.r.ToggleCommentLike(ctx, identity("fan"), f.comment.Id)
	require.NoError(t, err)
	assert.False(t, state.Liked)
}

func TestToggleLikeFailures(t *testing.T) {
	f := newLikeFixture(t)
	ctx := context.Background()

	_, err := f.e.r.ToggleArgumentLike(ctx, nil, f.argument.Id)
	assert.Equal(t, AuthRequired, kindOf(err))

	for _, kind := range model.AllLikeKinds {
		_, err := f.e.r.ToggleLike(ctx, identity("fan"), kind, "missing")
		assert.Equal(t, NotFound, kindOf(err), kind)
	}

	_, err = f.e.r.ToggleLike(ctx, identity("fan"), "debate", f.debate.Id)
	assert.Equal(t, ValidationFailed, kindOf(err))
}
