package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/Luismorlan/logosarena/model"
	"github.com/Luismorlan/logosarena/revalidate"
	"github.com/Luismorlan/logosarena/store"
	"github.com/Luismorlan/logosarena/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostCommentCooldown(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	utils.TestCreateProfileAndValidate(t, e.st, "user_a", "alice")
	debate := utils.TestCreateDebateAndValidate(t, e.st, "Should homework be banned?")
	argument := utils.TestCreateArgumentAndValidate(t, e.st, "user_a", debate.Id, model.SidePro)
	e.advance(time.Minute)

	input := PostCommentInput{ArgumentID: argument.Id, Content: " first "}
	comment, err := e.r.PostComment(ctx, identity("user_a"), input)
	require.NoError(t, err)
	assert.Equal(t, "first", comment.Content)
	assert.Equal(t, []string{revalidate.PathHome, revalidate.DebatePath(debate.Id)}, e.rec.Paths())

	e.advance(10 * time.Second)
	_, err = e.r.PostComment(ctx, identity("user_a"), input)
	require.Error(t, err)
	assert.Equal(t, RateLimited, kindOf(err))
	assert.Equal(t, "please wait 20 seconds before commenting again", err.Error())

	e.advance(21 * time.Second)
	_, err = e.r.PostComment(ctx, identity("user_a"), input)
	assert.NoError(t, err)
}

func TestPostCommentPreconditions(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	utils.TestCreateProfileAndValidate(t, e.st, "user_a", "alice")
	debate := utils.TestCreateDebateAndValidate(t, e.st, "Should homework be banned?")
	argument := utils.TestCreateArgumentAndValidate(t, e.st, "user_a", debate.Id, model.SidePro)

	_, err := e.r.PostComment(ctx, nil, PostCommentInput{ArgumentID: argument.Id, Content: "hi"})
	assert.Equal(t, AuthRequired, kindOf(err))
	_, err = e.r.PostComment(ctx, identity("user_a"), PostCommentInput{ArgumentID: argument.Id, Content: "  "})
	assert.Equal(t, ValidationFailed, kindOf(err))
	_, err = e.r.PostComment(ctx, identity("user_a"), PostCommentInput{ArgumentID: argument.Id, Content: "hi", ImageURLs: imageURLs(11)})
	assert.Equal(t, ValidationFailed, kindOf(err))
	_, err = e.r.PostComment(ctx, identity("user_a"), PostCommentInput{ArgumentID: "missing", Content: "hi"})
	assert.Equal(t, NotFound, kindOf(err))
	assert.Empty(t, e.rec.Paths())
}

func TestUpdateAndDeleteComment(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	utils.TestCreateProfileAndValidate(t, e.st, "owner", "owner")
	utils.TestCreateProfileAndValidate(t, e.st, "stranger", "stranger")
	utils.TestCreateAdminAndValidate(t, e.st, "admin", "admin")
	debate := utils.TestCreateDebateAndValidate(t, e.st, "Should homework be banned?")
	argument := utils.TestCreateArgumentAndValidate(t, e.st, "owner", debate.Id, model.SidePro)
	comment := utils.TestCreateCommentAndValidate(t, e.st, "owner", argument.Id, "original")

	_, err := e.r.UpdateComment(ctx, identity("stranger"), comment.Id, "")
	assert.Equal(t, NotAuthorized, kindOf(err))
	_, err = e.r.UpdateComment(ctx, identity("owner"), comment.Id, "")
	assert.Equal(t, ValidationFailed, kindOf(err))

	updated, err := e.r.UpdateComment(ctx, identity("owner"), comment.Id, " edited ")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	assert.Equal(t, []string{revalidate.DebatePath(debate.Id)}, e.rec.Paths())

	err = e.r.DeleteComment(ctx, identity("stranger"), comment.Id)
	assert.Equal(t, NotAuthorized, kindOf(err))
	require.NoError(t, e.r.DeleteComment(ctx, identity("admin"), comment.Id))
	_, err = e.st.GetComment(ctx, comment.Id)
	assert.True(t, store.IsNotFound(err))

	err = e.r.DeleteComment(ctx, identity("admin"), comment.Id)
	assert.Equal(t, NotFound, kindOf(err))
}

func TestNoticeComments(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	utils.TestCreateProfileAndValidate(t, e.st, "owner", "owner")
	utils.TestCreateProfileAndValidate(t, e.st, "stranger", "stranger")
	utils.TestCreateAdminAndValidate(t, e.st, "admin", "admin")
	notice := utils.TestCreateNoticeAndValidate(t, e.st, "maintenance")
	e.advance(time.Minute)

	_, err := e.r.PostNoticeComment(ctx, identity("owner"), PostNoticeCommentInput{NoticeID: "missing", Content: "hi"})
	assert.Equal(t, NotFound, kindOf(err))

	comment, err := e.r.PostNoticeComment(ctx, identity("owner"), PostNoticeCommentInput{NoticeID: notice.Id, Content: "thanks"})
	require.NoError(t, err)
	assert.Equal(t, []string{revalidate.PathNotice}, e.rec.Paths())

	_, err = e.r.PostNoticeComment(ctx, identity("owner"), PostNoticeCommentInput{NoticeID: notice.Id, Content: "again"})
	assert.Equal(t, RateLimited, kindOf(err))

	_, err = e.r.UpdateNoticeComment(ctx, identity("stranger"), comment.Id, "hijack")
	assert.Equal(t, NotAuthorized, kindOf(err))
	updated, err := e.r.UpdateNoticeComment(ctx, identity("owner"), comment.Id, "thanks a lot")
	require.NoError(t, err)
	assert.Equal(t, "thanks a lot", updated.Content)

	err = e.r.DeleteNoticeComment(ctx, identity("stranger"), comment.Id)
	assert.Equal(t, NotAuthorized, kindOf(err))
	require.NoError(t, e.r.DeleteNoticeComment(ctx, identity("admin"), comment.Id))
	_, err = e.st.GetNoticeComment(ctx, comment.Id)
	assert.True(t, store.IsNotFound(err))
}
