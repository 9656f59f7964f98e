package resolver

import (
	"context"
	"testing"

	"github.com/Luismorlan/logosarena/model"
	"github.com/Luismorlan/logosarena/revalidate"
	"github.com/Luismorlan/logosarena/store"
	"github.com/Luismorlan/logosarena/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoticeMutationsAreAdminOnly(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	utils.TestCreateProfileAndValidate(t, e.st, "user_a", "alice")
	utils.TestCreateAdminAndValidate(t, e.st, "admin", "admin")
	input := NoticeInput{Title: "maintenance", Content: "down at 3am"}

	_, err := e.r.CreateNotice(ctx, nil, input)
	assert.Equal(t, AuthRequired, kindOf(err))
	_, err = e.r.CreateNotice(ctx, identity("user_a"), input)
	assert.Equal(t, NotAuthorized, kindOf(err))
	// Authorization is checked before the input.
	_, err = e.r.CreateNotice(ctx, identity("user_a"), NoticeInput{})
	assert.Equal(t, NotAuthorized, kindOf(err))
	_, err = e.r.CreateNotice(ctx, identity("admin"), NoticeInput{Title: "title"})
	assert.Equal(t, ValidationFailed, kindOf(err))

	notice, err := e.r.CreateNotice(ctx, identity("admin"), input)
	require.NoError(t, err)
	assert.Equal(t, "maintenance", notice.Title)

	_, err = e.r.UpdateNotice(ctx, identity("user_a"), notice.Id, input)
	assert.Equal(t, NotAuthorized, kindOf(err))
	updated, err := e.r.UpdateNotice(ctx, identity("admin"), notice.Id, NoticeInput{Title: "maintenance", Content: "moved to 4am"})
	require.NoError(t, err)
	assert.Equal(t, "moved to 4am", updated.Content)
	_, err = e.r.UpdateNotice(ctx, identity("admin"), "missing", input)
	assert.Equal(t, NotFound, kindOf(err))

	err = e.r.DeleteNotice(ctx, identity("user_a"), notice.Id)
	assert.Equal(t, NotAuthorized, kindOf(err))
	require.NoError(t, e.r.DeleteNotice(ctx, identity("admin"), notice.Id))
	_, err = e.st.GetNotice(ctx, notice.Id)
	assert.True(t, store.IsNotFound(err))
	err = e.r.DeleteNotice(ctx, identity("admin"), notice.Id)
	assert.Equal(t, NotFound, kindOf(err))

	for _, p := range e.rec.Paths() {
		assert.Equal(t, revalidate.PathNotice, p)
	}
}

func TestDebateMutations(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	utils.TestCreateProfileAndValidate(t, e.st, "user_a", "alice")
	utils.TestCreateAdminAndValidate(t, e.st, "admin", "admin")
	description := "  about homework  "
	input := DebateInput{Topic: "Should homework be banned?", Description: &description, OptionA: "ban", OptionB: "keep"}

	_, err := e.r.CreateDebate(ctx, identity("user_a"), input)
	assert.Equal(t, NotAuthorized, kindOf(err))
	_, err = e.r.CreateDebate(ctx, identity("admin"), DebateInput{Topic: "Why", OptionA: "a", OptionB: "b"})
	assert.Equal(t, ValidationFailed, kindOf(err))
	_, err = e.r.CreateDebate(ctx, identity("admin"), DebateInput{Topic: "Should homework be banned?", OptionA: "a", OptionB: "b", Status: "archived"})
	assert.Equal(t, ValidationFailed, kindOf(err))

	debate, err := e.r.CreateDebate(ctx, identity("admin"), input)
	require.NoError(t, err)
	assert.Equal(t, model.DebateStatusActive, debate.Status)
	assert.Equal(t, "about homework", *debate.Description)
	assert.Equal(t, []string{revalidate.PathHome, revalidate.DebatePath(debate.Id)}, e.rec.Paths())

	active, err := e.r.GetActiveDebate(ctx)
	require.NoError(t, err)
	assert.Equal(t, debate.Id, active.Id)

	input.Status = model.DebateStatusClosed
	updated, err := e.r.UpdateDebate(ctx, identity("admin"), debate.Id, input)
	require.NoError(t, err)
	assert.Equal(t, model.DebateStatusClosed, updated.Status)
	_, err = e.r.GetActiveDebate(ctx)
	assert.Equal(t, NotFound, kindOf(err))
	_, err = e.r.UpdateDebate(ctx, identity("user_a"), debate.Id, input)
	assert.Equal(t, NotAuthorized, kindOf(err))
	_, err = e.r.UpdateDebate(ctx, identity("admin"), "missing", input)
	assert.Equal(t, NotFound, kindOf(err))

	argument := utils.TestCreateArgumentAndValidate(t, e.st, "user_a", debate.Id, model.SidePro)
	err = e.r.DeleteDebate(ctx, identity("user_a"), debate.Id)
	assert.Equal(t, NotAuthorized, kindOf(err))
	require.NoError(t, e.r.DeleteDebate(ctx, identity("admin"), debate.Id))
	_, err = e.st.GetArgument(ctx, argument.Id)
	assert.True(t, store.IsNotFound(err))
	_, err = e.r.GetDebate(ctx, debate.Id)
	assert.Equal(t, NotFound, kindOf(err))
}

func TestSetRole(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	utils.TestCreateProfileAndValidate(t, e.st, "user_a", "alice")
	utils.TestCreateAdminAndValidate(t, e.st, "admin", "admin")

	err := e.r.SetRole(ctx, identity("user_a"), "user_a", model.RoleAdmin)
	assert.Equal(t, NotAuthorized, kindOf(err))
	err = e.r.SetRole(ctx, identity("admin"), "user_a", "owner")
	assert.Equal(t, ValidationFailed, kindOf(err))
	err = e.r.SetRole(ctx, identity("admin"), "missing", model.RoleAdmin)
	assert.Equal(t, NotFound, kindOf(err))

	require.NoError(t, e.r.SetRole(ctx, identity("admin"), "user_a", model.RoleAdmin))
	assert.True(t, e.r.IsAdmin(ctx, identity("user_a")))
	assert.Equal(t, []string{revalidate.PathRanking}, e.rec.Paths())
}

func TestAuthorize(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	utils.TestCreateProfileAndValidate(t, e.st, "user_a", "alice")
	utils.TestCreateAdminAndValidate(t, e.st, "admin", "admin")

	ok, msg := e.r.Authorize(ctx, identity("user_a"), "user_a")
	assert.True(t, ok)
	assert.Empty(t, msg)

	ok, _ = e.r.Authorize(ctx, identity("admin"), "user_a")
	assert.True(t, ok)

	ok, msg = e.r.Authorize(ctx, identity("user_a"), "admin")
	assert.False(t, ok)
	assert.Equal(t, notAuthorizedMessage, msg)

	// A caller without a profile row is treated as a regular user.
	ok, _ = e.r.Authorize(ctx, identity("ghost"), "admin")
	assert.False(t, ok)

	ok, msg = e.r.Authorize(ctx, nil, "admin")
	assert.False(t, ok)
	assert.Equal(t, LoginRequiredMessage, msg)
}
