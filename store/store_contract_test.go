package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/Luismorlan/logosarena/model"
	"github.com/Luismorlan/logosarena/store"
	"github.com/Luismorlan/logosarena/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract checks the behavior every Store implementation must share.
// Ordered inserts sleep a little so database timestamps never tie.
func runStoreContract(t *testing.T, newStore func(t *testing.T) store.Store) {
	ctx := context.Background()
	tick := func() { time.Sleep(2 * time.Millisecond) }

	t.Run("Profile creation is idempotent", func(t *testing.T) {
		st := newStore(t)
		p := utils.TestCreateProfileAndValidate(t, st, "user_a", "alice")

		again, err := st.CreateProfileIfNotExists(ctx, "user_a")
		require.NoError(t, err)
		require.NotNil(t, again.Username)
		assert.Equal(t, "alice", *again.Username)
		assert.Equal(t, model.RoleUser, again.Role)
		assert.Equal(t, p.Id, again.Id)

		byName, err := st.GetProfileByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "user_a", byName.Id)

		_, err = st.GetProfileByUsername(ctx, "nobody")
		assert.True(t, store.IsNotFound(err))
		_, err = st.GetProfile(ctx, "missing")
		assert.True(t, store.IsNotFound(err))
	})

	t.Run("Profile setup and role", func(t *testing.T) {
		st := newStore(t)
		utils.TestCreateProfileAndValidate(t, st, "user_a", "")
		require.NoError(t, st.UpdateProfileSetup(ctx, "user_a", "alice", model.GenderFemale, 30))
		require.NoError(t, st.UpdateRole(ctx, "user_a", model.RoleAdmin))

		p, err := st.GetProfile(ctx, "user_a")
		require.NoError(t, err)
		assert.Equal(t, "alice", *p.Username)
		assert.Equal(t, model.GenderFemale, *p.Gender)
		assert.Equal(t, 30, *p.Age)
		assert.True(t, p.IsAdmin())

		assert.True(t, store.IsNotFound(st.UpdateRole(ctx, "missing", model.RoleAdmin)))
		assert.True(t, store.IsNotFound(st.UpdateUsername(ctx, "missing", "bob")))
	})

	t.Run("Argument count follows create and delete", func(t *testing.T) {
		st := newStore(t)
		utils.TestCreateProfileAndValidate(t, st, "user_a", "alice")
		d := utils.TestCreateDebateAndValidate(t, st, "Should cities ban cars?")
		a1 := utils.TestCreateArgumentAndValidate(t, st, "user_a", d.Id, model.SidePro)
		utils.TestCreateArgumentAndValidate(t, st, "user_a", d.Id, model.SideCon)

		p, err := st.GetProfile(ctx, "user_a")
		require.NoError(t, err)
		assert.Equal(t, 2, p.ArgumentCount)

		require.NoError(t, st.DeleteArgument(ctx, a1.Id))
		p, err = st.GetProfile(ctx, "user_a")
		require.NoError(t, err)
		assert.Equal(t, 1, p.ArgumentCount)

		assert.True(t, store.IsNotFound(st.DeleteArgument(ctx, a1.Id)))
		_, err = st.GetArgument(ctx, a1.Id)
		assert.True(t, store.IsNotFound(err))
	})

	t.Run("Listing order", func(t *testing.T) {
		st := newStore(t)
		utils.TestCreateProfileAndValidate(t, st, "user_a", "alice")
		d := utils.TestCreateDebateAndValidate(t, st, "Should cities ban cars?")
		first := utils.TestCreateArgumentAndValidate(t, st, "user_a", d.Id, model.SidePro)
		tick()
		second := utils.TestCreateArgumentAndValidate(t, st, "user_a", d.Id, model.SidePro)

		args, err := st.ListArguments(ctx, d.Id)
		require.NoError(t, err)
		require.Len(t, args, 2)
		assert.Equal(t, second.Id, args[0].Id)
		assert.Equal(t, first.Id, args[1].Id)

		c1 := utils.TestCreateCommentAndValidate(t, st, "user_a", first.Id, "first")
		tick()
		c2 := utils.TestCreateCommentAndValidate(t, st, "user_a", first.Id, "second")
		comments, err := st.ListComments(ctx, first.Id)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, c1.Id, comments[0].Id)
		assert.Equal(t, c2.Id, comments[1].Id)

		counts, err := st.CountComments(ctx, []string{first.Id, second.Id})
		require.NoError(t, err)
		assert.Equal(t, 2, counts[first.Id])
		assert.Equal(t, 0, counts[second.Id])
	})

	t.Run("Debate listing counts arguments and comments", func(t *testing.T) {
		st := newStore(t)
		utils.TestCreateProfileAndValidate(t, st, "user_a", "alice")
		older := utils.TestCreateDebateAndValidate(t, st, "Should cities ban cars?")
		tick()
		newer := utils.TestCreateDebateAndValidate(t, st, "Is remote work better?")
		closed := utils.TestCreateDebateAndValidate(t, st, "Closed topic here")
		closed.Status = model.DebateStatusClosed
		require.NoError(t, st.SaveDebate(ctx, closed))

		a := utils.TestCreateArgumentAndValidate(t, st, "user_a", older.Id, model.SidePro)
		utils.TestCreateCommentAndValidate(t, st, "user_a", a.Id, "agree")
		utils.TestCreateCommentAndValidate(t, st, "user_a", a.Id, "disagree")

		debates, err := st.ListActiveDebates(ctx)
		require.NoError(t, err)
		require.Len(t, debates, 2)
		assert.Equal(t, newer.Id, debates[0].Id)
		assert.Equal(t, 0, debates[0].ArgumentCount)
		assert.Equal(t, older.Id, debates[1].Id)
		assert.Equal(t, 3, debates[1].ArgumentCount)

		active, err := st.GetActiveDebate(ctx)
		require.NoError(t, err)
		assert.Equal(t, newer.Id, active.Id)
	})

	t.Run("Delete debate cascades", func(t *testing.T) {
		st := newStore(t)
		utils.TestCreateProfileAndValidate(t, st, "user_a", "alice")
		d := utils.TestCreateDebateAndValidate(t, st, "Should cities ban cars?")
		a := utils.TestCreateArgumentAndValidate(t, st, "user_a", d.Id, model.SidePro)
		c := utils.TestCreateCommentAndValidate(t, st, "user_a", a.Id, "agree")
		_, err := st.AddLike(ctx, model.LikeKindArgument, "user_a", a.Id)
		require.NoError(t, err)

		require.NoError(t, st.DeleteDebate(ctx, d.Id))

		_, err = st.GetArgument(ctx, a.Id)
		assert.True(t, store.IsNotFound(err))
		_, err = st.GetComment(ctx, c.Id)
		assert.True(t, store.IsNotFound(err))
		liked, err := st.HasLike(ctx, model.LikeKindArgument, "user_a", a.Id)
		require.NoError(t, err)
		assert.False(t, liked)
		p, err := st.GetProfile(ctx, "user_a")
		require.NoError(t, err)
		assert.Equal(t, 0, p.ArgumentCount)

		_, err = st.GetActiveDebate(ctx)
		assert.True(t, store.IsNotFound(err))
	})

	t.Run("Like rows report affected rows", func(t *testing.T) {
		st := newStore(t)
		utils.TestCreateProfileAndValidate(t, st, "user_a", "alice")
		n := utils.TestCreateNoticeAndValidate(t, st, "Welcome")

		inserted, err := st.AddLike(ctx, model.LikeKindNotice, "user_a", n.Id)
		require.NoError(t, err)
		assert.True(t, inserted)
		inserted, err = st.AddLike(ctx, model.LikeKindNotice, "user_a", n.Id)
		require.NoError(t, err)
		assert.False(t, inserted)

		liked, err := st.LikedTargetIDs(ctx, model.LikeKindNotice, "user_a", []string{n.Id, "other"})
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{n.Id: true}, liked)

		latest, ok, err := st.LatestCreatedAt(ctx, model.TableNoticeLikes, "user_a")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.False(t, latest.IsZero())

		removed, err := st.RemoveLike(ctx, model.LikeKindNotice, "user_a", n.Id)
		require.NoError(t, err)
		assert.True(t, removed)
		removed, err = st.RemoveLike(ctx, model.LikeKindNotice, "user_a", n.Id)
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("Counters", func(t *testing.T) {
		st := newStore(t)
		utils.TestCreateProfileAndValidate(t, st, "user_a", "alice")
		d := utils.TestCreateDebateAndValidate(t, st, "Should cities ban cars?")
		a := utils.TestCreateArgumentAndValidate(t, st, "user_a", d.Id, model.SidePro)

		count, err := st.IncrementLikeCount(ctx, model.LikeKindArgument, a.Id)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		count, err = st.IncrementLikeCount(ctx, model.LikeKindArgument, a.Id)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
		count, err = st.DecrementLikeCount(ctx, model.LikeKindArgument, a.Id)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		count, err = st.DecrementLikeCount(ctx, model.LikeKindArgument, a.Id)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
		count, err = st.DecrementLikeCount(ctx, model.LikeKindArgument, a.Id)
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		stored, err := st.GetArgument(ctx, a.Id)
		require.NoError(t, err)
		assert.Equal(t, 0, stored.LikeCount)

		_, err = st.IncrementLikeCount(ctx, model.LikeKindComment, "missing")
		assert.True(t, store.IsNotFound(err))
	})

	t.Run("Latest created at", func(t *testing.T) {
		st := newStore(t)
		utils.TestCreateProfileAndValidate(t, st, "user_a", "alice")
		n := utils.TestCreateNoticeAndValidate(t, st, "Welcome")

		_, ok, err := st.LatestCreatedAt(ctx, model.TableNoticeComments, "user_a")
		require.NoError(t, err)
		assert.False(t, ok)

		utils.TestCreateNoticeCommentAndValidate(t, st, "user_a", n.Id, "first")
		tick()
		last := utils.TestCreateNoticeCommentAndValidate(t, st, "user_a", n.Id, "second")
		latest, ok, err := st.LatestCreatedAt(ctx, model.TableNoticeComments, "user_a")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.WithinDuration(t, last.CreatedAt, latest, time.Millisecond)

		_, _, err = st.LatestCreatedAt(ctx, model.TableProfiles, "user_a")
		assert.Error(t, err)
	})

	t.Run("Notices list with comment counts", func(t *testing.T) {
		st := newStore(t)
		utils.TestCreateProfileAndValidate(t, st, "user_a", "alice")
		older := utils.TestCreateNoticeAndValidate(t, st, "Welcome")
		tick()
		newer := utils.TestCreateNoticeAndValidate(t, st, "Rules")
		utils.TestCreateNoticeCommentAndValidate(t, st, "user_a", older.Id, "hi")

		notices, err := st.ListNotices(ctx)
		require.NoError(t, err)
		require.Len(t, notices, 2)
		assert.Equal(t, newer.Id, notices[0].Id)
		assert.Equal(t, 0, notices[0].CommentCount)
		assert.Equal(t, older.Id, notices[1].Id)
		assert.Equal(t, 1, notices[1].CommentCount)

		older.Title = "Welcome!"
		require.NoError(t, st.SaveNotice(ctx, older))
		got, err := st.GetNotice(ctx, older.Id)
		require.NoError(t, err)
		assert.Equal(t, "Welcome!", got.Title)

		require.NoError(t, st.DeleteNotice(ctx, older.Id))
		comments, err := st.ListNoticeComments(ctx, older.Id)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("Ranking by score", func(t *testing.T) {
		st := newStore(t)
		utils.TestCreateProfileAndValidate(t, st, "user_a", "alice")
		utils.TestCreateProfileAndValidate(t, st, "user_b", "bob")
		utils.TestCreateProfileAndValidate(t, st, "user_c", "carol")
		utils.TestCreateProfileAndValidate(t, st, "user_d", "")
		require.NoError(t, st.AdjustTotalScore(ctx, "user_b", 5))
		require.NoError(t, st.AdjustTotalScore(ctx, "user_c", 2))
		require.NoError(t, st.AdjustTotalScore(ctx, "user_a", -3))
		require.NoError(t, st.AdjustTotalScore(ctx, "user_d", 7))

		top, err := st.ListProfilesByScore(ctx, 2)
		require.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, "user_b", top[0].Id)
		assert.Equal(t, "user_c", top[1].Id)

		all, err := st.ListProfilesByScore(ctx, 10)
		require.NoError(t, err)
		require.Len(t, all, 3)
		for _, p := range all {
			assert.NotEqual(t, "user_d", p.Id)
		}

		a, err := st.GetProfile(ctx, "user_a")
		require.NoError(t, err)
		assert.Equal(t, 0, a.TotalScore)
	})

	t.Run("Reports", func(t *testing.T) {
		st := newStore(t)
		utils.TestCreateProfileAndValidate(t, st, "user_a", "alice")
		r := &model.Report{
			ReporterID: "user_a",
			TargetType: model.ReportTargetComment,
			TargetID:   "comment_1",
			Reason:     "spam",
		}
		require.NoError(t, st.CreateReport(ctx, r))
		assert.NotEmpty(t, r.Id)
	})
}
