package utils

import (
	"context"
	"strings"
	"testing"

	"github.com/Luismorlan/logosarena/model"
	"github.com/Luismorlan/logosarena/store"
	"github.com/stretchr/testify/require"
)

// Fixture helpers shared by store, resolver and server tests. They write
// through the Store interface so they work against both the fake and a temp
// postgres database.

// A valid argument body, long enough for the submit bounds.
var TestArgumentContent = strings.Repeat("evidence ", 8)

// create profile with username, do sanity checks and returns it
func TestCreateProfileAndValidate(t *testing.T, st store.Store, id string, username string) *model.Profile {
	t.Helper()
	ctx := context.Background()
	p, err := st.CreateProfileIfNotExists(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, p.Id)
	if username != "" {
		require.NoError(t, st.UpdateUsername(ctx, id, username))
		p, err = st.GetProfile(ctx, id)
		require.NoError(t, err)
		require.Equal(t, username, *p.Username)
	}
	return p
}

// promote profile to admin and returns it
func TestCreateAdminAndValidate(t *testing.T, st store.Store, id string, username string) *model.Profile {
	t.Helper()
	TestCreateProfileAndValidate(t, st, id, username)
	require.NoError(t, st.UpdateRole(context.Background(), id, model.RoleAdmin))
	p, err := st.GetProfile(context.Background(), id)
	require.NoError(t, err)
	require.True(t, p.IsAdmin())
	return p
}

// create an active debate and returns it
func TestCreateDebateAndValidate(t *testing.T, st store.Store, topic string) *model.Debate {
	t.Helper()
	d := &model.Debate{
		Topic:   topic,
		OptionA: "yes",
		OptionB: "no",
		Status:  model.DebateStatusActive,
	}
	require.NoError(t, st.CreateDebate(context.Background(), d))
	require.NotEmpty(t, d.Id)
	return d
}

// create argument of userID on debateID and returns it
func TestCreateArgumentAndValidate(t *testing.T, st store.Store, userID string, debateID string, side model.Side) *model.Argument {
	t.Helper()
	a := &model.Argument{
		DebateID: debateID,
		UserID:   userID,
		Side:     side,
		Content:  TestArgumentContent,
	}
	require.NoError(t, st.CreateArgument(context.Background(), a))
	require.NotEmpty(t, a.Id)
	return a
}

// create comment of userID under argumentID and returns it
func TestCreateCommentAndValidate(t *testing.T, st store.Store, userID string, argumentID string, content string) *model.Comment {
	t.Helper()
	c := &model.Comment{
		ArgumentID: argumentID,
		UserID:     userID,
		Content:    content,
	}
	require.NoError(t, st.CreateComment(context.Background(), c))
	require.NotEmpty(t, c.Id)
	return c
}

// create notice and returns it
func TestCreateNoticeAndValidate(t *testing.T, st store.Store, title string) *model.Notice {
	t.Helper()
	n := &model.Notice{Title: title, Content: title + " content"}
	require.NoError(t, st.CreateNotice(context.Background(), n))
	require.NotEmpty(t, n.Id)
	return n
}

// create notice comment of userID under noticeID and returns it
func TestCreateNoticeCommentAndValidate(t *testing.T, st store.Store, userID string, noticeID string, content string) *model.NoticeComment {
	t.Helper()
	c := &model.NoticeComment{
		NoticeID: noticeID,
		UserID:   userID,
		Content:  content,
	}
	require.NoError(t, st.CreateNoticeComment(context.Background(), c))
	require.NotEmpty(t, c.Id)
	return c
}
