// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package social

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hubcontent "github.com/av3hub/avhub/internal/hub/content"
	"github.com/av3hub/avhub/internal/platform/apperr"
	"github.com/av3hub/avhub/internal/platform/sec"
)

// # In-Memory Fakes

type fakeCommentRepository struct {
	comments map[string]*Comment
}

func newFakeCommentRepository() *fakeCommentRepository {
	return &fakeCommentRepository{comments: make(map[string]*Comment)}
}

func (repo *fakeCommentRepository) ListByTarget(_ context.Context, target hubcontent.Ref) ([]*Comment, error) {
	out := make([]*Comment, 0)
	for _, c := range repo.comments {
		if c.Target == target {
			out = append(out, c)
		}
	}
	return out, nil
}

func (repo *fakeCommentRepository) GetByID(_ context.Context, id string) (*Comment, error) {
	if c, ok := repo.comments[id]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("Comment")
}

func (repo *fakeCommentRepository) Create(_ context.Context, c *Comment) error {
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	repo.comments[c.ID] = c
	return nil
}

func (repo *fakeCommentRepository) UpdateContent(_ context.Context, id, body string) (*Comment, error) {
	c, ok := repo.comments[id]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	c.Content = body
	c.UpdatedAt = time.Now()
	return c, nil
}

func (repo *fakeCommentRepository) Delete(_ context.Context, id string) error {
	if _, ok := repo.comments[id]; !ok {
		return apperr.NotFound("Comment")
	}
	delete(repo.comments, id)
	return nil
}

type fakeLikeRepository struct {
	likes map[string]*Like
}

func newFakeLikeRepository() *fakeLikeRepository {
	return &fakeLikeRepository{likes: make(map[string]*Like)}
}

func (repo *fakeLikeRepository) Find(_ context.Context, authorID string, target hubcontent.Ref) (*Like, error) {
	for _, l := range repo.likes {
		if l.AuthorID == authorID && l.Target == target {
			return l, nil
		}
	}
	return nil, apperr.NotFound("Like")
}

func (repo *fakeLikeRepository) Create(_ context.Context, l *Like) error {
	for _, existing := range repo.likes {
		if existing.AuthorID == l.AuthorID && existing.Target == l.Target {
			return apperr.Conflict("Already liked")
		}
	}
	l.CreatedAt = time.Now()
	repo.likes[l.ID] = l
	return nil
}

func (repo *fakeLikeRepository) Delete(_ context.Context, id string) error {
	delete(repo.likes, id)
	return nil
}

func (repo *fakeLikeRepository) Count(_ context.Context, target hubcontent.Ref) (int, error) {
	n := 0
	for _, l := range repo.likes {
		if l.Target == target {
			n++
		}
	}
	return n, nil
}

func testService() *Service {
	return NewService(newFakeCommentRepository(), newFakeLikeRepository(), slog.Default())
}

func memberClaims(userID string) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: userID, Username: "member"}
}

// # Likes

/*
TestService_ToggleLike_RoundTrip verifies the toggle alternates: like,
unlike, like again — and the count follows.
*/
func TestService_ToggleLike_RoundTrip(t *testing.T) {
	service := testService()
	claims := memberClaims("u1")
	target := hubcontent.ScriptRef("mock-1")

	state, err := service.ToggleLike(context.Background(), claims, target)
	require.NoError(t, err)
	assert.True(t, state.Liked)

	state, err = service.ToggleLike(context.Background(), claims, target)
	require.NoError(t, err)
	assert.False(t, state.Liked)

	state, err = service.ToggleLike(context.Background(), claims, target)
	require.NoError(t, err)
	assert.True(t, state.Liked)

	count, err := service.CountLikes(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	liked, err := service.UserLiked(context.Background(), claims, target)
	require.NoError(t, err)
	assert.True(t, liked)
}

/*
TestService_ToggleLike_InvalidTarget verifies malformed refs are rejected
before touching storage.
*/
func TestService_ToggleLike_InvalidTarget(t *testing.T) {
	service := testService()

	_, err := service.ToggleLike(context.Background(), memberClaims("u1"), hubcontent.Ref{Kind: "playlist", ID: "x"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_ToggleLike_IndependentTargets verifies likes on a script and
on a program with the same raw ID do not collide.
*/
func TestService_ToggleLike_IndependentTargets(t *testing.T) {
	service := testService()
	claims := memberClaims("u1")

	_, err := service.ToggleLike(context.Background(), claims, hubcontent.ScriptRef("shared-id"))
	require.NoError(t, err)

	state, err := service.ToggleLike(context.Background(), claims, hubcontent.ProgramRef("shared-id"))
	require.NoError(t, err)
	assert.True(t, state.Liked, "program like must not toggle the script like off")

	scriptCount, _ := service.CountLikes(context.Background(), hubcontent.ScriptRef("shared-id"))
	programCount, _ := service.CountLikes(context.Background(), hubcontent.ProgramRef("shared-id"))
	assert.Equal(t, 1, scriptCount)
	assert.Equal(t, 1, programCount)
}

// # Comments

/*
TestService_Comments_Lifecycle covers post, reply, edit, and the
author/admin deletion rules.
*/
func TestService_Comments_Lifecycle(t *testing.T) {
	service := testService()
	author := memberClaims("u1")
	stranger := memberClaims("u2")
	admin := &sec.AuthClaims{UserID: "a1", Username: "moderator", IsAdmin: true}
	target := hubcontent.ProgramRef("prog-1")

	created, err := service.CreateComment(context.Background(), author, CreateCommentInput{
		Target:  target,
		Content: "Great tool!",
	})
	require.NoError(t, err)

	reply, err := service.CreateComment(context.Background(), stranger, CreateCommentInput{
		Target:   target,
		Content:  "Agreed.",
		ParentID: &created.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, created.ID, *reply.ParentID)

	thread, err := service.ListComments(context.Background(), target)
	require.NoError(t, err)
	assert.Len(t, thread, 2)

	// Only the author edits.
	_, err = service.UpdateComment(context.Background(), stranger, created.ID, "hijack")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	updated, err := service.UpdateComment(context.Background(), author, created.ID, "Great tool! (edited)")
	require.NoError(t, err)
	assert.Equal(t, "Great tool! (edited)", updated.Content)

	// Strangers cannot delete, admins can.
	err = service.DeleteComment(context.Background(), stranger, created.ID)
	require.Error(t, err)

	require.NoError(t, service.DeleteComment(context.Background(), admin, created.ID))
	require.NoError(t, service.DeleteComment(context.Background(), stranger, reply.ID))
}

// # Guest Mode

/*
TestGuestStores verifies guest behavior: empty reads, zero counts, and
guest-mode rejections for mutations.
*/
func TestGuestStores(t *testing.T) {
	service := NewService(NewGuestCommentRepository(), NewGuestLikeRepository(), slog.Default())
	target := hubcontent.ScriptRef("mock-1")

	thread, err := service.ListComments(context.Background(), target)
	require.NoError(t, err)
	assert.Empty(t, thread)

	count, err := service.CountLikes(context.Background(), target)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = service.CreateComment(context.Background(), memberClaims("u1"), CreateCommentInput{
		Target:  target,
		Content: "hello",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsGuestMode(err))

	_, err = service.ToggleLike(context.Background(), memberClaims("u1"), target)
	require.Error(t, err)
	assert.True(t, apperr.IsGuestMode(err))
}
