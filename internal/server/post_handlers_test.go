package server

import (
	"net/http"
	"strings"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	srv, app := newTestServer(t)
	seedUser(t, srv, "user_alice", "alice")
	token := signTestToken(t, "user_alice")

	t.Run("Success", func(t *testing.T) {
		var post models.Post
		resp := doJSON(t, app, http.MethodPost, "/api/posts", token,
			map[string]string{"content": "  hello world  "}, &post)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "hello world", post.Content)
		assert.Equal(t, "alice", post.Author.Username)
		assert.Zero(t, post.LikesCount)
	})

	t.Run("EmptyContent", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts", token,
			map[string]string{"content": "   "}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("TooLong", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts", token,
			map[string]string{"content": strings.Repeat("a", 141)}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts", "",
			map[string]string{"content": "hi"}, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("TokenWithoutSyncedUser", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts", signTestToken(t, "user_ghost"),
			map[string]string{"content": "hi"}, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGetPost(t *testing.T) {
	srv, app := newTestServer(t)
	alice := seedUser(t, srv, "user_alice", "alice")
	post := seedPost(t, srv, alice.ID, "look at this")

	t.Run("Anonymous", func(t *testing.T) {
		var got models.Post
		resp := doJSON(t, app, http.MethodGet, postPath(post.ID, ""), "", nil, &got)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, post.ID, got.ID)
		assert.False(t, got.Liked)
	})

	t.Run("Unknown", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/posts/999", "", nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("BadID", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/posts/abc", "", nil, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

// The canonical interaction: alice posts, bob likes it, the count reads 1,
// bob toggles again and the count reads 0.
func TestLikeToggleFlow(t *testing.T) {
	srv, app := newTestServer(t)
	alice := seedUser(t, srv, "user_alice", "alice")
	seedUser(t, srv, "user_bob", "bob")
	bobToken := signTestToken(t, "user_bob")

	post := seedPost(t, srv, alice.ID, "like me")

	var state struct {
		Liked     bool  `json:"liked"`
		LikeCount int64 `json:"like_count"`
	}

	resp := doJSON(t, app, http.MethodPost, postPath(post.ID, "like"), bobToken, nil, &state)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, state.Liked)
	assert.EqualValues(t, 1, state.LikeCount)

	var got models.Post
	doJSON(t, app, http.MethodGet, postPath(post.ID, ""), bobToken, nil, &got)
	assert.True(t, got.Liked)
	assert.Equal(t, 1, got.LikesCount)

	resp = doJSON(t, app, http.MethodPost, postPath(post.ID, "like"), bobToken, nil, &state)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, state.Liked)
	assert.Zero(t, state.LikeCount)
}

func TestToggleLikeMissingPost(t *testing.T) {
	srv, app := newTestServer(t)
	seedUser(t, srv, "user_bob", "bob")

	resp := doJSON(t, app, http.MethodPost, "/api/posts/424242/like", signTestToken(t, "user_bob"), nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeletePost(t *testing.T) {
	srv, app := newTestServer(t)
	alice := seedUser(t, srv, "user_alice", "alice")
	seedUser(t, srv, "user_bob", "bob")

	t.Run("NonAuthorForbidden", func(t *testing.T) {
		post := seedPost(t, srv, alice.ID, "mine")
		resp := doJSON(t, app, http.MethodDelete, postPath(post.ID, ""), signTestToken(t, "user_bob"), nil, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		// The post survives the rejected delete.
		var count int64
		require.NoError(t, srv.db.Model(&models.Post{}).Where("id = ?", post.ID).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("AuthorDeletes", func(t *testing.T) {
		post := seedPost(t, srv, alice.ID, "ephemeral")
		resp := doJSON(t, app, http.MethodDelete, postPath(post.ID, ""), signTestToken(t, "user_alice"), nil, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		var count int64
		require.NoError(t, srv.db.Model(&models.Post{}).Where("id = ?", post.ID).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("Unknown", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, "/api/posts/999", signTestToken(t, "user_alice"), nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestReplies(t *testing.T) {
	srv, app := newTestServer(t)
	alice := seedUser(t, srv, "user_alice", "alice")
	seedUser(t, srv, "user_bob", "bob")
	bobToken := signTestToken(t, "user_bob")

	post := seedPost(t, srv, alice.ID, "discuss")

	t.Run("Create", func(t *testing.T) {
		var reply models.Reply
		resp := doJSON(t, app, http.MethodPost, postPath(post.ID, "replies"), bobToken,
			map[string]string{"content": " first! "}, &reply)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "first!", reply.Content)
		assert.Equal(t, post.ID, reply.PostID)
		assert.Equal(t, "bob", reply.Author.Username)
	})

	t.Run("ParentMissing", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts/999/replies", bobToken,
			map[string]string{"content": "into the void"}, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		doJSON(t, app, http.MethodPost, postPath(post.ID, "replies"), bobToken,
			map[string]string{"content": "second"}, nil)

		var replies []models.Reply
		resp := doJSON(t, app, http.MethodGet, postPath(post.ID, "replies"), "", nil, &replies)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, replies, 2)
		assert.Equal(t, "second", replies[0].Content)
		assert.Equal(t, "first!", replies[1].Content)
	})

	t.Run("DeleteByNonAuthorForbidden", func(t *testing.T) {
		var replies []models.Reply
		doJSON(t, app, http.MethodGet, postPath(post.ID, "replies"), "", nil, &replies)
		require.NotEmpty(t, replies)

		// alice owns the post but not the reply
		resp := doJSON(t, app, http.MethodDelete,
			"/api/replies/"+itoa(replies[0].ID), signTestToken(t, "user_alice"), nil, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("DeleteByAuthor", func(t *testing.T) {
		var replies []models.Reply
		doJSON(t, app, http.MethodGet, postPath(post.ID, "replies"), "", nil, &replies)
		require.NotEmpty(t, replies)

		resp := doJSON(t, app, http.MethodDelete,
			"/api/replies/"+itoa(replies[0].ID), bobToken, nil, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}
