package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleFollow(t *testing.T) {
	srv, app := newTestServer(t)
	alice := seedUser(t, srv, "user_alice", "alice")
	bob := seedUser(t, srv, "user_bob", "bob")
	bobToken := signTestToken(t, "user_bob")

	var state struct {
		Following bool `json:"following"`
	}

	t.Run("FollowThenUnfollow", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/users/"+itoa(alice.ID)+"/follow", bobToken, nil, &state)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, state.Following)

		resp = doJSON(t, app, http.MethodPost, "/api/users/"+itoa(alice.ID)+"/follow", bobToken, nil, &state)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.False(t, state.Following)
	})

	t.Run("SelfFollowRejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/users/"+itoa(bob.ID)+"/follow", bobToken, nil, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("UnknownTarget", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/users/999/follow", bobToken, nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/users/"+itoa(alice.ID)+"/follow", "", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGetFollowState(t *testing.T) {
	srv, app := newTestServer(t)
	alice := seedUser(t, srv, "user_alice", "alice")
	seedUser(t, srv, "user_bob", "bob")
	bobToken := signTestToken(t, "user_bob")

	var state struct {
		Following bool `json:"following"`
	}

	resp := doJSON(t, app, http.MethodGet, "/api/users/"+itoa(alice.ID)+"/follow", bobToken, nil, &state)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, state.Following)

	doJSON(t, app, http.MethodPost, "/api/users/"+itoa(alice.ID)+"/follow", bobToken, nil, nil)

	resp = doJSON(t, app, http.MethodGet, "/api/users/"+itoa(alice.ID)+"/follow", bobToken, nil, &state)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, state.Following)
}

func TestGetFollowStats(t *testing.T) {
	srv, app := newTestServer(t)
	alice := seedUser(t, srv, "user_alice", "alice")
	seedUser(t, srv, "user_bob", "bob")
	seedUser(t, srv, "user_carol", "carol")

	doJSON(t, app, http.MethodPost, "/api/users/"+itoa(alice.ID)+"/follow", signTestToken(t, "user_bob"), nil, nil)
	doJSON(t, app, http.MethodPost, "/api/users/"+itoa(alice.ID)+"/follow", signTestToken(t, "user_carol"), nil, nil)

	var stats struct {
		Followers int64 `json:"followers"`
		Following int64 `json:"following"`
	}
	resp := doJSON(t, app, http.MethodGet, "/api/users/"+itoa(alice.ID)+"/follow-stats", "", nil, &stats)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 2, stats.Followers)
	assert.Zero(t, stats.Following)

	t.Run("UnknownUser", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/999/follow-stats", "", nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
