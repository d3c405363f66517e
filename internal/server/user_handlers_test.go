package server

import (
	"fmt"
	"net/http"
	"testing"

	"scrimhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyProfile(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	user := createUser(t, s, "profile_owner")
	token := authToken(t, s, user)

	var out map[string]any
	status := doJSON(t, app, http.MethodGet, "/api/users/me", token, nil, &out)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "profile_owner", out["username"])
	_, leaked := out["password"]
	assert.False(t, leaked)
}

func TestUpdateMyProfile(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	user := createUser(t, s, "profile_editor")
	token := authToken(t, s, user)

	var out map[string]any
	status := doJSON(t, app, http.MethodPut, "/api/users/me", token, map[string]any{
		"nickname":  "fragger",
		"main_game": "cs2",
		"role":      "awp",
		"bio":       "igl for hire",
	}, &out)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "fragger", out["nickname"])
	assert.Equal(t, "cs2", out["main_game"])

	// Untouched fields are kept.
	status = doJSON(t, app, http.MethodPut, "/api/users/me", token,
		map[string]any{"bio": "retired igl"}, &out)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "fragger", out["nickname"])
	assert.Equal(t, "retired igl", out["bio"])
}

func TestGetUserProfilePublicFields(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	viewer := createUser(t, s, "viewer")
	subject := createUser(t, s, "subject")
	token := authToken(t, s, viewer)

	var out map[string]any
	status := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d", subject.ID),
		token, nil, &out)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "subject", out["username"])

	status = doJSON(t, app, http.MethodGet, "/api/users/999999", token, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAdminPromotion(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	admin := createUser(t, s, "root_admin")
	require.NoError(t, s.db.Model(&models.User{}).
		Where("id = ?", admin.ID).Update("is_admin", true).Error)
	pleb := createUser(t, s, "regular_joe")
	adminToken := authToken(t, s, admin)
	plebToken := authToken(t, s, pleb)

	promoteURL := fmt.Sprintf("/api/users/%d/promote-admin", pleb.ID)

	// Non-admins cannot promote.
	status := doJSON(t, app, http.MethodPost, promoteURL, plebToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	var out map[string]any
	status = doJSON(t, app, http.MethodPost, promoteURL, adminToken, nil, &out)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["user"].(map[string]any)["is_admin"])

	status = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/users/%d/demote-admin", pleb.ID), adminToken, nil, &out)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, out["user"].(map[string]any)["is_admin"])
}

func TestAdminCanDeleteAnyPost(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	admin := createUser(t, s, "mod_admin")
	require.NoError(t, s.db.Model(&models.User{}).
		Where("id = ?", admin.ID).Update("is_admin", true).Error)
	author := createUser(t, s, "moderated")
	adminToken := authToken(t, s, admin)
	authorToken := authToken(t, s, author)

	var post map[string]any
	status := doJSON(t, app, http.MethodPost, "/api/posts/", authorToken,
		map[string]any{"content": "rule-breaking post"}, &post)
	require.Equal(t, http.StatusCreated, status)

	status = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/posts/%v", post["id"]),
		adminToken, nil, nil)
	assert.Equal(t, http.StatusNoContent, status)
}
