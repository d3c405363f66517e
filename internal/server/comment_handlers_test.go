package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentFlow(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	author := createUser(t, s, "thread_author")
	commenter := createUser(t, s, "commenter")
	authorToken := authToken(t, s, author)
	commenterToken := authToken(t, s, commenter)

	var post map[string]any
	status := doJSON(t, app, http.MethodPost, "/api/posts/", authorToken,
		map[string]any{"content": "anyone up for ranked 5s?"}, &post)
	require.Equal(t, http.StatusCreated, status)
	postID := post["id"]

	var comment map[string]any
	status = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/posts/%v/comments", postID),
		commenterToken, map[string]any{"content": "I can flex support"}, &comment)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "I can flex support", comment["content"])

	// Commenting notifies the post author.
	var count map[string]any
	status = doJSON(t, app, http.MethodGet, "/api/notifications/unread-count", authorToken, nil, &count)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, count["count"])

	// Comments are publicly readable with the reply trees attached.
	var comments []map[string]any
	status = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%v/comments", postID),
		"", nil, &comments)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, comments, 1)
}

func TestLikeCommentToggles(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	author := createUser(t, s, "c_author")
	liker := createUser(t, s, "c_liker")
	authorToken := authToken(t, s, author)
	likerToken := authToken(t, s, liker)

	var post map[string]any
	status := doJSON(t, app, http.MethodPost, "/api/posts/", authorToken,
		map[string]any{"content": "VOD review thread"}, &post)
	require.Equal(t, http.StatusCreated, status)

	var comment map[string]any
	status = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/posts/%v/comments", post["id"]),
		authorToken, map[string]any{"content": "first"}, &comment)
	require.Equal(t, http.StatusCreated, status)
	likeURL := fmt.Sprintf("/api/comments/%v/like", comment["id"])

	var out map[string]any
	status = doJSON(t, app, http.MethodPost, likeURL, likerToken, nil, &out)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["liked"])

	status = doJSON(t, app, http.MethodPost, likeURL, likerToken, nil, &out)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, out["liked"])
	assert.EqualValues(t, 0, out["comment"].(map[string]any)["likes_count"])
}

func TestReplyNesting(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	user := createUser(t, s, "replier")
	token := authToken(t, s, user)

	var post map[string]any
	status := doJSON(t, app, http.MethodPost, "/api/posts/", token,
		map[string]any{"content": "strat discussion"}, &post)
	require.Equal(t, http.StatusCreated, status)

	var comment map[string]any
	status = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/posts/%v/comments", post["id"]),
		token, map[string]any{"content": "rush B every round"}, &comment)
	require.Equal(t, http.StatusCreated, status)
	repliesURL := fmt.Sprintf("/api/comments/%v/replies", comment["id"])

	var top map[string]any
	status = doJSON(t, app, http.MethodPost, repliesURL, token,
		map[string]any{"content": "too predictable"}, &top)
	require.Equal(t, http.StatusCreated, status)

	var nested map[string]any
	status = doJSON(t, app, http.MethodPost, repliesURL, token,
		map[string]any{"content": "works in low elo", "parent_reply_id": top["id"]}, &nested)
	require.Equal(t, http.StatusCreated, status)

	var replies []map[string]any
	status = doJSON(t, app, http.MethodGet, repliesURL, token, nil, &replies)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, replies, 1)
	sub := replies[0]["sub_replies"].([]any)
	require.Len(t, sub, 1)
	assert.Equal(t, "works in low elo", sub[0].(map[string]any)["content"])

	// Subtree lookup from a mid-tree node.
	var tree map[string]any
	status = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/replies/%v/tree", top["id"]),
		token, nil, &tree)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "too predictable", tree["content"])
	require.Len(t, tree["sub_replies"].([]any), 1)
}

func TestDeleteCommentRemovesSubtree(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	user := createUser(t, s, "pruner")
	token := authToken(t, s, user)

	var post map[string]any
	status := doJSON(t, app, http.MethodPost, "/api/posts/", token,
		map[string]any{"content": "tier list"}, &post)
	require.Equal(t, http.StatusCreated, status)

	var comment map[string]any
	status = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/posts/%v/comments", post["id"]),
		token, map[string]any{"content": "hot take"}, &comment)
	require.Equal(t, http.StatusCreated, status)

	var reply map[string]any
	status = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/comments/%v/replies", comment["id"]),
		token, map[string]any{"content": "agreed"}, &reply)
	require.Equal(t, http.StatusCreated, status)

	status = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/comments/%v", comment["id"]),
		token, nil, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/replies/%v/tree", reply["id"]),
		token, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestNotificationsReadAll(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	author := createUser(t, s, "notified")
	fan := createUser(t, s, "fan")
	authorToken := authToken(t, s, author)
	fanToken := authToken(t, s, fan)

	var post map[string]any
	status := doJSON(t, app, http.MethodPost, "/api/posts/", authorToken,
		map[string]any{"content": "new roster announcement"}, &post)
	require.Equal(t, http.StatusCreated, status)

	// A like and a comment from another user each create a notification.
	status = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/posts/%v/like", post["id"]),
		fanToken, nil, nil)
	require.Equal(t, http.StatusOK, status)
	status = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/posts/%v/comments", post["id"]),
		fanToken, map[string]any{"content": "congrats"}, nil)
	require.Equal(t, http.StatusCreated, status)

	var count map[string]any
	status = doJSON(t, app, http.MethodGet, "/api/notifications/unread-count", authorToken, nil, &count)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, count["count"])

	var notifs []map[string]any
	status = doJSON(t, app, http.MethodGet, "/api/notifications/", authorToken, nil, &notifs)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, notifs, 2)

	status = doJSON(t, app, http.MethodPost, "/api/notifications/read-all", authorToken, nil, nil)
	require.Equal(t, http.StatusOK, status)

	status = doJSON(t, app, http.MethodGet, "/api/notifications/unread-count", authorToken, nil, &count)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, count["count"])

	// Idempotent
	status = doJSON(t, app, http.MethodPost, "/api/notifications/read-all", authorToken, nil, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestLikeOwnPostDoesNotNotify(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	user := createUser(t, s, "self_liker")
	token := authToken(t, s, user)

	var post map[string]any
	status := doJSON(t, app, http.MethodPost, "/api/posts/", token,
		map[string]any{"content": "proud of this one"}, &post)
	require.Equal(t, http.StatusCreated, status)

	status = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/posts/%v/like", post["id"]),
		token, nil, nil)
	require.Equal(t, http.StatusOK, status)

	var count map[string]any
	status = doJSON(t, app, http.MethodGet, "/api/notifications/unread-count", token, nil, &count)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, count["count"])
}

// A full discussion round trip: a comment notifies the post author, the
// author liking that comment notifies the commenter, and unliking leaves
// the earlier notification in place without adding another.
func TestCommentAndLikeNotificationExchange(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	author := createUser(t, s, "thread_author")
	commenter := createUser(t, s, "thread_commenter")
	authorToken := authToken(t, s, author)
	commenterToken := authToken(t, s, commenter)

	var post map[string]any
	status := doJSON(t, app, http.MethodPost, "/api/posts/", authorToken,
		map[string]any{"content": "hello"}, &post)
	require.Equal(t, http.StatusCreated, status)

	var comment map[string]any
	status = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/posts/%v/comments", post["id"]),
		commenterToken, map[string]any{"content": "nice"}, &comment)
	require.Equal(t, http.StatusCreated, status)

	var notifs []map[string]any
	status = doJSON(t, app, http.MethodGet, "/api/notifications/", authorToken, nil, &notifs)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, notifs, 1)
	assert.Equal(t, "comment", notifs[0]["type"])
	assert.EqualValues(t, commenter.ID, notifs[0]["sender_id"])

	likeURL := fmt.Sprintf("/api/comments/%v/like", comment["id"])
	var out map[string]any
	status = doJSON(t, app, http.MethodPost, likeURL, authorToken, nil, &out)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["liked"])

	status = doJSON(t, app, http.MethodGet, "/api/notifications/", commenterToken, nil, &notifs)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, notifs, 1)
	assert.Equal(t, "comment_like", notifs[0]["type"])
	assert.EqualValues(t, author.ID, notifs[0]["sender_id"])

	// Unliking does not retract or duplicate the notification.
	status = doJSON(t, app, http.MethodPost, likeURL, authorToken, nil, &out)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, out["liked"])

	status = doJSON(t, app, http.MethodGet, "/api/notifications/", commenterToken, nil, &notifs)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, notifs, 1)
}

func TestMissingCommentReturnsNotFound(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	user := createUser(t, s, "lost_replier")
	token := authToken(t, s, user)

	status := doJSON(t, app, http.MethodGet, "/api/comments/999999/replies", token, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status = doJSON(t, app, http.MethodPost, "/api/comments/999999/replies", token,
		map[string]any{"content": "nobody home"}, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status = doJSON(t, app, http.MethodPost, "/api/comments/999999/like", token, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
