package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateConversation(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	alice := createUser(t, s, "dm_alice")
	bob := createUser(t, s, "dm_bob")
	aliceToken := authToken(t, s, alice)

	var conv map[string]any
	status := doJSON(t, app, http.MethodPost, "/api/conversations/", aliceToken,
		map[string]any{"user_id": bob.ID}, &conv)
	require.Equal(t, http.StatusCreated, status)
	require.NotZero(t, conv["id"])

	// One conversation per pair: a repeat create returns the same thread.
	var again map[string]any
	status = doJSON(t, app, http.MethodPost, "/api/conversations/", aliceToken,
		map[string]any{"user_id": bob.ID}, &again)
	require.Less(t, status, http.StatusMultipleChoices)
	assert.Equal(t, conv["id"], again["id"])

	// Self-DM is rejected.
	status = doJSON(t, app, http.MethodPost, "/api/conversations/", aliceToken,
		map[string]any{"user_id": alice.ID}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// Unknown counterpart.
	status = doJSON(t, app, http.MethodPost, "/api/conversations/", aliceToken,
		map[string]any{"user_id": 9999}, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMessageFlow(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	alice := createUser(t, s, "msg_alice")
	bob := createUser(t, s, "msg_bob")
	eve := createUser(t, s, "msg_eve")
	aliceToken := authToken(t, s, alice)
	bobToken := authToken(t, s, bob)
	eveToken := authToken(t, s, eve)

	var conv map[string]any
	status := doJSON(t, app, http.MethodPost, "/api/conversations/", aliceToken,
		map[string]any{"user_id": bob.ID}, &conv)
	require.Equal(t, http.StatusCreated, status)
	messagesURL := fmt.Sprintf("/api/conversations/%v/messages", conv["id"])

	var msg map[string]any
	status = doJSON(t, app, http.MethodPost, messagesURL, aliceToken,
		map[string]any{"content": "scrim tonight at 8?"}, &msg)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "scrim tonight at 8?", msg["content"])

	// Blank messages are rejected.
	status = doJSON(t, app, http.MethodPost, messagesURL, aliceToken,
		map[string]any{"content": "   "}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// Non-participants can neither read nor write.
	status = doJSON(t, app, http.MethodPost, messagesURL, eveToken,
		map[string]any{"content": "let me in"}, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status = doJSON(t, app, http.MethodGet, messagesURL, eveToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	var messages []map[string]any
	status = doJSON(t, app, http.MethodGet, messagesURL, bobToken, nil, &messages)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, messages, 1)

	// The recipient got a message notification.
	var count map[string]any
	status = doJSON(t, app, http.MethodGet, "/api/notifications/unread-count", bobToken, nil, &count)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, count["count"])

	// Reading the conversation clears its message notifications.
	status = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/conversations/%v/read", conv["id"]),
		bobToken, nil, nil)
	require.Equal(t, http.StatusOK, status)

	status = doJSON(t, app, http.MethodGet, "/api/notifications/unread-count", bobToken, nil, &count)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, count["count"])
}

func TestListConversations(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	alice := createUser(t, s, "list_alice")
	bob := createUser(t, s, "list_bob")
	carol := createUser(t, s, "list_carol")
	aliceToken := authToken(t, s, alice)

	for _, other := range []uint{bob.ID, carol.ID} {
		status := doJSON(t, app, http.MethodPost, "/api/conversations/", aliceToken,
			map[string]any{"user_id": other}, nil)
		require.Equal(t, http.StatusCreated, status)
	}

	var convs []map[string]any
	status := doJSON(t, app, http.MethodGet, "/api/conversations/", aliceToken, nil, &convs)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, convs, 2)

	// Bob only sees the thread he is part of.
	bobToken := authToken(t, s, bob)
	status = doJSON(t, app, http.MethodGet, "/api/conversations/", bobToken, nil, &convs)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, convs, 1)
}

func TestGetConversationAccess(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	alice := createUser(t, s, "access_alice")
	bob := createUser(t, s, "access_bob")
	eve := createUser(t, s, "access_eve")
	aliceToken := authToken(t, s, alice)

	var conv map[string]any
	status := doJSON(t, app, http.MethodPost, "/api/conversations/", aliceToken,
		map[string]any{"user_id": bob.ID}, &conv)
	require.Equal(t, http.StatusCreated, status)
	url := fmt.Sprintf("/api/conversations/%v", conv["id"])

	status = doJSON(t, app, http.MethodGet, url, aliceToken, nil, nil)
	assert.Equal(t, http.StatusOK, status)

	status = doJSON(t, app, http.MethodGet, url, authToken(t, s, eve), nil, nil)
	assert.Equal(t, http.StatusForbidden, status)
}
