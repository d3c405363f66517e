package server

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueWSTicket(t *testing.T) {
	t.Parallel()
	s, app, rdb := newTestServerRedis(t)
	user := createUser(t, s, "ws_user")
	token := authToken(t, s, user)

	var out map[string]any
	status := doJSON(t, app, http.MethodPost, "/api/ws/ticket", token, nil, &out)
	require.Equal(t, http.StatusOK, status)

	ticket, _ := out["ticket"].(string)
	require.NotEmpty(t, ticket)
	assert.EqualValues(t, wsTicketTTL/time.Second, out["expires_in"])

	// The ticket maps back to the issuing user in Redis.
	val, err := rdb.Get(t.Context(), "ws_ticket:"+ticket).Result()
	require.NoError(t, err)
	assert.Equal(t, strconv.FormatUint(uint64(user.ID), 10), val)
}

func TestWSTicketSingleUse(t *testing.T) {
	t.Parallel()
	s, app, _ := newTestServerRedis(t)
	user := createUser(t, s, "ticket_user")
	token := authToken(t, s, user)

	var out map[string]any
	status := doJSON(t, app, http.MethodPost, "/api/ws/ticket", token, nil, &out)
	require.Equal(t, http.StatusOK, status)
	ticket := out["ticket"].(string)

	// A valid ticket authenticates a request on its own.
	var me map[string]any
	status = doJSON(t, app, http.MethodGet, "/api/users/me?ticket="+ticket, "", nil, &me)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ticket_user", me["username"])

	// Redemption consumes it.
	status = doJSON(t, app, http.MethodGet, "/api/users/me?ticket="+ticket, "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestWSPathRejectsBadTicket(t *testing.T) {
	t.Parallel()
	_, app, _ := newTestServerRedis(t)

	status := doJSON(t, app, http.MethodGet, "/api/ws/?ticket=bogus", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestIssueWSTicketWithoutRedis(t *testing.T) {
	t.Parallel()
	s, app := newTestServer(t)
	user := createUser(t, s, "no_redis_user")
	token := authToken(t, s, user)

	status := doJSON(t, app, http.MethodPost, "/api/ws/ticket", token, nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}
