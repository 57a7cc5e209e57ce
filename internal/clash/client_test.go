package clash

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"warboard/internal/models"
	"warboard/internal/structures"
	"warboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	conf := &structures.Config{
		Clash: structures.ClashConfig{
			BaseUrl: srv.URL + "/v1/",
			Token:   "token-123",
			Timeout: 2 * time.Second,
		},
	}
	return NewClient(conf, &testutil.MockLogger{})
}

func TestGetWar_Found(t *testing.T) {
	var gotPath, gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"state":"inWar","attacksPerMember":2,"clan":{"name":"Alpha","members":[]},"opponent":{"name":"Beta"}}`))
	})

	res := client.GetWar(context.Background(), "#2PP")
	require.Equal(t, models.FetchFound, res.Status)
	assert.Equal(t, "/v1/clans/%232PP/currentwar", gotPath)
	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.Equal(t, models.StateInWar, res.Snapshot.State)
	assert.Equal(t, "Beta", res.Snapshot.Opponent.Name)
}

func TestGetWar_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"reason":"notFound"}`, http.StatusNotFound)
	})

	res := client.GetWar(context.Background(), "#2PP")
	assert.Equal(t, models.FetchNotFound, res.Status)
	assert.Nil(t, res.Snapshot)
}

func TestGetWar_MappedFailures(t *testing.T) {
	tests := []struct {
		status int
		reason string
	}{
		{http.StatusBadRequest, "Bad parameters."},
		{http.StatusForbidden, "Access denied."},
		{http.StatusTooManyRequests, "Request throttled."},
		{http.StatusInternalServerError, "Unknown error."},
		{http.StatusServiceUnavailable, "In maintenance."},
		{http.StatusTeapot, "Unexpected status 418."},
	}
	for _, tt := range tests {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		})
		res := client.GetWar(context.Background(), "#2PP")
		assert.Equal(t, models.FetchFailed, res.Status)
		assert.Equal(t, tt.status, res.Code)
		assert.Equal(t, tt.reason, res.Reason)
	}
}

func TestGetWar_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	})

	res := client.GetWar(context.Background(), "#2PP")
	assert.Equal(t, models.FetchFailed, res.Status)
	assert.Contains(t, res.Reason, "decode war response")
}

func TestGetWar_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	conf := &structures.Config{
		Clash: structures.ClashConfig{BaseUrl: srv.URL, Token: "t", Timeout: time.Second},
	}
	client := NewClient(conf, &testutil.MockLogger{})

	res := client.GetWar(context.Background(), "#2PP")
	assert.Equal(t, models.FetchFailed, res.Status)
	assert.Equal(t, 0, res.Code)
}

func TestGetWar_CancelledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"state":"notInWar"}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := client.GetWar(ctx, "#2PP")
	assert.Equal(t, models.FetchFailed, res.Status)
}

func TestSearchClans_Found(t *testing.T) {
	var gotPath, gotName, gotLimit, gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotName = r.URL.Query().Get("name")
		gotLimit = r.URL.Query().Get("limit")
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"items":[{"tag":"#2PP","name":"Alpha & Co","clanLevel":12,"members":48,"badgeUrls":{"large":"https://img/l.png"}}],"paging":{"cursors":{}}}`))
	})

	clans, err := client.SearchClans(context.Background(), "Alpha & Co")
	require.NoError(t, err)
	assert.Equal(t, "/v1/clans", gotPath)
	assert.Equal(t, "Alpha & Co", gotName)
	assert.Equal(t, "20", gotLimit)
	assert.Equal(t, "Bearer token-123", gotAuth)
	require.Len(t, clans, 1)
	assert.Equal(t, models.ClanSummary{
		Tag:       "#2PP",
		Name:      "Alpha & Co",
		ClanLevel: 12,
		Members:   48,
		BadgeUrls: models.BadgeUrls{Large: "https://img/l.png"},
	}, clans[0])
}

func TestSearchClans_StatusIsAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"reason":"badRequest"}`))
	})

	_, err := client.SearchClans(context.Background(), "ab")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Code)
	assert.Equal(t, "Bad parameters.", apiErr.Reason)
}

func TestSearchClans_BadBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":`))
	})

	_, err := client.SearchClans(context.Background(), "Alpha")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode search response")
}
