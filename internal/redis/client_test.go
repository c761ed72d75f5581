package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"cafeteria/internal/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ session.Store = (*Client)(nil)

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "cafeteria:session:abc", sessionKey("abc"))
}

func TestInitializeRejectsBadURL(t *testing.T) {
	_, err := Initialize(context.Background(), "not-a-redis-url")
	assert.Error(t, err)
}

// TestSessionRoundTrip needs a live server: REDIS_TEST_URL=redis://localhost:6379/15.
func TestSessionRoundTrip(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}

	ctx := context.Background()
	client, err := Initialize(ctx, url)
	require.NoError(t, err)
	defer client.Close()

	id := uuid.NewString()
	data := &session.Data{UserID: 42, Role: "admin", Flashes: []string{"hello"}}
	require.NoError(t, client.SetSession(ctx, id, data, time.Minute))

	got, err := client.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint(42), got.UserID)
	assert.Equal(t, []string{"hello"}, got.Flashes)

	require.NoError(t, client.DeleteSession(ctx, id))
	_, err = client.GetSession(ctx, id)
	assert.ErrorIs(t, err, session.ErrNotFound)
}
