package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	tweetdomain "twitter-api/internal/domain/tweet"
	domain "twitter-api/internal/domain/user"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client, mr
}

func sampleUser() *domain.User {
	birth := time.Date(1912, 6, 23, 0, 0, 0, 0, time.UTC)
	return &domain.User{
		ID:           uuid.New(),
		Email:        "alan@example.com",
		FirstName:    "Alan",
		LastName:     "Turing",
		BirthDate:    &birth,
		PasswordHash: "$2a$04$hash",
	}
}

func TestRedisUserCache_Set_Success(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))
	user := sampleUser()

	err := cache.Set(context.Background(), user)
	require.NoError(t, err)

	// Verify data is in Redis under the user key
	data, err := client.Get(context.Background(), "user:"+user.ID.String()).Bytes()
	require.NoError(t, err)

	var cached domain.User
	require.NoError(t, json.Unmarshal(data, &cached))
	assert.Equal(t, user.ID, cached.ID)
	assert.Equal(t, user.Email, cached.Email)
}

func TestRedisUserCache_Set_NilUser(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	err := cache.Set(context.Background(), nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot cache nil user")
}

func TestRedisUserCache_Get_Success(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))
	user := sampleUser()
	require.NoError(t, cache.Set(context.Background(), user))

	cached, err := cache.Get(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, cached)

	assert.Equal(t, user.ID, cached.ID)
	assert.Equal(t, user.FirstName, cached.FirstName)
	assert.Equal(t, user.PasswordHash, cached.PasswordHash)
	require.NotNil(t, cached.BirthDate)
	assert.True(t, user.BirthDate.Equal(*cached.BirthDate))
}

func TestRedisUserCache_Get_CacheMiss(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	cached, err := cache.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestRedisUserCache_Get_CorruptEntry(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))
	id := uuid.New()
	require.NoError(t, mr.Set("user:"+id.String(), "{broken"))

	_, err := cache.Get(context.Background(), id)
	assert.Error(t, err)
}

func TestRedisUserCache_Delete_Success(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))
	user := sampleUser()
	require.NoError(t, cache.Set(context.Background(), user))

	require.NoError(t, cache.Delete(context.Background(), user.ID))

	cached, err := cache.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestRedisUserCache_TTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisUserCache(client, 2*time.Second, zaptest.NewLogger(t))
	user := sampleUser()
	require.NoError(t, cache.Set(context.Background(), user))

	// Fast forward time in miniredis
	mr.FastForward(3 * time.Second)

	cached, err := cache.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestRedisUserCache_ConnectionError(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))
	mr.Close()

	_, err := cache.Get(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestRedisTweetCache_RoundTrip(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisTweetCache(client, time.Minute, zaptest.NewLogger(t))
	created := time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC)
	tw := &tweetdomain.Tweet{
		ID:        uuid.New(),
		Content:   "Machines take me by surprise with great frequency.",
		CreatedAt: created,
		By:        tweetdomain.AuthorFrom(sampleUser()),
	}

	require.NoError(t, cache.Set(context.Background(), tw))
	assert.True(t, mr.Exists("tweet:"+tw.ID.String()))

	cached, err := cache.Get(context.Background(), tw.ID)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, tw.Content, cached.Content)
	assert.True(t, cached.CreatedAt.Equal(created))
	assert.Nil(t, cached.UpdatedAt)
	assert.Equal(t, tw.By.ID, cached.By.ID)

	require.NoError(t, cache.Delete(context.Background(), tw.ID))
	cached, err = cache.Get(context.Background(), tw.ID)
	require.NoError(t, err)
	assert.Nil(t, cached)

	assert.Error(t, cache.Set(context.Background(), nil))
}
