package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"twitter-api/internal/domain/tweet"
	"twitter-api/internal/domain/user"
	pkgerrors "twitter-api/pkg/errors"
)

func newUser(email string) *user.User {
	birth := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	return &user.User{
		ID:           uuid.New(),
		Email:        email,
		FirstName:    "Grace",
		LastName:     "Hopper",
		BirthDate:    &birth,
		PasswordHash: "$2a$04$hash",
	}
}

func TestUserRepo_ReadMissingFileIsEmpty(t *testing.T) {
	repo := NewUserRepo(t.TempDir(), zaptest.NewLogger(t))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserRepo_EmptyFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, UsersFile), []byte("  \n"), 0o644))

	users, err := NewUserRepo(dir, zaptest.NewLogger(t)).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserRepo_AppendAndReadBack(t *testing.T) {
	dir := t.TempDir()
	repo := NewUserRepo(dir, zaptest.NewLogger(t))
	ctx := context.Background()

	first := newUser("grace@example.com")
	second := newUser("alan@example.com")
	second.BirthDate = nil

	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, first.ID, users[0].ID)
	assert.Equal(t, "1990-05-17", users[0].BirthDate.Format(user.BirthDateLayout))
	assert.Equal(t, first.PasswordHash, users[0].PasswordHash)
	assert.Equal(t, second.ID, users[1].ID)
	assert.Nil(t, users[1].BirthDate)

	// The file is a plain JSON array with the public field names
	raw, err := os.ReadFile(filepath.Join(dir, UsersFile))
	require.NoError(t, err)
	var onDisk []map[string]any
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	require.Len(t, onDisk, 2)
	assert.Equal(t, first.ID.String(), onDisk[0]["user_id"])
	assert.Equal(t, "1990-05-17", onDisk[0]["birth_date"])
	assert.Nil(t, onDisk[1]["birth_date"])
	assert.Contains(t, onDisk[1], "birth_date")
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	repo := NewUserRepo(t.TempDir(), zaptest.NewLogger(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("grace@example.com")))

	err := repo.Create(ctx, newUser("GRACE@example.com"))
	var ae *pkgerrors.AlreadyExistsError
	require.ErrorAs(t, err, &ae)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepo_GetByIDAndEmail(t *testing.T) {
	repo := NewUserRepo(t.TempDir(), zaptest.NewLogger(t))
	ctx := context.Background()
	u := newUser("grace@example.com")
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.True(t, pkgerrors.IsNotFound(err))

	got, err = repo.GetByEmail(ctx, "Grace@Example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	got, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepo_UpdateAndDelete(t *testing.T) {
	repo := NewUserRepo(t.TempDir(), zaptest.NewLogger(t))
	ctx := context.Background()
	u := newUser("grace@example.com")
	other := newUser("alan@example.com")
	require.NoError(t, repo.Create(ctx, u))
	require.NoError(t, repo.Create(ctx, other))

	u.FirstName = "Amazing Grace"
	require.NoError(t, repo.Update(ctx, u))
	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Amazing Grace", got.FirstName)

	u.Email = "alan@example.com"
	var ae *pkgerrors.AlreadyExistsError
	require.ErrorAs(t, repo.Update(ctx, u), &ae)

	assert.True(t, pkgerrors.IsNotFound(repo.Update(ctx, newUser("ghost@example.com"))))

	require.NoError(t, repo.Delete(ctx, u.ID))
	assert.True(t, pkgerrors.IsNotFound(repo.Delete(ctx, u.ID)))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, other.ID, users[0].ID)
}

func TestUserRepo_MalformedFileIsNotOverwritten(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, UsersFile)
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"`), 0o644))
	repo := NewUserRepo(dir, zaptest.NewLogger(t))
	ctx := context.Background()

	_, err := repo.List(ctx)
	assert.ErrorIs(t, err, ErrMalformed)

	err = repo.Create(ctx, newUser("grace@example.com"))
	assert.ErrorIs(t, err, ErrMalformed)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"not": "an array"`, string(raw))
}

func TestUserRepo_ConcurrentAppendsKeepEveryRecord(t *testing.T) {
	repo := NewUserRepo(t.TempDir(), zaptest.NewLogger(t))
	ctx := context.Background()

	const writers = 25
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- repo.Create(ctx, newUser(fmt.Sprintf("user%d@example.com", i)))
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, writers)
}

func TestUserRepo_CanceledContext(t *testing.T) {
	repo := NewUserRepo(t.TempDir(), zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.Create(ctx, newUser("grace@example.com")), context.Canceled)
}

func TestTweetRepo_Lifecycle(t *testing.T) {
	dir := t.TempDir()
	repo := NewTweetRepo(dir, zaptest.NewLogger(t))
	ctx := context.Background()

	author := newUser("grace@example.com")
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	tw := &tweet.Tweet{
		ID:        uuid.New(),
		Content:   "It's easier to ask forgiveness than it is to get permission.",
		CreatedAt: created,
		By:        tweet.AuthorFrom(author),
	}

	require.NoError(t, repo.Create(ctx, tw))

	tweets, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tweets, 1)
	assert.Equal(t, tw.Content, tweets[0].Content)
	assert.True(t, tweets[0].CreatedAt.Equal(created))
	assert.Nil(t, tweets[0].UpdatedAt)
	assert.Equal(t, author.ID, tweets[0].By.ID)
	assert.Equal(t, "1990-05-17", tweets[0].By.BirthDate.Format(user.BirthDateLayout))

	raw, err := os.ReadFile(filepath.Join(dir, TweetsFile))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")

	updated := created.Add(time.Hour)
	tw.Content = "edited"
	tw.UpdatedAt = &updated
	require.NoError(t, repo.Update(ctx, tw))

	got, err := repo.GetByID(ctx, tw.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)
	require.NotNil(t, got.UpdatedAt)
	assert.True(t, got.UpdatedAt.Equal(updated))

	require.NoError(t, repo.Delete(ctx, tw.ID))
	_, err = repo.GetByID(ctx, tw.ID)
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.True(t, pkgerrors.IsNotFound(repo.Update(ctx, tw)))
}
