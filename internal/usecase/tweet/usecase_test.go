package tweet

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "twitter-api/internal/domain/tweet"
	userdomain "twitter-api/internal/domain/user"
	pkgerrors "twitter-api/pkg/errors"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, t *domain.Tweet) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tweet), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, t *domain.Tweet) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) List(ctx context.Context) ([]domain.Tweet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tweet), args.Error(1)
}

type MockAuthors struct {
	mock.Mock
}

func (m *MockAuthors) GetByID(ctx context.Context, id uuid.UUID) (*userdomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userdomain.User), args.Error(1)
}

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func setupTestUsecase(t *testing.T) (*usecase, *MockRepository, *MockAuthors) {
	repo := new(MockRepository)
	authors := new(MockAuthors)
	uc := New(repo, authors, zaptest.NewLogger(t)).(*usecase)
	uc.now = func() time.Time { return fixedNow }
	return uc, repo, authors
}

func TestPostTweet_Success(t *testing.T) {
	uc, repo, authors := setupTestUsecase(t)
	ctx := context.Background()
	authorID := uuid.New()

	authors.On("GetByID", ctx, authorID).Return(&userdomain.User{
		ID: authorID, Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace", PasswordHash: "secret",
	}, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(tw *domain.Tweet) bool {
		return tw.ID != uuid.Nil && tw.Content == "hello world" && tw.By.ID == authorID &&
			tw.CreatedAt.Equal(fixedNow) && tw.UpdatedAt == nil
	})).Return(nil)

	resp, err := uc.PostTweet(ctx, PostTweetRequest{Content: "hello world", UserID: authorID})

	require.NoError(t, err)
	assert.Equal(t, "hello world", resp.Content)
	assert.Equal(t, "Ada", resp.By.FirstName)
	assert.Equal(t, fixedNow, resp.CreatedAt)
	assert.Nil(t, resp.UpdatedAt)
	repo.AssertExpectations(t)
}

func TestPostTweet_ContentBounds(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"single char", "a", false},
		{"exactly 256", strings.Repeat("x", 256), false},
		{"256 multibyte runes", strings.Repeat("é", 256), false},
		{"empty", "", true},
		{"257 chars", strings.Repeat("x", 257), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo, authors := setupTestUsecase(t)
			authorID := uuid.New()
			authors.On("GetByID", mock.Anything, authorID).Return(&userdomain.User{ID: authorID}, nil)
			repo.On("Create", mock.Anything, mock.Anything).Return(nil)

			_, err := uc.PostTweet(context.Background(), PostTweetRequest{Content: tt.content, UserID: authorID})
			if tt.wantErr {
				var ve *pkgerrors.ValidationError
				require.ErrorAs(t, err, &ve)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPostTweet_UnknownAuthor(t *testing.T) {
	uc, repo, authors := setupTestUsecase(t)
	ctx := context.Background()
	authorID := uuid.New()

	authors.On("GetByID", ctx, authorID).Return(nil, pkgerrors.NewNotFoundError("user", ""))

	_, err := uc.PostTweet(ctx, PostTweetRequest{Content: "hi", UserID: authorID})

	require.True(t, pkgerrors.IsNotFound(err))
	assert.Equal(t, "author not found", err.Error())
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPostTweet_MissingAuthorID(t *testing.T) {
	uc, _, authors := setupTestUsecase(t)

	_, err := uc.PostTweet(context.Background(), PostTweetRequest{Content: "hi"})

	var ve *pkgerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	authors.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestListTweets(t *testing.T) {
	uc, repo, _ := setupTestUsecase(t)
	ctx := context.Background()

	repo.On("List", ctx).Return([]domain.Tweet{
		{ID: uuid.New(), Content: "first"},
		{ID: uuid.New(), Content: "second"},
	}, nil)

	tweets, err := uc.ListTweets(ctx)
	require.NoError(t, err)
	require.Len(t, tweets, 2)
	assert.Equal(t, "first", tweets[0].Content)
}

func TestListTweets_Error(t *testing.T) {
	uc, repo, _ := setupTestUsecase(t)
	ctx := context.Background()

	repo.On("List", ctx).Return(nil, errors.New("malformed file"))

	_, err := uc.ListTweets(ctx)
	assert.EqualError(t, err, "malformed file")
}

func TestGetTweet(t *testing.T) {
	uc, repo, _ := setupTestUsecase(t)
	ctx := context.Background()
	id := uuid.New()

	repo.On("GetByID", ctx, id).Return(&domain.Tweet{ID: id, Content: "hi"}, nil)

	resp, err := uc.GetTweet(ctx, GetTweetRequest{ID: id})
	require.NoError(t, err)
	assert.Equal(t, "hi", resp.Content)

	_, err = uc.GetTweet(ctx, GetTweetRequest{})
	var ve *pkgerrors.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestUpdateTweet(t *testing.T) {
	uc, repo, _ := setupTestUsecase(t)
	ctx := context.Background()
	id := uuid.New()
	created := fixedNow.Add(-time.Hour)

	repo.On("GetByID", ctx, id).Return(&domain.Tweet{ID: id, Content: "old", CreatedAt: created}, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(tw *domain.Tweet) bool {
		return tw.Content == "new" && tw.UpdatedAt != nil && tw.UpdatedAt.Equal(fixedNow) && tw.CreatedAt.Equal(created)
	})).Return(nil)

	resp, err := uc.UpdateTweet(ctx, UpdateTweetRequest{ID: id, Content: "new"})

	require.NoError(t, err)
	assert.Equal(t, "new", resp.Content)
	require.NotNil(t, resp.UpdatedAt)
	assert.Equal(t, fixedNow, *resp.UpdatedAt)
	repo.AssertExpectations(t)
}

func TestUpdateTweet_NotFound(t *testing.T) {
	uc, repo, _ := setupTestUsecase(t)
	ctx := context.Background()
	id := uuid.New()

	repo.On("GetByID", ctx, id).Return(nil, pkgerrors.NewNotFoundError("tweet", ""))

	_, err := uc.UpdateTweet(ctx, UpdateTweetRequest{ID: id, Content: "new"})
	assert.True(t, pkgerrors.IsNotFound(err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteTweet(t *testing.T) {
	uc, repo, _ := setupTestUsecase(t)
	ctx := context.Background()
	id := uuid.New()

	repo.On("GetByID", ctx, id).Return(&domain.Tweet{ID: id, Content: "bye"}, nil)
	repo.On("Delete", ctx, id).Return(nil)

	resp, err := uc.DeleteTweet(ctx, DeleteTweetRequest{ID: id})
	require.NoError(t, err)
	assert.Equal(t, "bye", resp.Content)
	repo.AssertExpectations(t)
}
