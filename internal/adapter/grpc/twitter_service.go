package grpc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	userdomain "twitter-api/internal/domain/user"
	"twitter-api/internal/usecase/tweet"
	"twitter-api/internal/usecase/user"
	pkgerrors "twitter-api/pkg/errors"
	"twitter-api/pkg/logger"
)

// TwitterService implements the gRPC read API and tweet posting.
type TwitterService struct {
	users  user.Usecase
	tweets tweet.Usecase
	log    *zap.Logger
}

// NewTwitterService creates a new gRPC twitter service.
func NewTwitterService(users user.Usecase, tweets tweet.Usecase, log *zap.Logger) *TwitterService {
	return &TwitterService{users: users, tweets: tweets, log: log}
}

var _ TwitterServiceServer = (*TwitterService)(nil)

// ListUsers handles gRPC ListUsers request
func (s *TwitterService) ListUsers(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, s.fail(ctx, "ListUsers", err)
	}

	items := make([]any, len(users))
	for i := range users {
		items[i] = userFields(&users[i])
	}
	return s.list(ctx, "ListUsers", items)
}

// GetUser handles gRPC GetUser request
func (s *TwitterService) GetUser(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	id, err := parseID(in.GetValue())
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetUser(ctx, user.GetUserRequest{ID: id})
	if err != nil {
		return nil, s.fail(ctx, "GetUser", err)
	}
	return s.object(ctx, "GetUser", userFields(u))
}

// ListTweets handles gRPC ListTweets request
func (s *TwitterService) ListTweets(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	tweets, err := s.tweets.ListTweets(ctx)
	if err != nil {
		return nil, s.fail(ctx, "ListTweets", err)
	}

	items := make([]any, len(tweets))
	for i := range tweets {
		items[i] = tweetFields(&tweets[i])
	}
	return s.list(ctx, "ListTweets", items)
}

// GetTweet handles gRPC GetTweet request
func (s *TwitterService) GetTweet(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	id, err := parseID(in.GetValue())
	if err != nil {
		return nil, err
	}

	t, err := s.tweets.GetTweet(ctx, tweet.GetTweetRequest{ID: id})
	if err != nil {
		return nil, s.fail(ctx, "GetTweet", err)
	}
	return s.object(ctx, "GetTweet", tweetFields(t))
}

// PostTweet handles gRPC PostTweet request. The body carries "content" and "user_id".
func (s *TwitterService) PostTweet(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	fields := in.GetFields()

	var userID uuid.UUID
	if raw := fields["user_id"].GetStringValue(); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			return nil, err
		}
		userID = id
	}

	t, err := s.tweets.PostTweet(ctx, tweet.PostTweetRequest{
		Content: fields["content"].GetStringValue(),
		UserID:  userID,
	})
	if err != nil {
		return nil, s.fail(ctx, "PostTweet", err)
	}
	return s.object(ctx, "PostTweet", tweetFields(t))
}

func (s *TwitterService) fail(ctx context.Context, method string, err error) error {
	logger.WithContext(ctx, s.log).Warn("gRPC request failed", zap.String("method", method), zap.Error(err))
	return pkgerrors.ToGRPC(err)
}

func (s *TwitterService) object(ctx context.Context, method string, fields map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, s.fail(ctx, method, pkgerrors.NewInternalError("failed to encode response", err))
	}
	return out, nil
}

func (s *TwitterService) list(ctx context.Context, method string, items []any) (*structpb.ListValue, error) {
	out, err := structpb.NewList(items)
	if err != nil {
		return nil, s.fail(ctx, method, pkgerrors.NewInternalError("failed to encode response", err))
	}
	return out, nil
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.ToGRPC(pkgerrors.NewValidationError("id", "must be a valid UUID"))
	}
	return id, nil
}

func dateOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(userdomain.BirthDateLayout)
}

func timestampOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func userFields(u *user.User) map[string]any {
	return map[string]any{
		"user_id":    u.ID.String(),
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"birth_date": dateOrNil(u.BirthDate),
	}
}

func tweetFields(t *tweet.Tweet) map[string]any {
	return map[string]any{
		"tweet_id":   t.ID.String(),
		"content":    t.Content,
		"created_at": t.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at": timestampOrNil(t.UpdatedAt),
		"by": map[string]any{
			"user_id":    t.By.ID.String(),
			"email":      t.By.Email,
			"first_name": t.By.FirstName,
			"last_name":  t.By.LastName,
			"birth_date": dateOrNil(t.By.BirthDate),
		},
	}
}
