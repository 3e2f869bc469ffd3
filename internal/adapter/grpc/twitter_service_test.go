package grpc

import (
	"context"
	"net"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"twitter-api/internal/adapter/db/jsonfile"
	"twitter-api/internal/usecase/tweet"
	"twitter-api/internal/usecase/user"
	"twitter-api/pkg/logger"
	"twitter-api/pkg/security"
)

type testEnv struct {
	client *TwitterServiceClient
	users  user.Usecase
}

func setup(t *testing.T) *testEnv {
	log := zaptest.NewLogger(t)
	dir := t.TempDir()
	userRepo := jsonfile.NewUserRepo(dir, log)
	users := user.New(userRepo, security.NewPasswordHasher(bcrypt.MinCost), log)
	tweets := tweet.New(jsonfile.NewTweetRepo(dir, log), userRepo, log)

	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(logger.RequestIDInterceptor()))
	RegisterTwitterServiceServer(srv, NewTwitterService(users, tweets, log))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &testEnv{client: NewTwitterServiceClient(conn), users: users}
}

func (e *testEnv) signup(t *testing.T, email string) *user.User {
	u, err := e.users.Signup(context.Background(), user.SignupRequest{
		Email:     email,
		FirstName: "Ada",
		LastName:  "Lovelace",
		BirthDate: "1815-12-10",
		Password:  "analytical engine",
	})
	require.NoError(t, err)
	return u
}

func TestTwitterService_Users(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	empty, err := env.client.ListUsers(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Empty(t, empty.GetValues())

	u := env.signup(t, "ada@example.com")

	list, err := env.client.ListUsers(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	require.Len(t, list.GetValues(), 1)
	assert.Equal(t, u.ID.String(), list.GetValues()[0].GetStructValue().GetFields()["user_id"].GetStringValue())

	got, err := env.client.GetUser(ctx, wrapperspb.String(u.ID.String()))
	require.NoError(t, err)
	fields := got.GetFields()
	assert.Equal(t, "ada@example.com", fields["email"].GetStringValue())
	assert.Equal(t, "1815-12-10", fields["birth_date"].GetStringValue())
	assert.NotContains(t, fields, "password")
}

func TestTwitterService_GetUserErrors(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	_, err := env.client.GetUser(ctx, wrapperspb.String("not-a-uuid"))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = env.client.GetUser(ctx, wrapperspb.String(uuid.NewString()))
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestTwitterService_Tweets(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	u := env.signup(t, "ada@example.com")

	body, err := structpb.NewStruct(map[string]any{"content": "The engine weaves algebraic patterns", "user_id": u.ID.String()})
	require.NoError(t, err)

	posted, err := env.client.PostTweet(ctx, body)
	require.NoError(t, err)
	tweetID := posted.GetFields()["tweet_id"].GetStringValue()
	require.NotEmpty(t, tweetID)
	_, isNull := posted.GetFields()["updated_at"].GetKind().(*structpb.Value_NullValue)
	assert.True(t, isNull)
	assert.Equal(t, u.ID.String(), posted.GetFields()["by"].GetStructValue().GetFields()["user_id"].GetStringValue())

	got, err := env.client.GetTweet(ctx, wrapperspb.String(tweetID))
	require.NoError(t, err)
	assert.Equal(t, "The engine weaves algebraic patterns", got.GetFields()["content"].GetStringValue())

	list, err := env.client.ListTweets(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Len(t, list.GetValues(), 1)

	_, err = env.client.GetTweet(ctx, wrapperspb.String(uuid.NewString()))
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestTwitterService_PostTweetErrors(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	u := env.signup(t, "ada@example.com")

	tests := []struct {
		name string
		body map[string]any
		code codes.Code
	}{
		{"empty content", map[string]any{"content": "", "user_id": u.ID.String()}, codes.InvalidArgument},
		{"missing author", map[string]any{"content": "hi"}, codes.InvalidArgument},
		{"malformed author", map[string]any{"content": "hi", "user_id": "ada"}, codes.InvalidArgument},
		{"unknown author", map[string]any{"content": "hi", "user_id": uuid.NewString()}, codes.NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := structpb.NewStruct(tt.body)
			require.NoError(t, err)

			_, err = env.client.PostTweet(ctx, body)
			assert.Equal(t, tt.code, status.Code(err))
		})
	}
}
