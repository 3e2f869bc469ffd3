package grpc

import (
	"context"
	"net"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
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

func setupBenchmarkClient(b *testing.B) (*TwitterServiceClient, user.Usecase) {
	log := zap.NewNop()
	dir := b.TempDir()
	userRepo := jsonfile.NewUserRepo(dir, log)
	users := user.New(userRepo, security.NewPasswordHasher(bcrypt.MinCost), log)
	tweets := tweet.New(jsonfile.NewTweetRepo(dir, log), userRepo, log)

	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(logger.RequestIDInterceptor()))
	RegisterTwitterServiceServer(srv, NewTwitterService(users, tweets, log))
	go func() { _ = srv.Serve(lis) }()
	b.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		b.Fatalf("dial: %v", err)
	}
	b.Cleanup(func() { _ = conn.Close() })

	return NewTwitterServiceClient(conn), users
}

func benchmarkAuthor(b *testing.B, users user.Usecase) string {
	u, err := users.Signup(context.Background(), user.SignupRequest{
		Email: "bench@example.com", FirstName: "Bench", LastName: "Mark", Password: "benchmark-pass",
	})
	if err != nil {
		b.Fatalf("signup: %v", err)
	}
	return u.ID.String()
}

func BenchmarkGRPC_GetUser(b *testing.B) {
	client, users := setupBenchmarkClient(b)
	id := wrapperspb.String(benchmarkAuthor(b, users))
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(p *testing.PB) {
		for p.Next() {
			if _, err := client.GetUser(ctx, id); err != nil {
				b.Errorf("GetUser failed: %v", err)
			}
		}
	})
}

func BenchmarkGRPC_PostTweet(b *testing.B) {
	client, users := setupBenchmarkClient(b)
	body, err := structpb.NewStruct(map[string]any{"content": "benchmark tweet", "user_id": benchmarkAuthor(b, users)})
	if err != nil {
		b.Fatalf("build request: %v", err)
	}
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := client.PostTweet(ctx, body); err != nil {
			b.Fatalf("PostTweet failed: %v", err)
		}
	}
}

func BenchmarkGRPC_ListTweets(b *testing.B) {
	client, users := setupBenchmarkClient(b)
	body, err := structpb.NewStruct(map[string]any{"content": "seed", "user_id": benchmarkAuthor(b, users)})
	if err != nil {
		b.Fatalf("build request: %v", err)
	}
	ctx := context.Background()
	for i := 0; i < 100; i++ {
		if _, err := client.PostTweet(ctx, body); err != nil {
			b.Fatalf("seed tweet: %v", err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(p *testing.PB) {
		for p.Next() {
			if _, err := client.ListTweets(ctx, &emptypb.Empty{}); err != nil {
				b.Errorf("ListTweets failed: %v", err)
			}
		}
	})
}
