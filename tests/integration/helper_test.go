package integration

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/rs/zerolog"

	adaptershttp "github.com/arfin-foysal/crypto-sub001/internal/adapter/http"
	"github.com/arfin-foysal/crypto-sub001/internal/adapter/http/handler"
	postgresrepo "github.com/arfin-foysal/crypto-sub001/internal/adapter/repository/postgres"
	redisrepo "github.com/arfin-foysal/crypto-sub001/internal/adapter/repository/redis"
	infraredis "github.com/arfin-foysal/crypto-sub001/internal/infrastructure/redis"
	"github.com/arfin-foysal/crypto-sub001/internal/usecase"
	"github.com/arfin-foysal/crypto-sub001/tests/testutil"
)

// newTestRouter wires the full HTTP stack against the test database with
// authentication disabled.
func newTestRouter(t *testing.T, testDB *testutil.TestDB) http.Handler {
	t.Helper()

	ctx := context.Background()
	pool := testDB.Pool

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	log := zerolog.Nop()

	txManager := postgresrepo.NewTxManager(pool)
	retrier := postgresrepo.NewRetrier(log)
	userRepo := postgresrepo.NewUserRepository(pool)
	txnRepo := postgresrepo.NewTransactionRepository(pool)
	referenceRepo := postgresrepo.NewReferenceRepository(pool)
	idGen := postgresrepo.NewULIDGenerator()
	refGen := postgresrepo.NewTransactionReferenceGenerator()

	refs := usecase.NewCachedReferenceStore(referenceRepo, redisrepo.NewCache(redisClient), log, nil)
	userUC := usecase.NewUserUseCase(userRepo, idGen, nil)
	txnUC := usecase.NewTransactionUseCase(
		txManager, retrier, userRepo, txnRepo, refs, idGen, refGen,
		log, nil, "", "",
	)

	return adaptershttp.NewRouter(adaptershttp.RouterConfig{
		TransactionHandler: handler.NewTransactionHandler(txnUC),
		UserHandler:        handler.NewUserHandler(userUC),
		AuthHandler:        handler.NewAuthHandler(userUC, nil),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:   redisrepo.NewIdempotencyStore(redisClient),
	})
}
