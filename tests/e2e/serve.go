package e2e

import (
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dkotelnikov/contacts/internal/handlers"
	"github.com/dkotelnikov/contacts/internal/handlers/middleware"
	"github.com/dkotelnikov/contacts/internal/repository/postgres"
	redisrepo "github.com/dkotelnikov/contacts/internal/repository/redis"
	"github.com/dkotelnikov/contacts/internal/service/auth"
	"github.com/dkotelnikov/contacts/internal/service/auth/tokenmanager"
	"github.com/dkotelnikov/contacts/internal/service/contact"
	"github.com/dkotelnikov/contacts/internal/service/user"
	"github.com/dkotelnikov/contacts/internal/testutil"
)

type Services struct {
	AuthService    *auth.AuthService
	UserService    *user.UserService
	ContactService *contact.ContactService
}

// Create db transaction and run server with that connection (one connection cause one transaction)
// The created transaction passed to inner function: so, you can safely use testutil.WithTx with it
// Revoked token records live in redis and are NOT rolled back, use distinct users per subtest
func ServeWithTx(dbpool *pgxpool.Pool, redisClient *goredis.Client, t *testing.T, fn func(tx pgx.Tx, srvURL string, services Services)) {
	testutil.WithTx(dbpool, t, func(tx pgx.Tx) {
		// Initialize repositories
		userRepo := &postgres.UserRepo{DB: tx}
		contactRepo := &postgres.ContactRepo{DB: tx}
		ledger := redisrepo.NewRevocationLedger(redisClient, "e2e")

		// Initialize services
		tokenManager, err := tokenmanager.New(tokenmanager.Config{SecretKey: "test-secret"})
		require.NoError(t, err, "token manager should be created without errors")

		as, err := auth.NewService(auth.Config{}, tokenManager, userRepo, ledger)
		require.NoError(t, err, "auth service starting error")

		us := user.NewService(auth.DefaultHasher, userRepo)
		cs := contact.NewService(contactRepo)

		// Initialize handlers
		userHandler := handlers.NewUser(us)
		authHandler := handlers.NewAuth(as)
		contactHandler := handlers.NewContact(cs)
		authMiddleware := middleware.AuthMiddleware(as)

		// Complete all together as router
		router := handlers.NewRouter(
			userHandler,
			authHandler,
			contactHandler,
			authMiddleware,
		)

		// Run http server with the router in transaction
		srv := httptest.NewServer(router)
		defer srv.Close()

		fn(tx, srv.URL, Services{
			AuthService:    as,
			UserService:    us,
			ContactService: cs,
		})
	})
}
