package auth

import (
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/dkotelnikov/contacts/internal/testutil"
	"github.com/dkotelnikov/contacts/tests/e2e"
)

const (
	UsersURL    = "/users"
	LoginURL    = "/users/login"
	LogoutURL   = "/users/logout"
	ContactsURL = "/contacts"
)

func Test_SessionLifecycle(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	rc := testutil.StartRedisContainer(t)
	t.Cleanup(rc.Terminate)

	e2e.ServeWithTx(pg.Pool, rc.Client, t, func(tx pgx.Tx, srvURL string, s e2e.Services) {
		t.Run("register login use logout", func(t *testing.T) {
			testutil.WithTx(tx, t, func(_ pgx.Tx) {
				token := e2e.SignUp(t, srvURL, "lifecycle", "password123")

				// Token opens protected routes
				status, body := e2e.Do(t, http.MethodGet, srvURL+ContactsURL, "", token)
				require.Equalf(t, http.StatusOK, status, "fresh token should open contacts. Body: %s", body)

				// Logout
				status, body = e2e.Do(t, http.MethodPost, srvURL+LogoutURL, "", token)
				require.Equal(t, http.StatusOK, status)
				require.JSONEq(t, `
					{
						"success": true,
						"data": {"message": "User logged out successfully"}
					}`, body)

				// Same token no longer usable
				status, _ = e2e.Do(t, http.MethodGet, srvURL+ContactsURL, "", token)
				require.Equal(t, http.StatusUnauthorized, status, "revoked token should be rejected")

				// But a new login works and issues a usable token
				fresh := e2e.Login(t, srvURL, "lifecycle", "password123")
				require.NotEqual(t, token, fresh)

				status, _ = e2e.Do(t, http.MethodGet, srvURL+ContactsURL, "", fresh)
				require.Equal(t, http.StatusOK, status, "token issued after logout should work")
			})
		})

		t.Run("logout ends only its own session", func(t *testing.T) {
			testutil.WithTx(tx, t, func(_ pgx.Tx) {
				first := e2e.SignUp(t, srvURL, "twotabs", "password123")
				second := e2e.Login(t, srvURL, "twotabs", "password123")

				status, _ := e2e.Do(t, http.MethodPost, srvURL+LogoutURL, "", first)
				require.Equal(t, http.StatusOK, status)

				status, _ = e2e.Do(t, http.MethodGet, srvURL+ContactsURL, "", first)
				require.Equal(t, http.StatusUnauthorized, status, "logged out session should be closed")

				status, _ = e2e.Do(t, http.MethodGet, srvURL+ContactsURL, "", second)
				require.Equal(t, http.StatusOK, status, "other session should stay alive")
			})
		})

		t.Run("new login keeps older tokens valid", func(t *testing.T) {
			testutil.WithTx(tx, t, func(_ pgx.Tx) {
				older := e2e.SignUp(t, srvURL, "keptalive", "password123")
				_ = e2e.Login(t, srvURL, "keptalive", "password123")

				status, _ := e2e.Do(t, http.MethodGet, srvURL+ContactsURL, "", older)
				require.Equal(t, http.StatusOK, status, "login must not invalidate earlier tokens")
			})
		})

		t.Run("revoked token rejected on logout route too", func(t *testing.T) {
			testutil.WithTx(tx, t, func(_ pgx.Tx) {
				token := e2e.SignUp(t, srvURL, "repeater", "password123")

				status, _ := e2e.Do(t, http.MethodPost, srvURL+LogoutURL, "", token)
				require.Equal(t, http.StatusOK, status)

				// Repeated logout with the same token stays successful
				status, _ = e2e.Do(t, http.MethodPost, srvURL+LogoutURL, "", token)
				require.Equal(t, http.StatusOK, status, "logout should be repeatable")
			})
		})
	})
}
