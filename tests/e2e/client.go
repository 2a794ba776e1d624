package e2e

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Send json request with optional bearer token, return status code and raw body
func Do(t *testing.T, method string, url string, body string, token string) (int, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode, string(raw)
}

// Register user via API and return bearer token from login response
func SignUp(t *testing.T, srvURL string, username string, password string) string {
	t.Helper()

	status, body := Do(t, http.MethodPost, srvURL+"/users",
		`{"username": "`+username+`", "password": "`+password+`"}`, "")
	require.Equalf(t, http.StatusCreated, status, "user should be created. Body: %s", body)

	return Login(t, srvURL, username, password)
}

// Login via API and return issued bearer token
func Login(t *testing.T, srvURL string, username string, password string) string {
	t.Helper()

	status, body := Do(t, http.MethodPost, srvURL+"/users/login",
		`{"username": "`+username+`", "password": "`+password+`"}`, "")
	require.Equalf(t, http.StatusOK, status, "login should succeed. Body: %s", body)

	var parsed struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &parsed))
	require.NotEmpty(t, parsed.Data.Token, "login response should carry a token")
	return parsed.Data.Token
}
