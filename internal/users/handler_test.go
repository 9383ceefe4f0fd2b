package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bussp-service/pkg/jwt"
)

func newTestServer(t *testing.T) (*httptest.Server, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	// OptionalAuth sits on the top-level router in production; replicate that
	// here so RequireAuth sees the parsed claims.
	srv := httptest.NewServer(jwt.OptionalAuth(NewHandler(NewService(repo, nil)).Routes()))
	t.Cleanup(srv.Close)
	return srv, repo
}

func TestRegisterEndpoint(t *testing.T) {
	srv, repo := newTestServer(t)

	body := `{"name":"Ana Souza","email":"ana@example.com","password":"segredo1"}`
	resp, err := http.Post(srv.URL+"/register", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotNil(t, repo.byEmail["ana@example.com"])
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"name":"Ana Souza","email":"ana@example.com","password":"segredo1"}`
	resp, err := http.Post(srv.URL+"/register", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/register", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRegisterEndpointValidation(t *testing.T) {
	srv, repo := newTestServer(t)

	cases := []string{
		`{"name":"A","email":"ana@example.com","password":"segredo1"}`, // name too short
		`{"name":"Ana Souza","email":"not-an-email","password":"segredo1"}`,
		`{"name":"Ana Souza","email":"ana@example.com","password":"123"}`, // password too short
		`{not json`,
	}
	for _, body := range cases {
		resp, err := http.Post(srv.URL+"/register", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body: %s", body)
	}
	assert.Empty(t, repo.byEmail)
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"email":"ghost@example.com","password":"whatever"}`
	resp, err := http.Post(srv.URL+"/login", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/me")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMeReturnsAuthenticatedUser(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"name":"Ana Souza","email":"ana@example.com","password":"segredo1"}`
	resp, err := http.Post(srv.URL+"/register", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var auth AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&auth))
	require.NotEmpty(t, auth.Token)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+auth.Token)

	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	var u User
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&u))
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, "Ana Souza", u.Name)
}
