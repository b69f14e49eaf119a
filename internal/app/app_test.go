package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/RealMosam/SEMS/internal/config"
	"github.com/RealMosam/SEMS/internal/infrastructure/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(role Role) config.Config {
	cfg := config.Default(string(role), "0")
	cfg.JWT.Secret = strings.Repeat("s", config.MinSecretLength)
	cfg.ShutdownTimeout = 2 * time.Second
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newApp(t *testing.T, role Role) *App {
	t.Helper()
	a, err := New(context.Background(), testConfig(role), role, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { a.close(context.Background()) })
	return a
}

func TestNew_UnknownRole(t *testing.T) {
	_, err := New(context.Background(), testConfig(RoleSports), Role("billing"), discardLogger())
	require.Error(t, err)
}

func TestNew_RejectsBadTokenConfig(t *testing.T) {
	cfg := testConfig(RolePlayers)
	cfg.JWT.Secret = "short"
	_, err := New(context.Background(), cfg, RolePlayers, discardLogger())
	require.Error(t, err)
}

func TestRoleDefaultPort(t *testing.T) {
	ports := map[string]bool{}
	for _, r := range []Role{RoleAuthorization, RolePlayers, RoleSports, RoleParticipation} {
		ports[r.DefaultPort()] = true
	}
	assert.Len(t, ports, 4)
}

func TestIssuerTokenAcceptedByVerifiers(t *testing.T) {
	issuer := newApp(t, RoleAuthorization)

	body := `{"username":"` + seed.DefaultUsername + `","password":"` + seed.DefaultPassword + `"}`
	req := httptest.NewRequest(http.MethodPost, "/authenticate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	issuer.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	paths := map[Role]string{
		RolePlayers:       "/api/players",
		RoleSports:        "/api/sports",
		RoleParticipation: "/api/participations",
	}
	for role, path := range paths {
		t.Run(string(role), func(t *testing.T) {
			verifier := newApp(t, role)

			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.Header.Set("Authorization", "Bearer "+resp.Token)
			rec := httptest.NewRecorder()
			verifier.Handler().ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			req = httptest.NewRequest(http.MethodGet, path, nil)
			rec = httptest.NewRecorder()
			verifier.Handler().ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestVerifierDoesNotServeIssuerRoutes(t *testing.T) {
	a := newApp(t, RoleSports)

	req := httptest.NewRequest(http.MethodPost, "/authenticate", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServe_StopsOnCancel(t *testing.T) {
	a, err := New(context.Background(), testConfig(RoleSports), RoleSports, discardLogger())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
