package server

import (
	"net/http"
	"path/filepath"
	"testing"

	"github.com/steinfletcher/apitest"

	"github.com/uomtools/sisgate/internal/config"
	"github.com/uomtools/sisgate/internal/portal"
	"github.com/uomtools/sisgate/internal/settings"
)

// newTestServer builds a server in the NoSession state backed by a
// temp directory. Handshake behavior itself is covered in the portal
// package; these tests pin the command boundary.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()

	store := portal.NewStore(filepath.Join(dir, "session.json"))
	manager := portal.NewManager(portal.Config{}, store, nil)
	settingsStore := settings.NewStore(filepath.Join(dir, "settings.json"), nil)

	return New(config.Default(), manager, settingsStore, nil)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	apitest.New().
		Handler(srv.Handler()).
		Get("/health").
		Expect(t).
		Status(http.StatusOK).
		Body(`{"authenticated":false,"status":"ok"}`).
		End()
}

func TestStudentRequiresLogin(t *testing.T) {
	srv := newTestServer(t)

	apitest.New().
		Handler(srv.Handler()).
		Get("/student").
		Expect(t).
		Status(http.StatusUnauthorized).
		Body(`{"error":"not logged in"}`).
		End()
}

func TestGradesRequireLogin(t *testing.T) {
	srv := newTestServer(t)

	apitest.New().
		Handler(srv.Handler()).
		Get("/student/grades").
		Expect(t).
		Status(http.StatusUnauthorized).
		Body(`{"error":"not logged in"}`).
		End()

	apitest.New().
		Handler(srv.Handler()).
		Get("/student/grades/stats/10/3").
		Expect(t).
		Status(http.StatusUnauthorized).
		Body(`{"error":"not logged in"}`).
		End()
}

func TestRestoreWithoutRecord(t *testing.T) {
	srv := newTestServer(t)

	apitest.New().
		Handler(srv.Handler()).
		Post("/session/restore").
		Expect(t).
		Status(http.StatusUnauthorized).
		Body(`{"error":"no saved session"}`).
		End()
}

func TestLoginRejectsMissingCredentials(t *testing.T) {
	srv := newTestServer(t)

	apitest.New().
		Handler(srv.Handler()).
		Post("/session/login").
		JSON(`{"username":"only"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	srv := newTestServer(t)

	apitest.New().
		Handler(srv.Handler()).
		Post("/session/logout").
		Expect(t).
		Status(http.StatusOK).
		Body(`{"ok":true}`).
		End()
}

func TestTraySettingRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	apitest.New().
		Handler(srv.Handler()).
		Get("/settings/tray").
		Expect(t).
		Status(http.StatusOK).
		Body(`{"keep_in_tray":false}`).
		End()

	apitest.New().
		Handler(srv.Handler()).
		Put("/settings/tray").
		JSON(`{"keep_in_tray":true}`).
		Expect(t).
		Status(http.StatusOK).
		Body(`{"keep_in_tray":true}`).
		End()

	apitest.New().
		Handler(srv.Handler()).
		Get("/settings/tray").
		Expect(t).
		Status(http.StatusOK).
		Body(`{"keep_in_tray":true}`).
		End()
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	apitest.New().
		Handler(srv.Handler()).
		Get("/metrics").
		Expect(t).
		Status(http.StatusOK).
		End()
}

func TestRequestIDPropagation(t *testing.T) {
	srv := newTestServer(t)

	apitest.New().
		Handler(srv.Handler()).
		Get("/health").
		Header("X-Request-ID", "shell-7").
		Expect(t).
		Status(http.StatusOK).
		Header("X-Request-ID", "shell-7").
		End()
}
