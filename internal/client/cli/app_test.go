package cli

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashedin27-max/GCS-Upload/internal/client/config"
	"github.com/hashedin27-max/GCS-Upload/internal/client/nav"
	"github.com/hashedin27-max/GCS-Upload/internal/logging"
	"github.com/hashedin27-max/GCS-Upload/internal/mockserver"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	srv := httptest.NewServer(mockserver.NewRouter(mockserver.Config{}, logging.NewDefault(8)))
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = srv.URL
	cfg.StateDir = t.TempDir()

	app, err := NewApp(cfg, logging.NewDefault(8))
	require.NoError(t, err)
	return app
}

func TestNavigate_AnonymousIsSentToLogin(t *testing.T) {
	app := newTestApp(t)

	app.navigate(nav.RouteUpload)

	assert.Equal(t, nav.RouteLogin, app.route)
	assert.Equal(t, nav.RouteUpload, app.returnURL, "original path captured for resume")
}

func TestNavigate_ResumeAfterLogin(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	app.navigate(nav.RouteUpload)
	require.Equal(t, nav.RouteLogin, app.route)

	require.NoError(t, app.session.Login(ctx, "admin", "password123"))
	app.resume()

	assert.Equal(t, nav.RouteUpload, app.route)
	assert.Empty(t, app.returnURL)
}

func TestNavigate_LoginRouteWhileAuthenticated(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, app.session.Login(ctx, "admin", "password123"))

	app.navigate(nav.RouteLogin)
	assert.Equal(t, nav.RouteUpload, app.route, "authenticated users bounce off the login view")
}

func TestNavigate_UnknownPathRedirectsHome(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, app.session.Login(ctx, "admin", "password123"))

	app.navigate("/nowhere")
	assert.Equal(t, nav.RouteUpload, app.route)
}

func TestDefaultTargetPreselected(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, app.config.GCSBuckets[0], app.target.Bucket)
	assert.Equal(t, app.config.DestinationPaths[0], app.target.DestinationPath)
}

func TestSessionSurvivesRestart(t *testing.T) {
	srv := httptest.NewServer(mockserver.NewRouter(mockserver.Config{}, logging.NewDefault(8)))
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = srv.URL
	cfg.StateDir = t.TempDir()

	first, err := NewApp(cfg, logging.NewDefault(8))
	require.NoError(t, err)
	require.NoError(t, first.session.Login(context.Background(), "admin", "password123"))

	// a second app over the same state dir adopts the persisted session
	second, err := NewApp(cfg, logging.NewDefault(8))
	require.NoError(t, err)
	second.session.Restore(context.Background())

	assert.True(t, second.session.IsAuthenticated())
	require.NotNil(t, second.session.CurrentUser())
	assert.Equal(t, "admin", second.session.CurrentUser().Username)
}
